package persistence

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Zerkath/finance-app/internal/application/adapter"
	"github.com/Zerkath/finance-app/internal/domain/entity"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
	"github.com/Zerkath/finance-app/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

type fixture struct {
	categories   adapter.CategoryRepository
	transactions adapter.TransactionRepository
}

func newFixture(t *testing.T) (*fixture, *gorm.DB) {
	db := newTestDB(t)
	return &fixture{
		categories:   NewCategoryRepository(db),
		transactions: NewTransactionRepository(db),
	}, db
}

func (f *fixture) category(t *testing.T, label string) int64 {
	t.Helper()
	c, err := f.categories.Create(context.Background(), entity.NewCategory(label))
	require.NoError(t, err)
	return c.ID
}

func (f *fixture) transaction(t *testing.T, value float64, date string, categoryIDs ...int64) int64 {
	t.Helper()
	tx := entity.NewTransaction(value, "tx "+date, nil, date)
	require.NoError(t, f.transactions.Create(context.Background(), tx, categoryIDs))
	return tx.ID
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	f, _ := newFixture(t)

	t.Run("create is idempotent per label", func(t *testing.T) {
		first, err := f.categories.Create(ctx, entity.NewCategory("Food"))
		require.NoError(t, err)
		second, err := f.categories.Create(ctx, entity.NewCategory("  food "))
		require.NoError(t, err)

		assert.NotZero(t, first.ID)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "food", second.Label)
	})

	t.Run("find all ordered by id", func(t *testing.T) {
		_, err := f.categories.Create(ctx, entity.NewCategory("rent"))
		require.NoError(t, err)

		all, err := f.categories.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "food", all[0].Label)
		assert.Equal(t, "rent", all[1].Label)
	})

	t.Run("find by id", func(t *testing.T) {
		_, err := f.categories.FindByID(ctx, 999)
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
	})

	t.Run("existing ids keep input order", func(t *testing.T) {
		all, err := f.categories.FindAll(ctx)
		require.NoError(t, err)

		ids, err := f.categories.FindExistingIDs(ctx, []int64{all[1].ID, 404, all[0].ID})
		require.NoError(t, err)
		assert.Equal(t, []int64{all[1].ID, all[0].ID}, ids)

		none, err := f.categories.FindExistingIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestCategoryRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	f, db := newFixture(t)

	foo := f.category(t, "foo")
	bar := f.category(t, "bar")
	txID := f.transaction(t, -10, "2023-11-01", foo, bar)

	require.NoError(t, f.categories.Delete(ctx, foo))

	var links int64
	require.NoError(t, db.Model(&model.TransactionCategoryModel{}).Where("category_id = ?", foo).Count(&links).Error)
	assert.Zero(t, links)

	exists, err := f.transactions.Exists(ctx, txID)
	require.NoError(t, err)
	assert.True(t, exists, "transactions survive category deletion")

	cats, err := f.categories.FindByTransactionIDs(ctx, []int64{txID})
	require.NoError(t, err)
	assert.Equal(t, []entity.Category{{ID: bar, Label: "bar"}}, cats[txID])

	assert.ErrorIs(t, f.categories.Delete(ctx, foo), domainerror.ErrCategoryNotFound)
}

func TestTransactionRepository_CreateAndDelete(t *testing.T) {
	ctx := context.Background()
	f, db := newFixture(t)

	foo := f.category(t, "foo")
	desc := "weekly shop"
	tx := entity.NewTransaction(-42.5, "groceries", &desc, "2023-11-03")
	require.NoError(t, f.transactions.Create(ctx, tx, []int64{foo}))

	assert.NotZero(t, tx.ID)
	assert.Equal(t, []entity.Category{{ID: foo, Label: "foo"}}, tx.Categories)

	require.NoError(t, f.transactions.Delete(ctx, tx.ID))

	var links int64
	require.NoError(t, db.Model(&model.TransactionCategoryModel{}).Count(&links).Error)
	assert.Zero(t, links)

	exists, err := f.transactions.Exists(ctx, tx.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, f.transactions.Delete(ctx, tx.ID), domainerror.ErrTransactionNotFound)
}

func TestTransactionRepository_ReplaceCategories(t *testing.T) {
	ctx := context.Background()
	f, _ := newFixture(t)

	foo := f.category(t, "foo")
	bar := f.category(t, "bar")
	txID := f.transaction(t, 1, "2023-11-01", foo)

	require.NoError(t, f.transactions.ReplaceCategories(ctx, txID, []int64{bar, foo}))
	cats, err := f.categories.FindByTransactionIDs(ctx, []int64{txID})
	require.NoError(t, err)
	assert.Equal(t, []entity.Category{{ID: foo, Label: "foo"}, {ID: bar, Label: "bar"}}, cats[txID])

	require.NoError(t, f.transactions.ReplaceCategories(ctx, txID, nil))
	cats, err = f.categories.FindByTransactionIDs(ctx, []int64{txID})
	require.NoError(t, err)
	assert.Empty(t, cats[txID])
}

func TestTransactionRepository_FindByFilter(t *testing.T) {
	ctx := context.Background()
	f, _ := newFixture(t)

	foo := f.category(t, "foo")
	bar := f.category(t, "bar")

	desc := "Coffee with friends"
	coffee := entity.NewTransaction(-4, "Cafe", &desc, "2023-11-02")
	require.NoError(t, f.transactions.Create(ctx, coffee, []int64{foo}))
	late := f.transaction(t, 10, "2023-11-05", bar)
	early := f.transaction(t, 3, "2023-10-01")
	f.transaction(t, 3, "2023-11-02")

	t.Run("ordered by date then id", func(t *testing.T) {
		txs, total, err := f.transactions.FindByFilter(ctx, adapter.TransactionFilter{}, adapter.TransactionPagination{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, txs, 4)
		assert.Equal(t, early, txs[0].ID)
		assert.Equal(t, coffee.ID, txs[1].ID)
		assert.Equal(t, late, txs[3].ID)
	})

	t.Run("paged", func(t *testing.T) {
		txs, total, err := f.transactions.FindByFilter(ctx, adapter.TransactionFilter{}, adapter.TransactionPagination{Page: 2, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, txs, 1)
		assert.Equal(t, late, txs[0].ID)
	})

	t.Run("search matches description case-insensitively", func(t *testing.T) {
		txs, total, err := f.transactions.FindByFilter(ctx, adapter.TransactionFilter{Search: "COFFEE"}, adapter.TransactionPagination{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, coffee.ID, txs[0].ID)
	})

	t.Run("any-of category filter", func(t *testing.T) {
		txs, total, err := f.transactions.FindByFilter(ctx, adapter.TransactionFilter{CategoryIDs: []int64{foo, bar}}, adapter.TransactionPagination{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, coffee.ID, txs[0].ID)
		assert.Equal(t, late, txs[1].ID)
	})
}
