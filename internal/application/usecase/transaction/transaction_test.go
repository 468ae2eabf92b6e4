package transaction

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zerkath/finance-app/internal/application/adapter"
	"github.com/Zerkath/finance-app/internal/domain/entity"
	domainerror "github.com/Zerkath/finance-app/internal/domain/error"
)

type fakeStore struct {
	categories   map[int64]entity.Category
	transactions map[int64]*entity.Transaction
	links        map[int64][]int64
	nextID       int64
	lastFilter   adapter.TransactionFilter
	lastPage     adapter.TransactionPagination
}

func newFakeStore(labels ...string) *fakeStore {
	s := &fakeStore{
		categories:   map[int64]entity.Category{},
		transactions: map[int64]*entity.Transaction{},
		links:        map[int64][]int64{},
		nextID:       1,
	}
	for i, l := range labels {
		id := int64(i + 1)
		s.categories[id] = entity.Category{ID: id, Label: l}
	}
	return s
}

// transaction repository

func (s *fakeStore) Create(_ context.Context, tx *entity.Transaction, categoryIDs []int64) error {
	tx.ID = s.nextID
	s.nextID++
	s.transactions[tx.ID] = tx
	s.links[tx.ID] = categoryIDs
	return nil
}

func (s *fakeStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.transactions[id]
	return ok, nil
}

func (s *fakeStore) FindByFilter(_ context.Context, filter adapter.TransactionFilter, p adapter.TransactionPagination) ([]*entity.Transaction, int64, error) {
	s.lastFilter = filter
	s.lastPage = p
	var all []*entity.Transaction
	for _, tx := range s.transactions {
		if filter.Search != "" && !strings.Contains(strings.ToLower(tx.Name), strings.ToLower(filter.Search)) {
			continue
		}
		all = append(all, tx)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	start := (p.Page - 1) * p.Limit
	if start > len(all) {
		return nil, int64(len(all)), nil
	}
	end := min(start+p.Limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (s *fakeStore) ReplaceCategories(_ context.Context, id int64, categoryIDs []int64) error {
	s.links[id] = categoryIDs
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id int64) error {
	delete(s.transactions, id)
	delete(s.links, id)
	return nil
}

// category repository, only the reads used by transaction use cases

type fakeCategories struct{ *fakeStore }

func (c fakeCategories) Create(_ context.Context, cat *entity.Category) (*entity.Category, error) {
	return cat, nil
}

func (c fakeCategories) FindAll(_ context.Context) ([]*entity.Category, error) { return nil, nil }

func (c fakeCategories) FindByID(_ context.Context, id int64) (*entity.Category, error) {
	cat, ok := c.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return &cat, nil
}

func (c fakeCategories) FindExistingIDs(_ context.Context, ids []int64) ([]int64, error) {
	var out []int64
	for _, id := range ids {
		if _, ok := c.categories[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (c fakeCategories) FindByTransactionIDs(_ context.Context, ids []int64) (map[int64][]entity.Category, error) {
	out := map[int64][]entity.Category{}
	for _, id := range ids {
		for _, cid := range c.links[id] {
			out[id] = append(out[id], c.categories[cid])
		}
	}
	return out, nil
}

func (c fakeCategories) Delete(_ context.Context, _ int64) error { return nil }

func strPtr(s string) *string { return &s }

func TestCreateTransactionUseCase(t *testing.T) {
	tests := []struct {
		name  string
		input CreateTransactionInput
		code  domainerror.TransactionErrorCode
	}{
		{
			name:  "valid",
			input: CreateTransactionInput{Value: -12.5, Name: "groceries", DateCreated: "2023-11-01"},
		},
		{
			name:  "missing name",
			input: CreateTransactionInput{Value: 1, Name: "  ", DateCreated: "2023-11-01"},
			code:  domainerror.ErrCodeTransactionNameRequired,
		},
		{
			name:  "bad date",
			input: CreateTransactionInput{Value: 1, Name: "x", DateCreated: "2023-11-1"},
			code:  domainerror.ErrCodeInvalidTransactionDate,
		},
		{
			name:  "impossible date",
			input: CreateTransactionInput{Value: 1, Name: "x", DateCreated: "2023-02-30"},
			code:  domainerror.ErrCodeInvalidTransactionDate,
		},
		{
			name:  "name too long",
			input: CreateTransactionInput{Value: 1, Name: strings.Repeat("n", MaxNameLength+1), DateCreated: "2023-11-01"},
			code:  domainerror.ErrCodeNameTooLong,
		},
		{
			name:  "description too long",
			input: CreateTransactionInput{Value: 1, Name: "x", Description: strPtr(strings.Repeat("d", MaxDescriptionLength+1)), DateCreated: "2023-11-01"},
			code:  domainerror.ErrCodeDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			uc := NewCreateTransactionUseCase(store, fakeCategories{store})
			out, err := uc.Execute(context.Background(), tt.input)
			if tt.code != "" {
				var txErr *domainerror.TransactionError
				require.ErrorAs(t, err, &txErr)
				assert.Equal(t, tt.code, txErr.Code)
				assert.Empty(t, store.transactions)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, out.Transaction.ID)
			assert.Equal(t, tt.input.Value, out.Transaction.Value)
		})
	}
}

func TestCreateTransactionUseCase_SkipsUnknownCategories(t *testing.T) {
	store := newFakeStore("foo", "bar")
	uc := NewCreateTransactionUseCase(store, fakeCategories{store})

	out, err := uc.Execute(context.Background(), CreateTransactionInput{
		Value:       5,
		Name:        "salary",
		DateCreated: "2023-11-01",
		CategoryIDs: []int64{2, 99, 2, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, store.links[out.Transaction.ID])
}

func TestSetTransactionCategoriesUseCase(t *testing.T) {
	store := newFakeStore("foo", "bar")
	created, err := NewCreateTransactionUseCase(store, fakeCategories{store}).Execute(context.Background(), CreateTransactionInput{
		Value: 5, Name: "salary", DateCreated: "2023-11-01", CategoryIDs: []int64{1},
	})
	require.NoError(t, err)

	uc := NewSetTransactionCategoriesUseCase(store, fakeCategories{store})

	out, err := uc.Execute(context.Background(), SetTransactionCategoriesInput{TransactionID: created.Transaction.ID, CategoryIDs: []int64{2, 7}})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, out.CategoryIDs)
	assert.Equal(t, []int64{2}, store.links[created.Transaction.ID])

	out, err = uc.Execute(context.Background(), SetTransactionCategoriesInput{TransactionID: created.Transaction.ID})
	require.NoError(t, err)
	assert.Empty(t, out.CategoryIDs)

	_, err = uc.Execute(context.Background(), SetTransactionCategoriesInput{TransactionID: 404, CategoryIDs: []int64{1}})
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
}

func TestDeleteTransactionUseCase(t *testing.T) {
	store := newFakeStore()
	created, err := NewCreateTransactionUseCase(store, fakeCategories{store}).Execute(context.Background(), CreateTransactionInput{
		Value: 5, Name: "salary", DateCreated: "2023-11-01",
	})
	require.NoError(t, err)

	uc := NewDeleteTransactionUseCase(store)
	require.NoError(t, uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: created.Transaction.ID}))
	assert.Empty(t, store.transactions)

	err = uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: created.Transaction.ID})
	var txErr *domainerror.TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.Equal(t, domainerror.ErrCodeTransactionNotFound, txErr.Code)
}

func TestListTransactionsUseCase(t *testing.T) {
	store := newFakeStore("foo")
	create := NewCreateTransactionUseCase(store, fakeCategories{store})
	for i := 0; i < 5; i++ {
		_, err := create.Execute(context.Background(), CreateTransactionInput{
			Value: float64(i), Name: "item", DateCreated: "2023-11-01", CategoryIDs: []int64{1},
		})
		require.NoError(t, err)
	}
	uc := NewListTransactionsUseCase(store, fakeCategories{store})

	t.Run("defaults", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTransactionsInput{})
		require.NoError(t, err)
		assert.Equal(t, adapter.TransactionPagination{Page: 1, Limit: DefaultPageSize}, store.lastPage)
		assert.Equal(t, 1, out.Page.TotalPages)
		assert.Len(t, out.Page.Transactions, 5)
		assert.Equal(t, "foo", out.Page.Transactions[0].Categories[0].Label)
	})

	t.Run("ceil pages", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTransactionsInput{PageSize: 2, CurrentPage: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Page.TotalPages)
		assert.Len(t, out.Page.Transactions, 1)
	})

	t.Run("page size capped", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ListTransactionsInput{PageSize: 1000})
		require.NoError(t, err)
		assert.Equal(t, MaxPageSize, store.lastPage.Limit)
	})

	t.Run("wildcards stripped from search", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ListTransactionsInput{Search: "%it%em%"})
		require.NoError(t, err)
		assert.Equal(t, "item", store.lastFilter.Search)
	})

	t.Run("empty result has one page", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTransactionsInput{Search: "nothing"})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Page.TotalPages)
		assert.NotNil(t, out.Page.Transactions)
		assert.Empty(t, out.Page.Transactions)
	})
}
