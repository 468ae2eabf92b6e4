package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/Zerkath/finance-app/internal/integration/adapters"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// registerFinanceSteps registers steps for categories, transactions and reports.
func registerFinanceSteps(ctx *godog.ScenarioContext) {
	// Setup
	ctx.Step(`^the API requires authentication$`, theAPIRequiresAuthentication)
	ctx.Step(`^I am authenticated as "([^"]*)"$`, iAmAuthenticatedAs)
	ctx.Step(`^the rate limit is (\d+) requests? per minute$`, theRateLimitIs)

	// Categories
	ctx.Step(`^a category "([^"]*)" exists$`, aCategoryExists)
	ctx.Step(`^the following categories exist:$`, theFollowingCategoriesExist)
	ctx.Step(`^I create the category "([^"]*)"$`, iCreateTheCategory)
	ctx.Step(`^I delete the category "([^"]*)"$`, iDeleteTheCategory)
	ctx.Step(`^the category list should contain (\d+) categor(?:y|ies)$`, theCategoryListShouldContain)

	// Transactions
	ctx.Step(`^the following transactions exist:$`, theFollowingTransactionsExist)
	ctx.Step(`^I delete the transaction "([^"]*)"$`, iDeleteTheTransaction)
	ctx.Step(`^I set the categories of transaction "([^"]*)" to "([^"]*)"$`, iSetTheCategoriesOfTransaction)
	ctx.Step(`^the transaction page should contain (\d+) transactions?$`, theTransactionPageShouldContain)
	ctx.Step(`^the transaction page should list "([^"]*)"$`, theTransactionPageShouldList)

	// Reports
	ctx.Step(`^I request the "([^"]*)" report for "([^"]*)"$`, iRequestTheReport)
	ctx.Step(`^the report "(total|uncategorized)" should be (-?\d+(?:\.\d+)?)$`, theReportAmountShouldBe)
	ctx.Step(`^the report should have (\d+) dates$`, theReportShouldHaveDates)
	ctx.Step(`^the report date "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, theReportDateShouldBe)
	ctx.Step(`^the report dates should sum to the total$`, theReportDatesShouldSumToTheTotal)
	ctx.Step(`^the report "(category_income|category_expenses)" for "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, theReportCategorySumShouldBe)
	ctx.Step(`^the report "(category_income|category_expenses)" should be empty$`, theReportCategoriesShouldBeEmpty)
	ctx.Step(`^the response error code should be "([^"]*)"$`, theResponseErrorCodeShouldBe)
}

func theAPIRequiresAuthentication(ctx context.Context) error {
	tc := GetTestContext(ctx)
	tc.cfg.Auth.JWTSecret = testJWTSecret
	tc.start()
	return nil
}

func iAmAuthenticatedAs(ctx context.Context, subject string) error {
	tc := GetTestContext(ctx)
	token, err := adapters.NewTokenService(testJWTSecret).IssueToken(ctx, subject, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}
	tc.accessToken = token
	return nil
}

func theRateLimitIs(ctx context.Context, maxRequests int) error {
	tc := GetTestContext(ctx)
	tc.cfg.RateLimit.MaxRequests = maxRequests
	tc.cfg.RateLimit.Window.Duration = time.Minute
	tc.start()
	return nil
}

func aCategoryExists(ctx context.Context, label string) error {
	tc := GetTestContext(ctx)
	if err := tc.createCategory(label); err != nil {
		return err
	}
	return tc.expectStatus(http.StatusCreated)
}

func theFollowingCategoriesExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	for _, row := range table.Rows[1:] {
		if err := tc.createCategory(row.Cells[0].Value); err != nil {
			return err
		}
		if err := tc.expectStatus(http.StatusCreated); err != nil {
			return err
		}
	}
	return nil
}

func iCreateTheCategory(ctx context.Context, label string) error {
	return GetTestContext(ctx).createCategory(label)
}

func (tc *TestContext) createCategory(label string) error {
	body, err := json.Marshal(map[string]string{"label": label})
	if err != nil {
		return err
	}
	if err := tc.send(http.MethodPost, "/api/v1/categories", body); err != nil {
		return err
	}

	if tc.response.StatusCode == http.StatusCreated {
		var created struct {
			ID    int64  `json:"id"`
			Label string `json:"label"`
		}
		if err := json.Unmarshal(tc.responseBody, &created); err != nil {
			return fmt.Errorf("failed to parse category: %w", err)
		}
		tc.categoryIDs[created.Label] = created.ID
	}
	return nil
}

func iDeleteTheCategory(ctx context.Context, label string) error {
	tc := GetTestContext(ctx)
	id, err := tc.categoryID(label)
	if err != nil {
		return err
	}
	return tc.send(http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", id), nil)
}

func theCategoryListShouldContain(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	if err := tc.send(http.MethodGet, "/api/v1/categories", nil); err != nil {
		return err
	}

	var list struct {
		Categories []json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(tc.responseBody, &list); err != nil {
		return fmt.Errorf("failed to parse category list: %w", err)
	}
	if len(list.Categories) != count {
		return fmt.Errorf("expected %d categories, got %d. Body: %s", count, len(list.Categories), string(tc.responseBody))
	}
	return nil
}

// theFollowingTransactionsExist expects the columns name, value, date and,
// optionally, categories as a comma separated list of labels.
func theFollowingTransactionsExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	header := make(map[string]int, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[cell.Value] = i
	}

	for _, row := range table.Rows[1:] {
		name := row.Cells[header["name"]].Value
		value, err := strconv.ParseFloat(row.Cells[header["value"]].Value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %q: %w", name, err)
		}

		categoryIDs := []int64{}
		if i, ok := header["categories"]; ok {
			ids, err := tc.categoryIDList(row.Cells[i].Value)
			if err != nil {
				return err
			}
			categoryIDs = ids
		}

		body, err := json.Marshal(map[string]any{
			"value":        value,
			"name":         name,
			"date_created": row.Cells[header["date"]].Value,
			"categories":   categoryIDs,
		})
		if err != nil {
			return err
		}
		if err := tc.send(http.MethodPost, "/api/v1/transactions", body); err != nil {
			return err
		}
		if err := tc.expectStatus(http.StatusCreated); err != nil {
			return err
		}

		var created struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(tc.responseBody, &created); err != nil {
			return fmt.Errorf("failed to parse transaction: %w", err)
		}
		tc.transactionIDs[name] = created.ID
	}
	return nil
}

func iDeleteTheTransaction(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	id, ok := tc.transactionIDs[name]
	if !ok {
		return fmt.Errorf("transaction %q was not created in this scenario", name)
	}
	return tc.send(http.MethodDelete, fmt.Sprintf("/api/v1/transactions/%d", id), nil)
}

func iSetTheCategoriesOfTransaction(ctx context.Context, name, labels string) error {
	tc := GetTestContext(ctx)
	id, ok := tc.transactionIDs[name]
	if !ok {
		return fmt.Errorf("transaction %q was not created in this scenario", name)
	}

	ids, err := tc.categoryIDList(labels)
	if err != nil {
		return err
	}
	body, err := json.Marshal(map[string]any{"categories": ids})
	if err != nil {
		return err
	}
	return tc.send(http.MethodPut, fmt.Sprintf("/api/v1/transactions/%d/categories", id), body)
}

func (tc *TestContext) transactionPage() ([]string, error) {
	var page struct {
		Transactions []struct {
			Name string `json:"name"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(tc.responseBody, &page); err != nil {
		return nil, fmt.Errorf("failed to parse transaction page: %w", err)
	}

	names := make([]string, len(page.Transactions))
	for i, t := range page.Transactions {
		names[i] = t.Name
	}
	return names, nil
}

func theTransactionPageShouldContain(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	names, err := tc.transactionPage()
	if err != nil {
		return err
	}
	if len(names) != count {
		return fmt.Errorf("expected %d transactions, got %d: %v", count, len(names), names)
	}
	return nil
}

// theTransactionPageShouldList compares names, in order, against a comma separated list.
func theTransactionPageShouldList(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	names, err := tc.transactionPage()
	if err != nil {
		return err
	}
	if got := strings.Join(names, ","); got != expected {
		return fmt.Errorf("expected transactions %q, got %q", expected, got)
	}
	return nil
}

func iRequestTheReport(ctx context.Context, granularity, date string) error {
	tc := GetTestContext(ctx)
	query := url.Values{}
	query.Set("type", granularity)
	query.Set("date", date)
	return tc.send(http.MethodGet, "/api/v1/reports/basic?"+query.Encode(), nil)
}

type reportBody struct {
	Total            float64            `json:"total"`
	Uncategorized    float64            `json:"uncategorized"`
	Dates            map[string]float64 `json:"dates"`
	CategoryIncome   map[string]float64 `json:"category_income"`
	CategoryExpenses map[string]float64 `json:"category_expenses"`
}

func (tc *TestContext) report() (*reportBody, error) {
	if err := tc.expectStatus(http.StatusOK); err != nil {
		return nil, err
	}
	var rpt reportBody
	if err := json.Unmarshal(tc.responseBody, &rpt); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &rpt, nil
}

func theReportAmountShouldBe(ctx context.Context, field string, expected float64) error {
	rpt, err := GetTestContext(ctx).report()
	if err != nil {
		return err
	}

	actual := rpt.Total
	if field == "uncategorized" {
		actual = rpt.Uncategorized
	}
	return expectAmount(field, expected, actual)
}

func theReportShouldHaveDates(ctx context.Context, count int) error {
	rpt, err := GetTestContext(ctx).report()
	if err != nil {
		return err
	}
	if len(rpt.Dates) != count {
		return fmt.Errorf("expected %d dates, got %d", count, len(rpt.Dates))
	}
	return nil
}

func theReportDateShouldBe(ctx context.Context, key string, expected float64) error {
	rpt, err := GetTestContext(ctx).report()
	if err != nil {
		return err
	}
	actual, ok := rpt.Dates[key]
	if !ok {
		return fmt.Errorf("date %q not found in report", key)
	}
	return expectAmount("dates."+key, expected, actual)
}

func theReportDatesShouldSumToTheTotal(ctx context.Context) error {
	rpt, err := GetTestContext(ctx).report()
	if err != nil {
		return err
	}
	var sum float64
	for _, v := range rpt.Dates {
		sum += v
	}
	return expectAmount("sum of dates", rpt.Total, sum)
}

func theReportCategorySumShouldBe(ctx context.Context, field, label string, expected float64) error {
	rpt, err := GetTestContext(ctx).report()
	if err != nil {
		return err
	}

	sums := rpt.CategoryIncome
	if field == "category_expenses" {
		sums = rpt.CategoryExpenses
	}
	actual, ok := sums[label]
	if !ok {
		return fmt.Errorf("%s has no entry %q: %v", field, label, sums)
	}
	return expectAmount(field+"."+label, expected, actual)
}

func theReportCategoriesShouldBeEmpty(ctx context.Context, field string) error {
	rpt, err := GetTestContext(ctx).report()
	if err != nil {
		return err
	}

	sums := rpt.CategoryIncome
	if field == "category_expenses" {
		sums = rpt.CategoryExpenses
	}
	if len(sums) != 0 {
		return fmt.Errorf("expected %s to be empty, got %v", field, sums)
	}
	return nil
}

func theResponseErrorCodeShouldBe(ctx context.Context, code string) error {
	tc := GetTestContext(ctx)
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(tc.responseBody, &body); err != nil {
		return fmt.Errorf("failed to parse error response: %w", err)
	}
	if body.Code != code {
		return fmt.Errorf("expected error code %q, got %q. Body: %s", code, body.Code, string(tc.responseBody))
	}
	return nil
}

func (tc *TestContext) expectStatus(expected int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expected, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func (tc *TestContext) categoryID(label string) (int64, error) {
	id, ok := tc.categoryIDs[label]
	if !ok {
		return 0, fmt.Errorf("category %q was not created in this scenario", label)
	}
	return id, nil
}

func (tc *TestContext) categoryIDList(labels string) ([]int64, error) {
	ids := []int64{}
	for _, label := range strings.Split(labels, ",") {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		id, err := tc.categoryID(label)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func expectAmount(field string, expected, actual float64) error {
	if math.Abs(expected-actual) > 1e-6 {
		return fmt.Errorf("%s expected %v, got %v", field, expected, actual)
	}
	return nil
}
