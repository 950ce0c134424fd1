package steps

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

func iHaveAnAccountNamedWithBalance(ctx context.Context, kind, name, balance string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return err
	}
	err = tc.sendJSON(http.MethodPost, "/api/v1/accounts", map[string]any{
		"name":            name,
		"kind":            kind,
		"initial_balance": amount,
	}, http.StatusCreated)
	if err != nil {
		return err
	}
	return tc.remember("account:"+name, "id")
}

func iHaveACategoryNamed(ctx context.Context, categoryType, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	err := tc.sendJSON(http.MethodPost, "/api/v1/categories", map[string]any{
		"name": name,
		"type": categoryType,
	}, http.StatusCreated)
	if err != nil {
		return err
	}
	return tc.remember("category:"+name, "id")
}

func iRecordedATransaction(ctx context.Context, txnType, amount, date, accountName, categoryName string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	err = tc.sendJSON(http.MethodPost, "/api/v1/transactions", map[string]any{
		"account_id":  "{account:" + accountName + "}",
		"category_id": "{category:" + categoryName + "}",
		"type":        txnType,
		"amount":      value,
		"description": fmt.Sprintf("%s %s", categoryName, date),
		"date":        date,
	}, http.StatusCreated)
	if err != nil {
		return err
	}
	return tc.remember("transaction:last", "id")
}

func iTransferred(ctx context.Context, amount, from, to, date string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	err = tc.sendJSON(http.MethodPost, "/api/v1/transactions", map[string]any{
		"account_id":             "{account:" + from + "}",
		"destination_account_id": "{account:" + to + "}",
		"type":                   "transfer",
		"amount":                 value,
		"description":            fmt.Sprintf("Transfer to %s", to),
		"date":                   date,
	}, http.StatusCreated)
	if err != nil {
		return err
	}
	return tc.remember("transaction:last", "id")
}

func iHaveAMonthlyBudget(ctx context.Context, amount, categoryName, startDate string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	err = tc.sendJSON(http.MethodPost, "/api/v1/budgets", map[string]any{
		"category_id": "{category:" + categoryName + "}",
		"amount":      value,
		"period":      "monthly",
		"start_date":  startDate,
	}, http.StatusCreated)
	if err != nil {
		return err
	}
	return tc.remember("budget:"+categoryName, "id")
}

func iHaveAGoalWithTarget(ctx context.Context, name, target string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := decimal.NewFromString(target)
	if err != nil {
		return err
	}
	err = tc.sendJSON(http.MethodPost, "/api/v1/goals", map[string]any{
		"name":          name,
		"target_amount": value,
		"target_date":   tc.clock.Now().AddDate(1, 0, 0).Format("2006-01-02"),
	}, http.StatusCreated)
	if err != nil {
		return err
	}
	return tc.remember("goal:"+name, "id")
}

func theAccountShouldHaveBalance(ctx context.Context, name, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if err := tc.sendJSON(http.MethodGet, "/api/v1/accounts/{account:"+name+"}", nil, http.StatusOK); err != nil {
		return err
	}
	return tc.decimalFieldShouldEqual("balance", expected)
}

func theGoalShouldHaveSaved(ctx context.Context, name, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if err := tc.sendJSON(http.MethodGet, "/api/v1/goals/{goal:"+name+"}", nil, http.StatusOK); err != nil {
		return err
	}
	return tc.decimalFieldShouldEqual("current_amount", expected)
}

func theGoalShouldHaveStatus(ctx context.Context, name, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if err := tc.sendJSON(http.MethodGet, "/api/v1/goals/{goal:"+name+"}", nil, http.StatusOK); err != nil {
		return err
	}
	status, err := tc.stringField("status")
	if err != nil {
		return err
	}
	if status != expected {
		return fmt.Errorf("goal %s expected status %s, got %s", name, expected, status)
	}
	return nil
}

func (tc *TestContext) remember(ref, field string) error {
	value, err := tc.stringField(field)
	if err != nil {
		return err
	}
	tc.refs[ref] = value
	return nil
}

func (tc *TestContext) decimalFieldShouldEqual(field, expected string) error {
	raw, err := tc.stringField(field)
	if err != nil {
		return err
	}
	actual, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("field '%s' is not a decimal: %s", field, raw)
	}
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return err
	}
	if !actual.Equal(want) {
		return fmt.Errorf("field '%s' expected %s, got %s", field, want, actual)
	}
	return nil
}
