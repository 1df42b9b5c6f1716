package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/planify/backend/internal/controllers/v1"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/test"
	"github.com/planify/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestExpenseCreate() {
	expense := suite.createTestExpense(v1.ExpenseEditable{
		Title:  "Cinema",
		Amount: decimal.NewFromInt(30),
	})

	assert.Equal(suite.T(), "Cinema", expense.Title)
	assert.Equal(suite.T(), test.Identity, expense.CreatedBy)
	assert.Equal(suite.T(), test.Identity, expense.PaidBy)
	assert.Empty(suite.T(), expense.SharedWith)
}

// The amount is split equally between the payer and everyone in
// sharedWith, the response carries the collaborator shares.
func (suite *TestSuiteStandard) TestExpenseCreateShared() {
	expense := suite.createTestExpense(v1.ExpenseEditable{
		Amount:     decimal.NewFromInt(90),
		SharedWith: []string{"ina@example.com", "sam@example.com"},
	})

	assert.Len(suite.T(), expense.SharedWith, 2)
	for _, share := range expense.SharedWith {
		assert.True(suite.T(), share.Amount.Equal(decimal.NewFromInt(30)),
			"share is %s, want 30", share.Amount)
	}

	// Both collaborators got a notification
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/notifications", "", as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), int64(1), response.Unread)
}

// Creating an expense brings the budget caches of its month up to date.
func (suite *TestSuiteStandard) TestExpenseCreateRecomputes() {
	budget := suite.createTestBudget(v1.BudgetEditable{})

	suite.createTestExpense(v1.ExpenseEditable{
		Amount: decimal.NewFromInt(250),
		Date:   types.NewDate(2024, 5, 3),
	})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.CurrentSpent.Equal(decimal.NewFromInt(250)),
		"CurrentSpent is %s, want 250", response.Data.CurrentSpent)
}

func (suite *TestSuiteStandard) TestExpenseCreateInvalid() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/expenses", `[{ "title": "No amount", "date": "2024-05-14" }]`)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

// Moving an expense to another month updates the caches of both months.
func (suite *TestSuiteStandard) TestExpenseUpdateMovesMonth() {
	may := suite.createTestBudget(v1.BudgetEditable{Name: "May", Month: types.NewMonth(2024, 5)})
	june := suite.createTestBudget(v1.BudgetEditable{Name: "June", Month: types.NewMonth(2024, 6)})

	expense := suite.createTestExpense(v1.ExpenseEditable{
		Amount: decimal.NewFromInt(100),
		Date:   types.NewDate(2024, 5, 14),
	})

	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/expenses/%s", expense.ID), `{ "date": "2024-06-14" }`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.BudgetResponse

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", may.ID), "")
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.CurrentSpent.IsZero(),
		"May CurrentSpent is %s, want 0", response.Data.CurrentSpent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", june.ID), "")
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.CurrentSpent.Equal(decimal.NewFromInt(100)),
		"June CurrentSpent is %s, want 100", response.Data.CurrentSpent)
}

func (suite *TestSuiteStandard) TestExpenseDelete() {
	budget := suite.createTestBudget(v1.BudgetEditable{})
	expense := suite.createTestExpense(v1.ExpenseEditable{
		Amount: decimal.NewFromInt(100),
		Date:   types.NewDate(2024, 5, 14),
	})

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/expenses/%s", expense.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)

	// The caches follow the deletion
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), "")
	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.CurrentSpent.IsZero())
}

func (suite *TestSuiteStandard) TestExpenseGetDenied() {
	expense := suite.createTestExpense(v1.ExpenseEditable{})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/expenses/%s", expense.ID), "", as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &recorder)
}

func (suite *TestSuiteStandard) TestExpenseListFilter() {
	suite.createTestExpense(v1.ExpenseEditable{Category: "Comida", Date: types.NewDate(2024, 5, 3)})
	suite.createTestExpense(v1.ExpenseEditable{Category: "Transporte", Date: types.NewDate(2024, 6, 3)})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/expenses?month=2024-05", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Comida", response.Data[0].Category)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/expenses?category=Transporte", "")
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Transporte", response.Data[0].Category)
}

// Crossing an alert threshold notifies the owner, but only once per alert.
func (suite *TestSuiteStandard) TestExpenseAlertNotification() {
	suite.createTestBudget(v1.BudgetEditable{
		Name:        "Tight month",
		TotalAmount: decimal.NewFromInt(100),
		Month:       types.NewMonth(2024, 5),
	})

	suite.createTestExpense(v1.ExpenseEditable{
		Amount: decimal.NewFromInt(95),
		Date:   types.NewDate(2024, 5, 3),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/notifications", "")
	var notifications v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &recorder, &notifications)
	assert.Len(suite.T(), notifications.Data, 1)
	assert.Equal(suite.T(), models.NotificationAlert, notifications.Data[0].Type)

	// The budget stays exceeded, no second notification for the same alert
	suite.createTestExpense(v1.ExpenseEditable{
		Title:  "Coffee",
		Amount: decimal.NewFromInt(3),
		Date:   types.NewDate(2024, 5, 4),
	})

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/notifications", "")
	test.DecodeResponse(suite.T(), &recorder, &notifications)
	assert.Len(suite.T(), notifications.Data, 1)
}
