package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ExpenseEditable represents all values for an expense that can be
// updated by the user.
type ExpenseEditable struct {
	Title      string          `json:"title" example:"Groceries"`
	Amount     decimal.Decimal `json:"amount" example:"42.5" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
	Category   string          `json:"category" example:"Comida"`
	Date       types.Date      `json:"date" example:"2024-05-14"`
	BudgetID   *uuid.UUID      `json:"budgetId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	GoalID     *uuid.UUID      `json:"goalId" example:"d1b4b4f8-9d7e-4bb6-8f4e-3bdcc2e7a1e8"`
	SharedWith []string        `json:"sharedWith" example:"ina@example.com"`
}

func (editable ExpenseEditable) model(owner string) models.Expense {
	return models.Expense{
		Title:      editable.Title,
		Amount:     editable.Amount,
		Category:   editable.Category,
		Date:       editable.Date,
		BudgetID:   editable.BudgetID,
		GoalID:     editable.GoalID,
		CreatedBy:  owner,
		PaidBy:     owner,
		SharedWith: models.SplitEqually(editable.Amount, editable.SharedWith),
	}
}

// ExpenseShare is the API representation of one collaborator's share of
// an expense.
type ExpenseShare struct {
	Email  string          `json:"email" example:"ina@example.com"`
	Amount decimal.Decimal `json:"amount" example:"21.25"`
}

type ExpenseLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/expenses/ec0ae794-1b35-4452-9eca-b3b0b2ae8015"`
}

// Expense is the API representation of an expense.
type Expense struct {
	models.DefaultModel
	Title      string                 `json:"title" example:"Groceries"`
	Amount     decimal.Decimal        `json:"amount" example:"42.5"`
	Category   string                 `json:"category" example:"Comida"`
	Date       types.Date             `json:"date" example:"2024-05-14"`
	BudgetID   *uuid.UUID             `json:"budgetId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	GoalID     *uuid.UUID             `json:"goalId" example:"d1b4b4f8-9d7e-4bb6-8f4e-3bdcc2e7a1e8"`
	CreatedBy  string                 `json:"createdBy" example:"morre@example.com"`
	PaidBy     string                 `json:"paidBy" example:"morre@example.com"`
	SharedWith []ExpenseShare         `json:"sharedWith"`
	Shared     bool                   `json:"shared" example:"false"`
	Permission models.PermissionLevel `json:"permission,omitempty" example:"view"`
	Links      ExpenseLinks           `json:"links"`
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.ContextURL))

	shares := make([]ExpenseShare, 0, len(model.SharedWith))
	for _, share := range model.SharedWith {
		shares = append(shares, ExpenseShare{
			Email:  share.Email,
			Amount: share.Amount,
		})
	}

	return Expense{
		DefaultModel: model.DefaultModel,
		Title:        model.Title,
		Amount:       model.Amount,
		Category:     model.Category,
		Date:         model.Date,
		BudgetID:     model.BudgetID,
		GoalID:       model.GoalID,
		CreatedBy:    model.CreatedBy,
		PaidBy:       model.PaidBy,
		SharedWith:   shares,
		Links: ExpenseLinks{
			Self: fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
		},
	}
}

type ExpenseListResponse struct {
	Data  []Expense `json:"data"`
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type ExpenseCreateResponse struct {
	Data  []ExpenseResponse `json:"data"`
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"`
}

func (t *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, ExpenseResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type ExpenseQueryFilter struct {
	Month    string `form:"month"`
	Category string `form:"category"`
}
