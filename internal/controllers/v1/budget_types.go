package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/types"
	pf_uuid "github.com/planify/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type BudgetCategoryEditable struct {
	Name  string          `json:"name" example:"Groceries" default:""`                                               // Name of the category
	Limit decimal.Decimal `json:"limit" example:"200" minimum:"0" maximum:"999999999999.99999999" default:"0"` // Spending limit for the category, 0 for no limit
}

type BudgetEditable struct {
	Name        string                   `json:"name" example:"May household" default:""`                                                  // Name of the budget
	Month       types.Month              `json:"month" example:"2024-05"`                                                                  // The month the budget is for
	TotalAmount decimal.Decimal          `json:"totalAmount" example:"1000" minimum:"0.00000001" maximum:"999999999999.99999999"`          // Overall spending limit for the month
	Categories  []BudgetCategoryEditable `json:"categories"`                                                                               // Ordered category lines
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model(owner string) models.Budget {
	categories := make([]models.BudgetCategory, 0, len(editable.Categories))
	for i, category := range editable.Categories {
		categories = append(categories, models.BudgetCategory{
			Name:     category.Name,
			Limit:    category.Limit,
			Position: uint(i),
		})
	}

	return models.Budget{
		Name:        editable.Name,
		Month:       editable.Month,
		TotalAmount: editable.TotalAmount,
		CreatedBy:   owner,
		Categories:  categories,
	}
}

type BudgetCategory struct {
	Name  string          `json:"name" example:"Groceries"` // Name of the category
	Limit decimal.Decimal `json:"limit" example:"200"`      // Spending limit for the category
	Spent decimal.Decimal `json:"spent" example:"150"`      // Amount spent in the category, derived from the expense ledger
}

type BudgetLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/budgets/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`        // The budget itself
	Alerts string `json:"alerts" example:"https://example.com/api/v1/budgets/438cc6c0-9baf-49fd-a75a-d76bd5cab19c/alerts"` // Alert evaluation for the budget
}

type Budget struct {
	models.DefaultModel
	Name         string                 `json:"name" example:"May household"`           // Name of the budget
	Month        types.Month            `json:"month" example:"2024-05"`                // The month the budget is for
	TotalAmount  decimal.Decimal        `json:"totalAmount" example:"1000"`             // Overall spending limit for the month
	CurrentSpent decimal.Decimal        `json:"currentSpent" example:"830.12"`          // Amount spent in the month, derived from the expense ledger
	Categories   []BudgetCategory       `json:"categories"`                             // Ordered category lines
	CreatedBy    string                 `json:"createdBy" example:"jane@example.com"`   // Email of the owning user
	Shared       bool                   `json:"shared" example:"false"`                 // True when the budget is shared with the requesting user
	Permission   models.PermissionLevel `json:"permission,omitempty" example:"edit"`    // Permission level of the requesting user, only set for shared budgets
	Links        BudgetLinks            `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString(string(models.ContextURL))

	categories := make([]BudgetCategory, 0, len(model.Categories))
	for _, category := range model.Categories {
		categories = append(categories, BudgetCategory{
			Name:  category.Name,
			Limit: category.Limit,
			Spent: category.Spent,
		})
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Month:        model.Month,
		TotalAmount:  model.TotalAmount,
		CurrentSpent: model.CurrentSpent,
		Categories:   categories,
		CreatedBy:    model.CreatedBy,
		Links: BudgetLinks{
			Self:   fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Alerts: fmt.Sprintf("%s/v1/budgets/%s/alerts", url, model.ID),
		},
	}
}

type BudgetListResponse struct {
	Data  []Budget `json:"data"`                                                          // List of budgets
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BudgetResponse `json:"data"`                                                          // List of created budgets
}

func (t *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Budget `json:"data"`                                                          // The budget
}

type BudgetAlertsResponse struct {
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []models.BudgetAlert `json:"data"`                                                          // Alerts for the budget
}

type BudgetQueryFilter struct {
	Month     string       `form:"month"` // By month in YYYY-MM format
	Name      string       `form:"name"`  // By name
	BudgetID  pf_uuid.UUID `form:"id"`    // By ID
}
