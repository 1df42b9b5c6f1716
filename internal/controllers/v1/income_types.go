package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/types"
	"github.com/shopspring/decimal"
)

// IncomeEditable represents all values for an income that can be
// updated by the user.
type IncomeEditable struct {
	Title       string          `json:"title" example:"Salary"`
	Amount      decimal.Decimal `json:"amount" example:"2800" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
	Category    string          `json:"category" example:"Work"`
	Date        types.Date      `json:"date" example:"2024-05-01"`
	IsRecurring bool            `json:"isRecurring" example:"true"`
	Frequency   string          `json:"frequency" example:"monthly"`
}

func (editable IncomeEditable) model(owner string) models.Income {
	return models.Income{
		Title:       editable.Title,
		Amount:      editable.Amount,
		Category:    editable.Category,
		Date:        editable.Date,
		IsRecurring: editable.IsRecurring,
		Frequency:   editable.Frequency,
		CreatedBy:   owner,
	}
}

type IncomeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/incomes/0065a569-9c09-4c16-8a03-e176272ae8e3"`
}

// Income is the API representation of an income.
type Income struct {
	models.DefaultModel
	Title       string                 `json:"title" example:"Salary"`
	Amount      decimal.Decimal        `json:"amount" example:"2800"`
	Category    string                 `json:"category" example:"Work"`
	Date        types.Date             `json:"date" example:"2024-05-01"`
	IsRecurring bool                   `json:"isRecurring" example:"true"`
	Frequency   string                 `json:"frequency" example:"monthly"`
	CreatedBy   string                 `json:"createdBy" example:"morre@example.com"`
	Shared      bool                   `json:"shared" example:"false"`
	Permission  models.PermissionLevel `json:"permission,omitempty" example:"view"`
	Links       IncomeLinks            `json:"links"`
}

func newIncome(c *gin.Context, model models.Income) Income {
	url := c.GetString(string(models.ContextURL))

	return Income{
		DefaultModel: model.DefaultModel,
		Title:        model.Title,
		Amount:       model.Amount,
		Category:     model.Category,
		Date:         model.Date,
		IsRecurring:  model.IsRecurring,
		Frequency:    model.Frequency,
		CreatedBy:    model.CreatedBy,
		Links: IncomeLinks{
			Self: fmt.Sprintf("%s/v1/incomes/%s", url, model.ID),
		},
	}
}

type IncomeListResponse struct {
	Data  []Income `json:"data"`
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type IncomeCreateResponse struct {
	Data  []IncomeResponse `json:"data"`
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"`
}

func (t *IncomeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, IncomeResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeResponse struct {
	Data  *Income `json:"data"`
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type IncomeQueryFilter struct {
	Month    string `form:"month"`
	Category string `form:"category"`
}
