package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/types"
	"github.com/shopspring/decimal"
)

// GoalEditable represents all values for a savings goal that can be
// updated by the user.
type GoalEditable struct {
	Title         string          `json:"title" example:"Emergency fund"`
	TargetAmount  decimal.Decimal `json:"targetAmount" example:"5000" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"1250" default:"0"`
	Deadline      types.Date      `json:"deadline" example:"2027-12-31"`
	Category      string          `json:"category" example:"Savings"`
}

func (editable GoalEditable) model(owner string) models.Goal {
	return models.Goal{
		Title:         editable.Title,
		TargetAmount:  editable.TargetAmount,
		CurrentAmount: editable.CurrentAmount,
		Deadline:      editable.Deadline,
		Category:      editable.Category,
		CreatedBy:     owner,
	}
}

type GoalLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/goals/d1b4b4f8-9d7e-4bb6-8f4e-3bdcc2e7a1e8"`
}

// Goal is the API representation of a savings goal.
type Goal struct {
	models.DefaultModel
	Title         string                  `json:"title" example:"Emergency fund"`
	TargetAmount  decimal.Decimal         `json:"targetAmount" example:"5000"`
	CurrentAmount decimal.Decimal         `json:"currentAmount" example:"1250"`
	Deadline      types.Date              `json:"deadline" example:"2027-12-31"`
	Category      string                  `json:"category" example:"Savings"`
	Progress      decimal.Decimal         `json:"progress" example:"25"`
	CreatedBy     string                  `json:"createdBy" example:"morre@example.com"`
	Shared        bool                    `json:"shared" example:"false"`
	Permission    models.PermissionLevel  `json:"permission,omitempty" example:"edit"`
	Links         GoalLinks               `json:"links"`
}

func newGoal(c *gin.Context, model models.Goal) Goal {
	url := c.GetString(string(models.ContextURL))

	return Goal{
		DefaultModel:  model.DefaultModel,
		Title:         model.Title,
		TargetAmount:  model.TargetAmount,
		CurrentAmount: model.CurrentAmount,
		Deadline:      model.Deadline,
		Category:      model.Category,
		Progress:      model.Progress(),
		CreatedBy:     model.CreatedBy,
		Links: GoalLinks{
			Self: fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
		},
	}
}

type GoalListResponse struct {
	Data  []Goal  `json:"data"`
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type GoalCreateResponse struct {
	Data  []GoalResponse `json:"data"`
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"`
}

func (t *GoalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, GoalResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GoalResponse struct {
	Data  *Goal   `json:"data"`
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type GoalQueryFilter struct {
	Category string `form:"category"`
}
