package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AlertKind classifies a budget alert.
type AlertKind string

const (
	AlertBudgetWarning    AlertKind = "budget_warning"
	AlertBudgetExceeded   AlertKind = "budget_exceeded"
	AlertCategoryExceeded AlertKind = "category_exceeded"
)

// Alert thresholds in percent. These are product constants, not
// configurable per budget.
var (
	thresholdWarning  = decimal.NewFromInt(80)
	thresholdExceeded = decimal.NewFromInt(90)
)

// BudgetAlert is raised when spending crosses one of the alert thresholds.
type BudgetAlert struct {
	Kind     AlertKind `json:"kind" example:"budget_exceeded"` // What the alert is about
	Category string    `json:"category,omitempty" example:"Groceries"`
	Message  string    `json:"message" example:"You have spent more than 90% of your budget \"May\""`
}

// Alerts evaluates the alert thresholds against the current spending
// caches. It performs no I/O, the caller is responsible for recomputing
// the caches first.
//
// At most one overall alert is returned: exceeded wins over warning.
// A category alert is added for every category with a limit that is at
// least 90% used.
func (b Budget) Alerts() []BudgetAlert {
	var alerts []BudgetAlert

	percentage := decimal.Zero
	if b.TotalAmount.IsPositive() {
		percentage = b.CurrentSpent.Div(b.TotalAmount).Mul(decimal.NewFromInt(100))
	}

	if percentage.GreaterThanOrEqual(thresholdExceeded) {
		alerts = append(alerts, BudgetAlert{
			Kind:    AlertBudgetExceeded,
			Message: fmt.Sprintf("You have spent more than 90%% of your budget %q", b.Name),
		})
	} else if percentage.GreaterThanOrEqual(thresholdWarning) {
		alerts = append(alerts, BudgetAlert{
			Kind:    AlertBudgetWarning,
			Message: fmt.Sprintf("You are close to the limit of your budget %q (%s%% used)", b.Name, percentage.Round(1)),
		})
	}

	for _, category := range b.Categories {
		if !category.Limit.IsPositive() {
			continue
		}

		used := category.Spent.Div(category.Limit).Mul(decimal.NewFromInt(100))
		if used.GreaterThanOrEqual(thresholdExceeded) {
			alerts = append(alerts, BudgetAlert{
				Kind:     AlertCategoryExceeded,
				Category: category.Name,
				Message:  fmt.Sprintf("Limit exceeded for %q: %s of %s spent", category.Name, category.Spent, category.Limit),
			})
		}
	}

	return alerts
}
