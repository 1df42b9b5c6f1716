package models_test

import (
	"testing"

	"github.com/planify/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestBudgetAlerts() {
	tests := []struct {
		name  string
		spent int64
		kinds []models.AlertKind
	}{
		{"well below the thresholds", 500, nil},
		{"just below the warning threshold", 799, nil},
		{"at the warning threshold", 800, []models.AlertKind{models.AlertBudgetWarning}},
		{"between the thresholds", 850, []models.AlertKind{models.AlertBudgetWarning}},
		{"at the exceeded threshold", 900, []models.AlertKind{models.AlertBudgetExceeded}},
		{"over the budget", 1050, []models.AlertKind{models.AlertBudgetExceeded}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			budget := models.Budget{
				Name:         "May",
				TotalAmount:  decimal.NewFromInt(1000),
				CurrentSpent: decimal.NewFromInt(tt.spent),
			}

			alerts := budget.Alerts()

			kinds := make([]models.AlertKind, 0, len(alerts))
			for _, alert := range alerts {
				kinds = append(kinds, alert.Kind)
			}

			if tt.kinds == nil {
				assert.Empty(t, kinds)
			} else {
				assert.Equal(t, tt.kinds, kinds)
			}
		})
	}
}

// A budget without a positive total never raises an overall alert, no
// matter what the spending cache says.
func (suite *TestSuiteStandard) TestBudgetAlertsZeroTotal() {
	budget := models.Budget{
		Name:         "Broken",
		CurrentSpent: decimal.NewFromInt(10000),
	}

	assert.Empty(suite.T(), budget.Alerts())
}

func (suite *TestSuiteStandard) TestBudgetAlertsCategory() {
	budget := models.Budget{
		Name:         "May",
		TotalAmount:  decimal.NewFromInt(1000),
		CurrentSpent: decimal.NewFromInt(100),
		Categories: []models.BudgetCategory{
			{Name: "Comida", Limit: decimal.NewFromInt(200), Spent: decimal.NewFromInt(190)},
			{Name: "Transporte", Limit: decimal.NewFromInt(100), Spent: decimal.NewFromInt(50)},
			{Name: "Ocio", Spent: decimal.NewFromInt(500)},
		},
	}

	alerts := budget.Alerts()

	assert.Len(suite.T(), alerts, 1)
	assert.Equal(suite.T(), models.AlertCategoryExceeded, alerts[0].Kind)
	assert.Equal(suite.T(), "Comida", alerts[0].Category)
}

func (suite *TestSuiteStandard) TestBudgetAlertsCombined() {
	budget := models.Budget{
		Name:         "May",
		TotalAmount:  decimal.NewFromInt(1000),
		CurrentSpent: decimal.NewFromInt(1050),
		Categories: []models.BudgetCategory{
			{Name: "Comida", Limit: decimal.NewFromInt(200), Spent: decimal.NewFromInt(950)},
		},
	}

	alerts := budget.Alerts()

	assert.Len(suite.T(), alerts, 2)
	assert.Equal(suite.T(), models.AlertBudgetExceeded, alerts[0].Kind)
	assert.Equal(suite.T(), models.AlertCategoryExceeded, alerts[1].Kind)
}
