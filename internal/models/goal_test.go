package models_test

import (
	"github.com/planify/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGoalInvalid() {
	goal := models.Goal{Title: "No target"}

	err := models.DB.Create(&goal).Error
	assert.ErrorIs(suite.T(), err, models.ErrGoalAmountNotPositive)
}

func (suite *TestSuiteStandard) TestGoalProgress() {
	tests := []struct {
		target  int64
		current int64
		want    int64
	}{
		{5000, 0, 0},
		{5000, 1250, 25},
		{5000, 5000, 100},
		{5000, 6000, 120},
	}

	for _, tt := range tests {
		goal := models.Goal{
			TargetAmount:  decimal.NewFromInt(tt.target),
			CurrentAmount: decimal.NewFromInt(tt.current),
		}

		assert.True(suite.T(), goal.Progress().Equal(decimal.NewFromInt(tt.want)),
			"progress for %d/%d is %s, want %d", tt.current, tt.target, goal.Progress(), tt.want)
	}
}

func (suite *TestSuiteStandard) TestGoalProgressZeroTarget() {
	goal := models.Goal{CurrentAmount: decimal.NewFromInt(100)}
	assert.True(suite.T(), goal.Progress().IsZero())
}

func (suite *TestSuiteStandard) TestGoalOwner() {
	goal := suite.createTestGoal(models.Goal{})

	assert.Equal(suite.T(), "morre@example.com", goal.Owner())
	assert.Equal(suite.T(), goal.ID, goal.ResourceID())
	assert.Equal(suite.T(), models.EntityTypeGoal, goal.Entity())
}
