package models_test

import (
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestIncomeInvalid() {
	income := models.Income{Title: "Nothing", Date: types.NewDate(2024, 5, 1)}

	err := models.DB.Create(&income).Error
	assert.ErrorIs(suite.T(), err, models.ErrIncomeAmountNotPositive)
}

func (suite *TestSuiteStandard) TestIncomeOwner() {
	income := suite.createTestIncome(models.Income{})

	assert.Equal(suite.T(), "morre@example.com", income.Owner())
	assert.Equal(suite.T(), income.ID, income.ResourceID())
	assert.Equal(suite.T(), models.EntityTypeIncome, income.Entity())
}
