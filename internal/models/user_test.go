package models_test

import (
	"github.com/planify/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := suite.createTestUser(models.User{Email: " Morre@Example.com "})
	assert.Equal(suite.T(), "morre@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	suite.createTestUser(models.User{})

	duplicate := models.User{Email: "MORRE@example.com"}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrUserEmailNotUnique)
}
