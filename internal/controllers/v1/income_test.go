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

func (suite *TestSuiteStandard) createTestIncome(editable v1.IncomeEditable) v1.Income {
	if editable.Title == "" {
		editable.Title = "Salary"
	}

	if editable.Amount.IsZero() {
		editable.Amount = decimal.NewFromInt(2800)
	}

	if editable.Date.IsZero() {
		editable.Date = types.NewDate(2024, 5, 1)
	}

	body := jsonBody(suite, []v1.IncomeEditable{editable})

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/incomes", body)
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &recorder)

	var response v1.IncomeCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return *response.Data[0].Data
}

func (suite *TestSuiteStandard) TestIncomeCreate() {
	income := suite.createTestIncome(v1.IncomeEditable{
		Category:    "Work",
		IsRecurring: true,
		Frequency:   "monthly",
	})

	assert.Equal(suite.T(), "Salary", income.Title)
	assert.Equal(suite.T(), test.Identity, income.CreatedBy)
	assert.True(suite.T(), income.IsRecurring)
}

func (suite *TestSuiteStandard) TestIncomeCreateInvalid() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/incomes", `[{ "title": "" }]`)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestIncomeListFilter() {
	suite.createTestIncome(v1.IncomeEditable{Category: "Work"})
	suite.createTestIncome(v1.IncomeEditable{Title: "Dividends", Category: "Investments", Date: types.NewDate(2024, 6, 1)})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/incomes", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 2)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/incomes?month=2024-06", "")
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Dividends", response.Data[0].Title)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/incomes?category=Work", "")
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestIncomeUpdate() {
	income := suite.createTestIncome(v1.IncomeEditable{})

	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/incomes/%s", income.ID), `{ "amount": 3000 }`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.IncomeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(3000)))
	assert.Equal(suite.T(), "Salary", response.Data.Title)
}

// Collaborators need edit permission to update and admin permission to delete.
func (suite *TestSuiteStandard) TestIncomePermissions() {
	income := suite.createTestIncome(v1.IncomeEditable{})
	collaboration := suite.inviteTestCollaborator(models.EntityTypeIncome, income.ID, "ina@example.com", models.PermissionEdit)

	// Without acceptance there is no access
	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/incomes/%s", income.ID), "", as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &recorder)

	answer := jsonBody(suite, v1.CollaborationAnswer{Status: models.CollaborationAccepted})
	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/collaborations/%s", collaboration.ID), answer, as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/incomes/%s", income.ID), `{ "category": "Work" }`, as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/incomes/%s", income.ID), "", as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &recorder)
}

func (suite *TestSuiteStandard) TestIncomeDelete() {
	income := suite.createTestIncome(v1.IncomeEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/incomes/%s", income.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/incomes/%s", income.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)
}
