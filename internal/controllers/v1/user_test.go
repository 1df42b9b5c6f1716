package v1_test

import (
	"net/http"

	v1 "github.com/planify/backend/internal/controllers/v1"
	"github.com/planify/backend/internal/test"
	"github.com/stretchr/testify/assert"
)

// Users are provisioned on their first request.
func (suite *TestSuiteStandard) TestUserProvisioning() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/user", "", map[string]string{
		"X-User-Email": "Ina@Example.com",
		"X-User-Name":  "Ina Inaszewska",
	})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Equal(suite.T(), "ina@example.com", response.Data.Email)
	assert.Equal(suite.T(), "Ina Inaszewska", response.Data.FullName)
	assert.False(suite.T(), response.Data.Onboarded)

	// The same email resolves to the same user
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/user", "", as("ina@example.com"))
	var second v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &second)
	assert.Equal(suite.T(), response.Data.ID, second.Data.ID)
}

func (suite *TestSuiteStandard) TestUserUpdate() {
	recorder := test.Request(suite.T(), http.MethodPatch, "/v1/user", `{ "fullName": "Morre Meyer", "onboarded": true }`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Morre Meyer", response.Data.FullName)
	assert.True(suite.T(), response.Data.Onboarded)

	// Fields not in the body are kept
	recorder = test.Request(suite.T(), http.MethodPatch, "/v1/user", `{ "fullName": "Morre" }`)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Morre", response.Data.FullName)
	assert.True(suite.T(), response.Data.Onboarded)
}

func (suite *TestSuiteStandard) TestUserUpdateInvalidBody() {
	recorder := test.Request(suite.T(), http.MethodPatch, "/v1/user", `{ invalid :}`)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

// Every endpoint under /v1 requires the authentication headers.
func (suite *TestSuiteStandard) TestUserUnauthenticated() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/user", "", map[string]string{"X-User-Email": ""})
	test.AssertHTTPStatus(suite.T(), http.StatusUnauthorized, &recorder)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/budgets", "", map[string]string{"X-User-Email": ""})
	test.AssertHTTPStatus(suite.T(), http.StatusUnauthorized, &recorder)
}
