package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/planify/backend/internal/controllers/v1"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestNotificationList() {
	budget := suite.createTestBudget(v1.BudgetEditable{})
	suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "ina@example.com", models.PermissionView)
	suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "sam@example.com", models.PermissionView)

	// Accepting the invitation notifies the owner
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/collaborations", "", as("ina@example.com"))
	var collaborations v1.CollaborationListResponse
	test.DecodeResponse(suite.T(), &recorder, &collaborations)

	answer := jsonBody(suite, v1.CollaborationAnswer{Status: models.CollaborationAccepted})
	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/collaborations/%s", collaborations.Data[0].ID), answer, as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/notifications", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), int64(1), response.Unread)
	assert.Equal(suite.T(), models.NotificationInvite, response.Data[0].Type)

	// Notifications of other users are not visible
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/notifications", "", as("sam@example.com"))
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestNotificationRead() {
	budget := suite.createTestBudget(v1.BudgetEditable{})
	suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "ina@example.com", models.PermissionView)

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/notifications", "", as("ina@example.com"))
	var list v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	assert.Len(suite.T(), list.Data, 1)
	assert.Equal(suite.T(), int64(1), list.Unread)

	notification := list.Data[0]

	// Only the recipient can mark it as read
	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/notifications/%s/read", notification.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &recorder)

	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/notifications/%s/read", notification.ID), "", as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.NotificationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.IsRead)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/notifications?unread=true", "", as("ina@example.com"))
	test.DecodeResponse(suite.T(), &recorder, &list)
	assert.Empty(suite.T(), list.Data)
	assert.Equal(suite.T(), int64(0), list.Unread)
}

func (suite *TestSuiteStandard) TestNotificationReadNotFound() {
	recorder := test.Request(suite.T(), http.MethodPatch, "/v1/notifications/notAnID/read", "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)

	recorder = test.Request(suite.T(), http.MethodPatch, "/v1/notifications/3309f23a-6d35-4a93-a481-ad7d8ba992fa/read", "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)
}
