package v1_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	v1 "github.com/planify/backend/internal/controllers/v1"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) inviteTestCollaborator(entityType models.EntityType, entityID uuid.UUID, collaborator string, level models.PermissionLevel) v1.Collaboration {
	return suite.createTestCollaboration(v1.CollaborationEditable{
		EntityType:        entityType,
		EntityID:          entityID,
		CollaboratorEmail: collaborator,
		PermissionLevel:   level,
	})
}

func (suite *TestSuiteStandard) TestCollaborationInvite() {
	budget := suite.createTestBudget(v1.BudgetEditable{})

	collaboration := suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "ina@example.com", models.PermissionView)

	assert.Equal(suite.T(), models.CollaborationPending, collaboration.Status)
	assert.Equal(suite.T(), test.Identity, collaboration.OwnerEmail)

	// The collaborator is notified about the invitation
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/notifications", "", as("ina@example.com"))
	var notifications v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &recorder, &notifications)
	assert.Len(suite.T(), notifications.Data, 1)
	assert.Equal(suite.T(), models.NotificationInvite, notifications.Data[0].Type)
}

// Only the owner can invite, even an admin collaborator cannot.
func (suite *TestSuiteStandard) TestCollaborationInviteNotOwner() {
	budget := suite.createTestBudget(v1.BudgetEditable{})

	body := jsonBody(suite, v1.CollaborationEditable{
		EntityType:        models.EntityTypeBudget,
		EntityID:          budget.ID,
		CollaboratorEmail: "sam@example.com",
		PermissionLevel:   models.PermissionView,
	})

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/collaborations", body, as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &recorder)
}

func (suite *TestSuiteStandard) TestCollaborationInviteMissingResource() {
	body := jsonBody(suite, v1.CollaborationEditable{
		EntityType:        models.EntityTypeBudget,
		EntityID:          uuid.New(),
		CollaboratorEmail: "ina@example.com",
		PermissionLevel:   models.PermissionView,
	})

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/collaborations", body)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)
}

func (suite *TestSuiteStandard) TestCollaborationAccept() {
	budget := suite.createTestBudget(v1.BudgetEditable{})
	collaboration := suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "ina@example.com", models.PermissionView)

	answer := jsonBody(suite, v1.CollaborationAnswer{Status: models.CollaborationAccepted})
	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/collaborations/%s", collaboration.ID), answer, as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.CollaborationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.CollaborationAccepted, response.Data.Status)

	// The owner is notified about the answer
	r := test.Request(suite.T(), http.MethodGet, "/v1/notifications", "")
	var notifications v1.NotificationListResponse
	test.DecodeResponse(suite.T(), &r, &notifications)
	assert.Len(suite.T(), notifications.Data, 1)
}

// Only the invited collaborator can answer.
func (suite *TestSuiteStandard) TestCollaborationAnswerNotCollaborator() {
	budget := suite.createTestBudget(v1.BudgetEditable{})
	collaboration := suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "ina@example.com", models.PermissionView)

	answer := jsonBody(suite, v1.CollaborationAnswer{Status: models.CollaborationAccepted})

	// Not even the owner
	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/collaborations/%s", collaboration.ID), answer)
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &recorder)

	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/collaborations/%s", collaboration.ID), answer, as("sam@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &recorder)
}

// An invitation is answered exactly once.
func (suite *TestSuiteStandard) TestCollaborationAnswerOnce() {
	budget := suite.createTestBudget(v1.BudgetEditable{})
	collaboration := suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "ina@example.com", models.PermissionView)

	answer := jsonBody(suite, v1.CollaborationAnswer{Status: models.CollaborationRejected})
	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/collaborations/%s", collaboration.ID), answer, as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	answer = jsonBody(suite, v1.CollaborationAnswer{Status: models.CollaborationAccepted})
	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/collaborations/%s", collaboration.ID), answer, as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

// Answering back to pending is not a valid answer.
func (suite *TestSuiteStandard) TestCollaborationAnswerPending() {
	budget := suite.createTestBudget(v1.BudgetEditable{})
	collaboration := suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "ina@example.com", models.PermissionView)

	answer := jsonBody(suite, v1.CollaborationAnswer{Status: models.CollaborationPending})
	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/collaborations/%s", collaboration.ID), answer, as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

// Revoking removes access immediately and is owner-only.
func (suite *TestSuiteStandard) TestCollaborationRevoke() {
	budget := suite.createTestBudget(v1.BudgetEditable{})
	collaboration := suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "ina@example.com", models.PermissionView)

	answer := jsonBody(suite, v1.CollaborationAnswer{Status: models.CollaborationAccepted})
	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/collaborations/%s", collaboration.ID), answer, as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), "", as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	// The collaborator cannot revoke
	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/collaborations/%s", collaboration.ID), "", as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &recorder)

	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/collaborations/%s", collaboration.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), "", as("ina@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &recorder)
}

func (suite *TestSuiteStandard) TestCollaborationList() {
	budget := suite.createTestBudget(v1.BudgetEditable{})
	suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "ina@example.com", models.PermissionView)
	suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "sam@example.com", models.PermissionEdit)

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/collaborations?role=owner", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.CollaborationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 2)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/collaborations", "", as("ina@example.com"))
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/collaborations?status=accepted", "", as("ina@example.com"))
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Empty(suite.T(), response.Data)
}

// A third user cannot see a collaboration they are not part of.
func (suite *TestSuiteStandard) TestCollaborationGetDenied() {
	budget := suite.createTestBudget(v1.BudgetEditable{})
	collaboration := suite.inviteTestCollaborator(models.EntityTypeBudget, budget.ID, "ina@example.com", models.PermissionView)

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/collaborations/%s", collaboration.ID), "", as("sam@example.com"))
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &recorder)
}
