package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/types"
)

// CollaborationEditable represents the values for a collaboration
// invitation that can be set by the inviting user.
type CollaborationEditable struct {
	EntityType        models.EntityType      `json:"entityType" example:"budget"`
	EntityID          uuid.UUID              `json:"entityId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	CollaboratorEmail string                 `json:"collaboratorEmail" example:"ina@example.com"`
	PermissionLevel   models.PermissionLevel `json:"permissionLevel" example:"edit"`
}

func (editable CollaborationEditable) model(owner string) models.Collaboration {
	return models.Collaboration{
		EntityType:        editable.EntityType,
		EntityID:          editable.EntityID,
		OwnerEmail:        owner,
		CollaboratorEmail: editable.CollaboratorEmail,
		PermissionLevel:   editable.PermissionLevel,
		Status:            models.CollaborationPending,
		InvitedDate:       types.DateOf(time.Now()),
	}
}

// CollaborationAnswer is the body for resolving a pending invitation.
type CollaborationAnswer struct {
	Status models.CollaborationStatus `json:"status" example:"accepted"`
}

type CollaborationLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/collaborations/a3796e48-f56a-492a-9d04-bcbbd80b8eb8"`
}

// Collaboration is the API representation of a collaboration grant.
type Collaboration struct {
	models.DefaultModel
	EntityType        models.EntityType          `json:"entityType" example:"budget"`
	EntityID          uuid.UUID                  `json:"entityId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	OwnerEmail        string                     `json:"ownerEmail" example:"morre@example.com"`
	CollaboratorEmail string                     `json:"collaboratorEmail" example:"ina@example.com"`
	PermissionLevel   models.PermissionLevel     `json:"permissionLevel" example:"edit"`
	Status            models.CollaborationStatus `json:"status" example:"pending"`
	InvitedDate       types.Date                 `json:"invitedDate" example:"2024-05-14"`
	Links             CollaborationLinks         `json:"links"`
}

func newCollaboration(c *gin.Context, model models.Collaboration) Collaboration {
	url := c.GetString(string(models.ContextURL))

	return Collaboration{
		DefaultModel:      model.DefaultModel,
		EntityType:        model.EntityType,
		EntityID:          model.EntityID,
		OwnerEmail:        model.OwnerEmail,
		CollaboratorEmail: model.CollaboratorEmail,
		PermissionLevel:   model.PermissionLevel,
		Status:            model.Status,
		InvitedDate:       model.InvitedDate,
		Links: CollaborationLinks{
			Self: fmt.Sprintf("%s/v1/collaborations/%s", url, model.ID),
		},
	}
}

type CollaborationListResponse struct {
	Data  []Collaboration `json:"data"`
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type CollaborationResponse struct {
	Data  *Collaboration `json:"data"`
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type CollaborationQueryFilter struct {
	Status string `form:"status"`
	Role   string `form:"role"`
}
