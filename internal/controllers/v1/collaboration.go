package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/httputil"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/notify"
)

// RegisterCollaborationRoutes registers the routes for collaborations
// with the RouterGroup that is passed.
func RegisterCollaborationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCollaborationList)
		r.GET("", GetCollaborations)
		r.POST("", CreateCollaboration)
	}

	// Collaboration with ID
	{
		r.OPTIONS("/:id", OptionsCollaborationDetail)
		r.GET("/:id", GetCollaboration)
		r.PATCH("/:id", RespondCollaboration)
		r.DELETE("/:id", DeleteCollaboration)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Collaborations
// @Success		204
// @Router			/v1/collaborations [options]
func OptionsCollaborationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Collaborations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/collaborations/{id} [options]
func OptionsCollaborationDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Collaboration{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Invite a collaborator
// @Description	Invites another user to collaborate on a resource. Only the owner of the resource can invite.
// @Tags			Collaborations
// @Accept			json
// @Produce		json
// @Success		201				{object}	CollaborationResponse
// @Failure		400				{object}	CollaborationResponse
// @Failure		401				{object}	CollaborationResponse
// @Failure		403				{object}	CollaborationResponse
// @Failure		404				{object}	CollaborationResponse
// @Failure		500				{object}	CollaborationResponse
// @Param			collaboration	body		CollaborationEditable	true	"Collaboration"
// @Router			/v1/collaborations [post]
func CreateCollaboration(c *gin.Context) {
	var editable CollaborationEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CollaborationResponse{
			Error: &s,
		})
		return
	}

	store, ok := registry[editable.EntityType]
	if !ok {
		s := models.ErrCollaborationEntityTypeInvalid.Error()
		c.JSON(http.StatusBadRequest, CollaborationResponse{
			Error: &s,
		})
		return
	}

	resource, err := store.Get(editable.EntityID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CollaborationResponse{
			Error: &s,
		})
		return
	}

	// Inviting is reserved for the owner, a collaborator with admin
	// permission can not grant access to others.
	actor := currentUser(c)
	if resource.Owner() != actor.Email {
		c.JSON(http.StatusForbidden, CollaborationResponse{
			Error: &permissionDeniedMessage,
		})
		return
	}

	collaboration := editable.model(actor.Email)

	err = models.DB.Create(&collaboration).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CollaborationResponse{
			Error: &s,
		})
		return
	}

	notify.Invitation(collaboration.CollaboratorEmail, actor.FullName, collaboration.EntityType, entityLabel(resource))

	data := newCollaboration(c, collaboration)
	c.JSON(http.StatusCreated, CollaborationResponse{Data: &data})
}

// @Summary		List collaborations
// @Description	Returns all collaborations the requesting user is part of, as owner or as collaborator
// @Tags			Collaborations
// @Produce		json
// @Success		200	{object}	CollaborationListResponse
// @Failure		401	{object}	CollaborationListResponse
// @Failure		500	{object}	CollaborationListResponse
// @Router			/v1/collaborations [get]
// @Param			status	query	string	false	"Filter by status"	Enums(pending, accepted, rejected)
// @Param			role	query	string	false	"Filter by role"	Enums(owner, collaborator)
func GetCollaborations(c *gin.Context) {
	var filter CollaborationQueryFilter
	_ = c.Bind(&filter)

	actor := currentUser(c)

	query := models.DB.Where("owner_email = ? OR collaborator_email = ?", actor.Email, actor.Email)

	switch filter.Role {
	case "owner":
		query = models.DB.Where("owner_email = ?", actor.Email)
	case "collaborator":
		query = models.DB.Where("collaborator_email = ?", actor.Email)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var collaborations []models.Collaboration
	err := query.Order("created_at DESC").Find(&collaborations).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CollaborationListResponse{
			Error: &s,
		})
		return
	}

	apiResources := make([]Collaboration, 0, len(collaborations))
	for _, collaboration := range collaborations {
		apiResources = append(apiResources, newCollaboration(c, collaboration))
	}

	c.JSON(http.StatusOK, CollaborationListResponse{
		Data: apiResources,
	})
}

// @Summary		Get collaboration
// @Description	Returns a specific collaboration. Only the owner and the collaborator can see it.
// @Tags			Collaborations
// @Produce		json
// @Success		200	{object}	CollaborationResponse
// @Failure		400	{object}	CollaborationResponse
// @Failure		403	{object}	CollaborationResponse
// @Failure		404	{object}	CollaborationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/collaborations/{id} [get]
func GetCollaboration(c *gin.Context) {
	collaboration, ok := fetchCollaboration(c)
	if !ok {
		return
	}

	actor := currentUser(c)
	if collaboration.OwnerEmail != actor.Email && collaboration.CollaboratorEmail != actor.Email {
		c.JSON(http.StatusForbidden, CollaborationResponse{
			Error: &permissionDeniedMessage,
		})
		return
	}

	data := newCollaboration(c, collaboration)
	c.JSON(http.StatusOK, CollaborationResponse{Data: &data})
}

// @Summary		Answer an invitation
// @Description	Accepts or rejects a pending invitation. Only the invited collaborator can answer, and only once.
// @Tags			Collaborations
// @Accept			json
// @Produce		json
// @Success		200		{object}	CollaborationResponse
// @Failure		400		{object}	CollaborationResponse
// @Failure		403		{object}	CollaborationResponse
// @Failure		404		{object}	CollaborationResponse
// @Failure		500		{object}	CollaborationResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			answer	body		CollaborationAnswer	true	"Answer"
// @Router			/v1/collaborations/{id} [patch]
func RespondCollaboration(c *gin.Context) {
	collaboration, ok := fetchCollaboration(c)
	if !ok {
		return
	}

	var answer CollaborationAnswer
	err := httputil.BindData(c, &answer)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CollaborationResponse{
			Error: &s,
		})
		return
	}

	if answer.Status != models.CollaborationAccepted && answer.Status != models.CollaborationRejected {
		s := models.ErrCollaborationStatusInvalid.Error()
		c.JSON(http.StatusBadRequest, CollaborationResponse{
			Error: &s,
		})
		return
	}

	actor := currentUser(c)
	if collaboration.CollaboratorEmail != actor.Email {
		c.JSON(http.StatusForbidden, CollaborationResponse{
			Error: &permissionDeniedMessage,
		})
		return
	}

	if collaboration.Status != models.CollaborationPending {
		s := models.ErrCollaborationResolved.Error()
		c.JSON(http.StatusBadRequest, CollaborationResponse{
			Error: &s,
		})
		return
	}

	collaboration.Status = answer.Status
	err = models.DB.Model(&collaboration).Select("Status").Updates(collaboration).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CollaborationResponse{
			Error: &s,
		})
		return
	}

	notify.InvitationAnswered(collaboration.OwnerEmail, collaboration.CollaboratorEmail, collaboration.Status)

	data := newCollaboration(c, collaboration)
	c.JSON(http.StatusOK, CollaborationResponse{Data: &data})
}

// @Summary		Revoke a collaboration
// @Description	Deletes a collaboration, revoking the grant. Only the owner can revoke, at any time and terminally.
// @Tags			Collaborations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/collaborations/{id} [delete]
func DeleteCollaboration(c *gin.Context) {
	collaboration, ok := fetchCollaboration(c)
	if !ok {
		return
	}

	actor := currentUser(c)
	if collaboration.OwnerEmail != actor.Email {
		c.JSON(http.StatusForbidden, httpError{
			Error: permissionDeniedMessage,
		})
		return
	}

	err := models.DB.Delete(&collaboration).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func fetchCollaboration(c *gin.Context) (models.Collaboration, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CollaborationResponse{
			Error: &s,
		})
		return models.Collaboration{}, false
	}

	var collaboration models.Collaboration
	err = models.DB.First(&collaboration, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CollaborationResponse{
			Error: &s,
		})
		return models.Collaboration{}, false
	}

	return collaboration, true
}

// entityLabel returns the user-facing name of a shareable resource for
// notification messages.
func entityLabel(resource models.OwnedResource) string {
	switch r := resource.(type) {
	case models.Budget:
		return r.Name
	case models.Goal:
		return r.Title
	case models.Expense:
		return r.Title
	case models.Income:
		return r.Title
	}

	return resource.ResourceID().String()
}
