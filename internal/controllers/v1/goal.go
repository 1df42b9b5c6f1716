package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/httputil"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/notify"
	"github.com/shopspring/decimal"
)

// Progress milestones that trigger a notification when crossed, in percent.
var goalMilestones = []int64{25, 50, 75, 100}

// RegisterGoalRoutes registers the routes for savings goals with
// the RouterGroup that is passed.
func RegisterGoalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGoalList)
		r.GET("", GetGoals)
		r.POST("", CreateGoals)
	}

	// Goal with ID
	{
		r.OPTIONS("/:id", OptionsGoalDetail)
		r.GET("/:id", GetGoal)
		r.PATCH("/:id", UpdateGoal)
		r.DELETE("/:id", DeleteGoal)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Router			/v1/goals [options]
func OptionsGoalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [options]
func OptionsGoalDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Goal{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create goals
// @Description	Creates new savings goals owned by the requesting user
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Success		201		{object}	GoalCreateResponse
// @Failure		400		{object}	GoalCreateResponse
// @Failure		401		{object}	GoalCreateResponse
// @Failure		500		{object}	GoalCreateResponse
// @Param			goals	body		[]GoalEditable	true	"Goals"
// @Router			/v1/goals [post]
func CreateGoals(c *gin.Context) {
	var editables []GoalEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalCreateResponse{
			Error: &e,
		})
		return
	}

	actor := currentUser(c)

	responseStatus := http.StatusCreated
	r := GoalCreateResponse{}

	for _, editable := range editables {
		goal := editable.model(actor.Email)

		err := models.DB.Create(&goal).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		data := newGoal(c, goal)
		r.Data = append(r.Data, GoalResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// @Summary		List goals
// @Description	Returns all savings goals the requesting user owns or that are shared with them
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalListResponse
// @Failure		401	{object}	GoalListResponse
// @Failure		500	{object}	GoalListResponse
// @Router			/v1/goals [get]
// @Param			category	query	string	false	"Filter by category"
func GetGoals(c *gin.Context) {
	var filter GoalQueryFilter
	_ = c.Bind(&filter)

	actor := currentUser(c)

	entries, err := registry.ListUserEntities(actor.Email, models.EntityTypeGoal)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalListResponse{
			Error: &s,
		})
		return
	}

	apiResources := make([]Goal, 0, len(entries))
	for _, entry := range entries {
		goal := entry.Resource.(models.Goal)

		if filter.Category != "" && goal.Category != filter.Category {
			continue
		}

		apiResource := newGoal(c, goal)
		apiResource.Shared = entry.Shared
		apiResource.Permission = entry.Permission
		apiResources = append(apiResources, apiResource)
	}

	c.JSON(http.StatusOK, GoalListResponse{
		Data: apiResources,
	})
}

// @Summary		Get goal
// @Description	Returns a specific savings goal
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalResponse
// @Failure		400	{object}	GoalResponse
// @Failure		403	{object}	GoalResponse
// @Failure		404	{object}	GoalResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [get]
func GetGoal(c *gin.Context) {
	goal, ok := fetchGoal(c, models.PermissionView)
	if !ok {
		return
	}

	apiResource := newGoal(c, goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &apiResource})
}

// @Summary		Update goal
// @Description	Update an existing savings goal. Requires edit permission.
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Success		200		{object}	GoalResponse
// @Failure		400		{object}	GoalResponse
// @Failure		403		{object}	GoalResponse
// @Failure		404		{object}	GoalResponse
// @Failure		500		{object}	GoalResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			goal	body		GoalEditable	true	"Goal"
// @Router			/v1/goals/{id} [patch]
func UpdateGoal(c *gin.Context) {
	goal, ok := fetchGoal(c, models.PermissionView)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GoalEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	var data GoalEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	previousMilestone := milestoneReached(goal)

	actor := currentUser(c)
	err = registry.SecureOperation(actor.Email, models.EntityTypeGoal, goal.ID, models.PermissionEdit, func() error {
		return models.DB.Model(&goal).Select("", updateFields...).Updates(data.model(goal.CreatedBy)).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.First(&goal, "id = ?", goal.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	if milestone := milestoneReached(goal); milestone > previousMilestone {
		notifyGoalProgress(actor, goal, milestone)
	}

	apiResource := newGoal(c, goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &apiResource})
}

// @Summary		Delete goal
// @Description	Deletes a savings goal. Requires admin permission.
// @Tags			Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [delete]
func DeleteGoal(c *gin.Context) {
	goal, ok := fetchGoal(c, models.PermissionView)
	if !ok {
		return
	}

	actor := currentUser(c)
	err := registry.SecureOperation(actor.Email, models.EntityTypeGoal, goal.ID, models.PermissionAdmin, func() error {
		return models.DB.Delete(&goal).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func fetchGoal(c *gin.Context, required models.PermissionLevel) (models.Goal, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return models.Goal{}, false
	}

	var goal models.Goal
	err = models.DB.First(&goal, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return models.Goal{}, false
	}

	actor := currentUser(c)
	granted, err := registry.CanAccess(actor.Email, models.EntityTypeGoal, goal.ID, required)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return models.Goal{}, false
	}

	if !granted {
		c.JSON(http.StatusForbidden, GoalResponse{
			Error: &permissionDeniedMessage,
		})
		return models.Goal{}, false
	}

	return goal, true
}

// milestoneReached returns the highest progress milestone the goal has
// reached, or 0 when it is below the first one.
func milestoneReached(goal models.Goal) int64 {
	progress := goal.Progress()

	var reached int64
	for _, milestone := range goalMilestones {
		if progress.GreaterThanOrEqual(decimal.NewFromInt(milestone)) {
			reached = milestone
		}
	}

	return reached
}

// notifyGoalProgress informs the goal owner and all accepted
// collaborators, except the acting user, that a milestone was reached.
func notifyGoalProgress(actor models.User, goal models.Goal, milestone int64) {
	recipients := map[string]bool{goal.CreatedBy: true}

	var grants []models.Collaboration
	err := models.DB.Where(&models.Collaboration{
		EntityType: models.EntityTypeGoal,
		EntityID:   goal.ID,
		Status:     models.CollaborationAccepted,
	}).Find(&grants).Error
	if err == nil {
		for _, grant := range grants {
			recipients[grant.CollaboratorEmail] = true
		}
	}

	for recipient := range recipients {
		if recipient == actor.Email {
			continue
		}

		notify.GoalProgress(recipient, goal.Title, milestone)
	}
}
