package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/httputil"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/types"
	pf_uuid "github.com/planify/backend/internal/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", CreateBudgets)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.GET("/:id/alerts", GetBudgetAlerts)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Budget{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create budgets
// @Description	Creates new budgets owned by the requesting user
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetCreateResponse
// @Failure		400		{object}	BudgetCreateResponse
// @Failure		401		{object}	BudgetCreateResponse
// @Failure		500		{object}	BudgetCreateResponse
// @Param			budgets	body		[]BudgetEditable	true	"Budgets"
// @Router			/v1/budgets [post]
func CreateBudgets(c *gin.Context) {
	var editables []BudgetEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetCreateResponse{
			Error: &e,
		})
		return
	}

	actor := currentUser(c)

	// The final http status. Will be modified when errors occur
	responseStatus := http.StatusCreated
	r := BudgetCreateResponse{}

	for _, editable := range editables {
		budget := editable.model(actor.Email)

		err := models.DB.Create(&budget).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		// The month may already have expenses, bring the caches up to date
		_, err = models.RecomputeSpending(budget.CreatedBy, budget.Month)
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		err = models.DB.Preload("Categories").First(&budget, "id = ?", budget.ID).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		data := newBudget(c, budget)
		r.Data = append(r.Data, BudgetResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// @Summary		List budgets
// @Description	Returns all budgets the requesting user owns or that are shared with them
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		401	{object}	BudgetListResponse
// @Failure		500	{object}	BudgetListResponse
// @Router			/v1/budgets [get]
// @Param			month	query	string	false	"Filter by month in YYYY-MM format"
// @Param			name	query	string	false	"Filter by name"
// @Param			id		query	string	false	"Filter by ID"
func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	_ = c.Bind(&filter)

	var month types.Month
	if filter.Month != "" {
		var err error
		month, err = types.ParseMonth(filter.Month)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, BudgetListResponse{
				Error: &s,
			})
			return
		}
	}

	actor := currentUser(c)

	entries, err := registry.ListUserEntities(actor.Email, models.EntityTypeBudget)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	apiResources := make([]Budget, 0, len(entries))
	for _, entry := range entries {
		budget := entry.Resource.(models.Budget)

		if !month.IsZero() && !budget.Month.Equal(month) {
			continue
		}
		if filter.Name != "" && budget.Name != filter.Name {
			continue
		}
		if filter.BudgetID != pf_uuid.Nil && budget.ID != filter.BudgetID.UUID {
			continue
		}

		apiResource := newBudget(c, budget)
		apiResource.Shared = entry.Shared
		apiResource.Permission = entry.Permission
		apiResources = append(apiResources, apiResource)
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: apiResources,
	})
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		403	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	budget, ok := fetchBudget(c, models.PermissionView)
	if !ok {
		return
	}

	apiResource := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &apiResource})
}

// @Summary		Budget alerts
// @Description	Evaluates the spending alerts for a specific budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetAlertsResponse
// @Failure		400	{object}	BudgetAlertsResponse
// @Failure		403	{object}	BudgetAlertsResponse
// @Failure		404	{object}	BudgetAlertsResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/alerts [get]
func GetBudgetAlerts(c *gin.Context) {
	budget, ok := fetchBudget(c, models.PermissionView)
	if !ok {
		return
	}

	alerts := budget.Alerts()
	if alerts == nil {
		alerts = []models.BudgetAlert{}
	}

	c.JSON(http.StatusOK, BudgetAlertsResponse{Data: alerts})
}

// @Summary		Update budget
// @Description	Update an existing budget. Requires edit permission. Spending caches can not be set, they are derived from the expense ledger.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		403		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	budget, ok := fetchBudget(c, models.PermissionView)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	var data BudgetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	actor := currentUser(c)
	err = registry.SecureOperation(actor.Email, models.EntityTypeBudget, budget.ID, models.PermissionEdit, func() error {
		err := models.DB.Model(&budget).Select("", updateFieldsWithoutCategories(updateFields)...).Updates(data.model(budget.CreatedBy)).Error
		if err != nil {
			return err
		}

		if slices.Contains(updateFields, any("Categories")) {
			err = replaceCategories(&budget, data.Categories)
			if err != nil {
				return err
			}
		}

		// The total or the category set may have changed
		_, err = models.RecomputeSpending(budget.CreatedBy, budget.Month)
		return err
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Preload("Categories").First(&budget, "id = ?", budget.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	apiResource := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &apiResource})
}

// @Summary		Delete budget
// @Description	Deletes a budget. Requires admin permission.
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	budget, ok := fetchBudget(c, models.PermissionView)
	if !ok {
		return
	}

	actor := currentUser(c)
	err := registry.SecureOperation(actor.Email, models.EntityTypeBudget, budget.ID, models.PermissionAdmin, func() error {
		return models.DB.Delete(&budget).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// fetchBudget loads the budget from the URI and checks the permission of
// the requesting user. It writes the error response itself when it
// returns ok == false.
func fetchBudget(c *gin.Context, required models.PermissionLevel) (models.Budget, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return models.Budget{}, false
	}

	var budget models.Budget
	err = models.DB.Preload("Categories").First(&budget, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return models.Budget{}, false
	}

	actor := currentUser(c)
	granted, err := registry.CanAccess(actor.Email, models.EntityTypeBudget, budget.ID, required)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return models.Budget{}, false
	}

	if !granted {
		c.JSON(http.StatusForbidden, BudgetResponse{
			Error: &permissionDeniedMessage,
		})
		return models.Budget{}, false
	}

	return budget, true
}

// updateFieldsWithoutCategories removes the association field from the
// field list for gorm Updates, associations are replaced separately.
func updateFieldsWithoutCategories(fields []any) []any {
	out := make([]any, 0, len(fields))
	for _, field := range fields {
		if field == any("Categories") {
			continue
		}
		out = append(out, field)
	}
	return out
}

// replaceCategories reconciles the stored category lines with the
// requested ones. Identity is the name: existing lines keep their ID and
// Spent cache, removed lines are deleted, new lines start with zero
// spending. Positions follow the request order.
func replaceCategories(budget *models.Budget, editables []BudgetCategoryEditable) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		existing := make(map[string]models.BudgetCategory, len(budget.Categories))
		for _, category := range budget.Categories {
			existing[category.Name] = category
		}

		keep := make(map[string]bool, len(editables))
		for i, editable := range editables {
			keep[editable.Name] = true

			if category, ok := existing[editable.Name]; ok {
				category.Limit = editable.Limit
				category.Position = uint(i)
				err := tx.Model(&category).Select("Limit", "Position").Updates(category).Error
				if err != nil {
					return err
				}
				continue
			}

			category := models.BudgetCategory{
				BudgetID: budget.ID,
				Name:     editable.Name,
				Limit:    editable.Limit,
				Position: uint(i),
			}
			err := tx.Create(&category).Error
			if err != nil {
				return err
			}
		}

		for name, category := range existing {
			if keep[name] {
				continue
			}

			err := tx.Delete(&category).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

var permissionDeniedMessage = "you do not have permission for this operation"
