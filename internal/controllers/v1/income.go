package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/httputil"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/types"
)

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsIncomeList)
		r.GET("", GetIncomes)
		r.POST("", CreateIncomes)
	}

	// Income with ID
	{
		r.OPTIONS("/:id", OptionsIncomeDetail)
		r.GET("/:id", GetIncome)
		r.PATCH("/:id", UpdateIncome)
		r.DELETE("/:id", DeleteIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Router			/v1/incomes [options]
func OptionsIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [options]
func OptionsIncomeDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Income{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create incomes
// @Description	Creates new incomes owned by the requesting user
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		201		{object}	IncomeCreateResponse
// @Failure		400		{object}	IncomeCreateResponse
// @Failure		401		{object}	IncomeCreateResponse
// @Failure		500		{object}	IncomeCreateResponse
// @Param			incomes	body		[]IncomeEditable	true	"Incomes"
// @Router			/v1/incomes [post]
func CreateIncomes(c *gin.Context) {
	var editables []IncomeEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeCreateResponse{
			Error: &e,
		})
		return
	}

	actor := currentUser(c)

	responseStatus := http.StatusCreated
	r := IncomeCreateResponse{}

	for _, editable := range editables {
		income := editable.model(actor.Email)

		err := models.DB.Create(&income).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		data := newIncome(c, income)
		r.Data = append(r.Data, IncomeResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// @Summary		List incomes
// @Description	Returns all incomes the requesting user owns or that are shared with them
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeListResponse
// @Failure		401	{object}	IncomeListResponse
// @Failure		500	{object}	IncomeListResponse
// @Router			/v1/incomes [get]
// @Param			month		query	string	false	"Filter by month in YYYY-MM format"
// @Param			category	query	string	false	"Filter by category"
func GetIncomes(c *gin.Context) {
	var filter IncomeQueryFilter
	_ = c.Bind(&filter)

	var month types.Month
	if filter.Month != "" {
		var err error
		month, err = types.ParseMonth(filter.Month)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, IncomeListResponse{
				Error: &s,
			})
			return
		}
	}

	actor := currentUser(c)

	entries, err := registry.ListUserEntities(actor.Email, models.EntityTypeIncome)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{
			Error: &s,
		})
		return
	}

	apiResources := make([]Income, 0, len(entries))
	for _, entry := range entries {
		income := entry.Resource.(models.Income)

		if !month.IsZero() && !income.Date.Month().Equal(month) {
			continue
		}
		if filter.Category != "" && income.Category != filter.Category {
			continue
		}

		apiResource := newIncome(c, income)
		apiResource.Shared = entry.Shared
		apiResource.Permission = entry.Permission
		apiResources = append(apiResources, apiResource)
	}

	c.JSON(http.StatusOK, IncomeListResponse{
		Data: apiResources,
	})
}

// @Summary		Get income
// @Description	Returns a specific income
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeResponse
// @Failure		400	{object}	IncomeResponse
// @Failure		403	{object}	IncomeResponse
// @Failure		404	{object}	IncomeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [get]
func GetIncome(c *gin.Context) {
	income, ok := fetchIncome(c, models.PermissionView)
	if !ok {
		return
	}

	apiResource := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &apiResource})
}

// @Summary		Update income
// @Description	Update an existing income. Requires edit permission.
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		200		{object}	IncomeResponse
// @Failure		400		{object}	IncomeResponse
// @Failure		403		{object}	IncomeResponse
// @Failure		404		{object}	IncomeResponse
// @Failure		500		{object}	IncomeResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			income	body		IncomeEditable	true	"Income"
// @Router			/v1/incomes/{id} [patch]
func UpdateIncome(c *gin.Context) {
	income, ok := fetchIncome(c, models.PermissionView)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, IncomeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	var data IncomeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	actor := currentUser(c)
	err = registry.SecureOperation(actor.Email, models.EntityTypeIncome, income.ID, models.PermissionEdit, func() error {
		return models.DB.Model(&income).Select("", updateFields...).Updates(data.model(income.CreatedBy)).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	apiResource := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &apiResource})
}

// @Summary		Delete income
// @Description	Deletes an income. Requires admin permission.
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [delete]
func DeleteIncome(c *gin.Context) {
	income, ok := fetchIncome(c, models.PermissionView)
	if !ok {
		return
	}

	actor := currentUser(c)
	err := registry.SecureOperation(actor.Email, models.EntityTypeIncome, income.ID, models.PermissionAdmin, func() error {
		return models.DB.Delete(&income).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func fetchIncome(c *gin.Context, required models.PermissionLevel) (models.Income, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return models.Income{}, false
	}

	var income models.Income
	err = models.DB.First(&income, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return models.Income{}, false
	}

	actor := currentUser(c)
	granted, err := registry.CanAccess(actor.Email, models.EntityTypeIncome, income.ID, required)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return models.Income{}, false
	}

	if !granted {
		c.JSON(http.StatusForbidden, IncomeResponse{
			Error: &permissionDeniedMessage,
		})
		return models.Income{}, false
	}

	return income, true
}
