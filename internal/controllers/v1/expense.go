package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/httputil"
	"github.com/planify/backend/internal/models"
	"github.com/planify/backend/internal/notify"
	"github.com/planify/backend/internal/types"
)

// recomputeAndAlert refreshes the spending caches of the owner's budgets
// for a month and notifies the owner about alerts the refresh newly
// raised. Alerts that were already active before are not sent again.
func recomputeAndAlert(owner string, month types.Month) error {
	var before []models.Budget
	err := models.DB.Preload("Categories").
		Where(&models.Budget{CreatedBy: owner, Month: month}).
		Find(&before).Error
	if err != nil {
		return err
	}

	active := make(map[string]bool)
	for _, budget := range before {
		for _, alert := range budget.Alerts() {
			active[budget.ID.String()+"|"+string(alert.Kind)+"|"+alert.Category] = true
		}
	}

	budgets, err := models.RecomputeSpending(owner, month)
	if err != nil {
		return err
	}

	for _, budget := range budgets {
		for _, alert := range budget.Alerts() {
			if !active[budget.ID.String()+"|"+string(alert.Kind)+"|"+alert.Category] {
				notify.BudgetAlert(owner, alert)
			}
		}
	}

	return nil
}

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenseList)
		r.GET("", GetExpenses)
		r.POST("", CreateExpenses)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", GetExpense)
		r.PATCH("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Expense{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create expenses
// @Description	Creates new expenses paid by the requesting user. The amount is split equally between the payer and the users in sharedWith.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201			{object}	ExpenseCreateResponse
// @Failure		400			{object}	ExpenseCreateResponse
// @Failure		401			{object}	ExpenseCreateResponse
// @Failure		500			{object}	ExpenseCreateResponse
// @Param			expenses	body		[]ExpenseEditable	true	"Expenses"
// @Router			/v1/expenses [post]
func CreateExpenses(c *gin.Context) {
	var editables []ExpenseEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{
			Error: &e,
		})
		return
	}

	actor := currentUser(c)

	responseStatus := http.StatusCreated
	r := ExpenseCreateResponse{}

	for _, editable := range editables {
		expense := editable.model(actor.Email)

		err := models.DB.Create(&expense).Error
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		err = recomputeAndAlert(expense.CreatedBy, expense.Date.Month())
		if err != nil {
			responseStatus = r.appendError(err, responseStatus)
			continue
		}

		for _, share := range expense.SharedWith {
			notify.SharedExpense(share.Email, actor.FullName, expense.Title, expense.Amount, share.Amount)
		}

		data := newExpense(c, expense)
		r.Data = append(r.Data, ExpenseResponse{Data: &data})
	}

	c.JSON(responseStatus, r)
}

// @Summary		List expenses
// @Description	Returns all expenses the requesting user owns or that are shared with them
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseListResponse
// @Failure		401	{object}	ExpenseListResponse
// @Failure		500	{object}	ExpenseListResponse
// @Router			/v1/expenses [get]
// @Param			month		query	string	false	"Filter by month in YYYY-MM format"
// @Param			category	query	string	false	"Filter by category"
func GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	_ = c.Bind(&filter)

	var month types.Month
	if filter.Month != "" {
		var err error
		month, err = types.ParseMonth(filter.Month)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, ExpenseListResponse{
				Error: &s,
			})
			return
		}
	}

	actor := currentUser(c)

	entries, err := registry.ListUserEntities(actor.Email, models.EntityTypeExpense)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	apiResources := make([]Expense, 0, len(entries))
	for _, entry := range entries {
		expense := entry.Resource.(models.Expense)

		if !month.IsZero() && !expense.Date.Month().Equal(month) {
			continue
		}
		if filter.Category != "" && expense.Category != filter.Category {
			continue
		}

		apiResource := newExpense(c, expense)
		apiResource.Shared = entry.Shared
		apiResource.Permission = entry.Permission
		apiResources = append(apiResources, apiResource)
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data: apiResources,
	})
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	ExpenseResponse
// @Failure		403	{object}	ExpenseResponse
// @Failure		404	{object}	ExpenseResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	expense, ok := fetchExpense(c, models.PermissionView)
	if !ok {
		return
	}

	apiResource := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &apiResource})
}

// @Summary		Update expense
// @Description	Update an existing expense. Requires edit permission. When the date moves to another month, the spending caches of both months are brought up to date.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		403		{object}	ExpenseResponse
// @Failure		404		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses/{id} [patch]
func UpdateExpense(c *gin.Context) {
	expense, ok := fetchExpense(c, models.PermissionView)
	if !ok {
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ExpenseEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	var data ExpenseEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	previousMonth := expense.Date.Month()

	actor := currentUser(c)
	err = registry.SecureOperation(actor.Email, models.EntityTypeExpense, expense.ID, models.PermissionEdit, func() error {
		err := models.DB.Model(&expense).Select("", sharesStripped(updateFields)...).Updates(data.model(expense.CreatedBy)).Error
		if err != nil {
			return err
		}

		if fieldRequested(updateFields, "SharedWith") || fieldRequested(updateFields, "Amount") {
			err = replaceShares(&expense, data)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Preload("SharedWith").First(&expense, "id = ?", expense.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	// Refresh the caches of the old month as well when the expense moved
	err = recomputeAndAlert(expense.CreatedBy, expense.Date.Month())
	if err == nil && !expense.Date.Month().Equal(previousMonth) {
		err = recomputeAndAlert(expense.CreatedBy, previousMonth)
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	apiResource := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &apiResource})
}

// @Summary		Delete expense
// @Description	Deletes an expense and brings the spending caches of its month up to date. Requires admin permission.
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	expense, ok := fetchExpense(c, models.PermissionView)
	if !ok {
		return
	}

	actor := currentUser(c)
	err := registry.SecureOperation(actor.Email, models.EntityTypeExpense, expense.ID, models.PermissionAdmin, func() error {
		err := models.DB.Delete(&expense).Error
		if err != nil {
			return err
		}

		return recomputeAndAlert(expense.CreatedBy, expense.Date.Month())
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func fetchExpense(c *gin.Context, required models.PermissionLevel) (models.Expense, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return models.Expense{}, false
	}

	var expense models.Expense
	err = models.DB.Preload("SharedWith").First(&expense, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return models.Expense{}, false
	}

	actor := currentUser(c)
	granted, err := registry.CanAccess(actor.Email, models.EntityTypeExpense, expense.ID, required)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return models.Expense{}, false
	}

	if !granted {
		c.JSON(http.StatusForbidden, ExpenseResponse{
			Error: &permissionDeniedMessage,
		})
		return models.Expense{}, false
	}

	return expense, true
}

func fieldRequested(fields []any, name string) bool {
	for _, field := range fields {
		if field == any(name) {
			return true
		}
	}
	return false
}

// sharesStripped removes the association field from the field list for
// gorm Updates, shares are replaced separately.
func sharesStripped(fields []any) []any {
	out := make([]any, 0, len(fields))
	for _, field := range fields {
		if field == any("SharedWith") {
			continue
		}
		out = append(out, field)
	}
	return out
}

// replaceShares recalculates the equal split from the stored amount and
// the requested collaborator list and replaces the stored shares.
func replaceShares(expense *models.Expense, data ExpenseEditable) error {
	var stored models.Expense
	err := models.DB.First(&stored, "id = ?", expense.ID).Error
	if err != nil {
		return err
	}

	emails := make([]string, 0, len(expense.SharedWith))
	if data.SharedWith != nil {
		emails = data.SharedWith
	} else {
		for _, share := range expense.SharedWith {
			emails = append(emails, share.Email)
		}
	}

	shares := models.SplitEqually(stored.Amount, emails)

	err = models.DB.Where(&models.ExpenseShare{ExpenseID: expense.ID}).Delete(&models.ExpenseShare{}).Error
	if err != nil {
		return err
	}

	for i := range shares {
		shares[i].ExpenseID = expense.ID
		err = models.DB.Create(&shares[i]).Error
		if err != nil {
			return err
		}
	}

	return nil
}
