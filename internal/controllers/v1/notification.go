package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/httputil"
	"github.com/planify/backend/internal/models"
)

// RegisterNotificationRoutes registers the routes for notifications with
// the RouterGroup that is passed.
func RegisterNotificationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsNotificationList)
		r.GET("", GetNotifications)
	}

	// Notification with ID
	{
		r.OPTIONS("/:id", OptionsNotificationDetail)
		r.PATCH("/:id/read", ReadNotification)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Router			/v1/notifications [options]
func OptionsNotificationList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notifications/{id} [options]
func OptionsNotificationDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Notification{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPatch(c)
}

// @Summary		List notifications
// @Description	Returns the notifications of the requesting user, newest first, together with the unread count
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationListResponse
// @Failure		401	{object}	NotificationListResponse
// @Failure		500	{object}	NotificationListResponse
// @Router			/v1/notifications [get]
// @Param			unread	query	bool	false	"Only return unread notifications"
func GetNotifications(c *gin.Context) {
	var filter NotificationQueryFilter
	_ = c.Bind(&filter)

	actor := currentUser(c)

	query := models.DB.Where(&models.Notification{UserEmail: actor.Email})
	if filter.Unread {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationListResponse{
			Error: &s,
		})
		return
	}

	var unread int64
	err = models.DB.Model(&models.Notification{}).
		Where("user_email = ? AND is_read = ?", actor.Email, false).
		Count(&unread).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationListResponse{
			Error: &s,
		})
		return
	}

	apiResources := make([]Notification, 0, len(notifications))
	for _, notification := range notifications {
		apiResources = append(apiResources, newNotification(c, notification))
	}

	c.JSON(http.StatusOK, NotificationListResponse{
		Data:   apiResources,
		Unread: unread,
	})
}

// @Summary		Mark notification as read
// @Description	Marks a notification as read. Only the recipient can do this.
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationResponse
// @Failure		400	{object}	NotificationResponse
// @Failure		403	{object}	NotificationResponse
// @Failure		404	{object}	NotificationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/notifications/{id}/read [patch]
func ReadNotification(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &s,
		})
		return
	}

	var notification models.Notification
	err = models.DB.First(&notification, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &s,
		})
		return
	}

	actor := currentUser(c)
	if notification.UserEmail != actor.Email {
		c.JSON(http.StatusForbidden, NotificationResponse{
			Error: &permissionDeniedMessage,
		})
		return
	}

	notification.IsRead = true
	err = models.DB.Model(&notification).Select("IsRead").Updates(notification).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &s,
		})
		return
	}

	data := newNotification(c, notification)
	c.JSON(http.StatusOK, NotificationResponse{Data: &data})
}
