package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/models"
)

type NotificationLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/notifications/7e287c1c-64c5-47f5-b24a-0e6aecfdd383"`
}

// Notification is the API representation of a notification.
type Notification struct {
	models.DefaultModel
	Title   string                  `json:"title" example:"Budget alert"`
	Message string                  `json:"message" example:"Budget has exceeded 90% of its limit."`
	Type    models.NotificationKind `json:"type" example:"alert"`
	Link    string                  `json:"link" example:"/budgets"`
	IsRead  bool                    `json:"isRead" example:"false"`
	Links   NotificationLinks       `json:"links"`
}

func newNotification(c *gin.Context, model models.Notification) Notification {
	url := c.GetString(string(models.ContextURL))

	return Notification{
		DefaultModel: model.DefaultModel,
		Title:        model.Title,
		Message:      model.Message,
		Type:         model.Type,
		Link:         model.Link,
		IsRead:       model.IsRead,
		Links: NotificationLinks{
			Self: fmt.Sprintf("%s/v1/notifications/%s", url, model.ID),
		},
	}
}

type NotificationListResponse struct {
	Data   []Notification `json:"data"`
	Unread int64          `json:"unread" example:"2"`
	Error  *string        `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type NotificationResponse struct {
	Data  *Notification `json:"data"`
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type NotificationQueryFilter struct {
	Unread bool `form:"unread"`
}
