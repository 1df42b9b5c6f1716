// Package v1 implements the v1 API of the Planify backend.
package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/access"
	"github.com/planify/backend/internal/models"
	pf_uuid "github.com/planify/backend/internal/uuid"
)

// registry resolves entity type tags to their stores. Resolved once at
// startup, used by every authorization check.
var registry = access.NewRegistry()

type URIID struct {
	ID pf_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type httpError struct {
	Error string `json:"error" example:"an ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrAuthentication) {
		return http.StatusUnauthorized
	}

	if errors.Is(err, access.ErrPermissionDenied) {
		return http.StatusForbidden
	}

	return http.StatusBadRequest
}

// currentUser returns the authenticated user for the request. The auth
// middleware guarantees it is set on all v1 routes.
func currentUser(c *gin.Context) models.User {
	return c.MustGet(string(models.ContextUser)).(models.User)
}
