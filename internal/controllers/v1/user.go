package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planify/backend/internal/httputil"
	"github.com/planify/backend/internal/models"
)

// UserEditable represents the profile values a user can change about
// themselves. The email is the identity and can not be changed.
type UserEditable struct {
	FullName  string `json:"fullName" example:"Morre Meyer"`
	Onboarded bool   `json:"onboarded" example:"true"`
}

// User is the API representation of the requesting user.
type User struct {
	models.DefaultModel
	Email     string `json:"email" example:"morre@example.com"`
	FullName  string `json:"fullName" example:"Morre Meyer"`
	Onboarded bool   `json:"onboarded" example:"true"`
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Email:        model.Email,
		FullName:     model.FullName,
		Onboarded:    model.Onboarded,
	}
}

type UserResponse struct {
	Data  *User   `json:"data"`
	Error *string `json:"error" example:"authentication is required for this endpoint"`
}

// RegisterUserRoutes registers the routes for the user profile with
// the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsUser)
	r.GET("", GetUser)
	r.PATCH("", UpdateUser)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			User
// @Success		204
// @Router			/v1/user [options]
func OptionsUser(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get the requesting user
// @Description	Returns the profile of the requesting user
// @Tags			User
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	UserResponse
// @Router			/v1/user [get]
func GetUser(c *gin.Context) {
	actor := currentUser(c)

	data := newUser(actor)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Update the requesting user
// @Description	Updates the profile of the requesting user
// @Tags			User
// @Accept			json
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		401		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/user [patch]
func UpdateUser(c *gin.Context) {
	actor := currentUser(c)

	updateFields, err := httputil.GetBodyFields(c, UserEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	var data UserEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&actor).Select("", updateFields...).Updates(models.User{
		FullName:  data.FullName,
		Onboarded: data.Onboarded,
	}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	apiResource := newUser(actor)
	c.JSON(http.StatusOK, UserResponse{Data: &apiResource})
}
