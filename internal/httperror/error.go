// Package httperror implements the error body returned by all endpoints.
package httperror

type Error struct {
	Message string `json:"error" example:"you do not have permission for this operation"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}

func NewFromString(s string) Error {
	return Error{
		Message: s,
	}
}
