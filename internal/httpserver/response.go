package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
)

// apiResponse is the uniform envelope every endpoint returns; the HTTP
// status is mirrored into the body.
type apiResponse struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, apiResponse{Status: status, Data: data, Message: message})
}

// respondError maps service errors to the envelope: validation errors to
// 400 with their own message, not-found to 404 with the handler's message,
// anything else to 500 with the underlying message surfaced.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case domain.IsValidation(err):
		respond(c, http.StatusBadRequest, nil, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respond(c, http.StatusNotFound, nil, notFoundMsg)
	default:
		respond(c, http.StatusInternalServerError, nil, err.Error())
	}
}
