// Package response maps application results and error kinds onto the HTTP
// wire. Services return error kinds; only this package knows status codes.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareit-platform/service-booking/internal/domain/apperr"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorBody{Error: message})
}

// Error maps an application error to its transport status code.
func Error(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	c.JSON(statusOf(appErr.Kind), errorBody{Error: appErr.Message, Kind: string(appErr.Kind)})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalidRange, apperr.KindUnknownState, apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindNotOwner:
		return http.StatusForbidden
	case apperr.KindSelfBooking, apperr.KindItemUnavailable,
		apperr.KindBookingUnavailable, apperr.KindAlreadyDecided,
		apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
