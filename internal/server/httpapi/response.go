// Package httpapi is the HTTP/JSON surface of the server: routing, the
// access-gate middleware, request handlers and the SSE snapshot stream.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zorgkaart/internal/common"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondServiceError maps domain sentinels onto HTTP statuses. Everything
// unmapped is a 500 with a generic message, keeping internals out of
// responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		RespondError(c, http.StatusBadRequest, "validation", err)
	case errors.Is(err, common.ErrorUnknownComment):
		RespondError(c, http.StatusBadRequest, "unknown_comment", err)
	case errors.Is(err, common.ErrorNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, common.ErrorUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("interne fout"))
	}
}
