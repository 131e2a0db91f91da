package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/adaptlearn/internal/store"
	"github.com/abhisek/adaptlearn/internal/subject"
)

// Error codes.
const (
	CodeBadRequest      = "bad_request"
	CodeSubjectNotFound = "subject_not_found"
	CodeInternal        = "internal"
)

type APIError struct {
	Message   string   `json:"message"`
	Code      string   `json:"code,omitempty"`
	Available []string `json:"available,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes err as an ErrorEnvelope.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	apiErr := APIError{
		Message:   msg,
		Code:      code,
		RequestID: c.GetString(requestIDKey),
	}
	var nf *subject.NotFoundError
	if errors.As(err, &nf) {
		apiErr.Available = nf.Available
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: apiErr})
}

// respondServiceError maps domain errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, subject.ErrNotFound):
		RespondError(c, http.StatusNotFound, CodeSubjectNotFound, err)
	case errors.Is(err, store.ErrInvalidKey), errors.Is(err, store.ErrInvalidScore):
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
	default:
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
