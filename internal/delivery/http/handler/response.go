package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/matches-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the error body every handler returns.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// bindingError turns a gin binding failure into a 400 body, listing the
// offending fields when the failure came from struct validation.
func bindingError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, verr := range verrs {
			fields = append(fields, verr.Field())
		}
		return ErrorResponse{Error: "invalid request body", Fields: fields}
	}
	return ErrorResponse{Error: "invalid request body"}
}

// writeError maps a usecase error onto the HTTP status taxonomy: validation
// errors are 400, missing records/users 404, collaborator failures 503
// (retryable, nothing was persisted), everything else 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyProposalBatch),
		errors.Is(err, domain.ErrEmptyToken),
		errors.Is(err, domain.ErrEmptyLocation),
		errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidMatchID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "match not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	case errors.Is(err, domain.ErrDependencyUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "upstream dependency unavailable, retry later"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
