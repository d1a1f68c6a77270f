package handler

import (
	"net/http"
	"strconv"

	"github.com/gdugdh24/matches-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	finder CandidateFinder
}

func NewCandidateHandler(finder CandidateFinder) *CandidateHandler {
	return &CandidateHandler{finder: finder}
}

// GetNewCandidates handles GET /matches/new/:user_id?location=
// @Summary List users at a location the requester has not been paired with
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param location query string true "Location to search"
// @Success 200 {array} domain.UserSummary
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /matches/new/{user_id} [get]
func (h *CandidateHandler) GetNewCandidates(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	location := c.Query("location")
	users, err := h.finder.NewCandidates(c.Request.Context(), location, userID, middleware.TokenFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
