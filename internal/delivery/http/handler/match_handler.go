package handler

import (
	"net/http"
	"strconv"

	"github.com/gdugdh24/matches-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/matches-backend/internal/domain"
	"github.com/gdugdh24/matches-backend/internal/usecase/reconcile"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	reconciler Reconciler
	queries    MatchReader
}

func NewMatchHandler(reconciler Reconciler, queries MatchReader) *MatchHandler {
	return &MatchHandler{
		reconciler: reconciler,
		queries:    queries,
	}
}

// UpsertMatchRequest is a batch of proposed match edits.
type UpsertMatchRequest struct {
	Matches []MatchProposal `json:"matches" binding:"required,min=1,dive"`
}

// MatchProposal mirrors domain.MatchRecord minus the store-owned timestamps.
// Liked and Matched are proposals, not facts; the reconciler derives the
// real matched value.
type MatchProposal struct {
	ID           int64 `json:"id"`
	FirstUserID  int64 `json:"first_user_id" binding:"required,gt=0"`
	SecondUserID int64 `json:"second_user_id" binding:"required,gt=0,nefield=FirstUserID"`
	Liked        *bool `json:"liked"`
	Matched      *bool `json:"matched"`
}

// DroppedMatch enumerates a proposal excluded from the accepted set.
type DroppedMatch struct {
	ID           int64  `json:"id"`
	FirstUserID  int64  `json:"first_user_id"`
	SecondUserID int64  `json:"second_user_id"`
	Reason       string `json:"reason"`
}

// UpsertMatchResponse reports what was persisted and what was dropped.
type UpsertMatchResponse struct {
	Accepted []*domain.MatchRecord `json:"accepted"`
	Dropped  []DroppedMatch        `json:"dropped"`
}

// UpsertMatches handles PUT /matches
// @Summary Reconcile and persist a batch of match proposals
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpsertMatchRequest true "Proposed match edits"
// @Success 200 {object} UpsertMatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /matches [put]
func (h *MatchHandler) UpsertMatches(c *gin.Context) {
	var req UpsertMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(err))
		return
	}

	proposals := make([]*domain.MatchRecord, 0, len(req.Matches))
	for _, proposal := range req.Matches {
		proposals = append(proposals, &domain.MatchRecord{
			ID:           proposal.ID,
			FirstUserID:  proposal.FirstUserID,
			SecondUserID: proposal.SecondUserID,
			Liked:        proposal.Liked,
			Matched:      proposal.Matched,
		})
	}

	result, err := h.reconciler.Submit(c.Request.Context(), proposals, middleware.TokenFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := UpsertMatchResponse{
		Accepted: result.Accepted,
		Dropped:  make([]DroppedMatch, 0, len(result.Dropped)),
	}
	for _, dropped := range result.Dropped {
		resp.Dropped = append(resp.Dropped, droppedMatch(dropped))
	}
	c.JSON(http.StatusOK, resp)
}

// GetMatchByID handles GET /matches/match/:match_id
// @Summary Get a match record by id
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.MatchRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/match/{match_id} [get]
func (h *MatchHandler) GetMatchByID(c *gin.Context) {
	matchID, err := strconv.ParseInt(c.Param("match_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	record, err := h.queries.GetByID(c.Request.Context(), matchID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetMatchesByUser handles GET /matches/user/:user_id
// @Summary Get every match record of a user
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.MatchRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/user/{user_id} [get]
func (h *MatchHandler) GetMatchesByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	records, err := h.queries.GetByUser(c.Request.Context(), userID, middleware.TokenFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func droppedMatch(dropped reconcile.DroppedProposal) DroppedMatch {
	return DroppedMatch{
		ID:           dropped.Record.ID,
		FirstUserID:  dropped.Record.FirstUserID,
		SecondUserID: dropped.Record.SecondUserID,
		Reason:       string(dropped.Reason),
	}
}
