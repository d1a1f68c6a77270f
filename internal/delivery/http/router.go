package http

import (
	"log/slog"

	"github.com/gdugdh24/matches-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/matches-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	matchHandler     *handler.MatchHandler
	candidateHandler *handler.CandidateHandler
	authMiddleware   *middleware.AuthMiddleware
	logger           *slog.Logger
}

func NewRouter(
	matchHandler *handler.MatchHandler,
	candidateHandler *handler.CandidateHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *slog.Logger,
) *Router {
	return &Router{
		matchHandler:     matchHandler,
		candidateHandler: candidateHandler,
		authMiddleware:   authMiddleware,
		logger:           logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(r.logger))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		matches := v1.Group("/matches")
		matches.Use(r.authMiddleware.RequireAuth())
		{
			matches.GET("/new/:user_id", r.candidateHandler.GetNewCandidates)
			matches.GET("/match/:match_id", r.matchHandler.GetMatchByID)
			matches.GET("/user/:user_id", r.matchHandler.GetMatchesByUser)
			matches.PUT("", r.matchHandler.UpsertMatches)
		}
	}

	return router
}
