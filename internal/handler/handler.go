package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matchday-hq/matchday-service/internal/live"
	"github.com/matchday-hq/matchday-service/internal/service"
	"github.com/matchday-hq/matchday-service/internal/session"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, repo Pinger, clock service.Clock, teamSvc service.TeamService, playerSvc service.PlayerService, gameSvc service.GameService, liveSvc service.LiveGameService, ws *live.WSHandler) {
	r.Use(session.Middleware(clock))

	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewTeamHandler(teamSvc).Register(api)
		NewPlayerHandler(playerSvc).Register(api)
		NewGameHandler(gameSvc).Register(api)
		NewLiveGameHandler(liveSvc).Register(api)
		if ws != nil {
			api.GET("/games/:id/live", ws.Serve)
		}
	}
}
