package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matchday-hq/matchday-service/internal/repository"
	"github.com/matchday-hq/matchday-service/internal/service"
	"github.com/matchday-hq/matchday-service/pkg/response"
)

type GameHandler struct {
	svc service.GameService
}

func NewGameHandler(svc service.GameService) *GameHandler { return &GameHandler{svc: svc} }

func (h *GameHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/games")
	{
		g.POST("", h.create)
		g.GET("/:id", h.getByID)
		g.PUT("/:id/schedule", h.updateSchedule)
		g.DELETE("/:id", h.delete)
	}
	// Nested listing: /api/v1/teams/:team_id/games
	r.Group("/teams").GET("/:team_id/games", h.listByTeam)
}

type gameScheduleRequest struct {
	TeamID      int64  `json:"team_id"`
	Opponent    string `json:"opponent"`
	KickoffAt   string `json:"kickoff_at"` // RFC3339
	IsHome      bool   `json:"is_home"`
	Season      string `json:"season"`
	Competition string `json:"competition"`
}

func (h *GameHandler) create(c *gin.Context) {
	var req gameScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	kickoff, err := time.Parse(time.RFC3339, req.KickoffAt)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "kickoff_at", Message: "must be a valid RFC3339 timestamp"}}))
		return
	}
	game, err := h.svc.CreateGame(c.Request.Context(), req.TeamID, req.Opponent, kickoff, req.IsHome, req.Season, req.Competition)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, game)
}

func (h *GameHandler) getByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	game, err := h.svc.GetGame(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

// updateSchedule touches only the scheduling fields; live game state is not
// reachable through this endpoint.
func (h *GameHandler) updateSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}}))
		return
	}
	var req gameScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	kickoff, err := time.Parse(time.RFC3339, req.KickoffAt)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "kickoff_at", Message: "must be a valid RFC3339 timestamp"}}))
		return
	}
	game, err := h.svc.UpdateSchedule(c.Request.Context(), id, req.Opponent, kickoff, req.IsHome, req.Season, req.Competition)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *GameHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}}))
		return
	}
	if err := h.svc.DeleteGame(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) listByTeam(c *gin.Context) {
	teamID, err := strconv.ParseInt(c.Param("team_id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "team_id", Message: "must be a valid integer"}}))
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	page := repository.Page{Limit: limit, Offset: offset}
	res, err := h.svc.ListGamesByTeam(c.Request.Context(), teamID, page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
