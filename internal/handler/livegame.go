package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/service"
	"github.com/matchday-hq/matchday-service/pkg/response"
)

// LiveGameHandler exposes the in-game operations: clock control, lineup
// moves and the goal ledger. Every endpoint returns the committed snapshot,
// so clients can render from the response without a follow-up GET.
type LiveGameHandler struct {
	svc service.LiveGameService
}

func NewLiveGameHandler(svc service.LiveGameService) *LiveGameHandler {
	return &LiveGameHandler{svc: svc}
}

func (h *LiveGameHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/games/:id")
	{
		g.POST("/timer/start", h.startTimer)
		g.POST("/timer/stop", h.stopTimer)
		g.POST("/timer/finish", h.finishGame)
		g.POST("/lineup/move", h.movePlayer)
		g.POST("/lineup/swap", h.swapPlayers)
		g.POST("/lineup/reset", h.resetLineup)
		g.POST("/goals", h.addGoal)
		g.DELETE("/goals/last", h.removeLastGoal)
	}
}

func gameID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}}))
		return 0, false
	}
	return id, true
}

func (h *LiveGameHandler) startTimer(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	game, err := h.svc.StartTimer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *LiveGameHandler) stopTimer(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	game, err := h.svc.StopTimer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *LiveGameHandler) finishGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	game, err := h.svc.FinishGame(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

type movePlayerRequest struct {
	PlayerID int64                `json:"player_id"`
	From     string               `json:"from"`
	To       string               `json:"to"`
	Position *model.FieldPosition `json:"position,omitempty"`
}

func (h *LiveGameHandler) movePlayer(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	var req movePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	game, err := h.svc.MovePlayer(c.Request.Context(), id, req.PlayerID, model.Location(req.From), model.Location(req.To), req.Position)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

type swapPlayersRequest struct {
	PlayerAID int64 `json:"player_a_id"`
	PlayerBID int64 `json:"player_b_id"`
}

func (h *LiveGameHandler) swapPlayers(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	var req swapPlayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	game, err := h.svc.SwapPlayers(c.Request.Context(), id, req.PlayerAID, req.PlayerBID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *LiveGameHandler) resetLineup(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	game, err := h.svc.ResetLineup(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

type addGoalRequest struct {
	Team     string `json:"team"`
	ScorerID *int64 `json:"scorer_id,omitempty"`
	AssistID *int64 `json:"assist_id,omitempty"`
}

func (h *LiveGameHandler) addGoal(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	var req addGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	game, err := h.svc.AddGoal(c.Request.Context(), id, model.TeamSide(req.Team), req.ScorerID, req.AssistID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

// removeLastGoal takes the side as a query parameter; DELETE bodies are
// routinely stripped by proxies.
func (h *LiveGameHandler) removeLastGoal(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	game, err := h.svc.RemoveLastGoal(c.Request.Context(), id, model.TeamSide(c.Query("team")))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}
