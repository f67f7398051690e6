package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matchday-hq/matchday-service/internal/handler"
	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
	"github.com/matchday-hq/matchday-service/internal/service"
)

// stubPingerNoop satisfies handler.Pinger (health endpoints not focus here).
type stubPingerNoop struct{}

func (s stubPingerNoop) Ping(ctx context.Context) error { return nil }

// stubPingerDown simulates an unreachable database.
type stubPingerDown struct{}

func (s stubPingerDown) Ping(ctx context.Context) error { return errors.New("connection refused") }

// stubTeamService lets us control each method outcome.
type stubTeamService struct {
	create struct {
		team model.Team
		err  error
	}
	get struct {
		team model.Team
		err  error
	}
	list struct {
		res repository.PageResult[model.Team]
		err error
	}
}

func (s *stubTeamService) CreateTeam(ctx context.Context, name string) (model.Team, error) {
	return s.create.team, s.create.err
}
func (s *stubTeamService) GetTeam(ctx context.Context, id int64) (model.Team, error) {
	return s.get.team, s.get.err
}
func (s *stubTeamService) ListTeams(ctx context.Context, p repository.Page) (repository.PageResult[model.Team], error) {
	return s.list.res, s.list.err
}

// stubLiveGameService returns a canned snapshot for every operation and
// records the last call so routing can be asserted.
type stubLiveGameService struct {
	game     model.Game
	err      error
	lastOp   string
	lastSide model.TeamSide
	lastMove struct {
		playerID int64
		from, to model.Location
		pos      *model.FieldPosition
	}
}

func (s *stubLiveGameService) StartTimer(ctx context.Context, id int64) (model.Game, error) {
	s.lastOp = "start"
	return s.game, s.err
}
func (s *stubLiveGameService) StopTimer(ctx context.Context, id int64) (model.Game, error) {
	s.lastOp = "stop"
	return s.game, s.err
}
func (s *stubLiveGameService) FinishGame(ctx context.Context, id int64) (model.Game, error) {
	s.lastOp = "finish"
	return s.game, s.err
}
func (s *stubLiveGameService) MovePlayer(ctx context.Context, id, playerID int64, from, to model.Location, pos *model.FieldPosition) (model.Game, error) {
	s.lastOp = "move"
	s.lastMove.playerID, s.lastMove.from, s.lastMove.to, s.lastMove.pos = playerID, from, to, pos
	return s.game, s.err
}
func (s *stubLiveGameService) SwapPlayers(ctx context.Context, id, a, b int64) (model.Game, error) {
	s.lastOp = "swap"
	return s.game, s.err
}
func (s *stubLiveGameService) AddGoal(ctx context.Context, id int64, team model.TeamSide, scorerID, assistID *int64) (model.Game, error) {
	s.lastOp = "goal"
	s.lastSide = team
	return s.game, s.err
}
func (s *stubLiveGameService) RemoveLastGoal(ctx context.Context, id int64, team model.TeamSide) (model.Game, error) {
	s.lastOp = "remove_goal"
	s.lastSide = team
	return s.game, s.err
}
func (s *stubLiveGameService) ResetLineup(ctx context.Context, id int64) (model.Game, error) {
	s.lastOp = "reset"
	return s.game, s.err
}

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC) }

func newRouter(p handler.Pinger, ts service.TeamService, ls service.LiveGameService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.Register(r, p, stubClock{}, ts, nil, nil, ls, nil)
	return r
}

func TestHealth_Probes(t *testing.T) {
	r := newRouter(stubPingerNoop{}, &stubTeamService{}, &stubLiveGameService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, handler.APIV1Prefix+"/health/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", w.Code)
	}

	down := newRouter(stubPingerDown{}, &stubTeamService{}, &stubLiveGameService{})
	w = httptest.NewRecorder()
	down.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readiness with db down: expected 503, got %d", w.Code)
	}
}
