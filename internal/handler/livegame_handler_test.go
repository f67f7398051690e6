package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matchday-hq/matchday-service/internal/handler"
	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
)

func postJSON(r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, handler.APIV1Prefix+path, &body))
	return w
}

func TestLiveGameHandler_TimerRoutes(t *testing.T) {
	stub := &stubLiveGameService{game: model.Game{ID: 5, TimerStatus: model.TimerRunning}}
	r := newRouter(stubPingerNoop{}, &stubTeamService{}, stub)

	cases := []struct {
		path   string
		wantOp string
	}{
		{"/games/5/timer/start", "start"},
		{"/games/5/timer/stop", "stop"},
		{"/games/5/timer/finish", "finish"},
		{"/games/5/lineup/reset", "reset"},
	}
	for _, tc := range cases {
		w := postJSON(r, tc.path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", tc.path, w.Code, w.Body.String())
		}
		if stub.lastOp != tc.wantOp {
			t.Fatalf("%s: expected op %q, got %q", tc.path, tc.wantOp, stub.lastOp)
		}
		var resp model.Game
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.ID != 5 {
			t.Fatalf("%s: expected committed snapshot in body, got %s", tc.path, w.Body.String())
		}
	}
}

func TestLiveGameHandler_MovePlayer(t *testing.T) {
	stub := &stubLiveGameService{game: model.Game{ID: 5}}
	r := newRouter(stubPingerNoop{}, &stubTeamService{}, stub)

	w := postJSON(r, "/games/5/lineup/move", map[string]any{
		"player_id": 9,
		"from":      "bench",
		"to":        "field",
		"position":  map[string]float64{"x": 30, "y": 40},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if stub.lastMove.playerID != 9 || stub.lastMove.from != model.LocationBench || stub.lastMove.to != model.LocationField {
		t.Fatalf("unexpected move args: %+v", stub.lastMove)
	}
	if stub.lastMove.pos == nil || stub.lastMove.pos.X != 30 || stub.lastMove.pos.Y != 40 {
		t.Fatalf("expected position to be forwarded, got %+v", stub.lastMove.pos)
	}
}

func TestLiveGameHandler_Goals(t *testing.T) {
	stub := &stubLiveGameService{game: model.Game{ID: 5, HomeScore: 1}}
	r := newRouter(stubPingerNoop{}, &stubTeamService{}, stub)

	w := postJSON(r, "/games/5/goals", map[string]any{"team": "home", "scorer_id": 9})
	if w.Code != http.StatusOK {
		t.Fatalf("add goal: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if stub.lastOp != "goal" || stub.lastSide != model.SideHome {
		t.Fatalf("add goal: unexpected call op=%s side=%s", stub.lastOp, stub.lastSide)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, handler.APIV1Prefix+"/games/5/goals/last?team=away", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("remove goal: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if stub.lastOp != "remove_goal" || stub.lastSide != model.SideAway {
		t.Fatalf("remove goal: unexpected call op=%s side=%s", stub.lastOp, stub.lastSide)
	}
}

func TestLiveGameHandler_BadGameID(t *testing.T) {
	stub := &stubLiveGameService{}
	r := newRouter(stubPingerNoop{}, &stubTeamService{}, stub)

	w := postJSON(r, "/games/abc/timer/start", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if stub.lastOp != "" {
		t.Fatalf("service must not be called on a bad id, got op %q", stub.lastOp)
	}
}

func TestLiveGameHandler_NotFound(t *testing.T) {
	stub := &stubLiveGameService{err: repository.ErrNotFound}
	r := newRouter(stubPingerNoop{}, &stubTeamService{}, stub)

	w := postJSON(r, "/games/404/timer/start", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
