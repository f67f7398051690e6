package engine_test

import (
	"testing"
	"time"

	"github.com/matchday-hq/matchday-service/internal/engine"
	"github.com/matchday-hq/matchday-service/internal/model"
)

func countGoals(g *model.Game) int {
	n := 0
	for _, ev := range g.Events {
		if ev.Type == model.EventGoal {
			n++
		}
	}
	return n
}

func TestAddGoal_ScoreTracksEventLog(t *testing.T) {
	g := newLiveGame()
	engine.StartTimer(g, kickoff)

	scorer, assist := int64(10), int64(11)
	engine.AddGoal(g, model.SideHome, &scorer, &assist, kickoff.Add(7*time.Minute))
	engine.AddGoal(g, model.SideAway, nil, nil, kickoff.Add(19*time.Minute))
	engine.AddGoal(g, model.SideHome, &scorer, nil, kickoff.Add(33*time.Minute))

	if g.HomeScore != 2 || g.AwayScore != 1 {
		t.Fatalf("score %d-%d, want 2-1", g.HomeScore, g.AwayScore)
	}
	if g.HomeScore+g.AwayScore != countGoals(g) {
		t.Fatalf("score must equal goal event count")
	}

	first := g.Events[0]
	if first.Type != model.EventGoal || first.Team != model.SideHome {
		t.Fatalf("unexpected first event: %+v", first)
	}
	if first.GameSeconds != 7*60 {
		t.Fatalf("gameSeconds = %d, want %d", first.GameSeconds, 7*60)
	}
	if first.ScorerID == nil || *first.ScorerID != 10 || first.AssistID == nil || *first.AssistID != 11 {
		t.Fatalf("goal references lost: %+v", first)
	}
	if first.ID == "" {
		t.Fatalf("events must carry ids")
	}
	if first.ID == g.Events[1].ID {
		t.Fatalf("event ids must be unique")
	}
}

func TestRemoveLastGoal_RemovesNewestMatching(t *testing.T) {
	g := newLiveGame()
	engine.StartTimer(g, kickoff)
	engine.AddGoal(g, model.SideHome, nil, nil, kickoff.Add(5*time.Minute))
	engine.AddGoal(g, model.SideAway, nil, nil, kickoff.Add(10*time.Minute))
	engine.AddGoal(g, model.SideHome, nil, nil, kickoff.Add(15*time.Minute))
	secondHome := g.Events[2].ID

	engine.RemoveLastGoal(g, model.SideHome)

	if g.HomeScore != 1 || g.AwayScore != 1 {
		t.Fatalf("score %d-%d, want 1-1", g.HomeScore, g.AwayScore)
	}
	if len(g.Events) != 2 {
		t.Fatalf("exactly one event must be removed")
	}
	for _, ev := range g.Events {
		if ev.ID == secondHome {
			t.Fatalf("the newest matching goal must be the one removed")
		}
	}
	if g.HomeScore+g.AwayScore != countGoals(g) {
		t.Fatalf("score must track the log after removal")
	}
}

func TestRemoveLastGoal_NoMatchingGoalIsNoOp(t *testing.T) {
	g := newLiveGame()
	engine.StartTimer(g, kickoff)
	engine.AddGoal(g, model.SideHome, nil, nil, kickoff.Add(5*time.Minute))
	// A substitution must never be mistaken for a goal while scanning.
	engine.MovePlayer(g, 12, model.LocationBench, model.LocationField, fieldPos(1, 1), kickoff.Add(6*time.Minute))

	engine.RemoveLastGoal(g, model.SideAway)

	if g.HomeScore != 1 || g.AwayScore != 0 {
		t.Fatalf("score touched by a no-op removal: %d-%d", g.HomeScore, g.AwayScore)
	}
	if len(g.Events) != 2 {
		t.Fatalf("log touched by a no-op removal")
	}
}

func TestRemoveLastGoal_ScoreFlooredAtZero(t *testing.T) {
	g := newLiveGame()
	engine.StartTimer(g, kickoff)
	// A goal event present while the stored score is already zero (possible
	// only through historical data); removal must not go negative.
	engine.AddGoal(g, model.SideAway, nil, nil, kickoff.Add(time.Minute))
	g.AwayScore = 0

	engine.RemoveLastGoal(g, model.SideAway)

	if g.AwayScore != 0 {
		t.Fatalf("score must be floored at zero, got %d", g.AwayScore)
	}
	if len(g.Events) != 0 {
		t.Fatalf("the matching event is still removed")
	}
}
