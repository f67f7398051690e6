package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/matchday-hq/matchday-service/internal/model"
)

// newEvent stamps a fresh event with both clocks: wall time for audit, live
// game-elapsed seconds for display. Events are born in memory, so they carry
// a UUID rather than a database-assigned id.
func newEvent(g *model.Game, typ model.EventType, team model.TeamSide, now time.Time) model.GameEvent {
	return model.GameEvent{
		ID:              uuid.NewString(),
		Type:            typ,
		Team:            team,
		WallClockMillis: now.UnixMilli(),
		GameSeconds:     CurrentGameSeconds(g, now),
	}
}

func appendSubstitution(g *model.Game, team model.TeamSide, playerIn, playerOut *int64, now time.Time) {
	ev := newEvent(g, model.EventSubstitution, team, now)
	ev.PlayerInID = playerIn
	ev.PlayerOutID = playerOut
	g.Events = append(g.Events, ev)
}

// AddGoal appends a goal event for the given side and bumps that side's score
// by exactly one. Scorer and assist are optional; opponent goals usually
// carry neither.
func AddGoal(g *model.Game, team model.TeamSide, scorerID, assistID *int64, now time.Time) {
	ev := newEvent(g, model.EventGoal, team, now)
	ev.ScorerID = scorerID
	ev.AssistID = assistID
	g.Events = append(g.Events, ev)

	if team == model.SideHome {
		g.HomeScore++
	} else {
		g.AwayScore++
	}
}

// RemoveLastGoal removes the newest goal event for the given side and
// decrements that side's score, floored at zero. When no matching goal
// exists the log and score are left untouched; the operation is a no-op,
// not an error.
func RemoveLastGoal(g *model.Game, team model.TeamSide) {
	for i := len(g.Events) - 1; i >= 0; i-- {
		ev := g.Events[i]
		if ev.Type != model.EventGoal || ev.Team != team {
			continue
		}
		g.Events = append(g.Events[:i], g.Events[i+1:]...)
		if team == model.SideHome {
			if g.HomeScore > 0 {
				g.HomeScore--
			}
		} else {
			if g.AwayScore > 0 {
				g.AwayScore--
			}
		}
		return
	}
}
