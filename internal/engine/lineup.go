package engine

import (
	"time"

	"github.com/matchday-hq/matchday-service/internal/model"
)

// NewLineup builds a fresh bench-only lineup from the current roster, one
// entry per player in roster order, all counters zeroed.
func NewLineup(roster []model.Player) []model.PlayerLineupState {
	lineup := make([]model.PlayerLineupState, 0, len(roster))
	for _, p := range roster {
		lineup = append(lineup, model.PlayerLineupState{
			PlayerID: p.ID,
			Location: model.LocationBench,
		})
	}
	return lineup
}

// GameActive reports whether the game has begun: the clock is running, or it
// is paused with nonzero accumulated time. Lineup changes made before kickoff
// (or after a reset) are planning moves and must not log substitutions.
func GameActive(g *model.Game) bool {
	if g.TimerStatus == model.TimerRunning {
		return true
	}
	return g.TimerElapsedSeconds > 0
}

// MovePlayer relocates one player between bench, field and inactive,
// settling the playtime ledger and logging a substitution when the move is a
// real in-game swap. The sequence matters: the old slice is flushed before the
// location changes, and the substitution stamp uses the live game time.
//
// A missing lineup entry makes the whole call a silent no-op; the UI races
// stale references all the time and that is not an error.
func MovePlayer(g *model.Game, playerID int64, from, to model.Location, newPos *model.FieldPosition, now time.Time) {
	ls := g.LineupEntry(playerID)
	if ls == nil {
		return
	}
	nowMillis := now.UnixMilli()

	// Leaving the field (or a transient inactive slot) with a running
	// personal timer: flush the slice now, never drop it.
	if ls.PlaytimerStartMillis != nil && to != model.LocationField {
		if ls.Location == model.LocationField || ls.Location == model.LocationInactive {
			ls.PlaytimeSeconds += roundedSeconds(*ls.PlaytimerStartMillis, nowMillis)
		}
		ls.PlaytimerStartMillis = nil
	}

	// Entering the field while the clock runs: start a fresh slice, unless
	// one is already running (field -> field reposition keeps its slice).
	if to == model.LocationField {
		if g.TimerStatus == model.TimerRunning && ls.PlaytimerStartMillis == nil {
			start := nowMillis
			ls.PlaytimerStartMillis = &start
		}
	} else {
		ls.PlaytimerStartMillis = nil
	}

	// Substitution bookkeeping only once the game is underway, and only for
	// the exact bench<->field transitions. Inactive moves and repositions
	// never count as substitutions.
	if GameActive(g) {
		switch {
		case from == model.LocationBench && to == model.LocationField:
			ls.SubbedOnCount++
			appendSubstitution(g, g.OurSide(), &playerID, nil, now)
		case from == model.LocationField && to == model.LocationBench:
			ls.SubbedOffCount++
			appendSubstitution(g, g.OurSide(), nil, &playerID, now)
		}
	}

	ls.Location = to
	if to == model.LocationField {
		if newPos != nil {
			pos := *newPos
			ls.Position = &pos
		}
	} else {
		ls.Position = nil
	}
}

// SwapPlayers exchanges the location and position of two lineup entries. It
// is a pure state exchange for pre-game planning: no playtime settlement, no
// substitution events. Missing entries make it a no-op.
func SwapPlayers(g *model.Game, playerA, playerB int64) {
	a := g.LineupEntry(playerA)
	b := g.LineupEntry(playerB)
	if a == nil || b == nil {
		return
	}
	a.Location, b.Location = b.Location, a.Location
	a.Position, b.Position = b.Position, a.Position
}

// ResetLineup destroys all live-game state: fresh bench-only lineup from the
// current roster, empty event log, zeroed scores, clock fully reset. This is
// the one operation allowed to make playtime and elapsed time go backwards.
func ResetLineup(g *model.Game, roster []model.Player) {
	g.Lineup = NewLineup(roster)
	g.Events = []model.GameEvent{}
	g.HomeScore = 0
	g.AwayScore = 0
	g.TimerStatus = model.TimerStopped
	g.TimerStartMillis = nil
	g.TimerElapsedSeconds = 0
	g.IsFinished = false
}

// PrunePlayer removes a deleted roster player from the lineup and nulls every
// event reference to them. Events themselves stay: the log keeps its shape
// and ordering even when a participant is gone.
func PrunePlayer(g *model.Game, playerID int64) {
	for i := range g.Lineup {
		if g.Lineup[i].PlayerID == playerID {
			g.Lineup = append(g.Lineup[:i], g.Lineup[i+1:]...)
			break
		}
	}
	for i := range g.Events {
		ev := &g.Events[i]
		if ev.ScorerID != nil && *ev.ScorerID == playerID {
			ev.ScorerID = nil
		}
		if ev.AssistID != nil && *ev.AssistID == playerID {
			ev.AssistID = nil
		}
		if ev.PlayerInID != nil && *ev.PlayerInID == playerID {
			ev.PlayerInID = nil
		}
		if ev.PlayerOutID != nil && *ev.PlayerOutID == playerID {
			ev.PlayerOutID = nil
		}
	}
}
