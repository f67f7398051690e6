// Package engine implements the live-game state transitions: the game clock,
// the per-player playtime ledger, lineup moves and the append-only event log.
// Every operation is a pure read-modify-write over one *model.Game snapshot
// with an explicit `now`; no I/O, no locking. The surrounding service layer
// owns fetching the snapshot, calling exactly one transition and persisting
// the result (spec'd single-logical-writer contract).
package engine

import (
	"math"
	"time"

	"github.com/matchday-hq/matchday-service/internal/model"
)

// roundedSeconds converts an epoch-ms interval to whole seconds, rounding to
// nearest. Each quantity is rounded independently: the game total and every
// player slice carry their own rounding, so sums may drift by small integer
// slop. That is accepted behavior, not something to reconcile here.
func roundedSeconds(fromMillis, toMillis int64) int64 {
	return int64(math.Round(float64(toMillis-fromMillis) / 1000.0))
}

// CurrentGameSeconds returns the authoritative elapsed game time at `now`:
// accumulated seconds plus the live delta of the current run, if any.
func CurrentGameSeconds(g *model.Game, now time.Time) int64 {
	elapsed := g.TimerElapsedSeconds
	if g.TimerStatus == model.TimerRunning && g.TimerStartMillis != nil {
		elapsed += roundedSeconds(*g.TimerStartMillis, now.UnixMilli())
	}
	return elapsed
}

// StartTimer transitions the clock to running. Finished games ignore it, as
// does a clock that is already running. On the very first start of a fresh
// game it also captures starters: every field/bench player is marked
// IsStarter, and field players get their InitialPosition snapshotted from the
// current drag-and-drop position. Both are captured exactly once and never
// overwritten by later stops or moves.
func StartTimer(g *model.Game, now time.Time) {
	if g.IsFinished {
		return
	}
	if g.TimerStatus == model.TimerRunning {
		return
	}

	nowMillis := now.UnixMilli()
	firstStart := g.TimerElapsedSeconds == 0 && g.TimerStartMillis == nil

	for i := range g.Lineup {
		ls := &g.Lineup[i]
		if firstStart {
			switch ls.Location {
			case model.LocationField:
				ls.IsStarter = true
				if ls.InitialPosition == nil && ls.Position != nil {
					pos := *ls.Position
					ls.InitialPosition = &pos
				}
			case model.LocationBench:
				ls.IsStarter = true
			}
		}
		// Field players begin (or resume) accruing a fresh slice.
		if ls.Location == model.LocationField {
			start := nowMillis
			ls.PlaytimerStartMillis = &start
		}
	}

	g.TimerStatus = model.TimerRunning
	g.TimerStartMillis = &nowMillis
	g.IsFinished = false
}

// StopTimer transitions the clock to stopped, folding the current run into
// TimerElapsedSeconds and flushing every running personal slice into its
// player's PlaytimeSeconds. Only valid from running; otherwise a no-op.
func StopTimer(g *model.Game, now time.Time) {
	if g.TimerStatus != model.TimerRunning || g.TimerStartMillis == nil {
		return
	}
	nowMillis := now.UnixMilli()
	g.TimerElapsedSeconds += roundedSeconds(*g.TimerStartMillis, nowMillis)
	g.TimerStartMillis = nil
	g.TimerStatus = model.TimerStopped

	flushPersonalTimers(g, nowMillis)
}

// FinishGame performs the same reconciliation as StopTimer when the clock is
// running, then unconditionally clears every personal timer and marks the
// game explicitly finished. Idempotent with respect to clock state.
func FinishGame(g *model.Game, now time.Time) {
	if g.TimerStatus == model.TimerRunning && g.TimerStartMillis != nil {
		nowMillis := now.UnixMilli()
		g.TimerElapsedSeconds += roundedSeconds(*g.TimerStartMillis, nowMillis)
		g.TimerStartMillis = nil
		flushPersonalTimers(g, nowMillis)
	}
	g.TimerStatus = model.TimerStopped
	// Defensive cleanup: nothing may keep accruing after the final whistle,
	// even entries left in an odd state by earlier versions of the data.
	for i := range g.Lineup {
		g.Lineup[i].PlaytimerStartMillis = nil
	}
	g.IsFinished = true
}

// flushPersonalTimers folds every running personal slice into its player's
// accumulated playtime. Field and inactive are both flushed: inactive holds a
// running timer only transiently, and the slice must never be dropped.
func flushPersonalTimers(g *model.Game, nowMillis int64) {
	for i := range g.Lineup {
		ls := &g.Lineup[i]
		if ls.PlaytimerStartMillis == nil {
			continue
		}
		if ls.Location == model.LocationField || ls.Location == model.LocationInactive {
			ls.PlaytimeSeconds += roundedSeconds(*ls.PlaytimerStartMillis, nowMillis)
		}
		ls.PlaytimerStartMillis = nil
	}
}
