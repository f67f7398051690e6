// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior; the live-game
// state transitions live in internal/engine.
package model

import "time"

// Team represents a managed soccer team (the "us" side of every game).
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Player represents a roster member belonging to a team.
type Player struct {
	ID           int64     `json:"id"`
	TeamID       int64     `json:"team_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	JerseyNumber int       `json:"jersey_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TimerStatus is the game clock state.
type TimerStatus string

const (
	TimerStopped TimerStatus = "stopped"
	TimerRunning TimerStatus = "running"
)

// Location is a player's placement within a game lineup.
type Location string

const (
	LocationBench    Location = "bench"
	LocationField    Location = "field"
	LocationInactive Location = "inactive"
)

// TeamSide distinguishes our side from the opponent's in scores and events.
type TeamSide string

const (
	SideHome TeamSide = "home"
	SideAway TeamSide = "away"
)

// EventType discriminates GameEvent variants.
type EventType string

const (
	EventGoal         EventType = "goal"
	EventSubstitution EventType = "substitution"
)

// FieldPosition is a drag-and-drop placement in percentage coordinates
// relative to the pitch drawing (0..100 on both axes).
type FieldPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerLineupState is the per-player, per-game placement and playtime record.
// Exactly one exists per roster player per game; PlayerID back-references the
// roster entry, it does not own it.
type PlayerLineupState struct {
	PlayerID int64          `json:"player_id"`
	Location Location       `json:"location"`
	Position *FieldPosition `json:"position,omitempty"`
	// InitialPosition is captured once for field starters at the first timer
	// start and never overwritten afterwards.
	InitialPosition *FieldPosition `json:"initial_position,omitempty"`
	// PlaytimeSeconds accumulates on-field seconds across run/stop/move
	// cycles. Monotonic non-decreasing except on lineup reset.
	PlaytimeSeconds int64 `json:"playtime_seconds"`
	// PlaytimerStartMillis is the epoch-ms instant this player's current
	// on-field slice began; non-nil only while the slice is accruing.
	PlaytimerStartMillis *int64 `json:"playtimer_start_millis,omitempty"`
	IsStarter            bool   `json:"is_starter"`
	SubbedOnCount        int    `json:"subbed_on_count"`
	SubbedOffCount       int    `json:"subbed_off_count"`
}

// GameEvent is one append-ordered entry in a game's event log. Immutable once
// appended, except for removal by the explicit "remove last goal" operation
// and reference nulling when a player is deleted from the roster.
type GameEvent struct {
	ID   string    `json:"id"`
	Type EventType `json:"type"`
	Team TeamSide  `json:"team"`
	// WallClockMillis is the epoch-ms wall-clock instant of the event.
	WallClockMillis int64 `json:"wall_clock_millis"`
	// GameSeconds is the game-elapsed time at creation, integer-rounded.
	GameSeconds int64 `json:"game_seconds"`
	// Goal references. Nulled (not deleted) when the player is removed.
	ScorerID *int64 `json:"scorer_id,omitempty"`
	AssistID *int64 `json:"assist_id,omitempty"`
	// Substitution references: exactly one of the two is set.
	PlayerInID  *int64 `json:"player_in_id,omitempty"`
	PlayerOutID *int64 `json:"player_out_id,omitempty"`
}

// Game represents a scheduled or played match, including its live state:
// clock, score, lineup and event log.
type Game struct {
	ID          int64     `json:"id"`
	TeamID      int64     `json:"team_id"`
	Opponent    string    `json:"opponent"`
	KickoffAt   time.Time `json:"kickoff_at"`
	IsHome      bool      `json:"is_home"`
	Season      string    `json:"season"`
	Competition string    `json:"competition"`
	HomeScore   int       `json:"home_score"`
	AwayScore   int       `json:"away_score"`

	TimerStatus TimerStatus `json:"timer_status"`
	// TimerStartMillis is the epoch-ms instant the current run began;
	// non-nil iff TimerStatus is running.
	TimerStartMillis *int64 `json:"timer_start_millis,omitempty"`
	// TimerElapsedSeconds is the accumulated elapsed time prior to the
	// current run, rounded per completed run.
	TimerElapsedSeconds int64 `json:"timer_elapsed_seconds"`
	IsFinished          bool  `json:"is_finished"`

	Lineup []PlayerLineupState `json:"lineup"`
	Events []GameEvent         `json:"events"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OurSide returns which side of the scoreboard this team occupies.
func (g *Game) OurSide() TeamSide {
	if g.IsHome {
		return SideHome
	}
	return SideAway
}

// LineupEntry returns the lineup state for a player, or nil if the player has
// no entry in this game. The pointer aliases the game's slice so callers can
// mutate in place.
func (g *Game) LineupEntry(playerID int64) *PlayerLineupState {
	for i := range g.Lineup {
		if g.Lineup[i].PlayerID == playerID {
			return &g.Lineup[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the game so engine transitions can work on a
// scratch snapshot without touching the caller's last known-good state.
func (g *Game) Clone() *Game {
	out := *g
	if g.TimerStartMillis != nil {
		v := *g.TimerStartMillis
		out.TimerStartMillis = &v
	}
	out.Lineup = make([]PlayerLineupState, len(g.Lineup))
	for i, ls := range g.Lineup {
		out.Lineup[i] = clonePlayerLineupState(ls)
	}
	out.Events = make([]GameEvent, len(g.Events))
	for i, ev := range g.Events {
		out.Events[i] = cloneGameEvent(ev)
	}
	return &out
}

func clonePlayerLineupState(ls PlayerLineupState) PlayerLineupState {
	ls.Position = cloneFieldPosition(ls.Position)
	ls.InitialPosition = cloneFieldPosition(ls.InitialPosition)
	ls.PlaytimerStartMillis = cloneInt64(ls.PlaytimerStartMillis)
	return ls
}

func cloneGameEvent(ev GameEvent) GameEvent {
	ev.ScorerID = cloneInt64(ev.ScorerID)
	ev.AssistID = cloneInt64(ev.AssistID)
	ev.PlayerInID = cloneInt64(ev.PlayerInID)
	ev.PlayerOutID = cloneInt64(ev.PlayerOutID)
	return ev
}

func cloneFieldPosition(p *FieldPosition) *FieldPosition {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
