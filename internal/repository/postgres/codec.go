package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/matchday-hq/matchday-service/internal/model"
)

// Lineup and event collections live in JSONB columns on the games row; the
// whole live state of a game commits as one row update. At this boundary all
// time instants are ISO-8601 text (RFC 3339 with sub-second precision); the
// engine works with epoch-millisecond integers, so the documents below do the
// conversion in both directions.

type positionDoc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type lineupEntryDoc struct {
	PlayerID           int64        `json:"player_id"`
	Location           string       `json:"location"`
	Position           *positionDoc `json:"position,omitempty"`
	InitialPosition    *positionDoc `json:"initial_position,omitempty"`
	PlaytimeSeconds    int64        `json:"playtime_seconds"`
	PlaytimerStartedAt *string      `json:"playtimer_started_at,omitempty"`
	IsStarter          bool         `json:"is_starter"`
	SubbedOnCount      int          `json:"subbed_on_count"`
	SubbedOffCount     int          `json:"subbed_off_count"`
}

type eventDoc struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Team        string `json:"team"`
	OccurredAt  string `json:"occurred_at"`
	GameSeconds int64  `json:"game_seconds"`
	ScorerID    *int64 `json:"scorer_id,omitempty"`
	AssistID    *int64 `json:"assist_id,omitempty"`
	PlayerInID  *int64 `json:"player_in_id,omitempty"`
	PlayerOutID *int64 `json:"player_out_id,omitempty"`
}

func millisToISO(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339Nano)
}

func millisToISOPtr(ms *int64) *string {
	if ms == nil {
		return nil
	}
	s := millisToISO(*ms)
	return &s
}

func isoToMillis(s string) (int64, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UnixMilli(), nil
}

func isoToMillisPtr(s *string) (*int64, error) {
	if s == nil {
		return nil, nil
	}
	ms, err := isoToMillis(*s)
	if err != nil {
		return nil, err
	}
	return &ms, nil
}

func posToDoc(p *model.FieldPosition) *positionDoc {
	if p == nil {
		return nil
	}
	return &positionDoc{X: p.X, Y: p.Y}
}

func docToPos(d *positionDoc) *model.FieldPosition {
	if d == nil {
		return nil
	}
	return &model.FieldPosition{X: d.X, Y: d.Y}
}

func marshalLineup(lineup []model.PlayerLineupState) ([]byte, error) {
	docs := make([]lineupEntryDoc, 0, len(lineup))
	for _, ls := range lineup {
		docs = append(docs, lineupEntryDoc{
			PlayerID:           ls.PlayerID,
			Location:           string(ls.Location),
			Position:           posToDoc(ls.Position),
			InitialPosition:    posToDoc(ls.InitialPosition),
			PlaytimeSeconds:    ls.PlaytimeSeconds,
			PlaytimerStartedAt: millisToISOPtr(ls.PlaytimerStartMillis),
			IsStarter:          ls.IsStarter,
			SubbedOnCount:      ls.SubbedOnCount,
			SubbedOffCount:     ls.SubbedOffCount,
		})
	}
	return json.Marshal(docs)
}

func unmarshalLineup(raw []byte) ([]model.PlayerLineupState, error) {
	if len(raw) == 0 {
		return []model.PlayerLineupState{}, nil
	}
	var docs []lineupEntryDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode lineup: %w", err)
	}
	lineup := make([]model.PlayerLineupState, 0, len(docs))
	for _, d := range docs {
		startMillis, err := isoToMillisPtr(d.PlaytimerStartedAt)
		if err != nil {
			return nil, fmt.Errorf("decode lineup: %w", err)
		}
		lineup = append(lineup, model.PlayerLineupState{
			PlayerID:             d.PlayerID,
			Location:             model.Location(d.Location),
			Position:             docToPos(d.Position),
			InitialPosition:      docToPos(d.InitialPosition),
			PlaytimeSeconds:      d.PlaytimeSeconds,
			PlaytimerStartMillis: startMillis,
			IsStarter:            d.IsStarter,
			SubbedOnCount:        d.SubbedOnCount,
			SubbedOffCount:       d.SubbedOffCount,
		})
	}
	return lineup, nil
}

func marshalEvents(events []model.GameEvent) ([]byte, error) {
	docs := make([]eventDoc, 0, len(events))
	for _, ev := range events {
		docs = append(docs, eventDoc{
			ID:          ev.ID,
			Type:        string(ev.Type),
			Team:        string(ev.Team),
			OccurredAt:  millisToISO(ev.WallClockMillis),
			GameSeconds: ev.GameSeconds,
			ScorerID:    ev.ScorerID,
			AssistID:    ev.AssistID,
			PlayerInID:  ev.PlayerInID,
			PlayerOutID: ev.PlayerOutID,
		})
	}
	return json.Marshal(docs)
}

func unmarshalEvents(raw []byte) ([]model.GameEvent, error) {
	if len(raw) == 0 {
		return []model.GameEvent{}, nil
	}
	var docs []eventDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	events := make([]model.GameEvent, 0, len(docs))
	for _, d := range docs {
		occurred, err := isoToMillis(d.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("decode events: %w", err)
		}
		events = append(events, model.GameEvent{
			ID:              d.ID,
			Type:            model.EventType(d.Type),
			Team:            model.TeamSide(d.Team),
			WallClockMillis: occurred,
			GameSeconds:     d.GameSeconds,
			ScorerID:        d.ScorerID,
			AssistID:        d.AssistID,
			PlayerInID:      d.PlayerInID,
			PlayerOutID:     d.PlayerOutID,
		})
	}
	return events, nil
}

// timerStartToDB converts the engine's epoch-ms running instant to the
// timestamptz column value, nil when the clock is stopped.
func timerStartToDB(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

func timerStartFromDB(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
