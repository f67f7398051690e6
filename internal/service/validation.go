package service

import (
	"strings"

	"github.com/matchday-hq/matchday-service/internal/model"
	"github.com/matchday-hq/matchday-service/internal/repository"
)

func normalizePage(p repository.Page) repository.Page {
	limit := p.Limit
	offset := p.Offset
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return repository.Page{Limit: limit, Offset: offset}
}

func isValidLocation(loc model.Location) bool {
	switch loc {
	case model.LocationBench, model.LocationField, model.LocationInactive:
		return true
	default:
		return false
	}
}

func isValidTeamSide(side model.TeamSide) bool {
	switch side {
	case model.SideHome, model.SideAway:
		return true
	default:
		return false
	}
}

const (
	maxNameLen   = 50
	maxTagLen    = 50
	maxJerseyNum = 99
)

// validatePlayerFields collects field errors shared by create and update.
// Names arrive trimmed.
func validatePlayerFields(firstName, lastName string, jerseyNumber int) []FieldError {
	var ferrs []FieldError
	if firstName == "" {
		ferrs = append(ferrs, FieldError{Field: "first_name", Message: "must not be empty"})
	} else if ln := len([]rune(firstName)); ln > maxNameLen {
		ferrs = append(ferrs, FieldError{Field: "first_name", Message: "length must be <= 50"})
	}
	if lastName == "" {
		ferrs = append(ferrs, FieldError{Field: "last_name", Message: "must not be empty"})
	} else if ln := len([]rune(lastName)); ln > maxNameLen {
		ferrs = append(ferrs, FieldError{Field: "last_name", Message: "length must be <= 50"})
	}
	if jerseyNumber < 0 || jerseyNumber > maxJerseyNum {
		ferrs = append(ferrs, FieldError{Field: "jersey_number", Message: "must be between 0 and 99"})
	}
	return ferrs
}

// validateGameFields collects field errors for scheduling fields. Strings
// arrive trimmed. Season and competition are free-form tags, only bounded.
func validateGameFields(opponent, season, competition string) []FieldError {
	var ferrs []FieldError
	if opponent == "" {
		ferrs = append(ferrs, FieldError{Field: "opponent", Message: "must not be empty"})
	} else if ln := len([]rune(opponent)); ln > maxNameLen {
		ferrs = append(ferrs, FieldError{Field: "opponent", Message: "length must be <= 50"})
	}
	if len([]rune(season)) > maxTagLen {
		ferrs = append(ferrs, FieldError{Field: "season", Message: "length must be <= 50"})
	}
	if len([]rune(competition)) > maxTagLen {
		ferrs = append(ferrs, FieldError{Field: "competition", Message: "length must be <= 50"})
	}
	return ferrs
}

func trimAll(ss ...*string) {
	for _, s := range ss {
		*s = strings.TrimSpace(*s)
	}
}
