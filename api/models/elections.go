package models

import (
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	MinElectionDuration = time.Hour
	MaxElectionDuration = 30 * 24 * time.Hour
	MaxPositions        = 10
	MaxEligibleVoters   = 100_000_000
)

type ElectionCreateRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Type           string   `json:"type"`
	StartDate      string   `json:"startDate"` // RFC 3339
	EndDate        string   `json:"endDate"`
	Positions      []string `json:"positions"`
	EligibleVoters int      `json:"eligibleVoters"`
}

// Validate checks every constraint and returns the parsed dates alongside
// the collected error messages.
func (r *ElectionCreateRequest) Validate() (start, end time.Time, errs []string) {
	errs = ValidateFields([]FieldRule{
		{Name: "title", Value: r.Title, Required: true, MinLen: 5, MaxLen: 200},
		{Name: "description", Value: r.Description, Required: true, MinLen: 10, MaxLen: 2000},
		{Name: "type", Value: r.Type, Required: true, Enum: ValidElectionTypes},
	})

	var startErr, endErr error
	if r.StartDate == "" {
		errs = append(errs, "startDate is required")
		startErr = fmt.Errorf("missing")
	} else if start, startErr = time.Parse(time.RFC3339, r.StartDate); startErr != nil {
		errs = append(errs, "startDate must be a valid RFC 3339 date")
	}
	if r.EndDate == "" {
		errs = append(errs, "endDate is required")
		endErr = fmt.Errorf("missing")
	} else if end, endErr = time.Parse(time.RFC3339, r.EndDate); endErr != nil {
		errs = append(errs, "endDate must be a valid RFC 3339 date")
	}

	if startErr == nil && endErr == nil {
		if !end.After(start) {
			errs = append(errs, "End date must be after start date")
		} else {
			duration := end.Sub(start)
			if duration < MinElectionDuration {
				errs = append(errs, "election must run for at least 1 hour")
			}
			if duration > MaxElectionDuration {
				errs = append(errs, "election must not run for more than 30 days")
			}
		}
	}

	if len(r.Positions) < 1 || len(r.Positions) > MaxPositions {
		errs = append(errs, fmt.Sprintf("positions must contain between 1 and %d entries", MaxPositions))
	} else {
		for _, position := range r.Positions {
			if strings.TrimSpace(position) == "" {
				errs = append(errs, "positions must not contain empty entries")
				break
			}
		}
	}

	if r.EligibleVoters < 1 || r.EligibleVoters > MaxEligibleVoters {
		errs = append(errs, fmt.Sprintf("eligibleVoters must be between 1 and %d", MaxEligibleVoters))
	}

	return start, end, errs
}

type ElectionStatusUpdateRequest struct {
	Status string `json:"status"`
}

var slugAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// BuildElectionID derives an id from the slugified title, type, start year
// and a short random suffix.
func BuildElectionID(title, electionType string, start time.Time) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")

	suffix, err := gonanoid.Generate(slugAlphabet, 6)
	if err != nil {
		suffix = fmt.Sprintf("%d", time.Now().UnixNano()%1_000_000)
	}
	return fmt.Sprintf("%s-%s-%d-%s", slug, electionType, start.Year(), suffix)
}
