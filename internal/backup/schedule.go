package backup

import (
	"encoding/json"
	"fmt"
	"time"
)

// Schedule frequencies. Weekly runs keep the hour anchor but no fixed
// weekday; a run is owed once seven days have passed.
const (
	FrequencyOff    = "off"
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// Schedule is the operator-set automatic backup cadence, stored as JSON
// in the preferences store under the scheduler identity.
type Schedule struct {
	Frequency string `json:"frequency"`
	Hour      int    `json:"hour"`
}

// DefaultSchedule returns the disabled schedule.
func DefaultSchedule() Schedule {
	return Schedule{Frequency: FrequencyOff}
}

// ParseSchedule decodes and validates a stored schedule value.
func ParseSchedule(raw string) (Schedule, error) {
	var s Schedule
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Schedule{}, fmt.Errorf("decode schedule: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// Encode serializes the schedule for the preferences store.
func (s Schedule) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Validate checks the frequency and hour fields.
func (s Schedule) Validate() error {
	switch s.Frequency {
	case FrequencyOff, FrequencyDaily, FrequencyWeekly:
	default:
		return fmt.Errorf("invalid frequency %q", s.Frequency)
	}
	if s.Hour < 0 || s.Hour > 23 {
		return fmt.Errorf("invalid hour %d", s.Hour)
	}
	return nil
}

// Enabled reports whether the schedule triggers runs at all.
func (s Schedule) Enabled() bool {
	return s.Frequency == FrequencyDaily || s.Frequency == FrequencyWeekly
}

// IsDue reports whether a run is owed at now, given the last run time.
// A zero lastRun means the scheduler never ran; the first crossing of
// the scheduled hour then triggers.
func (s Schedule) IsDue(lastRun, now time.Time) bool {
	switch s.Frequency {
	case FrequencyDaily:
		return lastRun.Before(s.prevAt(now))
	case FrequencyWeekly:
		// owed when the last run predates the 7-day window ending at
		// the most recent hour anchor
		return lastRun.Before(s.prevAt(now).AddDate(0, 0, -6))
	default:
		return false
	}
}

// prevAt returns the most recent instant at the scheduled hour that is
// not after now.
func (s Schedule) prevAt(now time.Time) time.Time {
	p := time.Date(now.Year(), now.Month(), now.Day(), s.Hour, 0, 0, 0, now.Location())
	if p.After(now) {
		p = p.AddDate(0, 0, -1)
	}
	return p
}
