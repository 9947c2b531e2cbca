// Package reminder computes recurring snapshot reminders and defines
// the scheduler collaborator interface. The actual delivery channel (OS
// notifications) lives outside this package.
package reminder

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/panpantou/stash/internal/common"
)

// Frequency is how often the user wants a snapshot reminder.
type Frequency string

// Supported reminder frequencies.
const (
	FrequencyNone     Frequency = "none"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// Frequencies lists all supported frequencies.
func Frequencies() []Frequency {
	return []Frequency{FrequencyNone, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly}
}

// ParseFrequency validates a frequency label.
func ParseFrequency(label string) (Frequency, error) {
	for _, f := range Frequencies() {
		if string(f) == label {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidFrequency, label)
}

// Reminders fire at 09:00 local time: weekly on Mondays, monthly on the
// 1st. Biweekly is a plain 14-day interval from the scheduling moment.
const (
	reminderHour     = 9
	reminderWeekday  = time.Monday
	reminderMonthDay = 1
	biweeklyInterval = 14 * 24 * time.Hour
)

// NextReminder returns the first reminder time strictly after the given
// moment. ok is false when the frequency is none.
func NextReminder(frequency Frequency, after time.Time) (next time.Time, ok bool) {
	switch frequency {
	case FrequencyWeekly:
		days := (int(reminderWeekday) - int(after.Weekday()) + 7) % 7
		candidate := time.Date(after.Year(), after.Month(), after.Day()+days, reminderHour, 0, 0, 0, after.Location())
		if !candidate.After(after) {
			candidate = candidate.AddDate(0, 0, 7)
		}
		return candidate, true
	case FrequencyBiweekly:
		return after.Add(biweeklyInterval), true
	case FrequencyMonthly:
		candidate := time.Date(after.Year(), after.Month(), reminderMonthDay, reminderHour, 0, 0, 0, after.Location())
		if !candidate.After(after) {
			candidate = candidate.AddDate(0, 1, 0)
		}
		return candidate, true
	default:
		return time.Time{}, false
	}
}

// Scheduler is the injected collaborator that arranges recurring
// reminders for a frequency. Scheduling a new frequency always replaces
// whatever was scheduled before.
type Scheduler interface {
	Schedule(frequency Frequency) error
}

// LogScheduler is a Scheduler that records the upcoming reminder in the
// log. It stands in where no OS notification backend is wired up.
type LogScheduler struct {
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewLogScheduler creates a scheduler that logs the next reminder time.
func NewLogScheduler() *LogScheduler {
	return &LogScheduler{Now: time.Now}
}

// Schedule logs when the next reminder would fire.
func (s *LogScheduler) Schedule(frequency Frequency) error {
	next, ok := NextReminder(frequency, s.Now())
	if !ok {
		slog.Info("reminders disabled")
		return nil
	}
	slog.Info("reminder scheduled", "frequency", string(frequency), "next", next.Format(time.RFC1123))
	return nil
}
