package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Kind represents the type of a marked day
type Kind int

const (
	KindHoliday Kind = iota + 1
	KindClosed
	KindEvent
)

// String returns the kind name as written in calendar files
func (k Kind) String() string {
	switch k {
	case KindHoliday:
		return "holiday"
	case KindClosed:
		return "closed"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a kind name such as "holiday"
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "holiday":
		return KindHoliday, nil
	case "closed":
		return KindClosed, nil
	case "event":
		return KindEvent, nil
	default:
		return 0, fmt.Errorf("unknown day kind: %q", s)
	}
}

// Holiday represents a marked day shown on the schedule
type Holiday struct {
	Date time.Time
	Kind Kind
	Name string
}

// Note returns the text printed under the date label
func (h Holiday) Note() string {
	switch {
	case h.Kind == KindClosed && h.Name != "":
		return "CLOSED: " + h.Name
	case h.Kind == KindClosed:
		return "CLOSED"
	case h.Name != "":
		return h.Name
	default:
		return strings.ToUpper(h.Kind.String())
	}
}

// Source provides marked days for a date range
type Source interface {
	// Holidays returns the marked days between from and to, both inclusive
	Holidays(from, to time.Time) ([]Holiday, error)
}

func inRange(date, from, to time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(f) && !d.After(t)
}
