package calendar

import (
	"time"

	"github.com/username/bbycal/pkg/dateutil"
	"go.uber.org/zap"
)

// CompositeCalendar merges several sources.
// A failing source is logged and skipped.
type CompositeCalendar struct {
	sources []Source
	logger  *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(logger *zap.Logger, sources ...Source) *CompositeCalendar {
	return &CompositeCalendar{
		sources: sources,
		logger:  logger,
	}
}

// Len returns the number of merged sources
func (cc *CompositeCalendar) Len() int {
	return len(cc.sources)
}

// Holidays returns the marked days of every source, duplicates removed
func (cc *CompositeCalendar) Holidays(from, to time.Time) ([]Holiday, error) {
	seen := make(map[string]bool)
	var result []Holiday

	for i, src := range cc.sources {
		hs, err := src.Holidays(from, to)
		if err != nil {
			cc.logger.Warn("Holiday source failed, skipping",
				zap.Int("source", i),
				zap.Time("from", from),
				zap.Time("to", to),
				zap.Error(err))
			continue
		}

		for _, h := range hs {
			key := dateutil.DateKey(h.Date) + "|" + h.Kind.String() + "|" + h.Name
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, h)
		}
	}
	sortHolidays(result)

	return result, nil
}
