package calendar

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/username/bbycal/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour

	// Upper bound for expanding multi-day events
	maxEventDays = 31
)

// ICSCalendar implements Source using an iCalendar feed (local file or URL)
type ICSCalendar struct {
	location   string
	httpClient *http.Client
	logger     *zap.Logger
	cacheTTL   time.Duration

	cacheMu   sync.RWMutex
	cached    []Holiday
	fetchedAt time.Time
}

// NewICSCalendar creates a new ICSCalendar instance
func NewICSCalendar(location string, cacheTTL time.Duration, logger *zap.Logger) *ICSCalendar {
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &ICSCalendar{
		location: location,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Holidays returns the events between from and to
func (c *ICSCalendar) Holidays(from, to time.Time) ([]Holiday, error) {
	all, err := c.load()
	if err != nil {
		return nil, err
	}

	var result []Holiday
	for _, h := range all {
		if inRange(h.Date, from, to) {
			result = append(result, h)
		}
	}
	sortHolidays(result)

	return result, nil
}

func (c *ICSCalendar) load() ([]Holiday, error) {
	c.cacheMu.RLock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.cacheTTL {
		cached := c.cached
		c.cacheMu.RUnlock()
		c.logger.Debug("Using cached ics calendar", zap.String("location", c.location))
		return cached, nil
	}
	c.cacheMu.RUnlock()

	rc, err := c.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	holidays, err := parseICS(rc, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ics calendar %s: %w", c.location, err)
	}
	if holidays == nil {
		holidays = []Holiday{}
	}

	c.cacheMu.Lock()
	c.cached = holidays
	c.fetchedAt = time.Now()
	c.cacheMu.Unlock()

	c.logger.Info("ICS calendar loaded",
		zap.String("location", c.location),
		zap.Int("days", len(holidays)))

	return holidays, nil
}

func (c *ICSCalendar) open() (io.ReadCloser, error) {
	if !isURL(c.location) {
		f, err := os.Open(c.location)
		if err != nil {
			return nil, fmt.Errorf("failed to open ics file: %w", err)
		}
		return f, nil
	}

	c.logger.Debug("Fetching ics calendar", zap.String("url", c.location))

	resp, err := c.httpClient.Get(c.location)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ics calendar: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("ics server returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// ClearCache clears the cache
func (c *ICSCalendar) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cached = nil
	c.fetchedAt = time.Time{}
}

func parseICS(r io.Reader, logger *zap.Logger) ([]Holiday, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, err
	}

	var holidays []Holiday
	for _, event := range cal.Events() {
		start, err := eventStart(event)
		if err != nil {
			logger.Warn("Skipping ics event without start", zap.String("uid", event.Id()), zap.Error(err))
			continue
		}

		name := ""
		if p := event.GetProperty(ics.ComponentPropertySummary); p != nil {
			name = strings.TrimSpace(p.Value)
		}

		first := dateutil.Date(start.Year(), start.Month(), start.Day())
		days := 1
		if end, err := event.GetEndAt(); err == nil && end.After(start) {
			// DTEND of all-day events is exclusive
			last := dateutil.Date(end.Year(), end.Month(), end.Day())
			days = int(last.Sub(first).Hours() / 24)
			if days < 1 {
				days = 1
			}
			if days > maxEventDays {
				days = maxEventDays
			}
		}

		for i := 0; i < days; i++ {
			holidays = append(holidays, Holiday{
				Date: first.AddDate(0, 0, i),
				Kind: KindHoliday,
				Name: name,
			})
		}
	}

	return holidays, nil
}

func eventStart(event *ics.VEvent) (time.Time, error) {
	start, err := event.GetStartAt()
	if err == nil {
		return start, nil
	}
	return event.GetAllDayStartAt()
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
