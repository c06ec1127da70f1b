package calendar

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/username/bbycal/pkg/dateutil"
	"go.uber.org/zap"
)

// FileCalendar implements Source using a local text file
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	data     map[string][]Holiday // key: "YYYY-MM-DD"
	loaded   bool
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string][]Holiday),
	}
}

// Load loads calendar data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	data := make(map[string][]Holiday)
	count := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD kind [name]
		// Example: 2025-12-25 closed Christmas Day
		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 2 {
			fc.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}

		date, err := dateutil.ParseDate(parts[0])
		if err != nil {
			fc.logger.Warn("Failed to parse date", zap.String("date", parts[0]), zap.Error(err))
			continue
		}

		kind, err := ParseKind(parts[1])
		if err != nil {
			fc.logger.Warn("Unknown day kind", zap.String("kind", parts[1]))
			continue
		}

		name := ""
		if len(parts) == 3 {
			name = strings.TrimSpace(parts[2])
		}

		key := dateutil.DateKey(date)
		data[key] = append(data[key], Holiday{
			Date: dateutil.Date(date.Year(), date.Month(), date.Day()),
			Kind: kind,
			Name: name,
		})
		count++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}

	fc.data = data
	fc.loaded = true

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("days", count))

	return nil
}

// Holidays returns the marked days between from and to
func (fc *FileCalendar) Holidays(from, to time.Time) ([]Holiday, error) {
	if !fc.loaded {
		if err := fc.Load(); err != nil {
			return nil, err
		}
	}

	var result []Holiday
	for _, days := range fc.data {
		for _, h := range days {
			if inRange(h.Date, from, to) {
				result = append(result, h)
			}
		}
	}
	sortHolidays(result)

	return result, nil
}

func sortHolidays(hs []Holiday) {
	sort.SliceStable(hs, func(i, j int) bool {
		if !hs[i].Date.Equal(hs[j].Date) {
			return hs[i].Date.Before(hs[j].Date)
		}
		if hs[i].Kind != hs[j].Kind {
			return hs[i].Kind < hs[j].Kind
		}
		return hs[i].Name < hs[j].Name
	})
}
