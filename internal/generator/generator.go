package generator

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/username/bbycal/internal/calendar"
	"github.com/username/bbycal/internal/config"
	"github.com/username/bbycal/internal/grid"
	"github.com/username/bbycal/internal/render"
	"go.uber.org/zap"
)

// Result summarizes a generated calendar
type Result struct {
	Path      string
	Weeks     int
	Annotated int
	Duration  time.Duration
}

// Generator builds schedule calendars and saves them
type Generator struct {
	config   *config.Config
	holidays calendar.Source
	logger   *zap.Logger
}

// NewGenerator creates a new generator. holidays may be nil.
func NewGenerator(cfg *config.Config, holidays calendar.Source, logger *zap.Logger) *Generator {
	return &Generator{
		config:   cfg,
		holidays: holidays,
		logger:   logger,
	}
}

// NewHolidaySource builds the configured holiday sources.
// It returns nil when none are configured.
func NewHolidaySource(cfg config.HolidaysConfig, logger *zap.Logger) calendar.Source {
	if len(cfg.Sources) == 0 {
		return nil
	}

	sources := make([]calendar.Source, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		switch src.Type {
		case config.SourceFile:
			logger.Info("Using holiday file", zap.String("path", src.Path))
			sources = append(sources, calendar.NewFileCalendar(src.Path, logger))
		case config.SourceICS:
			logger.Info("Using ics holiday calendar", zap.String("location", src.Path))
			sources = append(sources, calendar.NewICSCalendar(src.Path, cfg.GetCacheTTL(), logger))
		default:
			logger.Warn("Unknown holiday source type, skipping", zap.String("type", src.Type))
		}
	}

	return calendar.NewCompositeCalendar(logger, sources...)
}

// RenderOptions converts the render section of the config
func RenderOptions(rc config.RenderConfig) render.Options {
	return render.Options{
		HeaderShading:          rc.HeaderShading,
		IncludeOverflowShading: rc.IncludeOverflowShading,
		TimeSlotLines:          rc.TimeSlotLines,
		TimeSlotTemplate:       rc.TimeSlotTemplate,
		Font: render.Font{
			Name: rc.Font.Name,
			Size: rc.Font.Size,
			Bold: rc.Font.Bold,
			File: rc.Font.File,
		},
		ShadeColor:      rc.ShadeColor,
		HeaderRowHeight: rc.HeaderRowHeight,
		DayRowHeight:    rc.DayRowHeight,
	}
}

// Grid builds the month grid and annotates it with holidays
func (g *Generator) Grid(year int, month time.Month) (*grid.MonthGrid, int, error) {
	mg, err := grid.Build(year, month)
	if err != nil {
		return nil, 0, err
	}

	if g.holidays == nil {
		return mg, 0, nil
	}

	from, to := mg.Span()
	holidays, err := g.holidays.Holidays(from, to)
	if err != nil {
		// Holidays are decoration; the schedule is still usable without them
		g.logger.Warn("Failed to load holidays", zap.Error(err))
		return mg, 0, nil
	}

	annotated := 0
	for _, h := range holidays {
		if mg.Annotate(h.Date, h.Note()) {
			annotated++
		}
	}

	g.logger.Debug("Holidays applied",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("annotated", annotated))

	return mg, annotated, nil
}

// Generate renders the calendar for the month and saves it to the output directory
func (g *Generator) Generate(year int, month time.Month) (*Result, error) {
	start := time.Now()

	g.logger.Info("Generating calendar",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.String("format", g.config.Output.Format))

	mg, annotated, err := g.Grid(year, month)
	if err != nil {
		return nil, err
	}

	renderer, err := render.New(g.config.Output.Format, g.logger)
	if err != nil {
		return nil, err
	}

	sheet := render.Layout(mg, RenderOptions(g.config.Render))

	var buf bytes.Buffer
	if err := renderer.Render(&buf, sheet); err != nil {
		return nil, fmt.Errorf("failed to render calendar: %w", err)
	}

	dir := g.config.Output.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, grid.FileName(g.config.Output.Prefix, year, month, renderer.Extension()))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to save calendar: %w", err)
	}

	result := &Result{
		Path:      path,
		Weeks:     len(mg.Weeks),
		Annotated: annotated,
		Duration:  time.Since(start),
	}

	g.logger.Info("Calendar saved",
		zap.String("path", path),
		zap.Int("weeks", result.Weeks),
		zap.Int("annotated", annotated),
		zap.Int("bytes", buf.Len()),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// Preview writes a terminal rendering of the month to w
func (g *Generator) Preview(year int, month time.Month, w io.Writer) error {
	mg, _, err := g.Grid(year, month)
	if err != nil {
		return err
	}

	sheet := render.Layout(mg, RenderOptions(g.config.Render))
	return (&render.TerminalRenderer{}).Render(w, sheet)
}
