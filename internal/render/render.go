// Package render turns a month grid into a printable artifact.
//
// Layout computes everything the backends need (heading, rows, cell text,
// shading, row heights) so that the DOCX, PNG and terminal renderers only
// translate a Sheet into their own primitives.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/username/bbycal/internal/grid"
	"go.uber.org/zap"
)

// Header shading modes
const (
	ShadeAllHeaders     = "all"
	ShadeCurrentHeaders = "current"
	ShadeNoHeaders      = "none"
)

// Font describes the text style used in table cells
type Font struct {
	Name string
	Size float64 // points
	Bold bool
	File string // TrueType file, png only
}

// Options are the presentation choices applied by Layout
type Options struct {
	HeaderShading          string
	IncludeOverflowShading bool
	TimeSlotLines          int
	TimeSlotTemplate       string
	Font                   Font
	ShadeColor             string  // RRGGBB
	HeaderRowHeight        float64 // inches
	DayRowHeight           float64 // inches
}

// DefaultOptions returns the classic schedule look: grey header row and
// overflow days, two time slots per day, bold Calibri 9.5pt.
func DefaultOptions() Options {
	return Options{
		HeaderShading:          ShadeAllHeaders,
		IncludeOverflowShading: true,
		TimeSlotLines:          2,
		TimeSlotTemplate:       "____:____",
		Font:                   Font{Name: "Calibri", Size: 9.5, Bold: true},
		ShadeColor:             "D3D3D3",
		HeaderRowHeight:        0.25,
		DayRowHeight:           0.5,
	}
}

// Cell is one table cell ready for output
type Cell struct {
	Lines  []string
	Shaded bool
}

// Row is one table row. Height is a minimum, in inches.
type Row struct {
	Header bool
	Height float64
	Cells  [7]Cell
}

// Sheet is the renderer-neutral document: a heading and a 7-column table
type Sheet struct {
	Title      string
	Font       Font
	ShadeColor string
	Rows       []Row
}

// Layout places the grid into a sheet
func Layout(g *grid.MonthGrid, opts Options) *Sheet {
	s := &Sheet{
		Title:      g.Title(),
		Font:       opts.Font,
		ShadeColor: strings.TrimPrefix(opts.ShadeColor, "#"),
		Rows:       make([]Row, 0, len(g.Weeks)+1),
	}

	header := Row{Header: true, Height: opts.HeaderRowHeight}
	for i, h := range g.Header {
		header.Cells[i] = Cell{
			Lines:  []string{h.Label},
			Shaded: shadeHeader(opts.HeaderShading, h),
		}
	}
	s.Rows = append(s.Rows, header)

	for _, week := range g.Weeks {
		row := Row{Height: opts.DayRowHeight}
		for i, day := range week {
			lines := make([]string, 0, 2+opts.TimeSlotLines)
			lines = append(lines, day.Label)
			if day.Note != "" {
				lines = append(lines, day.Note)
			}
			for n := 0; n < opts.TimeSlotLines; n++ {
				lines = append(lines, opts.TimeSlotTemplate)
			}
			row.Cells[i] = Cell{
				Lines:  lines,
				Shaded: opts.IncludeOverflowShading && day.Overflow != grid.OverflowNone,
			}
		}
		s.Rows = append(s.Rows, row)
	}

	return s
}

func shadeHeader(mode string, h grid.HeaderCell) bool {
	switch mode {
	case ShadeAllHeaders:
		return true
	case ShadeCurrentHeaders:
		return !h.Overflow
	default:
		return false
	}
}

// Renderer writes a sheet in a concrete output format
type Renderer interface {
	// Extension returns the file extension without the dot
	Extension() string
	Render(w io.Writer, s *Sheet) error
}

// New returns the renderer for format ("docx", "png" or "terminal")
func New(format string, logger *zap.Logger) (Renderer, error) {
	switch strings.ToLower(format) {
	case "docx":
		return &DOCXRenderer{}, nil
	case "png":
		return NewPNGRenderer(logger), nil
	case "terminal":
		return &TerminalRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
