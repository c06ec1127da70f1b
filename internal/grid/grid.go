package grid

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/username/bbycal/pkg/dateutil"
)

// ErrInvalidMonth is returned when the month is outside 1..12
var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// DayNames are the column headers, Sunday first
var DayNames = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// Overflow tells which month a day cell belongs to
type Overflow int

const (
	OverflowNone Overflow = iota
	OverflowPrevious
	OverflowNext
)

// HeaderCell is a column header such as "JAN-SUN"
type HeaderCell struct {
	Label    string
	Overflow bool // column precedes the first day of the month
}

// HeaderRow holds the seven column headers
type HeaderRow [7]HeaderCell

// DayCell is a single date slot in the grid
type DayCell struct {
	Label          string
	InCurrentMonth bool
	Day            int
	Month          time.Month
	Year           int
	Overflow       Overflow
	Note           string
}

// Date returns the calendar date shown in the cell
func (c DayCell) Date() time.Time {
	return dateutil.Date(c.Year, c.Month, c.Day)
}

// WeekRow is one Sunday-aligned week
type WeekRow [7]DayCell

// MonthGrid is the full calendar layout for one month
type MonthGrid struct {
	Year   int
	Month  time.Month
	Header HeaderRow
	Weeks  []WeekRow
}

// Abbr returns the upper-case three letter month abbreviation
func Abbr(month time.Month) string {
	return strings.ToUpper(month.String()[:3])
}

// FileName returns the output file name, e.g. BBYCAL_January_2025.docx
func FileName(prefix string, year int, month time.Month, ext string) string {
	return fmt.Sprintf("%s_%s_%d.%s", prefix, month.String(), year, strings.TrimPrefix(ext, "."))
}

// MonthMatrix returns the Sunday-first weeks of the month.
// Days outside the month are 0.
func MonthMatrix(year int, month time.Month) [][7]int {
	offset := dateutil.FirstWeekday(year, month)
	days := dateutil.DaysInMonth(year, month)

	weeks := make([][7]int, 0, 6)
	var week [7]int
	col := offset
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// Build lays out the month as a header row plus week rows, resolving the
// overflow days of the previous and next months.
func Build(year int, month time.Month) (*MonthGrid, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMonth, int(month))
	}

	prevYear, prevMonth := dateutil.PrevMonth(year, month)
	nextYear, nextMonth := dateutil.NextMonth(year, month)
	curAbbr, prevAbbr, nextAbbr := Abbr(month), Abbr(prevMonth), Abbr(nextMonth)

	g := &MonthGrid{Year: year, Month: month}

	offset := dateutil.FirstWeekday(year, month)
	for i, name := range DayNames {
		if i < offset {
			g.Header[i] = HeaderCell{Label: prevAbbr + "-" + name, Overflow: true}
		} else {
			g.Header[i] = HeaderCell{Label: curAbbr + "-" + name}
		}
	}

	matrix := MonthMatrix(year, month)
	prevMatrix := MonthMatrix(prevYear, prevMonth)
	prevLastWeek := prevMatrix[len(prevMatrix)-1]

	g.Weeks = make([]WeekRow, len(matrix))
	for w, week := range matrix {
		filled := 0
		for _, d := range week {
			if d != 0 {
				filled++
			}
		}

		for col, day := range week {
			var cell DayCell
			switch {
			case day == 0 && w == 0:
				cell = DayCell{
					Day:      prevLastWeek[col],
					Month:    prevMonth,
					Year:     prevYear,
					Overflow: OverflowPrevious,
				}
				cell.Label = fmt.Sprintf("%s-%d", prevAbbr, cell.Day)
			case day == 0 && w == len(matrix)-1:
				cell = DayCell{
					Day:      col + 1 - filled,
					Month:    nextMonth,
					Year:     nextYear,
					Overflow: OverflowNext,
				}
				cell.Label = fmt.Sprintf("%s-%d", nextAbbr, cell.Day)
			default:
				cell = DayCell{
					Day:            day,
					Month:          month,
					Year:           year,
					InCurrentMonth: true,
				}
				cell.Label = fmt.Sprintf("%s-%d", curAbbr, day)
			}
			g.Weeks[w][col] = cell
		}
	}

	return g, nil
}

// Title returns the document heading, e.g. "January 2025"
func (g *MonthGrid) Title() string {
	return fmt.Sprintf("%s %d", g.Month.String(), g.Year)
}

// Span returns the first and last dates shown in the grid, overflow included
func (g *MonthGrid) Span() (time.Time, time.Time) {
	if len(g.Weeks) == 0 {
		first := dateutil.Date(g.Year, g.Month, 1)
		return first, first
	}
	last := g.Weeks[len(g.Weeks)-1]
	return g.Weeks[0][0].Date(), last[6].Date()
}

// Annotate attaches a note to the cell showing date. Notes for the same day
// are joined. It reports whether the date is visible in the grid.
func (g *MonthGrid) Annotate(date time.Time, note string) bool {
	for w := range g.Weeks {
		for col := range g.Weeks[w] {
			cell := &g.Weeks[w][col]
			if !dateutil.IsSameDay(cell.Date(), date) {
				continue
			}
			if cell.Note == "" {
				cell.Note = note
			} else if note != "" {
				cell.Note += "; " + note
			}
			return true
		}
	}
	return false
}
