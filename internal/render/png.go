package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	pixelsPerInch = 96

	pngMargin    = 0.5 // inches
	pngColumnW   = 1.07
	pngCellPad   = 4.0 // pixels
	pngLineSpace = 1.25
)

// PNGRenderer draws the sheet as a Letter-width raster image
type PNGRenderer struct {
	logger *zap.Logger
}

// NewPNGRenderer creates a new PNGRenderer
func NewPNGRenderer(logger *zap.Logger) *PNGRenderer {
	return &PNGRenderer{logger: logger}
}

// Extension returns "png"
func (r *PNGRenderer) Extension() string {
	return "png"
}

// Render draws the sheet and writes it to w as PNG
func (r *PNGRenderer) Render(w io.Writer, s *Sheet) error {
	face := r.face(s.Font)
	lineH := math.Ceil(float64(face.Metrics().Height.Ceil()) * pngLineSpace)

	margin := pngMargin * pixelsPerInch
	colW := math.Round(pngColumnW * pixelsPerInch)
	titleH := 3 * lineH

	heights := make([]float64, len(s.Rows))
	tableH := 0.0
	for i, row := range s.Rows {
		h := row.Height * pixelsPerInch
		for _, cell := range row.Cells {
			if need := float64(len(cell.Lines))*lineH + 2*pngCellPad; need > h {
				h = need
			}
		}
		heights[i] = math.Ceil(h)
		tableH += heights[i]
	}

	width := int(2*margin + 7*colW)
	height := int(2*margin + titleH + tableH)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(s.Title, margin, margin+lineH, 0, 0)

	y := margin + titleH
	for i, row := range s.Rows {
		for col, cell := range row.Cells {
			x := margin + float64(col)*colW

			if cell.Shaded {
				dc.SetHexColor("#" + s.ShadeColor)
				dc.DrawRectangle(x, y, colW, heights[i])
				dc.Fill()
			}

			dc.SetRGB(0, 0, 0)
			dc.SetLineWidth(1)
			dc.DrawRectangle(x, y, colW, heights[i])
			dc.Stroke()

			for n, line := range cell.Lines {
				text := fitString(dc, line, colW-2*pngCellPad)
				dc.DrawString(text, x+pngCellPad, y+pngCellPad+float64(n+1)*lineH-lineH/4)
			}
		}
		y += heights[i]
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func (r *PNGRenderer) face(f Font) font.Face {
	if f.File == "" {
		return basicfont.Face7x13
	}

	points := f.Size * pixelsPerInch / 72
	face, err := gg.LoadFontFace(f.File, points)
	if err != nil {
		r.logger.Warn("Failed to load font file, using built-in font",
			zap.String("file", f.File),
			zap.Error(err))
		return basicfont.Face7x13
	}
	return face
}

// fitString trims s so that it fits into width pixels
func fitString(dc *gg.Context, s string, width float64) string {
	if w, _ := dc.MeasureString(s); w <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimSpace(string(runes)) + ".."
		if w, _ := dc.MeasureString(candidate); w <= width {
			return candidate
		}
	}
	return ""
}
