package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Format != FormatDOCX {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, FormatDOCX)
	}
	if cfg.Output.Prefix != "BBYCAL" {
		t.Errorf("Output.Prefix = %q, want BBYCAL", cfg.Output.Prefix)
	}
	if cfg.Render.TimeSlotLines != 2 {
		t.Errorf("Render.TimeSlotLines = %d, want 2", cfg.Render.TimeSlotLines)
	}
	if cfg.Render.Font.Name != "Calibri" || cfg.Render.Font.Size != 9.5 || !cfg.Render.Font.Bold {
		t.Errorf("Render.Font = %+v, want bold Calibri 9.5", cfg.Render.Font)
	}
	if !cfg.Render.IncludeOverflowShading {
		t.Error("Render.IncludeOverflowShading = false, want true")
	}
	if cfg.Render.HeaderShading != HeaderShadingAll {
		t.Errorf("Render.HeaderShading = %q, want %q", cfg.Render.HeaderShading, HeaderShadingAll)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bbycal.yaml")
	content := `
output:
  dir: out
  format: png
render:
  header_shading: current
  include_overflow_shading: false
  time_slot_lines: 3
  font:
    name: Arial
    size: 11
holidays:
  cache_ttl: 1h
  sources:
    - type: file
      path: holidays.txt
    - type: ics
      path: https://example.com/holidays.ics
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Dir != "out" || cfg.Output.Format != FormatPNG {
		t.Errorf("Output = %+v", cfg.Output)
	}
	// Unset keys keep their defaults
	if cfg.Output.Prefix != "BBYCAL" {
		t.Errorf("Output.Prefix = %q, want default", cfg.Output.Prefix)
	}
	if cfg.Render.HeaderShading != HeaderShadingCurrent || cfg.Render.IncludeOverflowShading {
		t.Errorf("Render shading = %q/%v", cfg.Render.HeaderShading, cfg.Render.IncludeOverflowShading)
	}
	if cfg.Render.TimeSlotLines != 3 || cfg.Render.Font.Name != "Arial" || cfg.Render.Font.Size != 11 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if len(cfg.Holidays.Sources) != 2 || cfg.Holidays.Sources[1].Type != SourceICS {
		t.Errorf("Holidays.Sources = %+v", cfg.Holidays.Sources)
	}
	if cfg.Holidays.GetCacheTTL() != time.Hour {
		t.Errorf("GetCacheTTL() = %v, want 1h", cfg.Holidays.GetCacheTTL())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BBYCAL_OUTPUT_FORMAT", "png")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Format != FormatPNG {
		t.Errorf("Output.Format = %q, want png from environment", cfg.Output.Format)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("output:\n  format: pdf\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want invalid format error")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Output: OutputConfig{Dir: ".", Prefix: "BBYCAL", Format: FormatDOCX},
			Render: RenderConfig{
				HeaderShading:    HeaderShadingAll,
				TimeSlotLines:    2,
				TimeSlotTemplate: "____:____",
				Font:             FontConfig{Name: "Calibri", Size: 9.5, Bold: true},
				ShadeColor:       "D3D3D3",
				HeaderRowHeight:  0.25,
				DayRowHeight:     0.5,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown format", func(c *Config) { c.Output.Format = "pdf" }, true},
		{"empty prefix", func(c *Config) { c.Output.Prefix = "" }, true},
		{"bad header shading", func(c *Config) { c.Render.HeaderShading = "some" }, true},
		{"negative time slots", func(c *Config) { c.Render.TimeSlotLines = -1 }, true},
		{"zero time slots", func(c *Config) { c.Render.TimeSlotLines = 0 }, false},
		{"zero font size", func(c *Config) { c.Render.Font.Size = 0 }, true},
		{"bad color", func(c *Config) { c.Render.ShadeColor = "grey" }, true},
		{"hash color", func(c *Config) { c.Render.ShadeColor = "#d3d3d3" }, false},
		{"zero row height", func(c *Config) { c.Render.DayRowHeight = 0 }, true},
		{"unknown source type", func(c *Config) {
			c.Holidays.Sources = []SourceConfig{{Type: "api", Path: "x"}}
		}, true},
		{"source without path", func(c *Config) {
			c.Holidays.Sources = []SourceConfig{{Type: SourceFile}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetCacheTTL_Fallback(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 24 * time.Hour},
		{"garbage", 24 * time.Hour},
		{"30m", 30 * time.Minute},
	}
	for _, tt := range tests {
		c := HolidaysConfig{CacheTTL: tt.value}
		if got := c.GetCacheTTL(); got != tt.want {
			t.Errorf("GetCacheTTL(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
