package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Output formats
const (
	FormatDOCX = "docx"
	FormatPNG  = "png"
)

// Header shading modes
const (
	HeaderShadingAll     = "all"
	HeaderShadingCurrent = "current"
	HeaderShadingNone    = "none"
)

// Holiday source types
const (
	SourceFile = "file"
	SourceICS  = "ics"
)

// Config represents application configuration
type Config struct {
	Output   OutputConfig   `mapstructure:"output"`
	Render   RenderConfig   `mapstructure:"render"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Log      LogConfig      `mapstructure:"log"`
}

// OutputConfig controls where and how the calendar is saved
type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Prefix string `mapstructure:"prefix"`
	Format string `mapstructure:"format"` // "docx" or "png"
}

// RenderConfig represents the presentation options of the calendar table
type RenderConfig struct {
	HeaderShading          string     `mapstructure:"header_shading"` // "all", "current" or "none"
	IncludeOverflowShading bool       `mapstructure:"include_overflow_shading"`
	TimeSlotLines          int        `mapstructure:"time_slot_lines"`
	TimeSlotTemplate       string     `mapstructure:"time_slot_template"`
	Font                   FontConfig `mapstructure:"font"`
	ShadeColor             string     `mapstructure:"shade_color"`       // hex RGB without '#'
	HeaderRowHeight        float64    `mapstructure:"header_row_height"` // inches
	DayRowHeight           float64    `mapstructure:"day_row_height"`    // inches
}

// FontConfig represents cell font settings
type FontConfig struct {
	Name string  `mapstructure:"name"`
	Size float64 `mapstructure:"size"` // points
	Bold bool    `mapstructure:"bold"`
	File string  `mapstructure:"file"` // TrueType file used by the png renderer
}

// HolidaysConfig lists the sources of holiday annotations
type HolidaysConfig struct {
	CacheTTL string         `mapstructure:"cache_ttl"`
	Sources  []SourceConfig `mapstructure:"sources"`
}

// SourceConfig represents a single holiday source
type SourceConfig struct {
	Type string `mapstructure:"type"` // "file" or "ics"
	Path string `mapstructure:"path"` // file path, or http(s) URL for ics
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.prefix", "BBYCAL")
	v.SetDefault("output.format", FormatDOCX)

	v.SetDefault("render.header_shading", HeaderShadingAll)
	v.SetDefault("render.include_overflow_shading", true)
	v.SetDefault("render.time_slot_lines", 2)
	v.SetDefault("render.time_slot_template", "____:____")
	v.SetDefault("render.font.name", "Calibri")
	v.SetDefault("render.font.size", 9.5)
	v.SetDefault("render.font.bold", true)
	v.SetDefault("render.shade_color", "D3D3D3")
	v.SetDefault("render.header_row_height", 0.25)
	v.SetDefault("render.day_row_height", 0.5)

	v.SetDefault("holidays.cache_ttl", "24h")

	v.SetDefault("log.level", "info")
}

// Load loads configuration from file. A missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Read environment variables, e.g. BBYCAL_OUTPUT_FORMAT=png
	v.SetEnvPrefix("BBYCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatDOCX, FormatPNG:
	default:
		return fmt.Errorf("output.format must be 'docx' or 'png', got '%s'", c.Output.Format)
	}
	if c.Output.Prefix == "" {
		return fmt.Errorf("output.prefix is required")
	}

	switch c.Render.HeaderShading {
	case HeaderShadingAll, HeaderShadingCurrent, HeaderShadingNone:
	default:
		return fmt.Errorf("render.header_shading must be 'all', 'current' or 'none', got '%s'", c.Render.HeaderShading)
	}
	if c.Render.TimeSlotLines < 0 {
		return fmt.Errorf("render.time_slot_lines must not be negative")
	}
	if c.Render.Font.Size <= 0 {
		return fmt.Errorf("render.font.size must be positive")
	}
	if !isHexColor(c.Render.ShadeColor) {
		return fmt.Errorf("render.shade_color must be a 6-digit hex color, got '%s'", c.Render.ShadeColor)
	}
	if c.Render.HeaderRowHeight <= 0 || c.Render.DayRowHeight <= 0 {
		return fmt.Errorf("render row heights must be positive")
	}

	for i, src := range c.Holidays.Sources {
		switch src.Type {
		case SourceFile, SourceICS:
		default:
			return fmt.Errorf("holidays.sources[%d].type must be 'file' or 'ics', got '%s'", i, src.Type)
		}
		if src.Path == "" {
			return fmt.Errorf("holidays.sources[%d].path is required", i)
		}
	}

	return nil
}

// GetCacheTTL returns cache TTL duration
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Output.Dir = os.ExpandEnv(c.Output.Dir)
	c.Log.File = os.ExpandEnv(c.Log.File)
	c.Render.Font.File = os.ExpandEnv(c.Render.Font.File)
	for i := range c.Holidays.Sources {
		c.Holidays.Sources[i].Path = os.ExpandEnv(c.Holidays.Sources[i].Path)
	}
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
