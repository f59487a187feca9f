// Package config loads runtime settings for the gesture recognizer from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const maxFileSize = 1 << 20

// CameraConfig selects the capture device and resolution.
type CameraConfig struct {
	Device int `yaml:"device"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DetectorConfig mirrors detector.Config in file form.
type DetectorConfig struct {
	MaxHands        int     `yaml:"max_hands"`
	ModelComplexity int     `yaml:"model_complexity"`
	MinConfidence   float64 `yaml:"min_detection_confidence"`
	MinTrackingConf float64 `yaml:"min_tracking_confidence"`
	IdleTimeout     string  `yaml:"idle_timeout"` // duration string like "30s"
}

// ThresholdOverrides replaces individual classifier thresholds.
// Nil fields keep the built-in default.
type ThresholdOverrides struct {
	VerticalMargin *float64 `yaml:"vertical_margin,omitempty"`
	RadialMargin   *float64 `yaml:"radial_margin,omitempty"`
	StraightAngle  *float64 `yaml:"straight_angle,omitempty"`
	ThumbFoldRatio *float64 `yaml:"thumb_fold_ratio,omitempty"`
	MinThumbLength *float64 `yaml:"min_thumb_length,omitempty"`
	DirectionAngle *float64 `yaml:"direction_angle,omitempty"`
}

// Config is the complete runtime configuration.
type Config struct {
	Camera     CameraConfig       `yaml:"camera"`
	Detector   DetectorConfig     `yaml:"detector"`
	Thresholds ThresholdOverrides `yaml:"thresholds"`

	// Record is an optional output video path.
	Record string `yaml:"record"`
	// Headless disables the preview window and logs labels instead.
	Headless bool `yaml:"headless"`
	// LogEvery is how many frames pass between headless log lines.
	LogEvery int `yaml:"log_every"`
	// Addr is the HTTP listen address; empty disables the server.
	Addr string `yaml:"addr"`
	// DBPath is the SQLite event log; empty disables it.
	DBPath string `yaml:"db_path"`
	// StaticDir is served at / by the HTTP server when set.
	StaticDir string `yaml:"static_dir"`
	// Tray shows the system tray menu.
	Tray bool `yaml:"tray"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	det := detector.DefaultConfig()
	return &Config{
		Camera: CameraConfig{
			Device: 0,
			Width:  960,
			Height: 540,
		},
		Detector: DetectorConfig{
			MaxHands:        det.MaxHands,
			ModelComplexity: det.ModelComplexity,
			MinConfidence:   det.MinConfidence,
			MinTrackingConf: det.MinTrackingConf,
			IdleTimeout:     det.IdleTimeout.String(),
		},
		LogEvery: 15,
	}
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
// Fields omitted from the file keep their defaults.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .yaml extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		return fmt.Errorf("%w: camera size must be positive, got %dx%d", ErrInvalid, c.Camera.Width, c.Camera.Height)
	}
	if c.Detector.MaxHands < 1 {
		return fmt.Errorf("%w: max_hands must be at least 1, got %d", ErrInvalid, c.Detector.MaxHands)
	}
	if c.Detector.MinConfidence < 0 || c.Detector.MinConfidence > 1 {
		return fmt.Errorf("%w: min_detection_confidence must be between 0 and 1, got %f", ErrInvalid, c.Detector.MinConfidence)
	}
	if c.Detector.MinTrackingConf < 0 || c.Detector.MinTrackingConf > 1 {
		return fmt.Errorf("%w: min_tracking_confidence must be between 0 and 1, got %f", ErrInvalid, c.Detector.MinTrackingConf)
	}
	if c.Detector.IdleTimeout != "" {
		if _, err := time.ParseDuration(c.Detector.IdleTimeout); err != nil {
			return fmt.Errorf("%w: idle_timeout %q: %v", ErrInvalid, c.Detector.IdleTimeout, err)
		}
	}
	if c.LogEvery < 1 {
		return fmt.Errorf("%w: log_every must be at least 1, got %d", ErrInvalid, c.LogEvery)
	}

	t := c.Thresholds
	for name, v := range map[string]*float64{
		"vertical_margin":  t.VerticalMargin,
		"radial_margin":    t.RadialMargin,
		"min_thumb_length": t.MinThumbLength,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %f", ErrInvalid, name, *v)
		}
	}
	for name, v := range map[string]*float64{
		"straight_angle":  t.StraightAngle,
		"direction_angle": t.DirectionAngle,
	} {
		if v != nil && (*v <= 0 || *v > 180) {
			return fmt.Errorf("%w: %s must be in (0, 180], got %f", ErrInvalid, name, *v)
		}
	}
	if t.ThumbFoldRatio != nil && *t.ThumbFoldRatio <= 0 {
		return fmt.Errorf("%w: thumb_fold_ratio must be positive, got %f", ErrInvalid, *t.ThumbFoldRatio)
	}

	return nil
}

// GetIdleTimeout returns the detector idle timeout or its default.
func (c *Config) GetIdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Detector.IdleTimeout)
	if err != nil {
		return detector.DefaultConfig().IdleTimeout
	}
	return d
}

// DetectorConfig returns the settings for the landmark detector.
func (c *Config) DetectorConfig() detector.Config {
	return detector.Config{
		MaxHands:        c.Detector.MaxHands,
		ModelComplexity: c.Detector.ModelComplexity,
		MinConfidence:   c.Detector.MinConfidence,
		MinTrackingConf: c.Detector.MinTrackingConf,
		IdleTimeout:     c.GetIdleTimeout(),
	}
}

// ClassifierThresholds merges the overrides onto gesture.DefaultThresholds.
func (c *Config) ClassifierThresholds() gesture.Thresholds {
	th := gesture.DefaultThresholds()
	o := c.Thresholds
	if o.VerticalMargin != nil {
		th.VerticalMargin = *o.VerticalMargin
	}
	if o.RadialMargin != nil {
		th.RadialMargin = *o.RadialMargin
	}
	if o.StraightAngle != nil {
		th.StraightAngle = *o.StraightAngle
	}
	if o.ThumbFoldRatio != nil {
		th.ThumbFoldRatio = *o.ThumbFoldRatio
	}
	if o.MinThumbLength != nil {
		th.MinThumbLength = *o.MinThumbLength
	}
	if o.DirectionAngle != nil {
		th.DirectionAngle = *o.DirectionAngle
	}
	return th
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
