package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/gesture"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 960, cfg.Camera.Width)
	assert.Equal(t, 540, cfg.Camera.Height)
	assert.Equal(t, 15, cfg.LogEvery)
	assert.Equal(t, gesture.DefaultThresholds(), cfg.ClassifierThresholds())

	det := cfg.DetectorConfig()
	assert.Equal(t, 1, det.MaxHands)
	assert.Equal(t, 0.6, det.MinConfidence)
	assert.Equal(t, 30*time.Second, det.IdleTimeout)
}

func TestLoad(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeFile(t, "mudra.yaml", `
camera:
  device: 2
headless: true
thresholds:
  radial_margin: 0.05
  direction_angle: 40
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 2, cfg.Camera.Device)
		assert.Equal(t, 960, cfg.Camera.Width)
		assert.True(t, cfg.Headless)

		th := cfg.ClassifierThresholds()
		assert.Equal(t, 0.05, th.RadialMargin)
		assert.Equal(t, 40.0, th.DirectionAngle)
		assert.Equal(t, gesture.DefaultVerticalMargin, th.VerticalMargin)
		assert.Equal(t, gesture.DefaultThumbFoldRatio, th.ThumbFoldRatio)
	})

	t.Run("rejects other extensions", func(t *testing.T) {
		path := writeFile(t, "mudra.json", `{}`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ".yaml")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		path := writeFile(t, "bad.yml", "camera: [1, 2")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("file too large", func(t *testing.T) {
		path := writeFile(t, "big.yaml", "# "+strings.Repeat("x", maxFileSize))
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := writeFile(t, "invalid.yaml", "thresholds:\n  straight_angle: 200\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestValidate(t *testing.T) {
	neg := -0.1
	zero := 0.0

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Camera.Width = 0 }},
		{"negative height", func(c *Config) { c.Camera.Height = -1 }},
		{"no hands", func(c *Config) { c.Detector.MaxHands = 0 }},
		{"confidence above one", func(c *Config) { c.Detector.MinConfidence = 1.5 }},
		{"negative tracking", func(c *Config) { c.Detector.MinTrackingConf = -0.5 }},
		{"bad idle timeout", func(c *Config) { c.Detector.IdleTimeout = "soon" }},
		{"log every zero", func(c *Config) { c.LogEvery = 0 }},
		{"negative vertical margin", func(c *Config) { c.Thresholds.VerticalMargin = &neg }},
		{"zero direction angle", func(c *Config) { c.Thresholds.DirectionAngle = &zero }},
		{"zero fold ratio", func(c *Config) { c.Thresholds.ThumbFoldRatio = &zero }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestGetIdleTimeout_FallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detector.IdleTimeout = ""
	assert.Equal(t, 30*time.Second, cfg.GetIdleTimeout())

	cfg.Detector.IdleTimeout = "5s"
	assert.Equal(t, 5*time.Second, cfg.GetIdleTimeout())
}

func TestMarshal_RoundTrip(t *testing.T) {
	ratio := 0.7
	cfg := DefaultConfig()
	cfg.Thresholds.ThumbFoldRatio = &ratio
	cfg.Addr = ":8080"

	data, err := cfg.Marshal()
	require.NoError(t, err)

	path := writeFile(t, "saved.yaml", string(data))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", loaded.Addr)
	assert.Equal(t, 0.7, loaded.ClassifierThresholds().ThumbFoldRatio)
}
