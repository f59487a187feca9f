package capture

import (
	"errors"
	"testing"
)

func TestNewCamera(t *testing.T) {
	tests := []struct {
		name       string
		deviceID   int
		width      int
		height     int
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "default device",
			deviceID:   0,
			width:      960,
			height:     540,
			wantWidth:  960,
			wantHeight: 540,
		},
		{
			name:       "custom resolution",
			deviceID:   1,
			width:      1280,
			height:     720,
			wantWidth:  1280,
			wantHeight: 720,
		},
		{
			name:       "zero size falls back to defaults",
			deviceID:   2,
			wantWidth:  DefaultWidth,
			wantHeight: DefaultHeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.deviceID, tt.width, tt.height)

			if cam == nil {
				t.Fatal("NewCamera returned nil")
			}

			if got := cam.FPS(); got != DefaultFPS {
				t.Errorf("FPS() = %d, want %d (default)", got, DefaultFPS)
			}

			w, h := cam.Size()
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("Size() = %dx%d, want %dx%d", w, h, tt.wantWidth, tt.wantHeight)
			}

			if cam.IsOpen() {
				t.Error("camera should not be running initially")
			}
		})
	}
}

func TestCamera_SetFPS(t *testing.T) {
	cam := NewCamera(0, 0, 0)

	tests := []struct {
		name    string
		fps     int
		wantFPS int
	}{
		{"set to 10", 10, 10},
		{"set to 15", 15, 15},
		{"zero is ignored", 0, 15},
		{"negative is ignored", -5, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam.SetFPS(tt.fps)
			if got := cam.FPS(); got != tt.wantFPS {
				t.Errorf("FPS() = %d, want %d", got, tt.wantFPS)
			}
		})
	}
}

func TestCamera_ReadBeforeOpen(t *testing.T) {
	cam := NewCamera(0, 0, 0)

	_, err := cam.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want %v", err, ErrCameraNotOpen)
	}

	if err := cam.Close(); err != nil {
		t.Errorf("Close() on unopened camera error = %v", err)
	}
}
