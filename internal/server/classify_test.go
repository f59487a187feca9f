package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

func postClassify(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/classify", &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeClassify(t *testing.T, rec *httptest.ResponseRecorder) classifyResponse {
	t.Helper()

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var resp classifyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestClassify_SingleHand(t *testing.T) {
	s := New(Config{})

	tests := []struct {
		name string
		hand detector.HandLandmarks
		want gesture.Label
	}{
		{"thumbs up", detector.ThumbsUpLandmarks(), gesture.LabelThumbsUp},
		{"fist", detector.FistLandmarks(), gesture.LabelFist},
		{"open palm", detector.OpenPalmLandmarks(), gesture.LabelOpenPalm},
		{"peace", detector.PeaceLandmarks(), gesture.LabelPeace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postClassify(t, s, map[string]any{"landmarks": tt.hand.Pose(0, 0)})
			resp := decodeClassify(t, rec)

			if resp.Label != tt.want {
				t.Errorf("label = %q, want %q", resp.Label, tt.want)
			}
			if len(resp.Hands) != 1 {
				t.Errorf("expected 1 hand result, got %d", len(resp.Hands))
			}
		})
	}

	t.Run("reports intermediate signals", func(t *testing.T) {
		pose := detector.SyntheticPose([4]bool{true, true, false, false}, false)
		resp := decodeClassify(t, postClassify(t, s, map[string]any{"landmarks": pose}))

		want := gesture.FingerStates{Index: true, Middle: true}
		if resp.Fingers != want {
			t.Errorf("fingers = %+v, want %+v", resp.Fingers, want)
		}
		if resp.Label != gesture.LabelPeace {
			t.Errorf("label = %q, want Peace", resp.Label)
		}
	})
}

func TestClassify_MultipleHands(t *testing.T) {
	s := New(Config{})

	t.Run("last hand wins", func(t *testing.T) {
		body := map[string]any{"hands": []detector.Pose{
			detector.OpenPalmLandmarks().Pose(0, 0),
			detector.FistLandmarks().Pose(0, 0),
		}}
		resp := decodeClassify(t, postClassify(t, s, body))

		if resp.Label != gesture.LabelFist {
			t.Errorf("label = %q, want Fist", resp.Label)
		}
		if len(resp.Hands) != 2 || resp.Hands[0].Label != gesture.LabelOpenPalm {
			t.Errorf("unexpected per-hand results %+v", resp.Hands)
		}
	})

	t.Run("empty list is no hand", func(t *testing.T) {
		resp := decodeClassify(t, postClassify(t, s, `{"hands": []}`))

		if resp.Label != gesture.LabelNoHand {
			t.Errorf("label = %q, want No Hand", resp.Label)
		}
	})
}

func TestClassify_InvalidRequests(t *testing.T) {
	s := New(Config{})

	tests := []struct {
		name    string
		body    any
		wantMsg string
	}{
		{"invalid JSON", "{not json", "Invalid request body"},
		{"missing landmarks", `{}`, "landmarks or hands is required"},
		{"too few landmarks", map[string]any{"landmarks": make(detector.Pose, 20)}, "expected 21 landmarks, got 20"},
		{"too many landmarks", map[string]any{"landmarks": make(detector.Pose, 22)}, "got 22"},
		{"bad second hand", map[string]any{"hands": []detector.Pose{make(detector.Pose, 21), make(detector.Pose, 4)}}, "hand 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postClassify(t, s, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}

			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if !strings.Contains(resp.Error, tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", resp.Error, tt.wantMsg)
			}
		})
	}

	t.Run("only allows POST", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/classify", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
		}
	})
}

func TestClassify_UsesConfiguredThresholds(t *testing.T) {
	th := gesture.DefaultThresholds()
	th.VerticalMargin = 0.2
	s := New(Config{Classifier: gesture.NewClassifier(th)})

	pose := detector.SyntheticPose([4]bool{true, true, true, true}, true)
	resp := decodeClassify(t, postClassify(t, s, map[string]any{"landmarks": pose}))

	if resp.Label != gesture.LabelThumbsUp {
		t.Errorf("label = %q, want Thumbs Up with raised vertical margin", resp.Label)
	}
}
