package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/store"
)

func setupEventsServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, label := range []string{"Fist", "Peace", "Fist", "No Hand"} {
		e := &store.Event{Label: label, Thumb: "folded", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := st.Events().Create(e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	return New(Config{Store: st}), st
}

func TestEvents_List(t *testing.T) {
	s, _ := setupEventsServer(t)

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantFirst string
	}{
		{"all events newest first", "", 4, "No Hand"},
		{"limited", "?limit=2", 2, "No Hand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/events"+tt.query, nil)
			rec := httptest.NewRecorder()

			s.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
			}

			var resp struct {
				Events []store.Event `json:"events"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp.Events) != tt.wantCount {
				t.Fatalf("expected %d events, got %d", tt.wantCount, len(resp.Events))
			}
			if resp.Events[0].Label != tt.wantFirst {
				t.Errorf("first event = %q, want %q", resp.Events[0].Label, tt.wantFirst)
			}
		})
	}

	t.Run("rejects bad limit", func(t *testing.T) {
		for _, q := range []string{"?limit=abc", "?limit=0", "?limit=-3"} {
			req := httptest.NewRequest(http.MethodGet, "/api/events"+q, nil)
			rec := httptest.NewRecorder()

			s.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected status %d, got %d", q, http.StatusBadRequest, rec.Code)
			}
		}
	})
}

func TestEvents_Stats(t *testing.T) {
	s, _ := setupEventsServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/events/stats", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp struct {
		Counts map[string]int `json:"counts"`
		Total  int            `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 4 {
		t.Errorf("total = %d, want 4", resp.Total)
	}
	if resp.Counts["Fist"] != 2 || resp.Counts["Peace"] != 1 || resp.Counts["No Hand"] != 1 {
		t.Errorf("unexpected counts %v", resp.Counts)
	}
}

func TestEvents_Prune(t *testing.T) {
	s, st := setupEventsServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/events?before=2026-03-01T12:02:00Z", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Deleted != 2 {
		t.Errorf("deleted = %d, want 2", resp.Deleted)
	}

	remaining, _ := st.Events().List(0)
	if len(remaining) != 2 {
		t.Errorf("expected 2 remaining events, got %d", len(remaining))
	}

	t.Run("requires timestamp", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/events", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}

func TestEvents_MethodNotAllowed(t *testing.T) {
	s, _ := setupEventsServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/events"},
		{http.MethodDelete, "/api/events/stats"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected status %d, got %d", tc.method, tc.path, http.StatusMethodNotAllowed, rec.Code)
		}
	}
}
