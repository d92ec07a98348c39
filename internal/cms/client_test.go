package cms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dholerasite/internal/provider"
)

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method: got %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/pricing" {
			t.Errorf("path: got %q, want /api/pricing", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("accept: got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"heading":{"tag":"h2","text":"Prices"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second)
	body, err := c.Fetch(context.Background(), "/api/pricing")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != `{"heading":{"tag":"h2","text":"Prices"}}` {
		t.Errorf("body: got %s", body)
	}
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
		{"forbidden", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"title":"ignored"}`))
			}))
			defer srv.Close()

			_, err := New(srv.URL, time.Second).Fetch(context.Background(), "/api/gallery")
			if !errors.Is(err, provider.ErrContentUnavailable) {
				t.Errorf("err: got %v, want ErrContentUnavailable", err)
			}
		})
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).Fetch(context.Background(), "/api/team-section")
	if !errors.Is(err, provider.ErrContentUnavailable) {
		t.Errorf("err: got %v, want ErrContentUnavailable", err)
	}
}

func TestFetchWithoutOrigin(t *testing.T) {
	c := New("", 0)
	_, err := c.Fetch(context.Background(), "/api/contact")
	if !errors.Is(err, provider.ErrContentUnavailable) {
		t.Errorf("err: got %v, want ErrContentUnavailable", err)
	}
	if c.http.Timeout != DefaultTimeout {
		t.Errorf("timeout: got %v, want %v", c.http.Timeout, DefaultTimeout)
	}
}
