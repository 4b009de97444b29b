package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_CanFetch(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			t.Errorf("unexpected request %s", r.URL.Path)
		}
		hits.Add(1)
		_, _ = fmt.Fprint(w, "User-agent: geolens\nDisallow: /private\nCrawl-delay: 2\n\nUser-agent: *\nDisallow: /\n")
	}))
	defer server.Close()

	checker := NewRobotsChecker("geolens/0.1 (+https://example.org)", 5*time.Second)

	tests := []struct {
		path    string
		allowed bool
	}{
		{"/news/story", true},
		{"/private/page", false},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			allowed, delay, err := checker.CanFetch(context.Background(), server.URL+tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if allowed != tt.allowed {
				t.Errorf("CanFetch(%q) = %v, want %v", tt.path, allowed, tt.allowed)
			}
			if delay != 2*time.Second {
				t.Errorf("expected 2s crawl delay, got %v", delay)
			}
		})
	}

	if hits.Load() != 1 {
		t.Errorf("expected robots.txt fetched once, got %d", hits.Load())
	}

	checker.Clear()
	checker.IsAllowed(context.Background(), server.URL+"/news")
	if hits.Load() != 2 {
		t.Errorf("expected a refetch after Clear, got %d", hits.Load())
	}
}

func TestRobotsChecker_MissingFileAllows(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	checker := NewRobotsChecker("geolens", 5*time.Second)
	if !checker.IsAllowed(context.Background(), server.URL+"/anything") {
		t.Error("expected a missing robots.txt to allow everything")
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	checker := NewRobotsChecker("geolens", 200*time.Millisecond)
	allowed, _, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/page")
	if err != nil || !allowed {
		t.Errorf("expected allow on fetch failure, got %v %v", allowed, err)
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := map[string]string{
		"geolens/0.1 (+https://example.org)": "geolens",
		"curl":                               "curl",
		"":                                   "",
	}
	for in, want := range tests {
		if got := NormalizeUserAgent(in); got != want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", in, got, want)
		}
	}
}
