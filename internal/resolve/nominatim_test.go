package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/geolens/internal/worker"
)

func newTestGeocoder(url string) *NominatimGeocoder {
	return NewNominatimGeocoder(url, "geolens-test", time.Second, worker.NewLimiter(0, 1))
}

func TestNominatimGeocoder_ResolveName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Timbuktu, Mali" || q.Get("format") != "jsonv2" || q.Get("limit") != "1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "geolens-test" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"16.7735","lon":"-3.0074","display_name":"Tombouctou, Mali"}]`))
	}))
	defer server.Close()

	loc, err := newTestGeocoder(server.URL).ResolveName(context.Background(), "Timbuktu", "Mali")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc == nil || loc.Lon != -3.0074 || loc.Lat != 16.7735 || loc.CountryCode != "MLI" {
		t.Errorf("unexpected location %+v", loc)
	}
}

func TestNominatimGeocoder_NoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	loc, err := newTestGeocoder(server.URL).ResolveName(context.Background(), "Nowheresville", "")
	if err != nil || loc != nil {
		t.Errorf("expected nil, nil; got %+v, %v", loc, err)
	}
}

func TestNominatimGeocoder_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "boom"},
		{"bad json", http.StatusOK, "not json"},
		{"bad latitude", http.StatusOK, `[{"lat":"north","lon":"1"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			if _, err := newTestGeocoder(server.URL).ResolveName(context.Background(), "Somewhere", ""); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNominatimGeocoder_EmptyName(t *testing.T) {
	loc, err := newTestGeocoder("http://127.0.0.1:1").ResolveName(context.Background(), "  ", "")
	if err != nil || loc != nil {
		t.Errorf("expected empty name to skip the request, got %+v, %v", loc, err)
	}
}
