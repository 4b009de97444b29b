package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/geolens/internal/worker"
)

func TestAnalyzer_ConcurrentInputsUseOwnSessions(t *testing.T) {
	o := newTestOrchestrator(summitExtractor())
	processor := worker.NewBatchProcessor(NewAnalyzer(o, nil), 3)

	inputs := []worker.Input{
		{Text: summitText + " one"},
		{Text: summitText + " two"},
		{Text: summitText + " three"},
		{SourceURL: "https://news.example.org/no-fetcher"},
	}
	results := processor.Process(context.Background(), inputs)

	for i, r := range results[:3] {
		if r.Error != nil {
			t.Errorf("input %d: unexpected error %v", i, r.Error)
			continue
		}
		if len(r.Set.Targets) != 4 {
			t.Errorf("input %d: expected 4 targets, got %d", i, len(r.Set.Targets))
		}
	}
	if results[3].Error == nil {
		t.Error("expected an error for a URL without a fetcher")
	}

	// The parent session is untouched
	if _, err := o.Session(); err == nil {
		t.Error("expected batch runs not to set the parent session")
	}
}

func TestAnalyzer_FetchesURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprintf(w, "<html><body><article><p>%s</p></article></body></html>", summitText)
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, "test-agent", 1<<20, false, "", "", "")
	set, err := NewAnalyzer(newTestOrchestrator(summitExtractor()), fetcher).Analyze(context.Background(), worker.Input{SourceURL: server.URL + "/summit"})
	if err != nil {
		t.Fatal(err)
	}
	if set.SourceURL != server.URL+"/summit" {
		t.Errorf("expected final URL recorded, got %q", set.SourceURL)
	}
}
