// Package feed turns RSS and Atom feeds into batch inputs
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/ppiankov/geolens/internal/worker"
)

// minInlineText is the shortest item body analyzed without fetching the link
const minInlineText = 400

// Item is one feed entry
type Item struct {
	Title       string
	Link        string
	Source      string
	Content     string
	PublishedAt time.Time
}

// Reader pulls feeds over HTTP
type Reader struct {
	client    *http.Client
	userAgent string
}

// NewReader creates a reader. A nil client gets a 15 second timeout.
func NewReader(client *http.Client, userAgent string) *Reader {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Reader{client: client, userAgent: userAgent}
}

// Read fetches and parses one feed. Items come back newest first; items
// without a publication date sort last.
func (r *Reader) Read(ctx context.Context, feedURL string) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status: %d %s", resp.StatusCode, resp.Status)
	}
	return Parse(resp.Body)
}

// Parse reads a feed document
func Parse(body io.Reader) ([]Item, error) {
	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		item := Item{
			Title:   strings.TrimSpace(it.Title),
			Link:    strings.TrimSpace(it.Link),
			Source:  strings.TrimSpace(parsed.Title),
			Content: strings.TrimSpace(it.Content),
		}
		if item.Content == "" {
			item.Content = strings.TrimSpace(it.Description)
		}
		if it.PublishedParsed != nil {
			item.PublishedAt = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			item.PublishedAt = *it.UpdatedParsed
		}
		if item.Link == "" && item.Content == "" {
			continue
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	return items, nil
}

// Filter keeps items published at or after since whose title contains any
// keyword. A zero since or an empty keyword list disables that check.
func Filter(items []Item, since time.Time, keywords []string) []Item {
	var lowered []string
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); len(k) >= 3 {
			lowered = append(lowered, k)
		}
	}

	var out []Item
	for _, it := range items {
		if !since.IsZero() && (it.PublishedAt.IsZero() || it.PublishedAt.Before(since)) {
			continue
		}
		if len(lowered) > 0 && !matchesAny(strings.ToLower(it.Title), lowered) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Inputs converts items to batch inputs, keeping at most limit (0 keeps
// all). Items with a full body are analyzed inline; the rest are fetched
// from their link.
func Inputs(items []Item, limit int) []worker.Input {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	inputs := make([]worker.Input, 0, len(items))
	for _, it := range items {
		in := worker.Input{SourceURL: it.Link}
		if len([]rune(it.Content)) >= minInlineText || it.Link == "" {
			in.Text = it.Title + "\n\n" + it.Content
		}
		inputs = append(inputs, in)
	}
	return inputs
}
