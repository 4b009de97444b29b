// Package reference keeps past analyses and finds the one closest to a
// new article, so near-duplicates can skip extraction.
package reference

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/synonym"
)

const (
	// DefaultMaxRecords caps the store; the oldest records are evicted first
	DefaultMaxRecords = 100

	// StoreVersion is written to the store file
	StoreVersion = 1

	maxTextRunes = 2000
	regionFloor  = 0.75
	placeFloor   = 0.70
)

// Match is the best record for a text and its similarity score
type Match struct {
	Record model.ReferenceRecord
	Score  float64
}

type storeFile struct {
	Version int                     `json:"version"`
	Records []model.ReferenceRecord `json:"records"`
}

// Store holds reference records in memory and, when it has a path,
// mirrors them to a JSON file after every change
type Store struct {
	mu         sync.RWMutex
	path       string
	maxRecords int
	records    []model.ReferenceRecord // Oldest first
	synonyms   *synonym.Table
	now        func() time.Time
	newID      func() string
	logger     *zap.Logger
}

// Option configures a Store
type Option func(*Store)

// WithMaxRecords overrides the record cap
func WithMaxRecords(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxRecords = n
		}
	}
}

// WithSynonyms sets the table used to spot country names in new text
func WithSynonyms(t *synonym.Table) Option {
	return func(s *Store) {
		if t != nil {
			s.synonyms = t
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDFunc(f func() string) Option {
	return func(s *Store) {
		if f != nil {
			s.newID = f
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open loads the store at path. A missing file is an empty store; an empty
// path keeps records in memory only.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:       path,
		maxRecords: DefaultMaxRecords,
		synonyms:   synonym.Default(),
		now:        time.Now,
		newID:      uuid.NewString,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reference store: %w", err)
	}

	records, err := decodeStore(data)
	if err != nil {
		return nil, fmt.Errorf("reference store %s: %w", path, err)
	}
	s.records = records
	s.evict()
	s.logger.Debug("reference store loaded", zap.String("path", path), zap.Int("records", len(s.records)))
	return s, nil
}

// NewMemoryStore returns a store that is never written to disk
func NewMemoryStore(opts ...Option) *Store {
	s, _ := Open("", opts...)
	return s
}

// decodeStore accepts the versioned object and the older bare array
func decodeStore(data []byte) ([]model.ReferenceRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var records []model.ReferenceRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode legacy records: %w", err)
		}
		return records, nil
	}

	var f storeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if f.Version > StoreVersion {
		return nil, fmt.Errorf("unsupported store version %d (max %d)", f.Version, StoreVersion)
	}
	return f.Records, nil
}

// FindSimilar returns the highest-scoring record whose score exceeds
// RelevanceFloor. Equal scores go to the newer record.
func (s *Store) FindSimilar(text string) (*Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, false
	}

	q := newQuery(text, s.synonyms)
	now := s.now()

	var best *Match
	for i := range s.records {
		rec := &s.records[i]
		score := q.score(rec, now)
		if score <= RelevanceFloor {
			continue
		}
		if best == nil || score > best.Score || (score == best.Score && !rec.CreatedAt.Before(best.Record.CreatedAt)) {
			best = &Match{Record: *rec, Score: score}
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// Score returns the similarity of text to rec
func (s *Store) Score(text string, rec model.ReferenceRecord) float64 {
	return newQuery(text, s.synonyms).score(&rec, s.now())
}

// Save records an accepted analysis. Only regions with confidence of at
// least 0.75 and places of at least 0.70 are kept; when the set has a
// selection, only selected targets are considered.
func (s *Store) Save(text string, set *model.GeoTargetSet, markers []model.Marker, design *model.DesignHints) (*model.ReferenceRecord, error) {
	if set == nil {
		return nil, errors.New("nothing to save: set is nil")
	}

	rec := model.ReferenceRecord{
		ID:        s.newID(),
		Text:      truncateRunes(text, maxTextRunes),
		Keywords:  WeightedKeywords(text),
		Markers:   append([]model.Marker(nil), markers...),
		Design:    design,
		CreatedAt: s.now().UTC(),
	}
	rec.Regions, rec.Places = accepted(set)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.records
	s.records = append(append([]model.ReferenceRecord(nil), prev...), rec)
	s.evict()
	if err := s.persist(); err != nil {
		s.records = prev
		return nil, err
	}

	s.logger.Debug("reference saved",
		zap.String("id", rec.ID),
		zap.Int("regions", len(rec.Regions)),
		zap.Int("places", len(rec.Places)))
	return &rec, nil
}

func accepted(set *model.GeoTargetSet) (regions, places []model.GeoTarget) {
	selected := make(map[string]bool, len(set.SelectedIDs))
	for _, id := range set.SelectedIDs {
		selected[id] = true
	}

	for _, t := range set.Targets {
		if len(selected) > 0 && !selected[t.ID] {
			continue
		}
		switch {
		case t.Kind == model.KindRegion && t.Confidence >= regionFloor:
			regions = append(regions, t)
		case t.Kind == model.KindPlace && t.Confidence >= placeFloor:
			places = append(places, t)
		}
	}
	return regions, places
}

// evict drops the oldest records beyond the cap. Callers hold the lock.
func (s *Store) evict() {
	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].CreatedAt.Before(s.records[j].CreatedAt)
	})
	if over := len(s.records) - s.maxRecords; over > 0 {
		s.records = append([]model.ReferenceRecord(nil), s.records[over:]...)
	}
}

// List returns the records, newest first
func (s *Store) List() []model.ReferenceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ReferenceRecord, len(s.records))
	for i, rec := range s.records {
		out[len(s.records)-1-i] = rec
	}
	return out
}

// Len returns the number of records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear removes every record
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.records
	s.records = nil
	if err := s.persist(); err != nil {
		s.records = prev
		return err
	}
	return nil
}

// persist writes the store to a temp file and renames it into place.
// Callers hold the lock.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}

	records := s.records
	if records == nil {
		records = []model.ReferenceRecord{}
	}
	data, err := json.MarshalIndent(storeFile{Version: StoreVersion, Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal reference store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create reference dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".references-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write reference store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close reference store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename reference store: %w", err)
	}
	return nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
