// Package synonym maps entity names and their alternate spellings to
// standardized 3-letter codes.
package synonym

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/geolens/internal/model"
)

// MatchKind records how a lookup matched
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchCaseInsensitive
	MatchAlias
)

func (m MatchKind) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchCaseInsensitive:
		return "case-insensitive"
	case MatchAlias:
		return "alias"
	default:
		return "none"
	}
}

// Table holds canonical entries and an alias index derived from them once
type Table struct {
	entries []model.SynonymEntry
	exact   map[string]int // canonical name as written -> entry index
	folded  map[string]int // folded canonical name -> entry index
	aliases map[string]int // folded alias -> entry index
}

// New builds a table. An alias claimed by two different entries is an error.
func New(entries []model.SynonymEntry) (*Table, error) {
	t := &Table{
		entries: make([]model.SynonymEntry, 0, len(entries)),
		exact:   make(map[string]int, len(entries)),
		folded:  make(map[string]int, len(entries)),
		aliases: make(map[string]int),
	}

	for _, e := range entries {
		canon := strings.TrimSpace(e.Canonical)
		if canon == "" {
			return nil, fmt.Errorf("synonym entry without canonical name")
		}
		if len(e.Entities) == 0 {
			return nil, fmt.Errorf("synonym %q has no entities", canon)
		}
		if _, dup := t.exact[canon]; dup {
			return nil, fmt.Errorf("duplicate synonym entry %q", canon)
		}

		codes := make([]string, 0, len(e.Entities))
		for _, c := range e.Entities {
			codes = append(codes, strings.ToUpper(strings.TrimSpace(c)))
		}
		class := e.Class
		if class == "" {
			class = model.ClassCountry
		}

		idx := len(t.entries)
		t.entries = append(t.entries, model.SynonymEntry{
			Canonical: canon,
			Entities:  codes,
			Class:     class,
			Aliases:   append([]string(nil), e.Aliases...),
		})
		t.exact[canon] = idx
		t.folded[stripArticle(Fold(canon))] = idx

		for _, a := range e.Aliases {
			key := stripArticle(Fold(a))
			if key == "" {
				continue
			}
			if prev, ok := t.aliases[key]; ok && prev != idx {
				return nil, fmt.Errorf("alias %q claimed by %q and %q", a, t.entries[prev].Canonical, canon)
			}
			t.aliases[key] = idx
		}
	}

	return t, nil
}

// Default returns the built-in table
func Default() *Table {
	t, err := New(builtinEntries)
	if err != nil {
		// Built-in data is fixed at compile time
		panic(fmt.Sprintf("synonym: built-in table: %v", err))
	}
	return t
}

// LoadFile builds a table from the built-in entries plus a list of extra
// entries, read as YAML for .yaml/.yml files and JSON otherwise. Extra
// entries replace built-ins with the same canonical name.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read synonyms: %w", err)
	}
	var extra []model.SynonymEntry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &extra)
	default:
		err = json.Unmarshal(data, &extra)
	}
	if err != nil {
		return nil, fmt.Errorf("parse synonyms: %w", err)
	}

	override := make(map[string]bool, len(extra))
	for _, e := range extra {
		override[e.Canonical] = true
	}
	merged := make([]model.SynonymEntry, 0, len(builtinEntries)+len(extra))
	for _, e := range builtinEntries {
		if !override[e.Canonical] {
			merged = append(merged, e)
		}
	}
	merged = append(merged, extra...)
	return New(merged)
}

// Lookup finds name by exact canonical match, then case-insensitive
// canonical match, then alias match.
func (t *Table) Lookup(name string) (model.SynonymEntry, MatchKind, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.SynonymEntry{}, MatchNone, false
	}
	if idx, ok := t.exact[name]; ok {
		return t.entries[idx], MatchExact, true
	}
	key := stripArticle(Fold(name))
	if idx, ok := t.folded[key]; ok {
		return t.entries[idx], MatchCaseInsensitive, true
	}
	if idx, ok := t.aliases[key]; ok {
		return t.entries[idx], MatchAlias, true
	}
	return model.SynonymEntry{}, MatchNone, false
}

// Len returns the number of canonical entries
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the canonical entries
func (t *Table) Entries() []model.SynonymEntry {
	out := make([]model.SynonymEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
