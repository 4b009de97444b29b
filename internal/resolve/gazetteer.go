package resolve

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/geolens/internal/synonym"
)

// City is one gazetteer entry
type City struct {
	Name       string
	Country    string // Three-letter code
	Lat        float64
	Lon        float64
	Population int
	Aliases    []string
}

// Cities sorts by name
type Cities []City

func (c Cities) Len() int           { return len(c) }
func (c Cities) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }
func (c Cities) Less(i, j int) bool { return synonym.Fold(c[i].Name) < synonym.Fold(c[j].Name) }

// Gazetteer resolves city names from an in-memory list. Names are matched
// after folding case and accents; ambiguous names prefer the hinted
// country, then the largest population.
type Gazetteer struct {
	cities Cities
	byName map[string][]int
}

// NewGazetteer indexes cities by name and alias
func NewGazetteer(cities []City) *Gazetteer {
	g := &Gazetteer{cities: append(Cities(nil), cities...), byName: make(map[string][]int)}
	sort.Stable(g.cities)
	for i, c := range g.cities {
		keys := map[string]bool{synonym.Fold(c.Name): true}
		for _, a := range c.Aliases {
			keys[synonym.Fold(a)] = true
		}
		for k := range keys {
			if k != "" {
				g.byName[k] = append(g.byName[k], i)
			}
		}
	}
	return g
}

// DefaultGazetteer returns capitals and major cities
func DefaultGazetteer() *Gazetteer {
	return NewGazetteer(builtinCities)
}

// Len returns the number of cities
func (g *Gazetteer) Len() int {
	return len(g.cities)
}

// ResolveName looks name up. "Paris, France" style names carry their own
// country hint when none is given.
func (g *Gazetteer) ResolveName(_ context.Context, name, countryHint string) (*Location, error) {
	city, qualifier := splitQualified(name)
	if countryHint == "" {
		countryHint = qualifier
	}

	idx := g.byName[synonym.Fold(city)]
	if len(idx) == 0 {
		idx = g.byName[synonym.Fold(name)]
	}
	if len(idx) == 0 {
		return nil, nil
	}

	best := g.pick(idx, countryCodeOf(countryHint))
	return &Location{Lon: best.Lon, Lat: best.Lat, CountryCode: best.Country}, nil
}

func (g *Gazetteer) pick(idx []int, country string) City {
	if country != "" {
		var inCountry []int
		for _, i := range idx {
			if g.cities[i].Country == country {
				inCountry = append(inCountry, i)
			}
		}
		if len(inCountry) > 0 {
			idx = inCountry
		}
	}

	best := g.cities[idx[0]]
	for _, i := range idx[1:] {
		if g.cities[i].Population > best.Population {
			best = g.cities[i]
		}
	}
	return best
}

// splitQualified splits "Paris, France" into "Paris" and "France"
func splitQualified(name string) (string, string) {
	i := strings.LastIndex(name, ",")
	if i < 0 {
		return strings.TrimSpace(name), ""
	}
	return strings.TrimSpace(name[:i]), strings.TrimSpace(name[i+1:])
}

// countryCodeOf turns a hint that is either a code or a country name into
// a three-letter code
func countryCodeOf(hint string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return ""
	}
	if len(hint) == 3 && synonym.IsKnownCode(hint) {
		return strings.ToUpper(hint)
	}
	if code, ok := synonym.CountryCode(hint); ok {
		return code
	}
	return ""
}

// LoadGazetteer reads a tab-separated file of
// name, country code, latitude, longitude, population and comma-separated
// aliases. Lines starting with # are skipped.
func LoadGazetteer(path string) (*Gazetteer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open gazetteer: %w", err)
	}
	defer func() { _ = f.Close() }()

	cities, err := ParseGazetteer(f)
	if err != nil {
		return nil, fmt.Errorf("gazetteer %s: %w", path, err)
	}
	return NewGazetteer(cities), nil
}

// ParseGazetteer parses the tab-separated format read by LoadGazetteer
func ParseGazetteer(r io.Reader) ([]City, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var cities []City
	for line := 1; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 4 {
			return nil, fmt.Errorf("line %d: expected at least 4 columns, got %d", line, len(rec))
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: latitude: %w", line, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: longitude: %w", line, err)
		}
		if err := CheckCoordinates(lon, lat); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		c := City{
			Name:    strings.TrimSpace(rec[0]),
			Country: strings.ToUpper(strings.TrimSpace(rec[1])),
			Lat:     lat,
			Lon:     lon,
		}
		if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
			if c.Population, err = strconv.Atoi(strings.TrimSpace(rec[4])); err != nil {
				return nil, fmt.Errorf("line %d: population: %w", line, err)
			}
		}
		if len(rec) > 5 {
			for _, a := range strings.Split(rec[5], ",") {
				if a = strings.TrimSpace(a); a != "" {
					c.Aliases = append(c.Aliases, a)
				}
			}
		}
		cities = append(cities, c)
	}
	return cities, nil
}
