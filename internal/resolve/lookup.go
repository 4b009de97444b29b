package resolve

import (
	"context"
)

// Location is a point reported by a coordinate source
type Location struct {
	Lon         float64
	Lat         float64
	CountryCode string
	Swapped     bool // The source answered lat-first and the pair was flipped
}

// CoordinateLookup finds the location of a named place. countryHint may be
// empty. A nil location with a nil error means the name is unknown.
type CoordinateLookup interface {
	ResolveName(ctx context.Context, name, countryHint string) (*Location, error)
}

// LookupFunc adapts a function to CoordinateLookup
type LookupFunc func(ctx context.Context, name, countryHint string) (*Location, error)

func (f LookupFunc) ResolveName(ctx context.Context, name, countryHint string) (*Location, error) {
	return f(ctx, name, countryHint)
}

// PairFunc adapts a collaborator that answers with a bare [lon, lat] pair.
// Pairs that look lat-first are flipped before they are checked.
type PairFunc func(ctx context.Context, name, countryHint string) (*[2]float64, error)

func (f PairFunc) ResolveName(ctx context.Context, name, countryHint string) (*Location, error) {
	pair, err := f(ctx, name, countryHint)
	if err != nil || pair == nil {
		return nil, err
	}
	fixed, swapped := SwapIfLatLon(*pair)
	return &Location{Lon: fixed[0], Lat: fixed[1], Swapped: swapped}, nil
}

// NopLookup never finds anything
type NopLookup struct{}

func (NopLookup) ResolveName(context.Context, string, string) (*Location, error) {
	return nil, nil
}

// DisabledGeocoder stands in for the external geocoder when it is switched
// off. It always answers "not found".
type DisabledGeocoder struct{}

func (DisabledGeocoder) ResolveName(context.Context, string, string) (*Location, error) {
	return nil, nil
}
