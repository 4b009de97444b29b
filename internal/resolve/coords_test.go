package resolve

import (
	"math"
	"strings"
	"testing"
)

func TestSwapIfLatLon(t *testing.T) {
	tests := []struct {
		name    string
		in      [2]float64
		want    [2]float64
		swapped bool
	}{
		{"valid lon-first", [2]float64{139.69, 35.68}, [2]float64{139.69, 35.68}, false},
		{"lat-first", [2]float64{35.68, 139.69}, [2]float64{139.69, 35.68}, true},
		{"ambiguous stays", [2]float64{48.86, 2.35}, [2]float64{48.86, 2.35}, false},
		{"negative lat-first", [2]float64{-33.87, 151.21}, [2]float64{151.21, -33.87}, true},
		{"both invalid", [2]float64{200, 300}, [2]float64{200, 300}, false},
		{"overshooting latitude stays", [2]float64{40, 95}, [2]float64{40, 95}, false},
		{"negative overshoot stays", [2]float64{12, -99.5}, [2]float64{12, -99.5}, false},
		{"just past the overshoot", [2]float64{13.75, 100.5}, [2]float64{100.5, 13.75}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, swapped := SwapIfLatLon(tt.in)
			if got != tt.want || swapped != tt.swapped {
				t.Errorf("SwapIfLatLon(%v) = %v, %v; want %v, %v", tt.in, got, swapped, tt.want, tt.swapped)
			}
		})
	}
}

func TestSwapIfLatLon_IdempotentOnValidPairs(t *testing.T) {
	for lon := -180.0; lon <= 180; lon += 7.5 {
		for lat := -90.0; lat <= 90; lat += 7.5 {
			p := [2]float64{lon, lat}
			once, _ := SwapIfLatLon(p)
			twice, _ := SwapIfLatLon(once)
			if once != twice {
				t.Fatalf("not idempotent for %v: %v then %v", p, once, twice)
			}
			if once != p {
				t.Fatalf("valid pair %v was changed to %v", p, once)
			}
		}
	}
}

func TestCheckCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
		wantErr  string
	}{
		{"valid", 2.35, 48.86, ""},
		{"edges", -180, 90, ""},
		{"lat too high", 40, 95, "latitude 95 is outside [-90, 90]"},
		{"lon too low", -181, 0, "longitude -181 is outside [-180, 180]"},
		{"nan", math.NaN(), 0, "not numbers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCoordinates(tt.lon, tt.lat)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNormalizePair(t *testing.T) {
	got, err := NormalizePair([2]float64{35.68, 139.69})
	if err != nil || got != [2]float64{139.69, 35.68} {
		t.Errorf("expected swapped pair, got %v %v", got, err)
	}

	got, err = NormalizePair([2]float64{40, 95})
	if err == nil || !strings.Contains(err.Error(), "latitude 95 is outside [-90, 90]") {
		t.Errorf("expected a latitude range violation, got %v", err)
	}
	if got != [2]float64{40, 95} {
		t.Errorf("expected the rejected pair returned unchanged, got %v", got)
	}
}
