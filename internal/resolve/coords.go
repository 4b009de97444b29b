package resolve

import (
	"fmt"
	"math"
)

// latOvershoot is how far past ±90 a value still reads as a broken
// latitude rather than a longitude
const latOvershoot = 10

func inLatRange(v float64) bool { return v >= -90 && v <= 90 }
func inLonRange(v float64) bool { return v >= -180 && v <= 180 }

// looksLikeLon reports whether v can only be a longitude
func looksLikeLon(v float64) bool {
	return inLonRange(v) && math.Abs(v) > 90+latOvershoot
}

// SwapIfLatLon flips p when its first value fits a latitude slot and its
// second can only be a longitude. [40, 95] is not flipped: 95 is read as
// a bad latitude and left for CheckCoordinates to reject. A valid
// [lon, lat] pair is never flipped, so applying it twice changes nothing.
func SwapIfLatLon(p [2]float64) ([2]float64, bool) {
	if inLatRange(p[0]) && looksLikeLon(p[1]) {
		return [2]float64{p[1], p[0]}, true
	}
	return p, false
}

// CheckCoordinates rejects out-of-range values. Nothing is clamped.
func CheckCoordinates(lon, lat float64) error {
	switch {
	case math.IsNaN(lon) || math.IsNaN(lat):
		return fmt.Errorf("coordinates [%g, %g] are not numbers", lon, lat)
	case !inLonRange(lon):
		return fmt.Errorf("longitude %g is outside [-180, 180]", lon)
	case !inLatRange(lat):
		return fmt.Errorf("latitude %g is outside [-90, 90]", lat)
	}
	return nil
}

// NormalizePair flips a lat-first pair and range-checks the result
func NormalizePair(p [2]float64) ([2]float64, error) {
	fixed, _ := SwapIfLatLon(p)
	if err := CheckCoordinates(fixed[0], fixed[1]); err != nil {
		return p, err
	}
	return fixed, nil
}
