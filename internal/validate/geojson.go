package validate

import (
	"encoding/json"
	"fmt"
)

// geometryMember maps each GeoJSON type to the member it must carry
var geometryMember = map[string]string{
	"FeatureCollection":  "features",
	"Feature":            "geometry",
	"GeometryCollection": "geometries",
	"Point":              "coordinates",
	"MultiPoint":         "coordinates",
	"LineString":         "coordinates",
	"MultiLineString":    "coordinates",
	"Polygon":            "coordinates",
	"MultiPolygon":       "coordinates",
}

// GeoJSONResult is the outcome of CheckGeoJSON
type GeoJSONResult struct {
	Valid bool           `json:"valid"`
	Value map[string]any `json:"value,omitempty"`
	Error string         `json:"error,omitempty"`
}

// CheckGeoJSON checks that value declares a known GeoJSON type and carries
// the member that type requires. value may be raw text, bytes or an
// already-decoded object.
func (v *Validator) CheckGeoJSON(value any) GeoJSONResult {
	obj, err := v.asObject(value)
	if err != nil {
		return v.geoJSONFailure(err.Error())
	}

	typ, _ := obj["type"].(string)
	if typ == "" {
		return v.geoJSONFailure("missing type")
	}
	member, known := geometryMember[typ]
	if !known {
		return v.geoJSONFailure(fmt.Sprintf("unknown type %q", typ))
	}

	field, present := obj[member]
	if !present {
		return v.geoJSONFailure(fmt.Sprintf("%s requires %q", typ, member))
	}
	switch member {
	case "features", "geometries":
		if _, ok := field.([]any); !ok {
			return v.geoJSONFailure(fmt.Sprintf("%s.%s must be an array", typ, member))
		}
	case "coordinates":
		if _, ok := field.([]any); !ok {
			return v.geoJSONFailure(fmt.Sprintf("%s.coordinates must be an array", typ))
		}
	}

	return GeoJSONResult{Valid: true, Value: obj}
}

func (v *Validator) asObject(value any) (map[string]any, error) {
	switch val := value.(type) {
	case map[string]any:
		return val, nil
	case string:
		return v.decodeObject(val)
	case []byte:
		return v.decodeObject(string(val))
	case json.RawMessage:
		return v.decodeObject(string(val))
	case nil:
		return nil, fmt.Errorf("value is null")
	default:
		return nil, fmt.Errorf("value is %T, not an object", value)
	}
}

func (v *Validator) decodeObject(text string) (map[string]any, error) {
	parsed, err := v.RepairAndParseJSON(text)
	if err != nil {
		return nil, err
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("value is %T, not an object", parsed)
	}
	return obj, nil
}

func (v *Validator) geoJSONFailure(msg string) GeoJSONResult {
	v.schemaFailures.Add(1)
	v.observer.SchemaFailure()
	return GeoJSONResult{Valid: false, Error: msg}
}
