// Package validate parses model replies defensively and checks the shape of
// target sets and GeoJSON values.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/ppiankov/geolens/internal/model"
)

// Observer receives validation events, e.g. to feed Prometheus counters
type Observer interface {
	ParseFailure()
	SchemaFailure()
	Repair()
}

type nopObserver struct{}

func (nopObserver) ParseFailure()  {}
func (nopObserver) SchemaFailure() {}
func (nopObserver) Repair()        {}

// Validator parses and checks untrusted JSON and keeps running counters
type Validator struct {
	structs  *validator.Validate
	observer Observer

	parseFailures  atomic.Int64
	schemaFailures atomic.Int64
	repairs        atomic.Int64
}

// Stats is a snapshot of the validator counters
type Stats struct {
	ParseFailures  int64 `json:"parse_failures"`
	SchemaFailures int64 `json:"schema_failures"`
	Repairs        int64 `json:"repairs"`
}

// Option configures a Validator
type Option func(*Validator)

// WithObserver forwards counter events to o
func WithObserver(o Observer) Option {
	return func(v *Validator) {
		if o != nil {
			v.observer = o
		}
	}
}

// New creates a validator
func New(opts ...Option) *Validator {
	v := &Validator{
		structs:  validator.New(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Stats returns the current counters
func (v *Validator) Stats() Stats {
	return Stats{
		ParseFailures:  v.parseFailures.Load(),
		SchemaFailures: v.schemaFailures.Load(),
		Repairs:        v.repairs.Load(),
	}
}

// FieldError describes one structural problem with a target
type FieldError struct {
	Index   int    `json:"index"` // Position in the target list
	ID      string `json:"id,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("targets[%d].%s: %s", e.Index, e.Field, e.Message)
}

// CheckResult is the outcome of CheckGeoTargetSet
type CheckResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Err returns nil for a valid result and an ErrSchemaInvalid wrapper otherwise
func (r CheckResult) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("%w: %s", model.ErrSchemaInvalid, strings.Join(msgs, "; "))
}

// ByIndex groups errors by target index
func (r CheckResult) ByIndex() map[int][]FieldError {
	out := make(map[int][]FieldError, len(r.Errors))
	for _, e := range r.Errors {
		out[e.Index] = append(out[e.Index], e)
	}
	return out
}

// CheckGeoTargetSet checks every target for id, name, kind and confidence,
// that ids are unique, and that a review flag always carries a suggestion.
func (v *Validator) CheckGeoTargetSet(set *model.GeoTargetSet) CheckResult {
	if set == nil {
		v.schemaFailures.Add(1)
		v.observer.SchemaFailure()
		return CheckResult{Errors: []FieldError{{Index: -1, Field: "set", Message: "set is nil"}}}
	}

	var errs []FieldError
	seen := make(map[string]int, len(set.Targets))

	for i, t := range set.Targets {
		if err := v.structs.Struct(t); err != nil {
			errs = append(errs, fieldErrors(i, t.ID, err)...)
		}
		if t.ID != "" {
			if first, dup := seen[t.ID]; dup {
				errs = append(errs, FieldError{Index: i, ID: t.ID, Field: "id", Message: fmt.Sprintf("duplicates targets[%d]", first)})
			} else {
				seen[t.ID] = i
			}
		}
		if t.Resolved != nil && t.Resolved.NeedsReview && strings.TrimSpace(t.Resolved.Suggestion) == "" {
			errs = append(errs, FieldError{Index: i, ID: t.ID, Field: "resolved.suggestion", Message: "is required when needs_review is set"})
		}
		if t.Resolved != nil && t.Resolved.Coordinates != nil {
			c := t.Resolved.Coordinates
			if c[0] < -180 || c[0] > 180 || c[1] < -90 || c[1] > 90 {
				errs = append(errs, FieldError{Index: i, ID: t.ID, Field: "resolved.coordinates", Message: fmt.Sprintf("[%g, %g] is out of range", c[0], c[1])})
			}
		}
	}

	if len(errs) > 0 {
		v.schemaFailures.Add(1)
		v.observer.SchemaFailure()
		return CheckResult{Valid: false, Errors: errs}
	}
	return CheckResult{Valid: true}
}

// fieldErrors converts validator errors into readable messages
func fieldErrors(index int, id string, err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Index: index, ID: id, Field: "target", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FieldError{
			Index:   index,
			ID:      id,
			Field:   strings.ToLower(e.Field()),
			Message: formatFieldError(e),
		})
	}
	return out
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", e.Param())
	default:
		return "is invalid"
	}
}
