package dispatch

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-editor/internal/imaging"
)

// Params is the flat key/value parameter object of a command.
//
// Absent keys and JSON null take the command's documented default, except
// for the shape color keys where null explicitly means "none".
type Params map[string]any

// ParameterError reports a parameter payload that is not a JSON object.
type ParameterError struct {
	Err error
}

func (e *ParameterError) Error() string {
	return "invalid parameters: " + e.Err.Error()
}

func (e *ParameterError) Unwrap() error { return e.Err }

// ParseParams decodes a JSON object. An empty string yields empty Params.
func ParseParams(raw string) (Params, error) {
	if strings.TrimSpace(raw) == "" {
		return Params{}, nil
	}
	var p Params
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, &ParameterError{Err: err}
	}
	if p == nil {
		p = Params{}
	}
	return p, nil
}

// reader extracts typed values from Params, keeping the first error so a
// handler can read all of its keys and check once.
type reader struct {
	p   Params
	err error
}

func (r *reader) fail(key string, v any, want string) {
	if r.err == nil {
		r.err = errors.Errorf("parameter %q: expected %s, got %T", key, want, v)
	}
}

func (r *reader) lookup(key string) (any, bool) {
	v, ok := r.p[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *reader) float(key string, def float64) float64 {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err == nil {
			return f
		}
	}
	r.fail(key, v, "a number")
	return def
}

func (r *reader) int(key string, def int) int {
	f := r.float(key, float64(def))
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		r.fail(key, f, "a finite integer")
		return def
	}
	return int(f)
}

func (r *reader) string(key, def string) string {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, v, "a string")
		return def
	}
	return s
}

func (r *reader) color(key, def string) imaging.Color {
	s := r.string(key, def)
	c, err := imaging.ParseColor(s)
	if err != nil {
		if r.err == nil {
			r.err = errors.Wrapf(err, "parameter %q", key)
		}
		return imaging.Black
	}
	return c
}

// optionalColor reads a color that may be switched off. An absent key falls
// back to def, which may itself be empty; null or "" mean no color.
func (r *reader) optionalColor(key, def string) *imaging.Color {
	raw, present := r.p[key]
	s := def
	if present {
		if raw == nil {
			return nil
		}
		s = r.string(key, "")
	}
	c, err := imaging.ParseOptionalColor(s)
	if err != nil {
		if r.err == nil {
			r.err = errors.Wrapf(err, "parameter %q", key)
		}
		return nil
	}
	return c
}
