package render

import (
	"encoding/json"
	"maps"
)

// Context maps template variable names to values. Values must be
// serializable by the template engine (JSON-compatible in practice).
type Context map[string]any

// Pair is a single key/value entry for NewContext.
type Pair struct {
	Key   string
	Value any
}

// KV builds a Pair.
func KV(key string, value any) Pair {
	return Pair{Key: key, Value: value}
}

// NewContext builds a Context by inserting pairs in argument order; a
// repeated key keeps its last value.
//
//	ctx := render.NewContext(
//		render.KV("name", "tide"),
//		render.KV("year", 2024),
//	)
func NewContext(pairs ...Pair) Context {
	ctx := make(Context, len(pairs))
	for _, pair := range pairs {
		ctx[pair.Key] = pair.Value
	}
	return ctx
}

// Insert sets key to value and returns the context for chaining.
func (c Context) Insert(key string, value any) Context {
	c[key] = value
	return c
}

// Get returns the value stored under key.
func (c Context) Get(key string) (any, bool) {
	value, ok := c[key]
	return value, ok
}

// Extend copies every entry of other into c, overwriting existing keys.
func (c Context) Extend(other Context) Context {
	maps.Copy(c, other)
	return c
}

// Len reports the number of keys.
func (c Context) Len() int {
	return len(c)
}

// Clone returns a shallow copy.
func (c Context) Clone() Context {
	if c == nil {
		return Context{}
	}
	return maps.Clone(c)
}

// JSON encodes the context as a JSON object.
func (c Context) JSON() ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(c))
}
