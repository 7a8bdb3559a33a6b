// Package codec converts collections to and from the JSON arrays kept in a
// durable slot. Decoding checks the shape of every entry field by field and
// drops entries that do not match; values inside a well-formed entry are
// trusted as stored, apart from numbers too large to hold.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/tidwall/gjson"
)

// ErrMalformed means the payload is not a JSON array at all.
var ErrMalformed = errors.New("malformed payload")

// EntryError describes one dropped entry.
type EntryError struct {
	Path   string
	Field  string
	Reason string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: field %q %s", e.Path, e.Field, e.Reason)
}

// Decoded holds the entries that survived decoding and the ones that did not.
type Decoded[T any] struct {
	Items   []T
	Dropped []*EntryError
}

// Encode marshals items as a JSON array. A nil slice encodes as [].
func Encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return b, nil
}

// entryFunc reads one entry. It returns nested drops alongside the value.
type entryFunc[T any] func(r *reader) (T, []*EntryError)

func decodeArray[T any](payload []byte, read entryFunc[T]) (Decoded[T], error) {
	out := Decoded[T]{Items: []T{}}
	if !gjson.ValidBytes(payload) {
		return out, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(payload)
	if !root.IsArray() {
		return out, fmt.Errorf("%w: expected an array, got %s", ErrMalformed, root.Type)
	}

	for i, entry := range root.Array() {
		v, nested, err := decodeEntry(fmt.Sprintf("[%d]", i), entry, read)
		out.Dropped = append(out.Dropped, nested...)
		if err != nil {
			out.Dropped = append(out.Dropped, err)
			continue
		}
		out.Items = append(out.Items, v)
	}
	return out, nil
}

func decodeEntry[T any](path string, entry gjson.Result, read entryFunc[T]) (T, []*EntryError, *EntryError) {
	var zero T
	if !entry.IsObject() {
		return zero, nil, &EntryError{Path: path, Reason: "entry is not an object"}
	}
	r := &reader{path: path, obj: entry}
	v, nested := read(r)
	if r.err != nil {
		return zero, nested, r.err
	}
	return v, nested, nil
}

// reader pulls typed fields out of one JSON object, remembering the first
// mismatch. Reads after a failure return zero values.
type reader struct {
	path string
	obj  gjson.Result
	err  *EntryError
}

func (r *reader) fail(field, reason string) {
	if r.err == nil {
		r.err = &EntryError{Path: r.path, Field: field, Reason: reason}
	}
}

func (r *reader) field(name string, want gjson.Type) (gjson.Result, bool) {
	if r.err != nil {
		return gjson.Result{}, false
	}
	v := r.obj.Get(name)
	if !v.Exists() {
		r.fail(name, "is missing")
		return v, false
	}
	if v.Type != want {
		r.fail(name, "must be a "+typeName(want)+", got "+v.Type.String())
		return v, false
	}
	return v, true
}

func (r *reader) str(name string) string {
	v, ok := r.field(name, gjson.String)
	if !ok {
		return ""
	}
	return v.Str
}

// num reads a JSON number floored to an int. Numbers beyond
// core.MaxQuantity fail the entry.
func (r *reader) num(name string) int {
	v, ok := r.field(name, gjson.Number)
	if !ok {
		return 0
	}
	if math.Abs(v.Num) > core.MaxQuantity {
		r.fail(name, "out of range")
		return 0
	}
	return int(math.Floor(v.Num))
}

func (r *reader) boolean(name string) bool {
	if r.err != nil {
		return false
	}
	v := r.obj.Get(name)
	if !v.Exists() {
		r.fail(name, "is missing")
		return false
	}
	if v.Type != gjson.True && v.Type != gjson.False {
		r.fail(name, "must be a boolean, got "+v.Type.String())
		return false
	}
	return v.Bool()
}

// list returns the elements of an array field. A missing or null field is
// an empty list when optional is set.
func (r *reader) list(name string, optional bool) []gjson.Result {
	if r.err != nil {
		return nil
	}
	v := r.obj.Get(name)
	if optional && (!v.Exists() || v.Type == gjson.Null) {
		return []gjson.Result{}
	}
	if !v.Exists() {
		r.fail(name, "is missing")
		return nil
	}
	if !v.IsArray() {
		r.fail(name, "must be an array, got "+v.Type.String())
		return nil
	}
	return v.Array()
}

func (r *reader) strings(name string, optional bool) []string {
	elems := r.list(name, optional)
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if e.Type != gjson.String {
			r.fail(name, "must hold only strings")
			return nil
		}
		out = append(out, e.Str)
	}
	return out
}

func typeName(t gjson.Type) string {
	switch t {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	default:
		return t.String()
	}
}
