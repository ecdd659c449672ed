// Package types provides type definitions for structured data used throughout the tidytex system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"iter"
	"strconv"
)

// Field is a single key/value pair of a Record. Values are raw, unescaped text.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Record is one named section of the resume description.
// Field order is preserved as it appeared in the source.
type Record struct {
	ID     string  `json:"id"`
	Fields []Field `json:"fields"`

	index map[string]int
}

// NewRecord builds a Record from an identifier and ordered fields.
// A repeated key keeps its first position and takes the last value.
func NewRecord(id string, fields ...Field) *Record {
	r := &Record{
		ID:     id,
		Fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if i, ok := r.index[f.Key]; ok {
			r.Fields[i].Value = f.Value
			continue
		}
		r.index[f.Key] = len(r.Fields)
		r.Fields = append(r.Fields, f)
	}
	return r
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (string, bool) {
	if r.index == nil {
		// Records decoded from JSON have no index yet.
		for _, f := range r.Fields {
			if f.Key == key {
				return f.Value, true
			}
		}
		return "", false
	}
	i, ok := r.index[key]
	if !ok {
		return "", false
	}
	return r.Fields[i].Value, true
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Optional resolves key into a Present or Absent value.
func (r *Record) Optional(key string) Optional {
	if v, ok := r.Get(key); ok {
		return Present(v)
	}
	return Absent()
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.Fields)
}

// Repeated yields the values of a repeated field addressed by base.
//
// If base itself is a key, only that value is yielded. Otherwise the values
// of "base 1", "base 2", ... are yielded until the first missing index; keys
// past a gap are never reached.
func (r *Record) Repeated(base string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if v, ok := r.Get(base); ok {
			yield(v)
			return
		}
		// The loop is bounded by the record size: every hit consumes a distinct key.
		for i := 1; i <= r.Len(); i++ {
			v, ok := r.Get(base + " " + strconv.Itoa(i))
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Document is the ordered sequence of records. Order is output order.
type Document struct {
	Source  string    `json:"source,omitempty"`
	Records []*Record `json:"records"`
}

// Len returns the number of records.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
