package types

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, kv ...string) *Record {
	fields := make([]Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, Field{Key: kv[i], Value: kv[i+1]})
	}
	return NewRecord(id, fields...)
}

func TestNewRecord_PreservesOrder(t *testing.T) {
	r := record("Head", "name", "Jane", "info 1", "a", "info 2", "b")
	require.Equal(t, 3, r.Len())
	assert.Equal(t, "name", r.Fields[0].Key)
	assert.Equal(t, "info 2", r.Fields[2].Key)
}

func TestNewRecord_DuplicateKeyLastValueWins(t *testing.T) {
	r := record("Head", "name", "first", "info", "x", "name", "second")
	assert.Equal(t, 2, r.Len())
	v, ok := r.Get("name")
	require.True(t, ok)
	assert.Equal(t, "second", v)
	assert.Equal(t, "name", r.Fields[0].Key)
}

func TestRecord_GetWithoutIndex(t *testing.T) {
	r := &Record{ID: "x", Fields: []Field{{Key: "location", Value: "Berlin"}}}
	v, ok := r.Get("location")
	assert.True(t, ok)
	assert.Equal(t, "Berlin", v)
	assert.False(t, r.Has("position"))
}

func TestRecord_Optional(t *testing.T) {
	r := record("Work", "position", "Engineer")

	pos := r.Optional("position")
	assert.True(t, pos.IsPresent())
	assert.Equal(t, "Engineer", pos.OrElse("none"))

	missing := r.Optional("course")
	assert.False(t, missing.IsPresent())
	v, ok := missing.Value()
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.Equal(t, "none", missing.OrElse("none"))
}

func TestRecord_Repeated(t *testing.T) {
	tests := []struct {
		name string
		base string
		rec  *Record
		want []string
	}{
		{
			name: "numbered list",
			rec:  record("Skills", "skill 1", "Go", "skill 2", "Rust"),
			want: []string{"Go", "Rust"},
		},
		{
			name: "gap terminates the list",
			rec:  record("Skills", "skill 1", "Go", "skill 2", "Rust", "skill 4", "Zig"),
			want: []string{"Go", "Rust"},
		},
		{
			name: "single value wins over numbered",
			base: "description",
			rec:  record("Work", "description", "single", "description 1", "numbered"),
			want: []string{"single"},
		},
		{
			name: "list must start at one",
			rec:  record("Skills", "skill 2", "Rust"),
			want: nil,
		},
		{
			name: "no matching keys",
			rec:  record("Skills", "name", "Tools"),
			want: nil,
		},
		{
			name: "base is matched exactly",
			rec:  record("Skills", "skills 1", "Go"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := tt.base
			if base == "" {
				base = "skill"
			}
			got := slices.Collect(tt.rec.Repeated(base))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord_RepeatedStopsWhenConsumerStops(t *testing.T) {
	r := record("Skills", "skill 1", "Go", "skill 2", "Rust", "skill 3", "C")
	var got []string
	for v := range r.Repeated("skill") {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"Go", "Rust"}, got)
}

func TestDocument_Len(t *testing.T) {
	var nilDoc *Document
	assert.Equal(t, 0, nilDoc.Len())
	doc := &Document{Records: []*Record{record("Head", "name", "x")}}
	assert.Equal(t, 1, doc.Len())
}
