package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListScanIsLenient(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want StringList
	}{
		{"null", nil, StringList{}},
		{"empty string", "", StringList{}},
		{"malformed", "not json", StringList{}},
		{"object", `{"a":"b"}`, StringList{}},
		{"array", `["uploads/projects/a.png","uploads/projects/b.png"]`, StringList{"uploads/projects/a.png", "uploads/projects/b.png"}},
		{"bytes", []byte(`["x"]`), StringList{"x"}},
		{"mixed elements", `["x", 3, null, "y"]`, StringList{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			require.NoError(t, l.Scan(tt.src))
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestStringListValue(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringList{"b", "a"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["b","a"]`, v)
}

func TestStringListMarshalsNilAsEmptyArray(t *testing.T) {
	b, err := json.Marshal(Project{ID: "p", Title: "t"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"media":[]`)
	assert.Contains(t, string(b), `"skills":[]`)
}
