package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestField_CandidateOrder tests that candidates are tried in order and the
// first present value wins.
func TestField_CandidateOrder(t *testing.T) {
	source := map[string]any{
		"slot":        3,
		"slot_number": 7,
	}

	val, ok := Field(source, []string{"slot_number", "slot"})
	assert.True(t, ok)
	assert.Equal(t, 7, val)

	val, ok = Field(source, []string{"slot", "slot_number"})
	assert.True(t, ok)
	assert.Equal(t, 3, val)
}

// TestField_FoldedKeys tests the case- and separator-insensitive pass.
func TestField_FoldedKeys(t *testing.T) {
	tests := []struct {
		name      string
		source    map[string]any
		candidate string
		want      any
		wantOK    bool
	}{
		{
			name:      "camelCase source against snake_case candidate",
			source:    map[string]any{"slotNumber": 4},
			candidate: "slot_number",
			want:      4,
			wantOK:    true,
		},
		{
			name:      "upper-case with hyphens",
			source:    map[string]any{"SLOT-NUMBER": "4"},
			candidate: "slot_number",
			want:      "4",
			wantOK:    true,
		},
		{
			name:      "dotted key",
			source:    map[string]any{"card.name": "NIC"},
			candidate: "cardName",
			want:      "NIC",
			wantOK:    true,
		},
		{
			name:      "no fold match",
			source:    map[string]any{"slotCount": 4},
			candidate: "slot_number",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := Field(tt.source, []string{tt.candidate})
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, val)
			}
		})
	}
}

// TestField_AbsentValues tests that nil and blank strings count as unset.
func TestField_AbsentValues(t *testing.T) {
	source := map[string]any{
		"name":     "",
		"part":     "   ",
		"item_id":  nil,
		"fallback": "X100",
	}

	_, ok := Field(source, []string{"name"})
	assert.False(t, ok)
	_, ok = Field(source, []string{"part"})
	assert.False(t, ok)
	_, ok = Field(source, []string{"item_id"})
	assert.False(t, ok)

	// A later candidate still wins over an earlier blank one.
	val, ok := Field(source, []string{"name", "fallback"})
	assert.True(t, ok)
	assert.Equal(t, "X100", val)
}

// TestField_NonObjectSources tests that scalar and nil sources never panic.
func TestField_NonObjectSources(t *testing.T) {
	for _, source := range []any{nil, 42, "text", []any{1, 2}} {
		_, ok := Field(source, []string{"slot"})
		assert.False(t, ok)
	}
}

// TestField_NamedMapSource tests that named map types, like the pipeline
// packages' entry aliases, are treated as objects. A type switch alone
// would miss them and report every field absent.
func TestField_NamedMapSource(t *testing.T) {
	type entry map[string]any
	source := entry{"slot": 3, "card_name": "NIC"}

	val, ok := Field(source, []string{"slot"})
	assert.True(t, ok)
	assert.Equal(t, 3, val)

	n, ok := Int(source, []string{"slot"})
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	assert.Equal(t, "NIC", String(source, []string{"cardName"}))

	type attrs map[string]string
	val, ok = Field(attrs{"part_number": "PN-9"}, []string{"partNumber"})
	assert.True(t, ok)
	assert.Equal(t, "PN-9", val)

	assert.Nil(t, AsObject(entry(nil)))
}

// TestField_StringMapSource tests that map[string]string sources are widened.
func TestField_StringMapSource(t *testing.T) {
	source := map[string]string{"partNumber": "PN-9"}
	val, ok := Field(source, []string{"part_number"})
	assert.True(t, ok)
	assert.Equal(t, "PN-9", val)
}

func TestString(t *testing.T) {
	source := map[string]any{"card_name": "  GigE Card  ", "slot": 4}
	assert.Equal(t, "GigE Card", String(source, []string{"card_name"}))
	assert.Equal(t, "4", String(source, []string{"slot"}))
	assert.Equal(t, "", String(source, []string{"missing"}))
}

func TestInt(t *testing.T) {
	tests := []struct {
		name    string
		source  map[string]any
		want    int
		matched bool
	}{
		{"numeric", map[string]any{"slot": 5}, 5, true},
		{"float from json decode", map[string]any{"slot": float64(5)}, 5, true},
		{"numeric string", map[string]any{"slot": "5"}, 5, true},
		{"junk string matches but coerces to zero", map[string]any{"slot": "fifth"}, 0, true},
		{"absent", map[string]any{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := Int(tt.source, []string{"slot"})
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

// TestBool tests that only explicit truthy tokens count as true.
func TestBool(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want bool
	}{
		{"bool true", true, true},
		{"string true", "true", true},
		{"string yes", "Yes", true},
		{"string y", "y", true},
		{"numeric one", 1, true},
		{"string one", "1", true},
		{"bool false", false, false},
		{"string no", "no", false},
		{"zero", 0, false},
		{"junk token", "maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bool(map[string]any{"flag": tt.val}, []string{"flag"})
			assert.Equal(t, tt.want, got)
		})
	}

	assert.False(t, Bool(map[string]any{}, []string{"flag"}))
}

// TestList tests list extraction including the collapsed single-object shape.
func TestList(t *testing.T) {
	entry := map[string]any{"index": 1}

	list, ok := List(map[string]any{"entries": []any{entry}}, []string{"entries"})
	assert.True(t, ok)
	assert.Len(t, list, 1)

	// Single object wrapped into a one-element slice.
	list, ok = List(map[string]any{"entries": entry}, []string{"entries"})
	assert.True(t, ok)
	assert.Len(t, list, 1)
	assert.Equal(t, entry, list[0])

	_, ok = List(map[string]any{"entries": "not a list"}, []string{"entries"})
	assert.False(t, ok)
}
