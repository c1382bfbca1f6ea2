package tablenum

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_EmptySet(t *testing.T) {
	assert.Equal(t, "1", Next(nil))
	assert.Equal(t, "1", Next([]string{}))
}

func TestNext_SkipsThirteen(t *testing.T) {
	got := NextN(nil, 20)
	require.Len(t, got, 20)

	for _, id := range got {
		assert.NotEqual(t, "13", id, "13 must never be assigned")
	}

	want := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "14", "15", "16", "17", "18", "19", "20", "21"}
	assert.Equal(t, want, got, "13 is skipped exactly once")
}

func TestNext_MaxTwelveYieldsFourteen(t *testing.T) {
	existing := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		existing = append(existing, strconv.Itoa(i))
	}
	assert.Equal(t, "14", Next(existing))
}

func TestNext_IgnoresCustomNames(t *testing.T) {
	assert.Equal(t, "6", Next([]string{"3", "Patio", "5", "VIP Corner"}))
	assert.Equal(t, "1", Next([]string{"Patio", "Garden"}))
}

func TestNext_LoneTwelvePromotes(t *testing.T) {
	assert.Equal(t, "12A", Next([]string{"12"}))

	// A custom name alongside a lone 12 does not break the promotion.
	assert.Equal(t, "12A", Next([]string{"12", "Patio"}))
}

func TestNext_FamilySuffixing(t *testing.T) {
	existing := []string{"12"}
	var got []string
	for i := 0; i < 3; i++ {
		next := Next(existing)
		got = append(got, next)
		existing = append(existing, next)
	}
	assert.Equal(t, []string{"12A", "12B", "12C"}, got)
}

func TestNext_FamilyRollover(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"after Z comes AA", []string{"12", "12Z"}, "12AA"},
		{"after AZ comes BA", []string{"12", "12AZ"}, "12BA"},
		{"after ZZ comes AAA", []string{"12", "12ZZ"}, "12AAA"},
		{"longest suffix wins", []string{"12", "12B", "12AA"}, "12AB"},
		{"suffixed variant without plain 12", []string{"12A"}, "12B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.existing))
		})
	}
}

func TestNext_FamilyTakesPriorityOverSequence(t *testing.T) {
	// Once a suffixed member exists, allocation stays in the family even when
	// larger numeric identifiers are present.
	assert.Equal(t, "12B", Next([]string{"10", "11", "12", "12A", "14"}))
}

func TestNextN_NoDuplicatesInBatch(t *testing.T) {
	existing := []string{"12"}
	got := NextN(existing, 30)
	require.Len(t, got, 30)

	seen := make(map[string]struct{}, len(got))
	for _, id := range got {
		_, dup := seen[id]
		require.False(t, dup, "batch issued %q twice", id)
		seen[id] = struct{}{}
	}

	assert.Equal(t, "12A", got[0])
	assert.Equal(t, "12Z", got[25])
	assert.Equal(t, "12AA", got[26])
}

func TestConflictsWithNext(t *testing.T) {
	assert.True(t, ConflictsWithNext([]string{"12"}, "12A"))
	assert.False(t, ConflictsWithNext([]string{"12"}, "12B"))
	assert.False(t, ConflictsWithNext([]string{"12"}, "Patio"))
	// Plain numbers are never family conflicts.
	assert.False(t, ConflictsWithNext([]string{"1", "2"}, "3"))
}

func TestIncrementSuffix(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "A"},
		{"A", "B"},
		{"Y", "Z"},
		{"Z", "AA"},
		{"AA", "AB"},
		{"AZ", "BA"},
		{"ZZ", "AAA"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, incrementSuffix(tt.in), "increment(%q)", tt.in)
	}
}
