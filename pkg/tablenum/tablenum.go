// Package tablenum computes the next table identifier for the floor plan.
//
// Identifiers are normally numeric strings assigned sequentially, with two
// house rules: 13 is never assigned automatically, and once table "12" exists
// further tables in that corner are suffixed alphabetically (12A, 12B, ...,
// 12Z, 12AA, ...). Non-numeric custom names (e.g. "Patio") are left alone and
// excluded from sequence computation.
package tablenum

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var twelveFamily = regexp.MustCompile(`^12[A-Z]+$`)

// Next returns the identifier the engine would assign after the given set of
// existing identifiers. The empty set yields "1".
//
// The 12-family branch engages once a suffixed variant (12A, 12B, ...) exists,
// or when "12" is the only numeric identifier on the floor. A plain "12"
// inside a larger numeric run does not start the family: counting past 12 in
// the main sequence skips 13 and continues at 14.
func Next(existing []string) string {
	variants, suffixed := familyVariants(existing)
	if suffixed {
		return nextInFamily(variants)
	}

	max, count, ok := numericStats(existing)
	if !ok {
		return "1"
	}
	if len(variants) > 0 && count == 1 {
		// A lone "12" promotes to "12A" on the next allocation.
		return nextInFamily(variants)
	}
	next := max + 1
	if next == 13 {
		next = 14
	}
	return strconv.Itoa(next)
}

// NextN simulates n sequential allocations against a running snapshot of the
// identifier set, so a batch never contains duplicates.
func NextN(existing []string, n int) []string {
	if n <= 0 {
		return nil
	}
	snapshot := make([]string, len(existing), len(existing)+n)
	copy(snapshot, existing)

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		next := Next(snapshot)
		out = append(out, next)
		snapshot = append(snapshot, next)
	}
	return out
}

// ConflictsWithNext reports whether a manually supplied candidate collides
// with what the engine would generate next. Callers warn on a conflict but do
// not block the creation.
func ConflictsWithNext(existing []string, candidate string) bool {
	if !twelveFamily.MatchString(candidate) {
		return false
	}
	return Next(existing) == candidate
}

// familyVariants collects every identifier belonging to the table-12 family:
// "12" itself and any "12<SUFFIX>" with an uppercase alphabetic suffix. The
// second result reports whether at least one suffixed variant is present.
func familyVariants(existing []string) ([]string, bool) {
	var variants []string
	suffixed := false
	for _, id := range existing {
		if id == "12" {
			variants = append(variants, id)
		} else if twelveFamily.MatchString(id) {
			variants = append(variants, id)
			suffixed = true
		}
	}
	return variants, suffixed
}

// nextInFamily returns the next 12-family identifier. A lone "12" promotes to
// "12A"; otherwise the highest suffix is incremented.
func nextInFamily(variants []string) string {
	suffixes := make([]string, 0, len(variants))
	for _, v := range variants {
		if len(v) > 2 {
			suffixes = append(suffixes, v[2:])
		}
	}
	if len(suffixes) == 0 {
		return "12A"
	}

	// Shorter suffixes precede longer ones; ties break alphabetically. This
	// orders the bijective base-26 sequence A..Z, AA..AZ, BA.. correctly.
	sort.Slice(suffixes, func(i, j int) bool {
		if len(suffixes[i]) != len(suffixes[j]) {
			return len(suffixes[i]) < len(suffixes[j])
		}
		return suffixes[i] < suffixes[j]
	})

	return "12" + incrementSuffix(suffixes[len(suffixes)-1])
}

// incrementSuffix advances an uppercase suffix in bijective base 26:
// A -> B, Z -> AA, AZ -> BA, ZZ -> AAA. There is no zero letter.
func incrementSuffix(s string) string {
	if s == "" {
		return "A"
	}
	last := s[len(s)-1]
	rest := s[:len(s)-1]
	if last == 'Z' {
		return incrementSuffix(rest) + "A"
	}
	return rest + string(last+1)
}

// numericStats returns the maximum numeric identifier and how many numeric
// identifiers exist, ignoring custom names. ok is false when there are none.
func numericStats(existing []string) (max, count int, ok bool) {
	for _, id := range existing {
		n, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		count++
		if !ok || n > max {
			max, ok = n, true
		}
	}
	return max, count, ok
}
