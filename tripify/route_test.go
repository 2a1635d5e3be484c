package tripify

import (
	"reflect"
	"testing"
)

func TestSynthesizeRoute(t *testing.T) {
	tests := []struct {
		name     string
		input    [][]string
		expected []string
	}{
		{
			name:     "empty",
			input:    nil,
			expected: nil,
		},
		{
			name:     "single list",
			input:    [][]string{{"A", "B", "C"}},
			expected: []string{"A", "B", "C"},
		},
		{
			name:     "repeated list is absorbed",
			input:    [][]string{{"A", "B", "C"}, {"A", "B", "C"}},
			expected: []string{"A", "B", "C"},
		},
		{
			name:     "shrinking suffixes",
			input:    [][]string{{"A", "B", "C"}, {"B", "C"}, {"C"}},
			expected: []string{"A", "B", "C"},
		},
		{
			name:     "station inserted mid route",
			input:    [][]string{{"A", "C"}, {"B", "C"}},
			expected: []string{"A", "B", "C"},
		},
		{
			name:     "station dropped from the plan",
			input:    [][]string{{"A", "B", "C"}, {"A", "C"}},
			expected: []string{"A", "C"},
		},
		{
			name:     "disjoint lists concatenate",
			input:    [][]string{{"A", "B"}, {"C", "D"}},
			expected: []string{"A", "B", "C", "D"},
		},
		{
			name:     "reroute after progress",
			input:    [][]string{{"A", "B", "C"}, {"B", "C"}, {"X", "Y"}},
			expected: []string{"A", "B", "C", "X", "Y"},
		},
		{
			name:     "unseen right stations before pivot",
			input:    [][]string{{"A", "B", "E"}, {"C", "D", "E"}},
			expected: []string{"A", "B", "C", "D", "E"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SynthesizeRoute(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSynthesizeRoutePreservesLatestList(t *testing.T) {
	lists := [][]string{
		{"A", "B", "C", "D"},
		{"B", "X", "D"},
		{"X", "D", "E"},
	}
	route := SynthesizeRoute(lists)

	last := lists[len(lists)-1]
	if !isSubsequence(last, route) {
		t.Errorf("latest list %v is not a subsequence of synthesized route %v", last, route)
	}
	if route[0] != "A" {
		t.Errorf("expected synthesized route to open with the first observed station, got %v", route)
	}
}

func isSubsequence(needle, haystack []string) bool {
	i := 0
	for _, s := range haystack {
		if i < len(needle) && needle[i] == s {
			i++
		}
	}
	return i == len(needle)
}
