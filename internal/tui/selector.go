package tui

import "sort"

// selector cycles a value through a list of options. The value may be one
// that is not (yet) among the options.
type selector struct {
	options []string
	value   string
}

func newSelector(value string) selector {
	return selector{value: value}
}

// step moves delta places through the options, wrapping at either end, and
// reports whether the value changed.
func (s *selector) step(delta int) bool {
	n := len(s.options)
	if n == 0 {
		return false
	}
	idx := -1
	for i, o := range s.options {
		if o == s.value {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+delta)%n + n) % n
	}
	if s.options[idx] == s.value {
		return false
	}
	s.value = s.options[idx]
	return true
}

// sortedUnique returns codes sorted with duplicates removed.
func sortedUnique(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
