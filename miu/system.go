// Package miu implements Hofstadter's MIU formal system. Strings over the
// alphabet {M, I, U} start with M and are rewritten by four rules:
//
//  1. xI  -> xIU
//  2. Mx  -> Mxx
//  3. xIIIy -> xUy
//  4. xUUy  -> xy
package miu

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidString = errors.New("not a valid MIU string")
	ErrInvalidRule   = errors.New("rule must be between 1 and 4")
	ErrNotApplicable = errors.New("rule does not apply")
)

// IsValid returns true if s is non-empty, starts with M and contains only
// the letters M, I and U.
func IsValid(s string) bool {
	if !strings.HasPrefix(s, "M") {
		return false
	}
	for _, c := range s {
		if c != 'M' && c != 'I' && c != 'U' {
			return false
		}
	}
	return true
}

// Validate returns ErrInvalidString (wrapped with the offending string) if
// s is not a valid MIU string.
func Validate(s string) error {
	if !IsValid(s) {
		return fmt.Errorf("%w: %q", ErrInvalidString, s)
	}
	return nil
}

// occurrences returns every start index of pattern in s, overlapping
// matches included.
func occurrences(s, pattern string) []int {
	var idxs []int
	for start := 0; ; {
		i := strings.Index(s[start:], pattern)
		if i < 0 {
			return idxs
		}
		idxs = append(idxs, start+i)
		start += i + 1
	}
}

type rewrite struct {
	rule     int
	position int
	result   string
}

// rewrites applies every rule at every position, in rule order, without
// removing duplicates.
func rewrites(s string) []rewrite {
	var out []rewrite
	if strings.HasSuffix(s, "I") {
		out = append(out, rewrite{1, len(s) - 1, s + "U"})
	}
	if strings.HasPrefix(s, "M") {
		rest := s[1:]
		out = append(out, rewrite{2, 1, "M" + rest + rest})
	}
	for _, i := range occurrences(s, "III") {
		out = append(out, rewrite{3, i, s[:i] + "U" + s[i+3:]})
	}
	for _, i := range occurrences(s, "UU") {
		out = append(out, rewrite{4, i, s[:i] + s[i+2:]})
	}
	return out
}

// NextStates returns every string one rule application away from s, in rule
// order, with duplicates removed.
func NextStates(s string) []string {
	seen := make(map[string]struct{})
	var results []string
	for _, r := range rewrites(s) {
		if _, ok := seen[r.result]; ok {
			continue
		}
		seen[r.result] = struct{}{}
		results = append(results, r.result)
	}
	return results
}

// ApplyRule applies a single rule to s. For rules 3 and 4, occurrence picks
// which match (0-indexed, left to right) is rewritten.
func ApplyRule(s string, rule, occurrence int) (string, error) {
	if rule < 1 || rule > 4 {
		return "", ErrInvalidRule
	}
	n := 0
	for _, r := range rewrites(s) {
		if r.rule != rule {
			continue
		}
		if n == occurrence {
			return r.result, nil
		}
		n++
	}
	return "", fmt.Errorf("%w: rule %d, occurrence %d of %q", ErrNotApplicable, rule, occurrence, s)
}

// CountI returns the number of I's in s.
func CountI(s string) int {
	return strings.Count(s, "I")
}

// Derivable reports whether s passes the I-count invariant of strings
// derived from MI: the number of I's is never a multiple of 3. A false
// result proves s cannot be reached from MI; a true result proves nothing.
func Derivable(s string) bool {
	return IsValid(s) && CountI(s)%3 != 0
}
