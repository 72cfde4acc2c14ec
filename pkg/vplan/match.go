package vplan

import (
	"fmt"
	"strings"
)

// MatchPolicy decides how a class short name is compared to the query.
// Both policies are case-sensitive.
type MatchPolicy int

const (
	MatchTrimmed MatchPolicy = iota
	MatchExact
)

func (p MatchPolicy) String() string {
	if p == MatchExact {
		return "exact"
	}
	return "trim"
}

// ParseMatchPolicy accepts "trim" (or an empty string) and "exact".
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "trim":
		return MatchTrimmed, nil
	case "exact":
		return MatchExact, nil
	default:
		return MatchTrimmed, fmt.Errorf("unknown match policy %q (want trim or exact)", s)
	}
}

func (p MatchPolicy) matches(shortName, target string) bool {
	if p == MatchExact {
		return shortName == target
	}
	return strings.TrimSpace(shortName) == strings.TrimSpace(target)
}
