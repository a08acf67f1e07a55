package domain

import "fmt"

type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Rank returns the sort rank of an importance (lower sorts first).
// Unknown values rank after low.
func (i Importance) Rank() int {
	switch i {
	case ImportanceHigh:
		return 0
	case ImportanceMedium:
		return 1
	case ImportanceLow:
		return 2
	default:
		return 3
	}
}

// ParseImportance maps a raw importance string to an Importance.
// An empty string defaults to medium.
func ParseImportance(s string) (Importance, error) {
	switch Importance(s) {
	case "":
		return ImportanceMedium, nil
	case ImportanceHigh, ImportanceMedium, ImportanceLow:
		return Importance(s), nil
	default:
		return "", fmt.Errorf("importance %q must be one of high, medium, low", s)
	}
}

// PolicyName selects the per-day allocation policy used by the engine.
type PolicyName string

const (
	PolicyUrgencyWeighted PolicyName = "urgency_weighted"
	PolicyFixedCap        PolicyName = "fixed_cap"
	PolicyDailyMix        PolicyName = "daily_mix"
)

// ValidPolicies is the canonical set of accepted policy names.
var ValidPolicies = map[PolicyName]bool{
	PolicyUrgencyWeighted: true,
	PolicyFixedCap:        true,
	PolicyDailyMix:        true,
}

type ResidualReason string

const (
	ResidualHorizonExceeded ResidualReason = "horizon_exceeded"
	ResidualUnallocated     ResidualReason = "unallocated"
)
