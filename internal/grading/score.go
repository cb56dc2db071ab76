// Package grading turns teacher input into grade ledger appends.
package grading

import (
	"strconv"
	"strings"

	"studentcontrol/internal/shared"
)

// Score codes as they appear on the wire and in the store.
const (
	// UnselectedCode is the selector placeholder. It must never be
	// persisted into a grade ledger.
	UnselectedCode = "Not Seçin"

	CodeExemptCounted    = "G" // counted in the average's denominator, adds nothing to the sum
	CodeExemptUncounted1 = "R" // excluded from the average entirely
	CodeExemptUncounted2 = "İ" // excluded from the average entirely
)

// ScoreKind tags the score variant.
type ScoreKind int

const (
	// ScoreUnselected is the sentinel "no score chosen" value.
	ScoreUnselected ScoreKind = iota
	// ScoreNumeric is a numeric score from the closed set {0,10,...,100}.
	ScoreNumeric
	// ScoreExemptCounted counts toward the denominator but not the sum.
	ScoreExemptCounted
	// ScoreExemptUncounted is excluded from both sum and count.
	ScoreExemptUncounted
)

// Score is the typed score variant. Components switch on Kind instead of
// comparing raw strings; Value is meaningful only for ScoreNumeric.
type Score struct {
	Kind  ScoreKind
	Value int
}

// ParseScore parses a wire score code into the typed variant. An empty
// string parses as the unselected sentinel; anything outside the closed
// numeric set and exemption codes is a validation error.
func ParseScore(code string) (Score, error) {
	switch trimmed := strings.TrimSpace(code); trimmed {
	case "", UnselectedCode:
		return Score{Kind: ScoreUnselected}, nil
	case CodeExemptCounted:
		return Score{Kind: ScoreExemptCounted}, nil
	case CodeExemptUncounted1, CodeExemptUncounted2:
		return Score{Kind: ScoreExemptUncounted}, nil
	default:
		v, err := strconv.Atoi(trimmed)
		if err != nil || v < 0 || v > 100 || v%10 != 0 {
			return Score{}, shared.ValidationError{
				Field:   "score",
				Message: "must be one of 0,10,...,100 or G, R, İ",
			}
		}
		return Score{Kind: ScoreNumeric, Value: v}, nil
	}
}

// Code returns the canonical persisted form of the score.
func (s Score) Code() string {
	switch s.Kind {
	case ScoreNumeric:
		return strconv.Itoa(s.Value)
	case ScoreExemptCounted:
		return CodeExemptCounted
	case ScoreExemptUncounted:
		return CodeExemptUncounted1
	default:
		return UnselectedCode
	}
}

// IsUnselected reports whether the score is the sentinel value.
func (s Score) IsUnselected() bool { return s.Kind == ScoreUnselected }
