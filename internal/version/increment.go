package version

import (
	"strings"

	apperrors "github.com/autover/autover/internal/errors"
)

// IncrementType selects which component of a version is incremented.
// None leaves the numeric components untouched and only applies a label.
type IncrementType string

const (
	None  IncrementType = "None"
	Patch IncrementType = "Patch"
	Minor IncrementType = "Minor"
	Major IncrementType = "Major"
)

// IncrementTypes lists the valid increment types from smallest to largest.
func IncrementTypes() []IncrementType {
	return []IncrementType{None, Patch, Minor, Major}
}

// ParseIncrementType matches s case-insensitively against the known types.
func ParseIncrementType(s string) (IncrementType, error) {
	for _, t := range IncrementTypes() {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", apperrors.InvalidIncrementType(s)
}

// rank orders increment types; unknown values rank below None.
func (t IncrementType) rank() int {
	for i, known := range IncrementTypes() {
		if t == known {
			return i
		}
	}
	return -1
}

// Max returns the larger of the two increment types.
func Max(a, b IncrementType) IncrementType {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// IsValid reports whether t is one of the known increment types.
func (t IncrementType) IsValid() bool {
	return t.rank() >= 0
}
