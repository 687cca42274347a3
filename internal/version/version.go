// Package version implements the three-part version model used for project
// versions: parsing, formatting and incrementing major.minor.patch[-label].
package version

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/autover/autover/internal/errors"
)

// ThreePartVersion is a major.minor.patch version with an optional prerelease label.
// Values are immutable once built; increments return a new value.
type ThreePartVersion struct {
	Major           int
	Minor           int
	Patch           int
	PrereleaseLabel string
}

// Fallback is the version TryParse returns alongside false.
var Fallback = ThreePartVersion{Major: 0, Minor: 0, Patch: 1}

// String formats the version, omitting the label suffix when the label is empty.
func (v ThreePartVersion) String() string {
	if v.PrereleaseLabel == "" {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d.%d-%s", v.Major, v.Minor, v.Patch, v.PrereleaseLabel)
}

// Parse reads text of the form major.minor.patch or major.minor.patch-label.
// At most one '-' is allowed and each of the three parts must be a
// non-negative integer.
func Parse(text string) (ThreePartVersion, error) {
	full := strings.Split(text, "-")
	if len(full) > 2 {
		return ThreePartVersion{}, apperrors.InvalidVersion(text)
	}

	parts := strings.Split(full[0], ".")
	if len(parts) != 3 {
		return ThreePartVersion{}, apperrors.InvalidVersion(text)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := parsePart(part)
		if err != nil {
			return ThreePartVersion{}, apperrors.InvalidVersion(text)
		}
		nums[i] = n
	}

	v := ThreePartVersion{Major: nums[0], Minor: nums[1], Patch: nums[2]}
	if len(full) == 2 {
		v.PrereleaseLabel = full[1]
	}
	return v, nil
}

// parsePart accepts only plain decimal digits; signs and whitespace are rejected.
func parsePart(part string) (int, error) {
	if part == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(part)
}

// TryParse is the non-failing variant of Parse. On failure it returns
// Fallback and false; callers must check the boolean.
func TryParse(text string) (ThreePartVersion, bool) {
	v, err := Parse(text)
	if err != nil {
		return Fallback, false
	}
	return v, true
}

// Increment returns v advanced by the given increment type. Lower components
// reset to zero when a higher one increments. The prerelease label is replaced
// with label verbatim.
func (v ThreePartVersion) Increment(incrementType IncrementType, label string) ThreePartVersion {
	next := ThreePartVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch, PrereleaseLabel: label}
	switch incrementType {
	case Major:
		next.Major++
		next.Minor = 0
		next.Patch = 0
	case Minor:
		next.Minor++
		next.Patch = 0
	case Patch:
		next.Patch++
	}
	return next
}

// GetNextVersion parses current and increments it. Malformed input fails with
// the same error as Parse.
func GetNextVersion(current string, incrementType IncrementType, prereleaseLabel string) (ThreePartVersion, error) {
	v, err := Parse(current)
	if err != nil {
		return ThreePartVersion{}, err
	}
	return v.Increment(incrementType, prereleaseLabel), nil
}
