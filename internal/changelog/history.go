package changelog

import (
	"sort"
	"strings"
	"time"

	apperrors "github.com/autover/autover/internal/errors"
)

const (
	// TagPrefix starts every version tag name.
	TagPrefix = "version_"
	// TagTimeLayout is the exact timestamp format following TagPrefix.
	TagTimeLayout = "2006-01-02.15.04.05"
)

// VersionTagName returns the version tag name for a release made at t.
func VersionTagName(t time.Time) string {
	return TagPrefix + t.Format(TagTimeLayout)
}

// ParseVersionTag returns the release time encoded in a version tag name.
// Names that do not match the convention exactly are rejected.
func ParseVersionTag(name string) (time.Time, bool) {
	stamp, ok := strings.CutPrefix(name, TagPrefix)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(TagTimeLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// History is the pair of version tags bounding the release being described.
type History struct {
	Current    time.Time
	CurrentTag string
	// PreviousTag is empty for the first release, meaning "all commits".
	PreviousTag string
}

// HasPrevious reports whether the commit range is bounded by an earlier release.
func (h History) HasPrevious() bool {
	return h.PreviousTag != ""
}

// ResolveHistory picks the newest and second-newest version tags from tags.
// Tags that are not version tags are ignored; having none is a user error.
func ResolveHistory(gitRoot string, tags []string) (History, error) {
	type stamped struct {
		name string
		at   time.Time
	}

	var versions []stamped
	for _, name := range tags {
		if at, ok := ParseVersionTag(name); ok {
			versions = append(versions, stamped{name: name, at: at})
		}
	}
	if len(versions) == 0 {
		return History{}, apperrors.NoVersionTag(gitRoot)
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].at.After(versions[j].at)
	})

	h := History{Current: versions[0].at, CurrentTag: versions[0].name}
	if len(versions) > 1 {
		h.PreviousTag = versions[1].name
	}
	logDebug("[changelog] current tag %s, previous tag %q", h.CurrentTag, h.PreviousTag)
	return h, nil
}
