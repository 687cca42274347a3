package changelog

import "time"

// Release is one rendered changelog section, dated by the version tag that
// anchors it.
type Release struct {
	Date     time.Time
	Sections []Section
	Layout   Layout
}

// Layout selects how sections are spaced in the rendered markdown.
type Layout int

const (
	// LayoutCommits puts one blank line after the release heading and packs
	// commit-type sections together.
	LayoutCommits Layout = iota
	// LayoutChangeFiles precedes each project section with a blank line and
	// separates its heading from its entries with another.
	LayoutChangeFiles
)

// Section is a "### Title" block followed by bullet entries in order.
type Section struct {
	Title   string
	Entries []string
}

// IsEmpty reports whether the release has no entries in any section.
func (r Release) IsEmpty() bool {
	for _, s := range r.Sections {
		if len(s.Entries) > 0 {
			return false
		}
	}
	return true
}

// Count returns the total number of entries across all sections.
func (r Release) Count() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Entries)
	}
	return n
}
