package changelog

import (
	"fmt"
	"io"
	"strings"
)

// ReleaseDateLayout formats the date in a release heading.
const ReleaseDateLayout = "2006-01-02"

// ReleaseHeadingPrefix starts every release heading.
const ReleaseHeadingPrefix = "Release "

// RenderMarkdown writes r as markdown. The output depends only on r, so the
// same release always renders to identical bytes.
func RenderMarkdown(r *Release, w io.Writer) error {
	if err := renderHeader(r, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for _, s := range r.Sections {
		if err := renderSection(s, r.Layout, w); err != nil {
			return fmt.Errorf("rendering section %s: %w", s.Title, err)
		}
	}
	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(r *Release) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(r, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderHeader(r *Release, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "## %s%s\n", ReleaseHeadingPrefix, r.Date.Format(ReleaseDateLayout)); err != nil {
		return err
	}
	if r.Layout == LayoutCommits {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// renderSection writes a single section with its entries.
func renderSection(s Section, layout Layout, w io.Writer) error {
	heading := "### " + s.Title + "\n"
	if layout == LayoutChangeFiles {
		heading = "\n" + heading + "\n"
	}
	if _, err := io.WriteString(w, heading); err != nil {
		return err
	}

	for _, entry := range s.Entries {
		if _, err := io.WriteString(w, "* "+entry+"\n"); err != nil {
			return err
		}
	}
	return nil
}
