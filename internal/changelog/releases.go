package changelog

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ReleaseSummary describes one "## Release" section of an existing changelog.
type ReleaseSummary struct {
	Title string
	// Date is zero when the heading does not carry a parseable date.
	Date     time.Time
	Sections int
	Entries  int
}

// ListReleases returns the release sections of a markdown changelog in the
// order they appear, which is newest first for files written by Persist.
func ListReleases(source []byte) []ReleaseSummary {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var releases []ReleaseSummary
	var current *ReleaseSummary
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := headingText(node, source)
			switch {
			case node.Level <= 2:
				current = nil
				dateText, ok := strings.CutPrefix(title, ReleaseHeadingPrefix)
				if node.Level != 2 || !ok {
					continue
				}
				summary := ReleaseSummary{Title: title}
				if d, err := time.Parse(ReleaseDateLayout, strings.TrimSpace(dateText)); err == nil {
					summary.Date = d
				}
				releases = append(releases, summary)
				current = &releases[len(releases)-1]
			case node.Level == 3 && current != nil:
				current.Sections++
			}
		case *ast.List:
			if current != nil {
				current.Entries += node.ChildCount()
			}
		}
	}
	return releases
}

// LoadReleases reads the changelog at path and lists its releases.
func LoadReleases(fs afero.Fs, path string) ([]ReleaseSummary, error) {
	source, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading changelog %s: %w", path, err)
	}
	return ListReleases(source), nil
}

func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
