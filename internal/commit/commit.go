// Package commit parses conventional commit subject lines of the form
// "type(scope): description" or "type: description".
package commit

import (
	"strings"

	"github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"
)

// ConventionalCommit is the parsed form of a single commit subject line.
type ConventionalCommit struct {
	Type        string
	Scope       string
	Description string
}

// Parser turns commit messages into ConventionalCommits. Any type name is
// accepted; only the shape of the subject line is enforced.
type Parser struct {
	machine conventionalcommits.Machine
}

// NewParser returns a Parser accepting free-form commit types.
func NewParser() *Parser {
	return &Parser{
		machine: parser.NewMachine(parser.WithTypes(conventionalcommits.TypesFreeForm)),
	}
}

// Parse reads the subject (first line) of message. It reports false for
// messages that are not conventional commits; those are meant to be skipped.
func (p *Parser) Parse(message string) (ConventionalCommit, bool) {
	subject := strings.TrimSpace(firstLine(message))
	if subject == "" {
		return ConventionalCommit{}, false
	}

	res, err := p.machine.Parse([]byte(subject))
	if err != nil || res == nil {
		return ConventionalCommit{}, false
	}

	cc, ok := res.(*conventionalcommits.ConventionalCommit)
	if !ok {
		return ConventionalCommit{}, false
	}

	// The machine lowercases the type and tolerates an empty one, so the
	// type is read verbatim from the subject instead.
	end := strings.IndexAny(subject, "(:!")
	if end <= 0 {
		return ConventionalCommit{}, false
	}
	typ := subject[:end]
	if strings.ContainsAny(typ, ") ") {
		return ConventionalCommit{}, false
	}

	out := ConventionalCommit{
		Type:        typ,
		Description: strings.TrimSpace(cc.Description),
	}
	if cc.Scope != nil {
		out.Scope = *cc.Scope
	}
	if out.Description == "" {
		return ConventionalCommit{}, false
	}
	return out, true
}

// ParseAll parses every message, dropping the ones that do not match.
func (p *Parser) ParseAll(messages []string) []ConventionalCommit {
	commits := make([]ConventionalCommit, 0, len(messages))
	for _, m := range messages {
		if c, ok := p.Parse(m); ok {
			commits = append(commits, c)
		}
	}
	return commits
}

// Parse is a convenience wrapper around a fresh Parser.
func Parse(message string) (ConventionalCommit, bool) {
	return NewParser().Parse(message)
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
