package changelog

import (
	"fmt"
	"sort"

	"github.com/autover/autover/internal/commit"
	"github.com/autover/autover/internal/config"
	"github.com/autover/autover/internal/project"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for changelog operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Git is the subset of git operations changelog generation reads from.
type Git interface {
	Tags(root string) ([]string, error)
	CommitMessages(root, sinceTag string) ([]string, error)
}

// Generator assembles a release from the repository's version tags and
// either its commit history or the configured change entries.
type Generator struct {
	git    Git
	parser *commit.Parser
}

// NewGenerator creates a Generator.
func NewGenerator(git Git) *Generator {
	return &Generator{git: git, parser: commit.NewParser()}
}

// History resolves the version tags bounding the release at gitRoot.
func (g *Generator) History(gitRoot string) (History, error) {
	tags, err := g.git.Tags(gitRoot)
	if err != nil {
		return History{}, err
	}
	return ResolveHistory(gitRoot, tags)
}

// Generate resolves the history for cfg.GitRoot and renders the release as
// markdown.
func (g *Generator) Generate(cfg *config.UserConfiguration) (string, error) {
	h, err := g.History(cfg.GitRoot)
	if err != nil {
		return "", err
	}
	return g.Render(cfg, h)
}

// Render renders the release described by h as markdown.
func (g *Generator) Render(cfg *config.UserConfiguration, h History) (string, error) {
	release, err := g.Build(cfg, h)
	if err != nil {
		return "", err
	}
	return RenderMarkdownString(release)
}

// Build collects the sections of the release described by h. The mode is
// chosen by cfg.UseCommitsForChangelog.
func (g *Generator) Build(cfg *config.UserConfiguration, h History) (*Release, error) {
	if cfg.UseCommitsForChangelog {
		sections, err := g.commitSections(cfg, h)
		if err != nil {
			return nil, err
		}
		return &Release{Date: h.Current, Sections: sections, Layout: LayoutCommits}, nil
	}

	sections, err := changeFileSections(cfg)
	if err != nil {
		return nil, err
	}
	return &Release{Date: h.Current, Sections: sections, Layout: LayoutChangeFiles}, nil
}

type commitKey struct {
	typ, scope, description string
}

// commitSections groups the conventional commits in the release range by
// type. Types are ordered lexically; commits within a type are stably
// ordered by scope, so unscoped commits come first.
func (g *Generator) commitSections(cfg *config.UserConfiguration, h History) ([]Section, error) {
	messages, err := g.git.CommitMessages(cfg.GitRoot, h.PreviousTag)
	if err != nil {
		return nil, fmt.Errorf("reading commits since %q: %w", h.PreviousTag, err)
	}

	seen := make(map[commitKey]bool)
	byType := make(map[string][]commit.ConventionalCommit)
	for _, c := range g.parser.ParseAll(messages) {
		key := commitKey{c.Type, c.Scope, c.Description}
		if seen[key] {
			continue
		}
		seen[key] = true
		byType[c.Type] = append(byType[c.Type], c)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	sections := make([]Section, 0, len(types))
	for _, t := range types {
		commits := byType[t]
		sort.SliceStable(commits, func(i, j int) bool {
			return commits[i].Scope < commits[j].Scope
		})

		entries := make([]string, 0, len(commits))
		for _, c := range commits {
			entries = append(entries, formatCommit(c))
		}
		sections = append(sections, Section{
			Title:   CategoryLabel(cfg.ChangelogCategories, t),
			Entries: entries,
		})
	}

	logDebug("[changelog] %d commit(s) in %d section(s)", len(messages), len(sections))
	return sections, nil
}

func formatCommit(c commit.ConventionalCommit) string {
	if c.Scope == "" {
		return c.Description
	}
	return fmt.Sprintf("**%s**: %s", c.Scope, c.Description)
}

// changeFileSections renders one section per project with recorded entries,
// in configuration order.
func changeFileSections(cfg *config.UserConfiguration) ([]Section, error) {
	var sections []Section
	for _, p := range cfg.Projects {
		def, err := cfg.Definition(p)
		if err != nil {
			return nil, err
		}
		if len(p.Changelog) == 0 {
			continue
		}

		name, err := project.Name(def.Path)
		if err != nil {
			return nil, err
		}
		entries := make([]string, len(p.Changelog))
		copy(entries, p.Changelog)
		sections = append(sections, Section{Title: name, Entries: entries})
	}
	return sections, nil
}
