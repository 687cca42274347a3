package config

import (
	apperrors "github.com/autover/autover/internal/errors"
	"github.com/autover/autover/internal/project"
	"github.com/autover/autover/internal/version"
)

// UserConfiguration is the per-repository configuration stored at
// <gitRoot>/.autover/autover.json. GitRoot and PersistConfiguration are
// runtime state and never serialized.
type UserConfiguration struct {
	GitRoot              string `json:"-" koanf:"-"`
	PersistConfiguration bool   `json:"-" koanf:"-"`

	Projects                          []*Project            `json:"Projects" koanf:"Projects" validate:"dive"`
	UseCommitsForChangelog            bool                  `json:"UseCommitsForChangelog" koanf:"UseCommitsForChangelog"`
	DefaultIncrementType              version.IncrementType `json:"DefaultIncrementType" koanf:"DefaultIncrementType" validate:"incrementtype"`
	ChangelogCategories               map[string]string     `json:"ChangelogCategories,omitempty" koanf:"ChangelogCategories"`
	ChangeFilesDetermineIncrementType bool                  `json:"ChangeFilesDetermineIncrementType" koanf:"ChangeFilesDetermineIncrementType"`

	// definitions is the discovery result the projects were reconciled against.
	definitions []*project.Definition
}

// Project is one configured project unit.
type Project struct {
	Name            string                 `json:"Name" koanf:"Name" validate:"required"`
	Path            string                 `json:"Path" koanf:"Path" validate:"required"`
	IncrementType   *version.IncrementType `json:"IncrementType,omitempty" koanf:"IncrementType" validate:"omitempty,incrementtype"`
	PrereleaseLabel string                 `json:"PrereleaseLabel,omitempty" koanf:"PrereleaseLabel"`
	// Changelog holds free-text entries used when changelogs are not built from commits.
	Changelog []string `json:"Changelog" koanf:"Changelog"`

	// binding is the 1-based index into UserConfiguration.definitions; 0 when unresolved.
	binding int
}

// NewUserConfiguration returns a configuration with default settings and no projects.
func NewUserConfiguration() *UserConfiguration {
	return &UserConfiguration{
		Projects:               []*Project{},
		UseCommitsForChangelog: true,
		DefaultIncrementType:   version.Patch,
	}
}

// Definition returns the discovered project file bound to p during reconciliation.
func (c *UserConfiguration) Definition(p *Project) (*project.Definition, error) {
	if p == nil || p.binding < 1 || p.binding > len(c.definitions) {
		path := ""
		if p != nil {
			path = p.Path
		}
		return nil, apperrors.UnresolvedProject(path)
	}
	return c.definitions[p.binding-1], nil
}

// EffectiveIncrementType returns the project's override, or the configuration default.
func (c *UserConfiguration) EffectiveIncrementType(p *Project) version.IncrementType {
	if p.IncrementType != nil && *p.IncrementType != "" {
		return *p.IncrementType
	}
	if c.DefaultIncrementType != "" {
		return c.DefaultIncrementType
	}
	return version.Patch
}

// FindProject returns the project with the given name.
func (c *UserConfiguration) FindProject(name string) (*Project, error) {
	names := make([]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		if p.Name == name {
			return p, nil
		}
		names = append(names, p.Name)
	}
	return nil, apperrors.ProjectNameNotConfigured(name, names)
}

// Bound reports whether p has been reconciled against a discovered project file.
func (p *Project) Bound() bool {
	return p.binding > 0
}

func incrementPtr(t version.IncrementType) *version.IncrementType {
	return &t
}
