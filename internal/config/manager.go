package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/autover/autover/internal/errors"
	"github.com/autover/autover/internal/project"
	"github.com/autover/autover/internal/version"
	"github.com/spf13/afero"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for configuration operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// ResetRequest selects which accumulated state Reset clears.
type ResetRequest struct {
	Changelog     bool
	IncrementType bool
}

// Manager reconciles repository configuration with discovered projects and
// persists it.
type Manager struct {
	fs     afero.Fs
	git    Git
	loader *Loader
}

// NewManager creates a Manager.
func NewManager(fs afero.Fs, git Git) *Manager {
	return &Manager{fs: fs, git: git, loader: NewLoader(fs, git)}
}

// Retrieve resolves the git root for projectPath, loads the persisted
// configuration (as of tag when set) and binds every configured project to a
// discovered project file.
//
// With a configuration that lists projects, each one must match a discovered
// file or reconciliation fails; the result is marked persist-eligible.
// Without one, a configuration is seeded from every discovered project using
// incrementType and is not persist-eligible.
func (m *Manager) Retrieve(projectPath string, incrementType version.IncrementType, tag string) (*UserConfiguration, error) {
	if projectPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		projectPath = wd
	}

	gitRoot, err := m.git.FindRoot(projectPath)
	if err != nil {
		return nil, err
	}
	if gitRoot == "" {
		return nil, apperrors.NotGitRepository(projectPath)
	}

	cfg, err := m.loader.Load(gitRoot, tag)
	if err != nil {
		return nil, err
	}

	definitions, err := project.Discover(m.fs, projectPath)
	if err != nil {
		return nil, err
	}

	if cfg != nil && len(cfg.Projects) > 0 {
		if err := bindProjects(cfg, definitions, gitRoot, projectPath); err != nil {
			return nil, err
		}
		cfg.PersistConfiguration = true
	} else {
		if cfg == nil {
			cfg = NewUserConfiguration()
		}
		if err := seedProjects(cfg, definitions, gitRoot, incrementType); err != nil {
			return nil, err
		}
	}

	cfg.GitRoot = gitRoot
	cfg.definitions = definitions

	for _, p := range cfg.Projects {
		if !p.Bound() {
			return nil, apperrors.UnresolvedProject(p.Path)
		}
	}

	logDebug("[config] reconciled %d project(s) at %s (persist=%v)", len(cfg.Projects), gitRoot, cfg.PersistConfiguration)
	return cfg, nil
}

// bindProjects matches every configured project to a discovered definition.
func bindProjects(cfg *UserConfiguration, definitions []*project.Definition, gitRoot, searchPath string) error {
	for _, p := range cfg.Projects {
		idx := matchDefinition(definitions, gitRoot, p.Path)
		if idx < 0 {
			return apperrors.ConfiguredProjectNotFound(p.Path, searchPath)
		}
		p.binding = idx + 1
	}
	return nil
}

// matchDefinition compares paths after normalizing separators. Relative
// configured paths are resolved against the git root.
func matchDefinition(definitions []*project.Definition, gitRoot, configured string) int {
	target := project.NormalizePath(configured)
	if !strings.HasPrefix(target, "/") && !filepath.IsAbs(configured) {
		target = project.NormalizePath(filepath.Join(gitRoot, configured))
	}

	for i, d := range definitions {
		if project.NormalizePath(d.Path) == target {
			return i
		}
	}
	return -1
}

// seedProjects adds one project entry per discovered definition.
func seedProjects(cfg *UserConfiguration, definitions []*project.Definition, gitRoot string, incrementType version.IncrementType) error {
	if incrementType == "" {
		incrementType = cfg.DefaultIncrementType
	}

	cfg.Projects = make([]*Project, 0, len(definitions))
	for i, d := range definitions {
		name, err := project.Name(d.Path)
		if err != nil {
			return err
		}
		cfg.Projects = append(cfg.Projects, &Project{
			Name:          name,
			Path:          relativeTo(gitRoot, d.Path),
			IncrementType: incrementPtr(incrementType),
			Changelog:     []string{},
			binding:       i + 1,
		})
	}
	return nil
}

// relativeTo returns p relative to root with forward slashes, or p itself
// when it does not live under root.
func relativeTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// Reset clears accumulated changelog entries and/or resets every project's
// increment type to the configuration default, then rewrites and stages the
// configuration file. It does nothing when no configuration file exists yet.
func (m *Manager) Reset(cfg *UserConfiguration, req ResetRequest) error {
	path := RepositoryConfigPath(cfg.GitRoot)
	exists, err := afero.Exists(m.fs, path)
	if err != nil {
		return fmt.Errorf("unable to reset the configuration file '%s': %w", path, err)
	}
	if !exists {
		logDebug("[config] reset skipped, %s does not exist", path)
		return nil
	}

	for _, p := range cfg.Projects {
		if req.Changelog {
			p.Changelog = []string{}
		}
		if req.IncrementType {
			p.IncrementType = incrementPtr(cfg.DefaultIncrementType)
		}
	}

	if err := m.write(cfg, path); err != nil {
		return fmt.Errorf("unable to reset the configuration file '%s': %w", path, err)
	}
	if err := m.git.Stage(cfg.GitRoot, path); err != nil {
		return fmt.Errorf("unable to reset the configuration file '%s': %w", path, err)
	}
	return nil
}

// Save writes the configuration to <gitRoot>/.autover/autover.json, creating
// the folder when needed, and stages it.
func (m *Manager) Save(cfg *UserConfiguration) error {
	if cfg.GitRoot == "" {
		return apperrors.NotGitRepository("")
	}

	path := RepositoryConfigPath(cfg.GitRoot)
	if err := m.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := m.write(cfg, path); err != nil {
		return fmt.Errorf("saving configuration '%s': %w", path, err)
	}
	if err := m.git.Stage(cfg.GitRoot, path); err != nil {
		return fmt.Errorf("staging configuration '%s': %w", path, err)
	}

	cfg.PersistConfiguration = true
	return nil
}

// Exists reports whether the repository already has a configuration file.
func (m *Manager) Exists(gitRoot string) (bool, error) {
	return afero.Exists(m.fs, RepositoryConfigPath(gitRoot))
}

func (m *Manager) write(cfg *UserConfiguration, path string) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	return afero.WriteFile(m.fs, path, data, 0o644)
}

// Encode serializes the configuration with two-space indentation. Runtime
// fields and empty optional fields are omitted.
func Encode(cfg *UserConfiguration) ([]byte, error) {
	for _, p := range cfg.Projects {
		if p.Changelog == nil {
			p.Changelog = []string{}
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	return append(data, '\n'), nil
}

// AddChange records a change-file entry for the named project. When
// ChangeFilesDetermineIncrementType is enabled the project's increment type
// is raised to incrementType if that is larger.
func AddChange(cfg *UserConfiguration, projectName, message string, incrementType version.IncrementType) (*Project, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.MissingArgument("message")
	}

	p, err := cfg.FindProject(projectName)
	if err != nil {
		return nil, err
	}

	p.Changelog = append(p.Changelog, message)
	if cfg.ChangeFilesDetermineIncrementType && incrementType != "" {
		current := cfg.EffectiveIncrementType(p)
		p.IncrementType = incrementPtr(version.Max(current, incrementType))
	}
	return p, nil
}
