package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
)

// Git is the subset of git operations the configuration layer depends on.
type Git interface {
	FindRoot(path string) (string, error)
	FileAtTag(root, tag, relPath string) ([]byte, error)
	Stage(root, path string) error
}

// Loader reads the repository configuration either from the working tree or
// as it was committed at a tag. Both paths feed the same decoding step and
// differ only in where the bytes come from.
type Loader struct {
	fs  afero.Fs
	git Git
}

// NewLoader creates a Loader.
func NewLoader(fs afero.Fs, git Git) *Loader {
	return &Loader{fs: fs, git: git}
}

// Load returns the configuration for the repository at gitRoot, or nil when
// no configuration file exists. When tag is set the file is read as of that
// tag. Read and decode failures are unexpected errors; invalid content is a
// user error.
func (l *Loader) Load(gitRoot, tag string) (*UserConfiguration, error) {
	livePath := RepositoryConfigPath(gitRoot)
	displayPath := livePath

	exists, err := afero.Exists(l.fs, livePath)
	if err != nil {
		return nil, fmt.Errorf("issue loading configuration at '%s': %w", livePath, err)
	}
	if !exists {
		return nil, nil
	}

	var content []byte
	if tag == "" {
		content, err = afero.ReadFile(l.fs, livePath)
	} else {
		displayPath = fmt.Sprintf("%s@%s", RepositoryConfigRelPath(), tag)
		content, err = l.git.FileAtTag(gitRoot, tag, RepositoryConfigRelPath())
		if stderrors.Is(err, fs.ErrNotExist) {
			logDebug("[config] no configuration committed at %s", tag)
			return nil, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("issue loading configuration at '%s': %w", displayPath, err)
	}

	cfg, err := Decode(content)
	if err != nil {
		return nil, fmt.Errorf("issue loading configuration at '%s': %w", displayPath, err)
	}

	if err := Validate(cfg, displayPath); err != nil {
		return nil, err
	}

	logDebug("[config] loaded %s with %d project(s)", displayPath, len(cfg.Projects))
	return cfg, nil
}

// Decode parses a repository configuration document over the defaults.
func Decode(content []byte) (*UserConfiguration, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, fmt.Errorf("configuration document is empty")
	}

	k := koanf.New(".")
	for key, value := range GetRepositoryDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying default %s: %w", key, err)
		}
	}

	if err := k.Load(rawbytes.Provider(content), json.Parser()); err != nil {
		return nil, fmt.Errorf("parsing configuration JSON: %w", err)
	}

	cfg := NewUserConfiguration()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	if cfg.Projects == nil {
		cfg.Projects = []*Project{}
	}
	for _, p := range cfg.Projects {
		if p != nil && p.Changelog == nil {
			p.Changelog = []string{}
		}
	}
	return cfg, nil
}
