package changelog

import (
	"fmt"
	"path/filepath"

	"github.com/autover/autover/internal/config"
	apperrors "github.com/autover/autover/internal/errors"
	"github.com/spf13/afero"
)

// Stager stages a written file.
type Stager interface {
	Stage(root, path string) error
}

// Persist writes text to path, or to the default changelog file at gitRoot
// when path is empty. An existing file keeps its content below the new text.
// The file is staged once the write succeeds. It returns the written path.
func Persist(fs afero.Fs, git Stager, gitRoot, text, path string) (string, error) {
	if gitRoot == "" {
		return "", apperrors.NotGitRepository(path)
	}
	if path == "" {
		path = filepath.Join(gitRoot, config.DefaultChangelogFileName)
	}

	content := []byte(text)
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return "", fmt.Errorf("inspecting changelog %s: %w", path, err)
	}
	if exists {
		existing, err := afero.ReadFile(fs, path)
		if err != nil {
			return "", fmt.Errorf("reading changelog %s: %w", path, err)
		}
		content = make([]byte, 0, len(text)+1+len(existing))
		content = append(content, text...)
		content = append(content, '\n')
		content = append(content, existing...)
	}

	if err := afero.WriteFile(fs, path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing changelog %s: %w", path, err)
	}
	if err := git.Stage(gitRoot, path); err != nil {
		return "", fmt.Errorf("staging changelog %s: %w", path, err)
	}

	logDebug("[changelog] wrote %d byte(s) to %s", len(content), path)
	return path, nil
}
