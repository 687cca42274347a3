// Package git provides the repository operations autover needs: root
// discovery, tag listing, commit history between tags, file retrieval at a
// tag, staging, committing and tagging. It uses the go-git library so no git
// binary is required.
package git

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	apperrors "github.com/autover/autover/internal/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// DefaultAuthorName and DefaultAuthorEmail sign commits when no user
// identity is configured.
const (
	DefaultAuthorName  = "autover"
	DefaultAuthorEmail = "autover@localhost"
)

// Client performs git operations on arbitrary repositories.
// All methods take the repository root (or a path inside it) as a parameter.
type Client struct {
	now func() time.Time
}

// NewClient returns a Client using the wall clock for commit timestamps.
func NewClient() *Client {
	return &Client{now: time.Now}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, apperrors.WrapWithMessage(err, apperrors.Repository, apperrors.ErrNotGitRepository,
			fmt.Sprintf("the project path '%s' is not a valid git repository", path),
			"Run 'git init' or point --project-path inside an existing repository",
		)
	}

	return repo, nil
}

// FindRoot returns the absolute path of the repository containing path.
func (c *Client) FindRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	repo, err := openRepo(abs)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to version.
		return "", apperrors.NotGitRepository(path)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] FindRoot: %s", root)
	return root, nil
}

// Tags returns the short names of all tags, sorted by name.
func (c *Client) Tags(root string) ([]string, error) {
	repo, err := openRepo(root)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.Strings(tags)
	logDebug("[git] Tags: found %d tag(s)", len(tags))
	return tags, nil
}

// CommitMessages returns the messages of commits reachable from HEAD. When
// sinceTag is set, commits reachable from that tag are excluded
// (the equivalent of `git log <tag>..HEAD`). An empty repository has no
// commits and yields nil.
func (c *Client) CommitMessages(root, sinceTag string) ([]string, error) {
	repo, err := openRepo(root)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	excluded := make(map[plumbing.Hash]bool)
	if sinceTag != "" {
		tagHash, err := resolveTag(repo, sinceTag)
		if err != nil {
			return nil, err
		}
		if err := walkLog(repo, *tagHash, func(c *object.Commit) error {
			excluded[c.Hash] = true
			return nil
		}); err != nil {
			return nil, fmt.Errorf("reading history of %s: %w", sinceTag, err)
		}
	}

	var messages []string
	err = walkLog(repo, head.Hash(), func(c *object.Commit) error {
		if !excluded[c.Hash] {
			messages = append(messages, c.Message)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading commit history: %w", err)
	}

	logDebug("[git] CommitMessages since %q: %d commit(s)", sinceTag, len(messages))
	return messages, nil
}

func walkLog(repo *git.Repository, from plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return err
	}
	defer iter.Close()

	err = iter.ForEach(fn)
	if stderrors.Is(err, storer.ErrStop) {
		return nil
	}
	return err
}

// resolveTag returns the commit a tag points to, peeling annotated tags.
func resolveTag(repo *git.Repository, tag string) (*plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(plumbing.NewTagReferenceName(tag)))
	if err != nil {
		return nil, fmt.Errorf("resolving tag %s: %w", tag, err)
	}
	return hash, nil
}

// FileAtTag returns the content of relPath (relative to root) as committed
// at tag. A file absent at that tag yields an error matching fs.ErrNotExist.
func (c *Client) FileAtTag(root, tag, relPath string) ([]byte, error) {
	repo, err := openRepo(root)
	if err != nil {
		return nil, err
	}

	hash, err := resolveTag(repo, tag)
	if err != nil {
		return nil, err
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit for tag %s: %w", tag, err)
	}

	file, err := commit.File(filepath.ToSlash(relPath))
	if err != nil {
		if stderrors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%s at %s: %w", relPath, tag, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("reading %s at %s: %w", relPath, tag, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("reading %s at %s: %w", relPath, tag, err)
	}

	logDebug("[git] FileAtTag %s@%s: %d byte(s)", relPath, tag, len(contents))
	return []byte(contents), nil
}

// Stage adds path to the index. path may be absolute or relative to root.
func (c *Client) Stage(root, path string) error {
	repo, err := openRepo(root)
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	rel := path
	if filepath.IsAbs(path) {
		rel, err = filepath.Rel(worktree.Filesystem.Root(), path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
	}

	if _, err := worktree.Add(filepath.ToSlash(rel)); err != nil {
		return fmt.Errorf("staging %s: %w", rel, err)
	}

	logDebug("[git] Stage: %s", rel)
	return nil
}

// Commit records the staged changes and returns the new commit hash. A
// release without file changes still gets a commit to tag.
func (c *Client) Commit(root, message string) (string, error) {
	repo, err := openRepo(root)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author:            signature(repo, c.now()),
		AllowEmptyCommits: true,
	})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}

	logDebug("[git] Commit: %s %q", hash.String(), message)
	return hash.String(), nil
}

// signature uses the configured user identity, falling back to the
// autover defaults.
func signature(repo *git.Repository, when time.Time) *object.Signature {
	sig := &object.Signature{Name: DefaultAuthorName, Email: DefaultAuthorEmail, When: when}

	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}

// CreateTag creates a lightweight tag on HEAD.
func (c *Client) CreateTag(root, name string) error {
	repo, err := openRepo(root)
	if err != nil {
		return err
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD reference: %w", err)
	}

	if _, err := repo.CreateTag(name, head.Hash(), nil); err != nil {
		return fmt.Errorf("creating tag %s: %w", name, err)
	}

	logDebug("[git] CreateTag: %s -> %s", name, head.Hash().String())
	return nil
}
