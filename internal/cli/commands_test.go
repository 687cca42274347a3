package cli

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/autover/autover/internal/changelog"
	"github.com/autover/autover/internal/config"
	apperrors "github.com/autover/autover/internal/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVersionCommand_BumpsCommitsAndTags(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	out, err := runCommand(t, runVersion, addVersionFlags, "--project-path", r.Root)
	require.NoError(t, err)

	assert.Contains(t, r.Read("src/App/App.csproj"), "<Version>1.0.1</Version>")
	assert.Contains(t, out, "App: 1.0.0 -> 1.0.1")

	tags := r.Tags()
	require.Len(t, tags, 1)
	_, ok := changelog.ParseVersionTag(tags[0])
	assert.True(t, ok, "tag %s follows the version tag convention", tags[0])
	assert.Equal(t, "Release "+tags[0], r.HeadMessage())
}

func TestVersionCommand_Flags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args        []string
		wantVersion string
	}{
		"minor":             {args: []string{"--increment-type", "Minor"}, wantVersion: "1.1.0"},
		"major lowercase":   {args: []string{"-i", "major"}, wantVersion: "2.0.0"},
		"prerelease label":  {args: []string{"--prerelease-label", "beta"}, wantVersion: "1.0.1-beta"},
		"explicit version":  {args: []string{"--next-version", "3.2.1-rc"}, wantVersion: "3.2.1-rc"},
		"none keeps number": {args: []string{"--increment-type", "None"}, wantVersion: "1.0.0"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := newTestRepo(t)

			args := append([]string{"--project-path", r.Root, "--skip-version-tag"}, tt.args...)
			_, err := runCommand(t, runVersion, addVersionFlags, args...)
			require.NoError(t, err)

			assert.Contains(t, r.Read("src/App/App.csproj"), "<Version>"+tt.wantVersion+"</Version>")
			assert.Empty(t, r.Tags())
			assert.Equal(t, "Updated project versions", r.HeadMessage())
		})
	}
}

func TestVersionCommand_UserErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args     func(t *testing.T, root string) []string
		sentinel error
	}{
		"invalid next version": {
			args: func(t *testing.T, root string) []string {
				return []string{"--project-path", root, "--next-version", "1.2"}
			},
			sentinel: apperrors.ErrInvalidArgument,
		},
		"invalid increment type": {
			args: func(t *testing.T, root string) []string {
				return []string{"--project-path", root, "--increment-type", "Huge"}
			},
			sentinel: apperrors.ErrInvalidIncrementType,
		},
		"not a repository": {
			args:     func(t *testing.T, root string) []string { return []string{"--project-path", t.TempDir()} },
			sentinel: apperrors.ErrNotGitRepository,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := newTestRepo(t)

			_, err := runCommand(t, runVersion, addVersionFlags, tt.args(t, r.Root)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, ExitUserError, ExitCode(err))
			assert.Contains(t, r.Read("src/App/App.csproj"), "<Version>1.0.0</Version>", "no file is touched")
		})
	}
}

func TestVersionCommand_FailingProjectLeavesOthersUntouched(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		project  string
		sentinel error
	}{
		"missing version element": {
			project:  "<Project>\n</Project>\n",
			sentinel: apperrors.ErrNoVersionElement,
		},
		"malformed version": {
			project:  strings.Replace(appProject, "1.0.0", "1.0", 1),
			sentinel: apperrors.ErrInvalidVersion,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := newTestRepo(t)
			r.Commit("src/Zed/Zed.csproj", tt.project, "feat: add zed")

			_, err := runCommand(t, runVersion, addVersionFlags, "--project-path", r.Root)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			assert.Contains(t, r.Read("src/App/App.csproj"), "<Version>1.0.0</Version>")
			assert.True(t, r.Clean(), "nothing is staged or modified")
			assert.Equal(t, "feat: add zed", r.HeadMessage())
			assert.Empty(t, r.Tags())
		})
	}
}

func TestVersionCommand_ResetsPersistedIncrementTypes(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.Commit(".autover/autover.json", `{
  "Projects": [{"Name": "App", "Path": "src/App/App.csproj", "IncrementType": "Major"}],
  "DefaultIncrementType": "Patch"
}`, "chore: configure autover")

	_, err := runCommand(t, runVersion, addVersionFlags, "--project-path", r.Root)
	require.NoError(t, err)

	assert.Contains(t, r.Read("src/App/App.csproj"), "<Version>2.0.0</Version>")
	assert.Contains(t, r.Read(".autover/autover.json"), `"IncrementType": "Patch"`)
}

func TestInfoCommand(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	out, err := runCommand(t, runInfo, addInfoFlags, "--project-path", r.Root, "--output", "json")
	require.NoError(t, err)

	var rows []projectInfo
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, projectInfo{
		Name:           "App",
		Path:           "src/App/App.csproj",
		CurrentVersion: "1.0.0",
		NextVersion:    "1.0.1",
		IncrementType:  "Patch",
	}, rows[0])

	out, err = runCommand(t, runInfo, addInfoFlags, "--project-path", r.Root, "-o", "yaml", "-i", "Minor")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	assert.Equal(t, "1.1.0", rows[0].NextVersion)

	out, err = runCommand(t, runInfo, addInfoFlags, "--project-path", r.Root)
	require.NoError(t, err)
	assert.Contains(t, out, "App")
	assert.Contains(t, out, "run 'autover configure'")

	_, err = runCommand(t, runInfo, addInfoFlags, "--project-path", r.Root, "--output", "xml")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestConfigureCommand(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	out, err := runCommand(t, runConfigure, addConfigureFlags, "--project-path", r.Root, "--increment-type", "Minor")
	require.NoError(t, err)
	assert.Contains(t, out, "Configured 1 project(s)")

	cfg, err := config.Decode([]byte(r.Read(".autover/autover.json")))
	require.NoError(t, err)
	require.Len(t, cfg.Projects, 1)
	assert.Equal(t, "App", cfg.Projects[0].Name)
	assert.Equal(t, "src/App/App.csproj", cfg.Projects[0].Path)
	assert.Equal(t, "Minor", string(*cfg.Projects[0].IncrementType))

	out, err = runCommand(t, runConfigure, addConfigureFlags, "--project-path", r.Root)
	require.NoError(t, err)
	assert.Contains(t, out, "Already configured")
}

func TestChangeCommand(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.Commit(".autover/autover.json", `{
  "Projects": [{"Name": "App", "Path": "src/App/App.csproj"}],
  "ChangeFilesDetermineIncrementType": true
}`, "chore: configure autover")

	_, err := runCommand(t, runChange, addChangeFlags,
		"--project-path", r.Root, "--project-name", "App", "--message", "Added login", "--increment-type", "Minor")
	require.NoError(t, err)
	_, err = runCommand(t, runChange, addChangeFlags,
		"--project-path", r.Root, "-p", "App", "-m", "Fixed logout", "-i", "Patch")
	require.NoError(t, err)

	cfg, err := config.Decode([]byte(r.Read(".autover/autover.json")))
	require.NoError(t, err)
	assert.Equal(t, []string{"Added login", "Fixed logout"}, cfg.Projects[0].Changelog)
	assert.Equal(t, "Minor", string(*cfg.Projects[0].IncrementType))

	_, err = runCommand(t, runChange, addChangeFlags, "--project-path", r.Root, "--message", "orphan")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = runCommand(t, runChange, addChangeFlags, "--project-path", r.Root, "-p", "Missing", "-m", "x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestChangelogCommand_ToConsole(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.Tag("version_2024-01-01.00.00.00")
	r.Commit("src/App/Program.cs", "class Program {}", "fix(core): handle empty input")
	r.Commit("README.md", "# App", "docs: describe usage")
	r.Commit("notes.txt", "x", "work in progress")
	r.Tag("version_2024-02-01.00.00.00")

	out, err := runCommand(t, runChangelog, addChangelogFlags, "--project-path", r.Root, "--output-to-console")
	require.NoError(t, err)

	assert.Equal(t, "## Release 2024-02-01\n\n### Documentation\n* describe usage\n### Bug Fixes\n* **core**: handle empty input\n", out)
}

func TestChangelogCommand_PersistsAndLists(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.Tag("version_2024-01-01.00.00.00")

	_, err := runCommand(t, runChangelog, addChangelogFlags, "--project-path", r.Root)
	require.NoError(t, err)
	assert.Equal(t, "## Release 2024-01-01\n\n### Features\n* initial project\n", r.Read("CHANGELOG.md"))

	r.Commit("src/App/Feature.cs", "class Feature {}", "feat(ui): add dark mode")
	r.Tag("version_2024-03-01.12.00.00")

	_, err = runCommand(t, runChangelog, addChangelogFlags, "--project-path", r.Root)
	require.NoError(t, err)
	content := r.Read("CHANGELOG.md")
	assert.True(t, strings.HasPrefix(content, "## Release 2024-03-01\n\n### Features\n* **ui**: add dark mode\n\n## Release 2024-01-01"), content)

	out, err := runCommand(t, runChangelogReleases, addChangelogReleasesFlags, "--project-path", r.Root)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Release 2024-03-01"), strings.Index(out, "Release 2024-01-01"))
}

func TestChangelogCommand_ReportsEntryCount(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.Tag("version_2024-01-01.00.00.00")

	out, err := runCommand(t, runChangelog, addChangelogFlags, "--project-path", r.Root)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote release 2024-01-01 with 1 entries")

	r.Commit("README.md", "readme", "tidy up the readme")
	r.Tag("version_2024-02-01.00.00.00")

	out, err = runCommand(t, runChangelog, addChangelogFlags, "--project-path", r.Root)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote release 2024-02-01 with 0 entries")
	assert.True(t, strings.HasPrefix(r.Read("CHANGELOG.md"), "## Release 2024-02-01\n\n\n## Release 2024-01-01"), r.Read("CHANGELOG.md"))
}

func TestChangelogCommand_RelativePathFromSubdirectory(t *testing.T) {
	r := newTestRepo(t)
	r.Tag("version_2024-01-01.00.00.00")
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(r.Path("src")))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err := runCommand(t, runChangelog, addChangelogFlags,
		"--project-path", r.Root, "--changelog-path", "NOTES.md")
	require.NoError(t, err)
	assert.Equal(t, "## Release 2024-01-01\n\n### Features\n* initial project\n", r.Read("src/NOTES.md"))
	assert.Equal(t, gogit.Added, r.Staging("src/NOTES.md"))

	out, err := runCommand(t, runChangelogReleases, addChangelogReleasesFlags,
		"--project-path", r.Root, "--changelog-path", "NOTES.md")
	require.NoError(t, err)
	assert.Contains(t, out, "Release 2024-01-01")
}

func TestChangelogCommand_ChangeFilesAreCleared(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.Commit(".autover/autover.json", `{
  "UseCommitsForChangelog": false,
  "Projects": [{"Name": "App", "Path": "src/App/App.csproj", "Changelog": ["Added login"]}]
}`, "chore: record change")
	r.Tag("version_2024-01-01.00.00.00")

	out, err := runCommand(t, runChangelog, addChangelogFlags, "--project-path", r.Root)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared recorded change entries")

	assert.Equal(t, "## Release 2024-01-01\n\n### App\n\n* Added login\n", r.Read("CHANGELOG.md"))

	cfg, err := config.Decode([]byte(r.Read(".autover/autover.json")))
	require.NoError(t, err)
	assert.Empty(t, cfg.Projects[0].Changelog)
}

func TestChangelogCommand_NoVersionTag(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	_, err := runCommand(t, runChangelog, addChangelogFlags, "--project-path", r.Root, "--output-to-console")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidVersionTag)
	assert.Equal(t, ExitUserError, ExitCode(err))
}

func TestBuildInfoCommand(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, runBuildInfo, addBuildInfoFlags)
	require.NoError(t, err)
	assert.Contains(t, out, "autover ")
	assert.Contains(t, out, "platform: ")

	out, err = runCommand(t, runBuildInfo, addBuildInfoFlags, "-o", "json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "goVersion")
}

func TestDoctorCommand(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	out, err := runCommand(t, runDoctor, addDoctorFlags, "--project-path", r.Root)
	require.NoError(t, err)
	assert.Contains(t, out, "Git repository: ")
	assert.Contains(t, out, "Project App: version 1.0.0")

	out, err = runCommand(t, runDoctor, addDoctorFlags, "--project-path", r.Root, "-o", "json")
	require.NoError(t, err)
	var report struct {
		Passed bool `json:"passed"`
		Checks []struct {
			Name string `json:"name"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Passed)
	assert.Len(t, report.Checks, 4)

	r.Commit("src/App/App.csproj", strings.Replace(appProject, "1.0.0", "bad", 1), "chore: break version")
	_, err = runCommand(t, runDoctor, addDoctorFlags, "--project-path", r.Root)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrHealthCheckFailed)
}
