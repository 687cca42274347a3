package health

import (
	"testing"

	"github.com/autover/autover/internal/git"
	"github.com/autover/autover/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectFile(v string) string {
	return "<Project>\n  <PropertyGroup>\n    <Version>" + v + "</Version>\n  </PropertyGroup>\n</Project>\n"
}

func checkNames(r *HealthReport) []string {
	names := make([]string, 0, len(r.Checks))
	for _, c := range r.Checks {
		names = append(names, c.Name)
	}
	return names
}

func TestRunHealthChecks(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setup      func(r *testutil.GitRepo)
		wantPassed bool
		wantNames  []string
		failing    string
		contains   map[string]string
	}{
		"healthy without tags": {
			setup: func(r *testutil.GitRepo) {
				r.Commit("src/App/App.csproj", projectFile("1.2.3"), "feat: init")
			},
			wantPassed: true,
			wantNames:  []string{"Git repository", "Configuration", "Project App", "Version tag"},
			contains: map[string]string{
				"Configuration": "not configured",
				"Project App":   "version 1.2.3, increment Patch",
				"Version tag":   "none yet",
			},
		},
		"healthy with release": {
			setup: func(r *testutil.GitRepo) {
				r.Commit("src/App/App.csproj", projectFile("1.2.3"), "feat: init")
				r.Tag("version_2024-01-01.00.00.00")
			},
			wantPassed: true,
			wantNames:  []string{"Git repository", "Configuration", "Project App", "Version tag"},
			contains: map[string]string{
				"Version tag": "latest version_2024-01-01.00.00.00",
			},
		},
		"configured": {
			setup: func(r *testutil.GitRepo) {
				r.Commit("src/App/App.csproj", projectFile("1.2.3"), "feat: init")
				r.Write(".autover/autover.json",
					`{"Projects":[{"Name":"App","Path":"src/App/App.csproj","IncrementType":"Minor"}]}`)
			},
			wantPassed: true,
			wantNames:  []string{"Git repository", "Configuration", "Project App", "Version tag"},
			contains: map[string]string{
				"Configuration": "lists 1 project(s)",
				"Project App":   "increment Minor",
			},
		},
		"unparseable version": {
			setup: func(r *testutil.GitRepo) {
				r.Commit("src/App/App.csproj", projectFile("one.two"), "feat: init")
			},
			wantNames: []string{"Git repository", "Configuration", "Project App", "Version tag"},
			failing:   "Project App",
		},
		"missing version element": {
			setup: func(r *testutil.GitRepo) {
				r.Commit("src/App/App.csproj", "<Project></Project>\n", "feat: init")
			},
			wantNames: []string{"Git repository", "Configuration", "Project App", "Version tag"},
			failing:   "Project App",
			contains: map[string]string{
				"Project App": "does not have a Version tag",
			},
		},
		"configured project missing": {
			setup: func(r *testutil.GitRepo) {
				r.Commit("src/App/App.csproj", projectFile("1.0.0"), "feat: init")
				r.Write(".autover/autover.json", `{"Projects":[{"Name":"Gone","Path":"src/Gone/Gone.csproj"}]}`)
			},
			wantNames: []string{"Git repository", "Configuration"},
			failing:   "Configuration",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := testutil.NewGitRepo(t)
			tt.setup(r)

			report := RunHealthChecks(afero.NewOsFs(), git.NewClient(), r.Root)
			assert.Equal(t, tt.wantPassed, report.Passed)
			assert.Equal(t, tt.wantNames, checkNames(report))

			for _, c := range report.Checks {
				if c.Name == tt.failing {
					assert.False(t, c.Passed, c.Name)
				} else {
					assert.True(t, c.Passed, "%s: %s", c.Name, c.Message)
				}
				if want, ok := tt.contains[c.Name]; ok {
					assert.Contains(t, c.Message, want)
				}
			}
		})
	}
}

func TestRunHealthChecks_NotARepository(t *testing.T) {
	t.Parallel()

	report := RunHealthChecks(afero.NewOsFs(), git.NewClient(), t.TempDir())
	require.Len(t, report.Checks, 1)
	assert.False(t, report.Passed)
	assert.Equal(t, "Git repository", report.Checks[0].Name)
	assert.Contains(t, report.Checks[0].Message, "not a valid git repository")
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &HealthReport{
		Checks: []CheckResult{
			{Name: "Git repository", Passed: true, Message: "/repo"},
			{Name: "Configuration", Passed: false, Message: "broken"},
		},
	}
	assert.Equal(t, "ok Git repository: /repo\nx Configuration: broken\n", FormatReport(report, "ok", "x"))
}
