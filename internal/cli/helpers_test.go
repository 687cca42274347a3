package cli

import (
	"bytes"
	"testing"

	"github.com/autover/autover/internal/testutil"
	"github.com/spf13/cobra"
)

const appProject = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <Version>1.0.0</Version>
  </PropertyGroup>
</Project>
`

// newTestRepo returns a repository holding one project, src/App/App.csproj.
func newTestRepo(t *testing.T) *testutil.GitRepo {
	t.Helper()
	r := testutil.NewGitRepo(t)
	r.Commit("src/App/App.csproj", appProject, "feat: initial project")
	return r
}

// runCommand executes a fresh command wired to runE, so flag values never
// leak between tests.
func runCommand(t *testing.T, runE func(*cobra.Command, []string) error, addFlags func(*cobra.Command), args ...string) (string, error) {
	t.Helper()
	cmd := &cobra.Command{Use: "test", RunE: runE, SilenceUsage: true, SilenceErrors: true}
	addFlags(cmd)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}
