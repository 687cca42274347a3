// Package health runs readiness checks for a repository managed by autover,
// returning structured reports used by the 'autover doctor' command.
package health

import (
	"fmt"
	"strings"

	"github.com/autover/autover/internal/changelog"
	"github.com/autover/autover/internal/config"
	apperrors "github.com/autover/autover/internal/errors"
	"github.com/autover/autover/internal/project"
	"github.com/autover/autover/internal/version"
	"github.com/spf13/afero"
)

// Git is the subset of git operations the checks depend on.
type Git interface {
	config.Git
	Tags(root string) ([]string, error)
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string `json:"name" yaml:"name"`
	Passed  bool   `json:"passed" yaml:"passed"`
	Message string `json:"message" yaml:"message"`
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult `json:"checks" yaml:"checks"`
	Passed bool          `json:"passed" yaml:"passed"`
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// RunHealthChecks checks the repository containing projectPath. Later checks
// depend on earlier ones, so the report stops at the first check that cannot
// be evaluated. Failures are reported, never returned.
func RunHealthChecks(fs afero.Fs, git Git, projectPath string) *HealthReport {
	report := &HealthReport{Checks: make([]CheckResult, 0), Passed: true}

	root, err := git.FindRoot(projectPath)
	if err != nil || root == "" {
		report.add(failed("Git repository", err, "no git repository found"))
		return report
	}
	report.add(CheckResult{Name: "Git repository", Passed: true, Message: root})

	cfg, err := config.NewManager(fs, git).Retrieve(projectPath, "", "")
	if err != nil {
		report.add(failed("Configuration", err, ""))
		return report
	}
	report.add(checkConfiguration(cfg))

	for _, p := range cfg.Projects {
		report.add(checkProject(cfg, p))
	}

	report.add(checkVersionTag(git, root))
	return report
}

func checkConfiguration(cfg *config.UserConfiguration) CheckResult {
	c := CheckResult{Name: "Configuration", Passed: true}
	if cfg.PersistConfiguration {
		c.Message = fmt.Sprintf("%s lists %d project(s)", config.RepositoryConfigRelPath(), len(cfg.Projects))
	} else {
		c.Message = fmt.Sprintf("not configured, %d discovered project(s) use defaults", len(cfg.Projects))
	}
	return c
}

// checkProject verifies that a project file carries a parseable version.
func checkProject(cfg *config.UserConfiguration, p *config.Project) CheckResult {
	name := "Project " + p.Name
	def, err := cfg.Definition(p)
	if err != nil {
		return failed(name, err, "")
	}
	if !def.HasVersionElement() {
		return failed(name, apperrors.NoVersionElement(def.Path, project.VersionElement), "")
	}
	if _, err := version.Parse(def.Version); err != nil {
		return failed(name, err, "")
	}
	return CheckResult{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("version %s, increment %s", def.Version, cfg.EffectiveIncrementType(p)),
	}
}

// checkVersionTag reports the latest release. A repository without one is
// healthy; it just cannot produce a changelog yet.
func checkVersionTag(git Git, root string) CheckResult {
	const name = "Version tag"
	tags, err := git.Tags(root)
	if err != nil {
		return failed(name, err, "")
	}
	h, err := changelog.ResolveHistory(root, tags)
	if err != nil {
		return CheckResult{Name: name, Passed: true, Message: "none yet, run 'autover version' to create one"}
	}
	return CheckResult{Name: name, Passed: true, Message: "latest " + h.CurrentTag}
}

func failed(name string, err error, fallback string) CheckResult {
	msg := fallback
	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		msg = cliErr.Message
	} else if err != nil {
		msg = err.Error()
	}
	return CheckResult{Name: name, Passed: false, Message: msg}
}

// FormatReport formats the health report for console output, prefixing each
// check with pass or fail.
func FormatReport(report *HealthReport, pass, fail string) string {
	var b strings.Builder
	for _, check := range report.Checks {
		mark := pass
		if !check.Passed {
			mark = fail
		}
		fmt.Fprintf(&b, "%s %s: %s\n", mark, check.Name, check.Message)
	}
	return b.String()
}
