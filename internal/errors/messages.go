package errors

import "fmt"

// Common error messages for the autover CLI.
// These templates keep user-facing failures consistent and actionable.

// InvalidVersion is returned when text is not a valid three-part version.
func InvalidVersion(text string) *CLIError {
	return newError(Project, ErrInvalidVersion,
		fmt.Sprintf("the provided version number %q is not a valid 3 part version", text),
		"Use the form MAJOR.MINOR.PATCH or MAJOR.MINOR.PATCH-LABEL (e.g. 1.2.3 or 1.2.3-beta)",
	)
}

// InvalidIncrementType is returned for an unknown increment type name.
func InvalidIncrementType(text string) *CLIError {
	return newError(Argument, ErrInvalidIncrementType,
		fmt.Sprintf("unknown increment type %q", text),
		"Valid increment types: None, Patch, Minor, Major",
	)
}

// NoVersionElement is returned when a project file has no <Version> element.
func NoVersionElement(projectPath, element string) *CLIError {
	return newError(Project, ErrNoVersionElement,
		fmt.Sprintf("the project '%s' does not have a %s tag", projectPath, element),
		fmt.Sprintf("Add a <%s> element to the project file and run the tool again", element),
	)
}

// NoValidProject is returned when no project file is found under path.
func NoValidProject(path, extension string) *CLIError {
	return newError(Project, ErrNoValidProject,
		fmt.Sprintf("failed to find a valid %s file at path '%s'", extension, path),
		"Run autover from inside a directory containing project files",
		"Or pass --project-path pointing at one",
	)
}

// InvalidProjectExtension is returned when a discovered file has the wrong extension.
func InvalidProjectExtension(path, extension string) *CLIError {
	return newError(Project, ErrInvalidProject,
		fmt.Sprintf("invalid project path %s; the project path must point to a %s file", path, extension),
	)
}

// InvalidProjectName is returned when a project name cannot be derived from its path.
func InvalidProjectName(path string) *CLIError {
	return newError(Project, ErrInvalidProject,
		fmt.Sprintf("the project '%s' is invalid", path),
		"Project files must have a name and an extension (e.g. App.csproj)",
	)
}

// UnresolvedProject is returned when a configured project has no discovered definition.
func UnresolvedProject(path string) *CLIError {
	return newError(Configuration, ErrInvalidProject,
		fmt.Sprintf("the project '%s' is not bound to a discovered project file", path),
	)
}

// NotGitRepository is returned when path is not inside a git repository.
func NotGitRepository(path string) *CLIError {
	return newError(Repository, ErrNotGitRepository,
		fmt.Sprintf("the project path '%s' is not a valid git repository", path),
		"Run 'git init' or point --project-path inside an existing repository",
	)
}

// ConfiguredProjectNotFound is returned when a configured project path matches no discovered project.
func ConfiguredProjectNotFound(projectPath, searchPath string) *CLIError {
	return newError(Configuration, ErrConfiguredProjectNotFound,
		fmt.Sprintf("the configured project '%s' does not exist in the specified path '%s'", projectPath, searchPath),
		"Fix or remove the project entry in .autover/autover.json",
	)
}

// NoVersionTag is returned when the repository has no version_ tag yet.
func NoVersionTag(gitRoot string) *CLIError {
	return newError(Repository, ErrInvalidVersionTag,
		fmt.Sprintf("the git repository '%s' does not have a valid version tag", gitRoot),
		"Run 'autover version' first",
	)
}

// InvalidOverrideVersion is returned when --next-version is not a valid version.
func InvalidOverrideVersion(text string) *CLIError {
	return newError(Argument, ErrInvalidArgument,
		fmt.Sprintf("the version '%s' you are trying to update to is invalid", text),
		"Use the form MAJOR.MINOR.PATCH or MAJOR.MINOR.PATCH-LABEL",
	)
}

// ProjectNameNotConfigured is returned when a named project is absent from configuration.
func ProjectNameNotConfigured(name string, available []string) *CLIError {
	return newError(Argument, ErrInvalidArgument,
		fmt.Sprintf("no configured project named '%s' (available: %v)", name, available),
	)
}

// MissingArgument is returned when a required flag is empty.
func MissingArgument(flag string) *CLIError {
	return newError(Argument, ErrInvalidArgument,
		fmt.Sprintf("--%s is required", flag),
	)
}

// InvalidConfiguration wraps a validation failure of the repository configuration.
func InvalidConfiguration(path string, cause error) *CLIError {
	return WrapWithMessage(cause, Configuration, ErrInvalidConfiguration,
		fmt.Sprintf("the configuration at '%s' is invalid", path),
		"Check project names, paths and increment types in the configuration file",
	)
}

// InvalidUsage wraps a command-line parsing failure.
func InvalidUsage(cause error) *CLIError {
	return WrapWithMessage(cause, Argument, ErrInvalidArgument,
		cause.Error(),
		"Run 'autover --help' for usage",
	)
}

// HealthCheckFailed is returned by doctor when any check fails.
func HealthCheckFailed(failed int) *CLIError {
	return newError(Repository, ErrHealthCheckFailed,
		fmt.Sprintf("%d health check(s) failed", failed),
		"Fix the failing checks listed above and run 'autover doctor' again",
	)
}
