package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsMatchSentinels(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      *CLIError
		sentinel error
		category ErrorCategory
	}{
		"invalid version":       {err: InvalidVersion("1.2"), sentinel: ErrInvalidVersion, category: Project},
		"invalid increment":     {err: InvalidIncrementType("Huge"), sentinel: ErrInvalidIncrementType, category: Argument},
		"no version element":    {err: NoVersionElement("a.csproj", "Version"), sentinel: ErrNoVersionElement, category: Project},
		"no valid project":      {err: NoValidProject("/repo", ".csproj"), sentinel: ErrNoValidProject, category: Project},
		"not git repository":    {err: NotGitRepository("/tmp"), sentinel: ErrNotGitRepository, category: Repository},
		"no version tag":        {err: NoVersionTag("/repo"), sentinel: ErrInvalidVersionTag, category: Repository},
		"missing argument":      {err: MissingArgument("project-name"), sentinel: ErrInvalidArgument, category: Argument},
		"health check failed":   {err: HealthCheckFailed(2), sentinel: ErrHealthCheckFailed, category: Repository},
		"invalid configuration": {err: InvalidConfiguration("/repo/.autover/autover.json", fmt.Errorf("bad")), sentinel: ErrInvalidConfiguration, category: Configuration},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.NotNil(t, tt.err)
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.category, tt.err.Category)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestWrapWithMessage(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("unexpected token")
	err := WrapWithMessage(cause, Configuration, ErrInvalidConfiguration, "cannot read config", "Fix the file")
	require.NotNil(t, err)
	assert.Equal(t, "cannot read config: unexpected token", err.Error())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"Fix the file"}, err.Remediation)

	assert.Nil(t, WrapWithMessage(nil, Configuration, ErrInvalidConfiguration, "unused"))
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	inner := MissingArgument("message")
	wrapped := fmt.Errorf("running change: %w", inner)

	assert.True(t, IsCLIError(wrapped))
	assert.Same(t, inner, AsCLIError(wrapped))
	assert.False(t, IsCLIError(stderrors.New("disk full")))
	assert.Nil(t, AsCLIError(nil))
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	err := &CLIError{
		Category:    Argument,
		Message:     "--message is required",
		Remediation: []string{"Pass --message", "Or use -m"},
	}
	want := "Error [Argument Error]: --message is required\n\nTo fix this:\n  • Pass --message\n  • Or use -m\n"
	assert.Equal(t, want, FormatErrorPlain(err))
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestErrorCategoryString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"project":       {category: Project, want: "Project Error"},
		"repository":    {category: Repository, want: "Repository Error"},
		"unknown":       {category: ErrorCategory(99), want: "Error"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestFprint(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Fprint(&buf, fmt.Errorf("wrapped: %w", NotGitRepository("/tmp/x")))
	assert.Contains(t, buf.String(), "Repository Error")
	assert.Contains(t, buf.String(), "/tmp/x")

	buf.Reset()
	Fprint(&buf, stderrors.New("disk full"))
	assert.Contains(t, buf.String(), "Unhandled error")
	assert.Contains(t, buf.String(), "disk full")

	buf.Reset()
	Fprint(&buf, nil)
	assert.Empty(t, buf.String())
}
