package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		debug bool
		want  bool
	}{
		"debug enabled":  {debug: true, want: true},
		"debug disabled": {debug: false, want: false},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := New(Options{Writer: &buf, Debug: tt.debug})

			DebugFunc(logger)("[git] opened %s", "/repo")

			if tt.want {
				assert.Contains(t, buf.String(), "[git] opened /repo")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestNew_InfoAlwaysWritten(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Writer: &buf})
	logger.Info().Msg("released")

	assert.Contains(t, buf.String(), "released")
}
