package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures Short and Full return consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
	require.Contains(t, Full(), Commit)
}

// TestNewCommand runs the subcommand and checks its output.
func TestNewCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), Short())
}
