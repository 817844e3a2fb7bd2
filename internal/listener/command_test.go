package listener

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	service "github.com/oshokin/catpoint/internal/service/security"
)

var _ service.StatusListener = (*Command)(nil)

// TestNewCommand_Validation rejects an empty program.
func TestNewCommand_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewCommand(nil, 0)
	require.ErrorIs(t, err, errEmptyCommand)

	_, err = NewCommand([]string{""}, 0)
	require.ErrorIs(t, err, errEmptyCommand)

	c, err := NewCommand([]string{"siren"}, 0)
	require.NoError(t, err)
	require.Equal(t, DefaultCommandTimeout, c.timeout)
}

// TestCommand_RunsOnAlarmOnly verifies that only ALARM triggers the program.
func TestCommand_RunsOnAlarmOnly(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	marker := filepath.Join(t.TempDir(), "siren.txt")

	c, err := NewCommand([]string{"sh", "-c", `printf "%s" "$1" >> "$0"`, marker}, 0)
	require.NoError(t, err)

	ctx := context.Background()

	c.AlarmStatusChanged(ctx, domain.PendingAlarm)
	c.CatDetected(ctx, true)
	c.SensorsChanged(ctx)

	_, err = os.Stat(marker)
	require.ErrorIs(t, err, os.ErrNotExist)

	c.AlarmStatusChanged(ctx, domain.Alarm)

	contents, err := os.ReadFile(marker)
	require.NoError(t, err)
	require.Equal(t, "ALARM", string(contents))
}

// TestCommand_FailureIsSwallowed ensures a failing program does not panic the fan-out.
func TestCommand_FailureIsSwallowed(t *testing.T) {
	t.Parallel()

	c, err := NewCommand([]string{filepath.Join(t.TempDir(), "missing-siren")}, 0)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		c.AlarmStatusChanged(context.Background(), domain.Alarm)
	})
}
