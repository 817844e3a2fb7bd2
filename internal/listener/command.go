package listener

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/logger"
)

// DefaultCommandTimeout bounds how long an alarm command may run.
const DefaultCommandTimeout = 10 * time.Second

// errEmptyCommand is returned when no program is configured.
var errEmptyCommand = errors.New("alarm command must name a program")

// Command runs an external program, such as a siren script, whenever the
// alarm status becomes ALARM. The program receives the status name as its
// last argument. Failures are logged; they never reach the controller.
type Command struct {
	// args is the program followed by its fixed arguments.
	args []string
	// timeout bounds each run.
	timeout time.Duration
}

// NewCommand creates a listener for the given program and arguments.
// A non-positive timeout selects DefaultCommandTimeout.
func NewCommand(args []string, timeout time.Duration) (*Command, error) {
	if len(args) == 0 || args[0] == "" {
		return nil, errEmptyCommand
	}

	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	return &Command{
		args:    append([]string(nil), args...),
		timeout: timeout,
	}, nil
}

// AlarmStatusChanged runs the program when the status is ALARM.
func (c *Command) AlarmStatusChanged(ctx context.Context, status domain.AlarmStatus) {
	if status != domain.Alarm {
		return
	}

	ctx = logger.WithName(ctx, "alarm-command")

	if err := c.run(ctx, status); err != nil {
		logger.ErrorKV(ctx, "Alarm command failed", "command", c.args[0], "error", err)

		return
	}

	logger.InfoKV(ctx, "Alarm command finished", "command", c.args[0])
}

// CatDetected is ignored.
func (*Command) CatDetected(context.Context, bool) {}

// SensorsChanged is ignored.
func (*Command) SensorsChanged(context.Context) {}

func (c *Command) run(ctx context.Context, status domain.AlarmStatus) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := append(c.args[1:len(c.args):len(c.args)], status.String())

	//nolint:gosec // The program comes from the operator's own configuration.
	output, err := exec.CommandContext(ctx, c.args[0], args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("run %s: %w (output: %q)", c.args[0], err, output)
	}

	return nil
}
