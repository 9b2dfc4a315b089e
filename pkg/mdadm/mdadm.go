package mdadm

import (
	"context"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/check-swraid/pkg/exechelper"
)

// Checker enumerates md arrays and reads their state through an executor
type Checker struct {
	cmdExec  exechelper.Executor
	commands Commands
	// stdin is written to every command, used to answer a sudo prompt
	stdin []byte
}

// NewChecker creates a checker. sudoInput is written to the input of every
// command right after it starts, nil writes nothing.
func NewChecker(executor exechelper.Executor, commands Commands, sudoInput []byte) *Checker {
	if commands.Discovery == "" {
		commands.Discovery = DefaultDiscoveryCommand
	}
	if commands.Status == "" {
		commands.Status = DefaultStatusCommand
	}
	return &Checker{
		cmdExec:  executor,
		commands: commands,
		stdin:    sudoInput,
	}
}

// ListArrays returns every configured array in the order the remote host lists them
func (c *Checker) ListArrays(ctx context.Context) ([]string, error) {
	log.WithField("command", c.commands.Discovery).Debug("Retrieving list of arrays")
	lines, err := c.run(ctx, c.commands.Discovery)
	if err != nil {
		return nil, err
	}
	arrays := ParseArrays(lines)
	log.WithField("arrays", arrays).Debug("Found arrays")
	return arrays, nil
}

// GetArrayState reads the state of one array
func (c *Checker) GetArrayState(ctx context.Context, array string) (ArrayStatus, error) {
	lines, err := c.run(ctx, c.StatusCommand(array))
	if err != nil {
		return ArrayStatus{Array: array}, err
	}
	return ParseArrayState(array, lines), nil
}

// StatusCommand returns the status command line for array
func (c *Checker) StatusCommand(array string) string {
	return strings.ReplaceAll(c.commands.Status, ArrayPlaceholder, shellescape.Quote(array))
}

// run returns the output lines of command. A non-zero exit status of the
// remote pipeline is logged and its output still used; only a command that
// never finished is an error.
func (c *Checker) run(ctx context.Context, command string) ([]string, error) {
	result := c.cmdExec.RunCommand(ctx, exechelper.ExecParams{
		CmdName: command,
		Stdin:   c.stdin,
	})
	if result.ExitCode == exechelper.ExitCodeNoStatus {
		if result.Error == nil {
			return nil, errors.Errorf("command %q returned no exit status", command)
		}
		return nil, result.Error
	}
	if result.ExitCode != 0 {
		logCtx := log.WithFields(log.Fields{"command": command, "exitcode": result.ExitCode})
		if result.ErrBuf != nil {
			logCtx = logCtx.WithField("stderr", result.ErrBuf.String())
		}
		logCtx.WithError(result.Error).Warn("Remote command exited with non-zero status")
	}
	return result.Lines(), nil
}
