package exechelper

import (
	"bytes"
	"context"
	"strings"
	"time"
)

//go:generate mockgen -destination=mock_exechelper/mock_executor.go github.com/hwameistor/check-swraid/pkg/exechelper Executor

// ExitCodeNoStatus is reported when the command never returned an exit status,
// e.g. the session could not be opened or the connection dropped
const ExitCodeNoStatus = -1

// Executor is the interface for executing commands.
type Executor interface {
	RunCommand(ctx context.Context, params ExecParams) ExecResult
}

// ExecParams parameters to execute a command
type ExecParams struct {
	CmdName string
	CmdArgs []string
	// Stdin is written to the command's input right after it starts
	Stdin   []byte
	Timeout time.Duration
}

// CommandLine joins the command and its arguments the way a shell receives them
func (p ExecParams) CommandLine() string {
	if len(p.CmdArgs) == 0 {
		return p.CmdName
	}
	return p.CmdName + " " + strings.Join(p.CmdArgs, " ")
}

// ExecResult result of executing a command
type ExecResult struct {
	OutBuf   *bytes.Buffer
	ErrBuf   *bytes.Buffer
	ExitCode int
	Error    error
}

// Lines splits the standard output into lines, one per output line and
// without the line terminators
func (r ExecResult) Lines() []string {
	if r.OutBuf == nil {
		return []string{}
	}
	return ConvertShellOutputs(r.OutBuf.String())
}

// ConvertShellOutputs splits shell output string into a slice of strings, one per line
func ConvertShellOutputs(outputs string) []string {
	result := []string{}
	if len(outputs) == 0 {
		return result
	}

	for _, line := range strings.SplitAfter(outputs, "\n") {
		if line == "" {
			continue
		}
		result = append(result, strings.TrimRight(line, "\r\n"))
	}
	return result
}
