package cmdparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hwameistor/check-swraid/pkg/check-swraid/definitions"
	"github.com/hwameistor/check-swraid/pkg/check-swraid/formatter"
	"github.com/hwameistor/check-swraid/pkg/health"
	"github.com/hwameistor/check-swraid/pkg/mdadm"
	"github.com/hwameistor/check-swraid/pkg/probe"
)

// NewCheckSwraid creates the root command. The report line is written to
// out, logs and debug tables to errOut, and the exit status is stored in
// *status once the command ran.
func NewCheckSwraid(out, errOut io.Writer, getenv func(string) string, status *health.Status) *cobra.Command {
	opts := newOptions()
	help := definitions.CmdHelpMessages["check-swraid"]

	cmd := &cobra.Command{
		Use:           "check-swraid",
		Short:         help.Short,
		Long:          help.Long,
		Version:       definitions.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return probe.ConfigErrorf("unrecognized arguments: %s", strings.Join(args, " "))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags(), getenv); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			setupLogging(opts.Verbose, errOut)

			cfg, err := opts.Config()
			if err != nil {
				return err
			}
			log.WithFields(cfg.LogFields()).Debug("Initializing plugin")
			debug := opts.Verbose >= definitions.VerboseDebug
			if debug {
				printConnection(errOut, cfg)
			}

			report, err := check(cmd.Context(), cfg, debug, errOut)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, report.Line)
			*status = report.Status
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &probe.ConfigError{Message: err.Error()}
	})
	opts.AddFlags(cmd.Flags())
	return cmd
}

func printConnection(out io.Writer, cfg probe.Config) {
	formatter.PrintParameters(out, "connection", []formatter.Parameter{
		{Key: "Hostname", Value: cfg.Hostname},
		{Key: "Port", Value: cfg.Port},
		{Key: "Username", Value: cfg.Username},
		{Key: "Credential", Value: cfg.Credential.Kind()},
		{Key: "Sudo", Value: cfg.Sudo},
		{Key: "Timeout", Value: cfg.Timeout},
		{Key: "Strict", Value: cfg.Strict},
	})
}

// check connects, evaluates every array and closes the connection
func check(ctx context.Context, cfg probe.Config, debug bool, errOut io.Writer) (health.Report, error) {
	executor, err := probe.Connect(ctx, cfg)
	if err != nil {
		return health.Report{}, err
	}
	defer executor.Close()

	checker := mdadm.NewChecker(executor, cfg.Commands, cfg.SudoInput())
	report, observations, err := probe.Run(ctx, checker, cfg.Strict)
	if debug {
		formatter.PrintArrays(errOut, observations)
	}
	return report, err
}

// ExecuteArgs runs check-swraid with args and returns the process exit code
func ExecuteArgs(ctx context.Context, args []string, out, errOut io.Writer, getenv func(string) string) int {
	status := health.StatusOK
	cmd := NewCheckSwraid(out, errOut, getenv, &status)
	// cobra falls back to os.Args for nil
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var cfgErr *probe.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(out, "Error: %s\n", cfgErr.Message)
		} else {
			fmt.Fprintln(out, health.UnknownReport(err).Line)
		}
		return health.StatusUnknown.ExitCode()
	}
	return status.ExitCode()
}

// Execute runs check-swraid with the process arguments
func Execute(ctx context.Context) int {
	return ExecuteArgs(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
}
