package definitions

import (
	"time"

	"github.com/hwameistor/check-swraid/pkg/exechelper/sshexecutor"
)

// Defaults of the command line options
const (
	DefaultPort    = sshexecutor.DefaultPort
	DefaultTimeout = 30 * time.Second
	DefaultVerbose = VerboseQuiet
)

// Verbosity levels accepted by --verbose
const (
	VerboseQuiet = 1
	VerboseDebug = 2
)

// EnvPassword is read when no password is given on the command line
const EnvPassword = "CHECK_SWRAID_PASSWORD"

// Version is set at build time with -ldflags
var Version = "dev"

type helpMessage struct {
	Short string
	Long  string
}

// CmdHelpMessages [CmdName]
var CmdHelpMessages = map[string]helpMessage{
	"check-swraid": {
		Short: "A nagios plugin to check all configured software RAID arrays configured on a server.",
		Long: "check-swraid logs into a remote server over ssh, lists the md arrays known to mdadm\n" +
			"and reports the worst state found as a single line.\n\n" +
			"Exit status: 0 OK, 1 WARNING, 2 CRITICAL, 3 UNKNOWN.",
	},
}

// FlagUsages [FlagName]
var FlagUsages = map[string]string{
	"hostname": "The hostname of the remote server.",
	"port":     "The ssh port of the remote server.",
	"username": "The username to log in as.",
	"password": "The users password. Falls back to $" + EnvPassword + ".",
	"keyfile":  "If a password isn't supplied, please supply the location of a valid ssh key.",
	"sudo":     "Use this flag if your user needs to run as sudo.",
	"verbose":  "Verbosity level, for debugging use. 1=Quiet(default), 2=Debug.",
	"timeout":  "Timeout for connecting and for each remote command.",
	"config":   "YAML file with default values for the options.",
	"strict":   "Report arrays in an unrecognized state as WARNING instead of OK.",
}
