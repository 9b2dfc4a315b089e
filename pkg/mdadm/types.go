package mdadm

// ArrayState is the state of an md array as reported by `mdadm --detail`
type ArrayState int

// Array states. StateUnrecognized covers anything not listed here,
// including empty output, and is deliberately distinct from StateHealthy.
const (
	StateUnrecognized ArrayState = iota
	StateHealthy
	StateDirty
	StateRecovering
	StateResyncing
	StateNotStarted
	StateDegraded
)

var stateNames = map[ArrayState]string{
	StateUnrecognized: "unrecognized",
	StateHealthy:      "healthy",
	StateDirty:        "dirty",
	StateRecovering:   "recovering",
	StateResyncing:    "resyncing",
	StateNotStarted:   "Not Started",
	StateDegraded:     "degraded",
}

func (s ArrayState) String() string {
	return stateNames[s]
}

// tokens as printed in the "State :" line of mdadm --detail
var stateTokens = map[string]ArrayState{
	"clean":       StateHealthy,
	"active":      StateHealthy,
	"active-idle": StateHealthy,
	"dirty":       StateDirty,
	"recovering":  StateRecovering,
	"resyncing":   StateResyncing,
	"Not Started": StateNotStarted,
	"degraded":    StateDegraded,
}

// statePrecedence decides which flag of a multi-flag state line is reported,
// the first one present wins
var statePrecedence = []ArrayState{
	StateDegraded,
	StateDirty,
	StateRecovering,
	StateResyncing,
	StateNotStarted,
	StateHealthy,
}

// ArrayStatus is the parsed output of the status command for one array
type ArrayStatus struct {
	Array string
	State ArrayState
	// Token is the raw state text, trimmed
	Token string
}

// Commands are the shell command lines run on the remote host
type Commands struct {
	// Discovery prints one array device per line
	Discovery string
	// Status prints the state of the array substituted for ArrayPlaceholder
	Status string
}

// ArrayPlaceholder is replaced by the array device in Commands.Status
const ArrayPlaceholder = "{array}"

// Default command lines
const (
	DefaultDiscoveryCommand = "sudo mdadm --detail --scan | grep ARRAY | awk '{print $2}'"
	DefaultStatusCommand    = "sudo mdadm --detail " + ArrayPlaceholder + " | grep 'State :' | awk '{print $3}'"
)

// DefaultCommands returns the stock mdadm pipelines
func DefaultCommands() Commands {
	return Commands{
		Discovery: DefaultDiscoveryCommand,
		Status:    DefaultStatusCommand,
	}
}
