package health

// Status is the outcome of a check in the monitoring plugin convention,
// the numeric value is the process exit code
type Status int

// misc
const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusUnknown
)

var statusNames = map[Status]string{
	StatusOK:       "OK",
	StatusWarning:  "WARNING",
	StatusCritical: "CRITICAL",
	StatusUnknown:  "UNKNOWN",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[StatusUnknown]
}

// ExitCode returns the process exit code for the status
func (s Status) ExitCode() int {
	if _, ok := statusNames[s]; !ok {
		return int(StatusUnknown)
	}
	return int(s)
}

// Worst returns the more severe of a and b.
// UNKNOWN outranks CRITICAL here, but it is only produced for configuration
// and transport failures which never go through an Accumulator.
func Worst(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}
