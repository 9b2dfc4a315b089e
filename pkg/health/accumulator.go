package health

import (
	"fmt"
	"strings"
)

// Finding is the verdict for a single checked subject
type Finding struct {
	Subject string
	Status  Status
	// Message is reported when Status is not OK
	Message string
}

// Accumulator folds findings into an aggregate verdict. It is a value:
// Add returns a new Accumulator and leaves the receiver untouched.
type Accumulator struct {
	status   Status
	checked  int
	messages []string
}

// Add records a finding. The aggregate status only ever escalates.
func (a Accumulator) Add(f Finding) Accumulator {
	next := Accumulator{
		status:  Worst(a.status, f.Status),
		checked: a.checked + 1,
		// cap the slice so append never writes into the receiver's array
		messages: a.messages[:len(a.messages):len(a.messages)],
	}
	if f.Status != StatusOK {
		msg := f.Message
		if msg == "" {
			msg = fmt.Sprintf("%s: %s", f.Status, f.Subject)
		}
		next.messages = append(next.messages, msg)
	}
	return next
}

// Status returns the worst status seen so far
func (a Accumulator) Status() Status {
	return a.status
}

// Checked returns how many findings were added
func (a Accumulator) Checked() int {
	return a.checked
}

// Messages returns the messages of every non-OK finding, in the order added
func (a Accumulator) Messages() []string {
	return append([]string{}, a.messages...)
}

// Report is the single line printed by the plugin and its exit status
type Report struct {
	Status Status
	Line   string
}

// Report summarises the accumulated findings. noun names the checked
// subjects in the OK line, e.g. "arrays".
func (a Accumulator) Report(noun string) Report {
	if a.status == StatusOK {
		return Report{
			Status: StatusOK,
			Line:   fmt.Sprintf("OK: %d %s checked as healthy.", a.checked, noun),
		}
	}
	return Report{
		Status: a.status,
		Line:   strings.Join(a.messages, " "),
	}
}

// UnknownReport reports a failure that prevented the check from completing
func UnknownReport(err error) Report {
	return Report{
		Status: StatusUnknown,
		Line:   fmt.Sprintf("%s: %s", StatusUnknown, err),
	}
}
