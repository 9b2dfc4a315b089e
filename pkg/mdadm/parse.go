package mdadm

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/check-swraid/pkg/health"
)

// ParseArrays turns discovery output into array identifiers, skipping blank lines
func ParseArrays(lines []string) []string {
	arrays := []string{}
	for _, line := range lines {
		if array := strings.TrimSpace(line); array != "" {
			arrays = append(arrays, array)
		}
	}
	return arrays
}

// ParseArrayState reads the state from the first non-blank line of the status
// command output. A full state line such as "clean, degraded" is split into
// its flags and the most severe recognised flag is reported. A token ending in
// a comma is the first word of a longer flag list and stays unrecognized.
func ParseArrayState(array string, lines []string) ArrayStatus {
	status := ArrayStatus{Array: array, State: StateUnrecognized}
	for _, line := range lines {
		if token := strings.TrimSpace(line); token != "" {
			status.Token = token
			break
		}
	}
	if status.Token == "" {
		return status
	}
	if strings.HasSuffix(status.Token, ",") {
		log.WithFields(log.Fields{"array": array, "token": status.Token}).Debug("State flags truncated")
		return status
	}

	found := map[ArrayState]bool{}
	for _, flag := range strings.Split(status.Token, ",") {
		flag = strings.TrimSpace(flag)
		if state, ok := stateTokens[flag]; ok {
			found[state] = true
		} else if flag != "" {
			log.WithFields(log.Fields{"array": array, "flag": flag}).Debug("Ignoring unknown state flag")
		}
	}
	for _, state := range statePrecedence {
		if found[state] {
			status.State = state
			break
		}
	}
	return status
}

// Assess maps the state of an array to a finding. Unrecognized states are
// healthy unless strict is set, in which case they are a warning.
func Assess(status ArrayStatus, strict bool) health.Finding {
	finding := health.Finding{Subject: status.Array, Status: health.StatusOK}

	switch status.State {
	case StateDirty, StateRecovering, StateResyncing, StateNotStarted:
		finding.Status = health.StatusWarning
	case StateDegraded:
		finding.Status = health.StatusCritical
	case StateUnrecognized:
		log.WithFields(log.Fields{"array": status.Array, "token": status.Token}).Debug("State: unrecognized")
		if strict {
			finding.Status = health.StatusWarning
			finding.Message = fmt.Sprintf("%s: array %s reported an unrecognized state %q.", finding.Status, status.Array, status.Token)
		}
		return finding
	}

	log.WithFields(log.Fields{"array": status.Array, "state": status.State}).Debug("State")
	if finding.Status != health.StatusOK {
		finding.Message = fmt.Sprintf("%s: array %s is in a %s state.", finding.Status, status.Array, status.State)
	}
	return finding
}
