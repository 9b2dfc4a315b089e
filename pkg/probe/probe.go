package probe

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/check-swraid/pkg/health"
	"github.com/hwameistor/check-swraid/pkg/mdadm"
)

//go:generate mockgen -destination=mock_probe_test.go -package=probe github.com/hwameistor/check-swraid/pkg/probe ArrayChecker

// ArrayChecker enumerates arrays and reads their state
type ArrayChecker interface {
	ListArrays(ctx context.Context) ([]string, error)
	GetArrayState(ctx context.Context, array string) (mdadm.ArrayStatus, error)
}

// Observation is what was read and concluded for one array
type Observation struct {
	Status  mdadm.ArrayStatus
	Finding health.Finding
}

// Run lists the arrays, evaluates each of them in order and summarises the
// result. An error means the check could not complete.
func Run(ctx context.Context, checker ArrayChecker, strict bool) (health.Report, []Observation, error) {
	arrays, err := checker.ListArrays(ctx)
	if err != nil {
		return health.Report{}, nil, errors.Wrap(err, "failed to list arrays")
	}
	log.WithField("count", len(arrays)).Debug("Testing arrays")

	var acc health.Accumulator
	observations := make([]Observation, 0, len(arrays))
	for _, array := range arrays {
		log.WithField("array", array).Debug("Testing array")
		status, err := checker.GetArrayState(ctx, array)
		if err != nil {
			return health.Report{}, observations, errors.Wrapf(err, "failed to get state of array %s", array)
		}
		finding := mdadm.Assess(status, strict)
		acc = acc.Add(finding)
		observations = append(observations, Observation{Status: status, Finding: finding})
	}

	report := acc.Report("arrays")
	log.WithFields(log.Fields{"status": report.Status, "message": report.Line}).Debug("Checking exit code and exit message")
	return report, observations, nil
}
