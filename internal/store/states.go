package store

import "fmt"

const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobDead       = "dead"
)

// completed is terminal; dead is terminal except for the explicit DLQ
// retry path.
var allowedTransitions = map[string]map[string]bool{
	JobPending: {
		JobProcessing: true,
	},
	JobProcessing: {
		JobCompleted: true,
		JobPending:   true,
		JobDead:      true,
	},
	JobDead: {
		JobPending: true,
	},
}

func ValidateJobTransition(from, to string) error {
	if allowed, ok := allowedTransitions[from][to]; !ok || !allowed {
		return fmt.Errorf("invalid job state transition from %s to %s", from, to)
	}

	return nil
}

func ValidJobState(state string) bool {
	switch state {
	case JobPending, JobProcessing, JobCompleted, JobDead:
		return true
	}
	return false
}
