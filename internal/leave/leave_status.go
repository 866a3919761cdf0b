package leave

import (
	"strings"

	leaveerrors "leavesync/internal/leave/errors"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var allowedTransitions = map[Status][]Status{
	StatusPending: {StatusApproved, StatusRejected},
}

// CanTransition reports whether a leave in s may move to next. Approved and
// rejected are terminal.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Decision is an approve or reject outcome. The zero value is invalid; build
// one with Approve, Reject or ParseDecision.
type Decision struct {
	status Status
}

var (
	Approve = Decision{status: StatusApproved}
	Reject  = Decision{status: StatusRejected}
)

func ParseDecision(s string) (Decision, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusApproved:
		return Approve, nil
	case StatusRejected:
		return Reject, nil
	}
	return Decision{}, leaveerrors.ErrInvalidDecision
}

func (d Decision) Status() Status {
	return d.status
}

func (d Decision) IsApproval() bool {
	return d.status == StatusApproved
}

func (d Decision) Valid() bool {
	return d.status == StatusApproved || d.status == StatusRejected
}
