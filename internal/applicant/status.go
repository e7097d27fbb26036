package applicant

const (
	StatusPending     = "pending"
	StatusReviewing   = "reviewing"
	StatusInterviewed = "interviewed"
	StatusOffered     = "offered"
	StatusHired       = "hired"
	StatusRejected    = "rejected"
	StatusWithdrawn   = "withdrawn"
)

// Transition is one action the dashboard exposes from a given status. The
// upstream API remains authoritative and may still reject any request; this
// table is a convenience for the UI, not a security boundary.
type Transition struct {
	To    string
	Label string
}

var statuses = []string{
	StatusPending,
	StatusReviewing,
	StatusInterviewed,
	StatusOffered,
	StatusHired,
	StatusRejected,
	StatusWithdrawn,
}

// transitions lists the actions exposed per status, in display order.
// withdrawn is candidate-initiated and never an employer action. Note that
// offered exposes hired only: rejecting after an offer is intentionally not
// available from this dashboard (pending product clarification).
var transitions = map[string][]Transition{
	StatusPending: {
		{To: StatusReviewing, Label: "Start reviewing"},
		{To: StatusRejected, Label: "Reject"},
	},
	StatusReviewing: {
		{To: StatusInterviewed, Label: "Schedule interview"},
		{To: StatusRejected, Label: "Reject"},
	},
	StatusInterviewed: {
		{To: StatusOffered, Label: "Extend offer"},
		{To: StatusRejected, Label: "Reject"},
	},
	StatusOffered: {
		{To: StatusHired, Label: "Mark as hired"},
	},
	StatusHired:     {},
	StatusRejected:  {},
	StatusWithdrawn: {},
}

// Statuses returns the full vocabulary in lifecycle order.
func Statuses() []string {
	out := make([]string, len(statuses))
	copy(out, statuses)
	return out
}

// NextStatuses returns the ordered transitions the dashboard exposes from
// the given status. Unknown statuses expose nothing.
func NextStatuses(status string) []Transition {
	next, ok := transitions[status]
	if !ok {
		return nil
	}
	out := make([]Transition, len(next))
	copy(out, next)
	return out
}

func IsValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

func IsTerminal(status string) bool {
	next, ok := transitions[status]
	return ok && len(next) == 0
}

func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t.To == to {
			return true
		}
	}
	return false
}
