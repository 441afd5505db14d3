package types

// Status is the closed set of outcomes a tester can record for a test case.
// The consolidated status of a test case is always one of these values as well.
type Status string

const (
	StatusPending Status = "pending"
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusBlocked Status = "blocked"
	StatusPartial Status = "partial"
	StatusSkip    Status = "skip"
)

// statusPriority is the conflict resolution order. When testers disagree,
// the highest-priority status present wins.
var statusPriority = []Status{
	StatusFail,
	StatusBlocked,
	StatusPartial,
	StatusSkip,
	StatusPass,
}

// AllStatuses returns every recordable status, pending included.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusPass, StatusFail, StatusBlocked, StatusPartial, StatusSkip}
}

// PriorityOrder returns the conflict resolution order, highest priority first.
// Pending never participates in conflict resolution.
func PriorityOrder() []Status {
	out := make([]Status, len(statusPriority))
	copy(out, statusPriority)
	return out
}

// Valid reports whether s is a member of the status enum.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPass, StatusFail, StatusBlocked, StatusPartial, StatusSkip:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Priority is the valid set of test case priorities, ordered High > Medium > Low.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a member of the priority enum. Empty is allowed,
// callers treat it as unset.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, "":
		return true
	}
	return false
}
