package access

// Decision is the outcome of evaluating a session against a page. The zero
// value is DecisionUnknown, the state a screen is in before evaluation; once
// evaluated a decision never transitions back.
type Decision int

const (
	// DecisionUnknown means the gate has not been evaluated yet
	DecisionUnknown Decision = iota
	// DecisionRedirect means the session lacks the required role entirely
	// and must be sent back to authentication. No privilege check is made.
	DecisionRedirect
	// DecisionDenied means the role matched but the page privilege is
	// absent, negative, or could not be checked.
	DecisionDenied
	// DecisionGranted means the page may be viewed and edited
	DecisionGranted
)

// String returns the decision name
func (d Decision) String() string {
	switch d {
	case DecisionRedirect:
		return "redirect"
	case DecisionDenied:
		return "denied"
	case DecisionGranted:
		return "granted"
	default:
		return "unknown"
	}
}
