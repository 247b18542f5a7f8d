// Package workflow owns the reception lifecycle state machine: the legal
// transition table, the per-condition evaluator, and the transition guard.
// The guard only validates transitions; assigning the next state is the
// caller's job after a successful check.
package workflow

import "fmt"

// State is the lifecycle stage of one reception record.
type State string

const (
	StateInitialized         State = "Initialized"
	StatePatientVerification State = "PatientVerification"
	StateInsuranceValidation State = "InsuranceValidation"
	StateDoctorAssignment    State = "DoctorAssignment"
	StateServiceSelection    State = "ServiceSelection"
	StatePaymentProcessing   State = "PaymentProcessing"
	StateConfirmed           State = "Confirmed"
	StateInProgress          State = "InProgress"
	StateCompleted           State = "Completed"
	StateCancelled           State = "Cancelled"
)

var knownStates = map[State]bool{
	StateInitialized:         true,
	StatePatientVerification: true,
	StateInsuranceValidation: true,
	StateDoctorAssignment:    true,
	StateServiceSelection:    true,
	StatePaymentProcessing:   true,
	StateConfirmed:           true,
	StateInProgress:          true,
	StateCompleted:           true,
	StateCancelled:           true,
}

// ParseState converts a string to a State, rejecting unknown values.
func ParseState(s string) (State, error) {
	st := State(s)
	if !knownStates[st] {
		return "", fmt.Errorf("unknown workflow state: %q", s)
	}
	return st, nil
}

// Terminal reports whether the state has no outgoing transitions.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled
}
