package workflow

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/clinic/reception/internal/platform/validation"
)

// TransitionRule declares one legal transition and the conditions that must
// all pass before it is allowed. The from-state is the RuleSet map key.
type TransitionRule struct {
	Target     State
	Conditions []Condition
}

// RuleSet is the static transition table, built once at startup and shared
// read-only across requests. At most one rule may exist per (from, target)
// pair; NewRuleSet rejects duplicates.
type RuleSet struct {
	rules map[State]map[State]TransitionRule
}

// NewRuleSet validates and indexes the declared transitions.
func NewRuleSet(declared map[State][]TransitionRule) (*RuleSet, error) {
	rs := &RuleSet{rules: make(map[State]map[State]TransitionRule, len(declared))}
	for from, list := range declared {
		if !knownStates[from] {
			return nil, fmt.Errorf("transition rule from unknown state %q", from)
		}
		byTarget := make(map[State]TransitionRule, len(list))
		for _, rule := range list {
			if !knownStates[rule.Target] {
				return nil, fmt.Errorf("transition rule %s -> unknown state %q", from, rule.Target)
			}
			if _, dup := byTarget[rule.Target]; dup {
				return nil, fmt.Errorf("duplicate transition rule %s -> %s", from, rule.Target)
			}
			byTarget[rule.Target] = rule
		}
		rs.rules[from] = byTarget
	}
	return rs, nil
}

// Lookup returns the rule for (from, to), if declared.
func (rs *RuleSet) Lookup(from, to State) (TransitionRule, bool) {
	rule, ok := rs.rules[from][to]
	return rule, ok
}

// cancellable is the condition set shared by every state that allows
// cancellation: the acting user must be staff.
func cancellable() TransitionRule {
	return TransitionRule{
		Target: StateCancelled,
		Conditions: []Condition{
			{Type: ConditionUserPermission, Description: "actor may cancel receptions", Parameters: map[string]string{"role": "receptionist"}},
		},
	}
}

// DefaultRuleSet is the reception lifecycle shipped with the backend.
func DefaultRuleSet() *RuleSet {
	rs, err := NewRuleSet(map[State][]TransitionRule{
		StateInitialized: {
			{
				Target: StatePatientVerification,
				Conditions: []Condition{
					{Type: ConditionDataValidation, Description: "patient exists and is active", Parameters: map[string]string{"entity": "patient"}},
				},
			},
			cancellable(),
		},
		StatePatientVerification: {
			{
				Target: StateInsuranceValidation,
				Conditions: []Condition{
					{Type: ConditionDataValidation, Description: "patient exists and is active", Parameters: map[string]string{"entity": "patient"}},
				},
			},
			cancellable(),
		},
		StateInsuranceValidation: {
			{
				Target: StateDoctorAssignment,
				Conditions: []Condition{
					{Type: ConditionBusinessLogic, Description: "insurance verified", Parameters: map[string]string{"rule": "insurance_verified"}},
				},
			},
			cancellable(),
		},
		StateDoctorAssignment: {
			{
				Target: StateServiceSelection,
				Conditions: []Condition{
					{Type: ConditionDataValidation, Description: "doctor exists and is active", Parameters: map[string]string{"entity": "doctor"}},
				},
			},
			cancellable(),
		},
		StateServiceSelection: {
			{
				Target: StatePaymentProcessing,
				Conditions: []Condition{
					{Type: ConditionBusinessLogic, Description: "services selected", Parameters: map[string]string{"rule": "services_selected"}},
				},
			},
			cancellable(),
		},
		StatePaymentProcessing: {
			{
				Target: StateConfirmed,
				Conditions: []Condition{
					{Type: ConditionBusinessLogic, Description: "payment confirmed", Parameters: map[string]string{"rule": "payment_confirmed"}},
				},
			},
			cancellable(),
		},
		StateConfirmed: {
			{
				Target: StateInProgress,
				Conditions: []Condition{
					{Type: ConditionTimeConstraint, Description: "reception starts within working hours"},
				},
			},
			cancellable(),
		},
		StateInProgress: {
			{Target: StateCompleted},
		},
	})
	if err != nil {
		// The shipped table is static; an error here is a programming bug.
		panic(err)
	}
	return rs
}

// StateRule is a state-scoped business rule checked on every transition out
// of its state. This registry is keyed by workflow state and is separate
// from the per-request business rules engine.
type StateRule struct {
	Name  string
	Check func(tc TransitionContext) validation.CheckResult
}

// DefaultStateRules are the state-scoped rules shipped with the backend.
func DefaultStateRules() map[State][]StateRule {
	return map[State][]StateRule{
		StateInitialized: {
			{
				Name: "patient reference present",
				Check: func(tc TransitionContext) validation.CheckResult {
					if tc.PatientID == uuid.Nil {
						return validation.Failed("reception has no patient reference")
					}
					return validation.Passed()
				},
			},
		},
		StatePaymentProcessing: {
			{
				Name: "reception not already completed",
				Check: func(tc TransitionContext) validation.CheckResult {
					if tc.Extra["completed"] == "true" {
						return validation.Failed("completed receptions cannot be re-processed")
					}
					return validation.Passed()
				},
			},
		},
		StateInProgress: {
			{
				Name: "doctor assigned",
				Check: func(tc TransitionContext) validation.CheckResult {
					if tc.DoctorID == uuid.Nil {
						return validation.Failed("reception has no assigned doctor")
					}
					return validation.Passed()
				},
			},
		},
	}
}
