package workflow

import "testing"

func TestNewRuleSetRejectsDuplicateTargets(t *testing.T) {
	_, err := NewRuleSet(map[State][]TransitionRule{
		StateInitialized: {
			{Target: StatePatientVerification},
			{Target: StatePatientVerification},
		},
	})
	if err == nil {
		t.Fatal("expected duplicate (from, target) pair to be rejected")
	}
}

func TestNewRuleSetRejectsUnknownStates(t *testing.T) {
	_, err := NewRuleSet(map[State][]TransitionRule{
		State("Limbo"): {{Target: StateCompleted}},
	})
	if err == nil {
		t.Error("expected unknown from-state to be rejected")
	}

	_, err = NewRuleSet(map[State][]TransitionRule{
		StateInitialized: {{Target: State("Limbo")}},
	})
	if err == nil {
		t.Error("expected unknown target state to be rejected")
	}
}

func TestDefaultRuleSetLookup(t *testing.T) {
	rs := DefaultRuleSet()

	if _, ok := rs.Lookup(StateInitialized, StatePatientVerification); !ok {
		t.Error("expected Initialized -> PatientVerification to be declared")
	}
	if _, ok := rs.Lookup(StateInitialized, StateCompleted); ok {
		t.Error("Initialized -> Completed must not be declared")
	}
	if _, ok := rs.Lookup(StateCompleted, StateInProgress); ok {
		t.Error("Completed is terminal")
	}
}

func TestParseState(t *testing.T) {
	if _, err := ParseState("Confirmed"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseState("confirmed"); err == nil {
		t.Error("state names are case sensitive")
	}
	if _, err := ParseState(""); err == nil {
		t.Error("empty state must be rejected")
	}
}

func TestTerminalStates(t *testing.T) {
	if !StateCompleted.Terminal() || !StateCancelled.Terminal() {
		t.Error("Completed and Cancelled are terminal")
	}
	if StateInitialized.Terminal() {
		t.Error("Initialized is not terminal")
	}
}
