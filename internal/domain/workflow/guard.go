package workflow

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinic/reception/internal/platform/validation"
)

// Hook is an optional guard extension point. A nil hook passes: a missing
// collaborator never blocks a transition. This applies only to the time and
// permission hooks; the rule table and state rules fail closed.
type Hook func(ctx context.Context, tc TransitionContext) validation.CheckResult

// Guard validates reception lifecycle transitions. It is immutable after
// construction and safe for concurrent use. The guard never assigns the next
// state; the caller does that after a successful check.
type Guard struct {
	rules      *RuleSet
	stateRules map[State][]StateRule
	eval       *Evaluator
	timeHook   Hook
	permHook   Hook
	log        zerolog.Logger
}

// GuardOption configures optional guard hooks.
type GuardOption func(*Guard)

// WithTimeHook installs the time-constraint hook.
func WithTimeHook(h Hook) GuardOption { return func(g *Guard) { g.timeHook = h } }

// WithPermissionHook installs the user-permission hook.
func WithPermissionHook(h Hook) GuardOption { return func(g *Guard) { g.permHook = h } }

// NewGuard builds a Guard over the given transition table, state rules and
// condition evaluator.
func NewGuard(rules *RuleSet, stateRules map[State][]StateRule, eval *Evaluator, log zerolog.Logger, opts ...GuardOption) *Guard {
	g := &Guard{rules: rules, stateRules: stateRules, eval: eval, log: log}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ValidateTransition checks whether moving from one state to another is
// legal for the given context. Four independent sub-checks all must pass:
// the declared transition rule and its conditions, the state-scoped rules,
// the time-constraint hook, and the permission hook. Every sub-check runs so
// the outcome reports all failures at once.
func (g *Guard) ValidateTransition(ctx context.Context, from, to State, tc TransitionContext) validation.Outcome {
	outcome := validation.OK()

	// 1. Transition existence and per-condition evaluation. Transitions are
	// default-deny: an undeclared (from, to) pair is a configuration error.
	rule, ok := g.rules.Lookup(from, to)
	if !ok {
		g.log.Warn().
			Str("from", string(from)).
			Str("to", string(to)).
			Str("reception_id", tc.ReceptionID.String()).
			Msg("transition denied: no rule registered")
		outcome.AddError(fmt.Sprintf("no transition rule registered from %s to %s", from, to))
	} else {
		for _, cond := range rule.Conditions {
			res := g.eval.Evaluate(ctx, tc, cond)
			if !res.Pass {
				outcome.AddError(fmt.Sprintf("%s: %s", cond.Description, res.Message))
			}
		}
	}

	// 2. State-scoped business rules for the current state.
	for _, sr := range g.stateRules[from] {
		res := sr.Check(tc)
		if !res.Pass {
			outcome.AddError(fmt.Sprintf("%s: %s", sr.Name, res.Message))
		}
	}

	// 3. Time-constraint hook (fail-open when absent).
	if g.timeHook != nil {
		if res := g.timeHook(ctx, tc); !res.Pass {
			outcome.AddError(res.Message)
		}
	}

	// 4. User-permission hook (fail-open when absent).
	if g.permHook != nil {
		if res := g.permHook(ctx, tc); !res.Pass {
			outcome.AddError(res.Message)
		}
	}

	return outcome
}
