package intake

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/reception/internal/domain/triage"
	"github.com/clinic/reception/internal/domain/workflow"
	"github.com/clinic/reception/internal/platform/validation"
)

// Stage names one orchestrator phase.
type Stage string

const (
	StageBasic         Stage = "Basic"
	StageBusinessRules Stage = "BusinessRules"
	StageSecurity      Stage = "Security"
	StagePerformance   Stage = "Performance"
	StageIntegration   Stage = "Integration"
	StageSpecialCase   Stage = "SpecialCase"
)

// StageResult records one completed stage. Results are appended in stage
// order and never mutated afterwards; together they form the audit trail of
// one orchestration run.
type StageResult struct {
	Stage        Stage              `json:"stage"`
	StartedAt    time.Time          `json:"started_at"`
	EndedAt      time.Time          `json:"ended_at"`
	Outcome      validation.Outcome `json:"outcome"`
	AppliedRules []string           `json:"applied_rules,omitempty"`
	SkippedRules []string           `json:"skipped_rules,omitempty"`
}

// Result aggregates every stage of one orchestration run. It is created at
// orchestration start, finalized after the last stage, and returned to the
// caller; the core never persists it.
type Result struct {
	Valid        bool          `json:"valid"`
	Cancelled    bool          `json:"cancelled,omitempty"`
	Errors       []string      `json:"errors,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
	AppliedRules []string      `json:"applied_rules,omitempty"`
	SkippedRules []string      `json:"skipped_rules,omitempty"`
	Stages       []StageResult `json:"stages"`
}

// TransitionChecker is the slice of the workflow guard the special-case
// stage uses to confirm an emergency reception can enter the pipeline.
type TransitionChecker interface {
	ValidateTransition(ctx context.Context, from, to workflow.State, tc workflow.TransitionContext) validation.Outcome
}

// Orchestrator is the top-level validation entry point. It runs six fixed
// stages in order, timing each one, and merges their outcomes. Stages are
// never short-circuited: every stage always runs so a single pass reports
// complete diagnostics. It holds only immutable configuration and stateless
// collaborators, so one instance serves concurrent requests.
type Orchestrator struct {
	engine   *Engine
	security SecurityProvider
	guard    TransitionChecker
	log      zerolog.Logger
}

// NewOrchestrator builds an Orchestrator. guard may be nil; the special-case
// stage then skips its transition probe.
func NewOrchestrator(engine *Engine, security SecurityProvider, guard TransitionChecker, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{engine: engine, security: security, guard: guard, log: log}
}

type stageOutput struct {
	outcome validation.Outcome
	applied []string
	skipped []string
}

// Validate runs the full pipeline for one request. It always returns a
// structured result: validation failures, collaborator faults and panics
// all land in the result rather than an error return.
func (o *Orchestrator) Validate(ctx context.Context, req Request, mode Mode) *Result {
	result := &Result{Valid: true}

	stages := []struct {
		name Stage
		run  func(ctx context.Context, req Request, mode Mode) stageOutput
	}{
		{StageBasic, o.stageBasic},
		{StageBusinessRules, o.stageBusinessRules},
		{StageSecurity, o.stageSecurity},
		{StagePerformance, o.stagePerformance},
		{StageIntegration, o.stageIntegration},
		{StageSpecialCase, o.stageSpecialCase},
	}

	for _, stage := range stages {
		if ctx.Err() != nil {
			// A cancelled orchestration is reported distinctly, not as a
			// validation failure.
			result.Cancelled = true
			result.Valid = false
			o.log.Warn().Str("stage", string(stage.name)).Msg("orchestration cancelled")
			return result
		}

		started := time.Now()
		out := o.runStage(ctx, stage.name, stage.run, req, mode)
		sr := StageResult{
			Stage:        stage.name,
			StartedAt:    started,
			EndedAt:      time.Now(),
			Outcome:      out.outcome,
			AppliedRules: out.applied,
			SkippedRules: out.skipped,
		}
		result.Stages = append(result.Stages, sr)

		if !out.outcome.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, out.outcome.Errors...)
		result.Warnings = append(result.Warnings, out.outcome.Warnings...)
		result.AppliedRules = appendUnique(result.AppliedRules, out.applied)
		result.SkippedRules = appendUnique(result.SkippedRules, out.skipped)
	}

	return result
}

// runStage isolates stage panics: an internal fault becomes a single
// configuration-class failure with the cause logged, never a crash and never
// the raw cause leaked to the caller.
func (o *Orchestrator) runStage(ctx context.Context, name Stage, run func(context.Context, Request, Mode) stageOutput, req Request, mode Mode) (out stageOutput) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error().Interface("panic", r).Str("stage", string(name)).Msg("validation stage fault")
			out.outcome.AddError(string(name) + " stage failed: internal validation fault")
		}
	}()
	return run(ctx, req, mode)
}

// -- Stages --

func (o *Orchestrator) stageBasic(_ context.Context, req Request, mode Mode) stageOutput {
	out := stageOutput{outcome: validation.OK()}
	if req.PatientID() == uuid.Nil {
		out.outcome.AddError("patient reference is required")
	}
	if req.DoctorID() == uuid.Nil {
		out.outcome.AddError("doctor reference is required")
	}
	if req.ReceptionDate().IsZero() {
		out.outcome.AddError("reception date is required")
	}
	switch req.Kind() {
	case KindStandard, KindSpecial:
	default:
		out.outcome.AddError("reception type is missing or unknown")
	}
	if mode == ModeEdit {
		if er, ok := req.(*EditRequest); !ok || er.ReceptionID == uuid.Nil {
			out.outcome.AddError("edit requests must reference an existing reception")
		}
	}
	return out
}

func (o *Orchestrator) stageBusinessRules(ctx context.Context, req Request, mode Mode) stageOutput {
	report := o.engine.Run(ctx, req, mode)
	return stageOutput{outcome: report.Outcome, applied: report.AppliedRules, skipped: report.SkippedRules}
}

func (o *Orchestrator) stageSecurity(ctx context.Context, req Request, mode Mode) stageOutput {
	out := stageOutput{outcome: validation.OK()}

	if field, bad := unsafeInput(req); bad {
		out.outcome.AddError("unsafe content detected in " + field)
	}

	if o.security == nil {
		return out
	}
	permitted := false
	for _, role := range []string{"receptionist", "doctor"} {
		ok, err := o.security.HasRole(ctx, req.ActorID(), role)
		if err != nil {
			out.outcome.AddError("permission check unavailable")
			return out
		}
		if ok {
			permitted = true
			break
		}
	}
	if !permitted {
		out.outcome.AddError("actor is not permitted to " + verbFor(mode) + " receptions")
	}

	for _, kind := range []string{"patient", "doctor"} {
		ok, err := o.security.CanAccessEntity(ctx, kind, req.ActorID())
		if err != nil {
			out.outcome.AddError("data access check unavailable")
			return out
		}
		if !ok {
			out.outcome.AddError("actor may not access " + kind + " records")
		}
	}
	return out
}

const (
	farFutureDays      = 30
	manyServicesLimit  = 10
	longNotesHeuristic = 1000
)

// stagePerformance emits heuristic warnings only; it can never invalidate a
// request.
func (o *Orchestrator) stagePerformance(_ context.Context, req Request, _ Mode) stageOutput {
	out := stageOutput{outcome: validation.OK()}
	if !req.ReceptionDate().IsZero() && time.Until(req.ReceptionDate()) > farFutureDays*24*time.Hour {
		out.outcome.AddWarning("reception date is more than 30 days out")
	}
	if len(req.ServiceIDs()) > manyServicesLimit {
		out.outcome.AddWarning("unusually many services selected")
	}
	if len(req.Notes()) > longNotesHeuristic {
		out.outcome.AddWarning("notes are unusually long")
	}
	return out
}

// stageIntegration is a reserved extension point for downstream system
// checks; it currently always passes.
func (o *Orchestrator) stageIntegration(_ context.Context, _ Request, _ Mode) stageOutput {
	return stageOutput{outcome: validation.OK()}
}

func (o *Orchestrator) stageSpecialCase(ctx context.Context, req Request, mode Mode) stageOutput {
	out := stageOutput{outcome: validation.OK()}

	switch {
	case req.IsEmergency():
		category, symptoms := req.Complaint()
		score := triage.ClassifyOrDefault(category, symptoms)
		if score.Level == triage.ESI1 {
			out.outcome.AddWarning("triage " + score.Level.String() + ": activate emergency escalation")
		}
		if req.IsOnline() {
			out.outcome.AddWarning("emergency receptions are held on site; online flag ignored")
		}
		// Probe the lifecycle entry transition so a misconfigured workflow
		// surfaces during intake rather than after the record is persisted.
		if o.guard != nil && mode == ModeCreate {
			tc := workflow.TransitionContext{
				ActorID:    req.ActorID(),
				PatientID:  req.PatientID(),
				DoctorID:   req.DoctorID(),
				Date:       req.ReceptionDate(),
				ServiceIDs: req.ServiceIDs(),
			}
			guardOut := o.guard.ValidateTransition(ctx, workflow.StateInitialized, workflow.StatePatientVerification, tc)
			out.outcome.Merge(guardOut)
		}
	case req.IsOnline():
		if len(req.ServiceIDs()) == 0 {
			out.outcome.AddError("online receptions require a selected service")
		}
	case req.Kind() == KindSpecial:
		out.outcome.AddWarning("special reception: manual review recommended")
	}

	return out
}

func appendUnique(dst []string, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			dst = append(dst, s)
			seen[s] = true
		}
	}
	return dst
}
