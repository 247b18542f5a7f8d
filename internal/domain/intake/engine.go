package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/reception/internal/domain/directory"
	"github.com/clinic/reception/internal/domain/triage"
	"github.com/clinic/reception/internal/platform/validation"
)

// RulesReport is the business rules engine result: the aggregate outcome
// plus the trace of which rules ran and which were skipped.
type RulesReport struct {
	Outcome      validation.Outcome `json:"outcome"`
	AppliedRules []string           `json:"applied_rules,omitempty"`
	SkippedRules []string           `json:"skipped_rules,omitempty"`
}

// Valid reports the aggregate validity.
func (r *RulesReport) Valid() bool { return r.Outcome.Valid }

func (r *RulesReport) applied(id RuleID) { r.AppliedRules = append(r.AppliedRules, string(id)) }
func (r *RulesReport) skipped(id RuleID) { r.SkippedRules = append(r.SkippedRules, string(id)) }

// Engine runs the fixed, ordered business rule list against one request.
// All enabled rules run unconditionally and errors accumulate; there is no
// short-circuit, so one report carries every violation at once.
type Engine struct {
	registry *Registry
	patients directory.PatientDirectory
	doctors  directory.DoctorDirectory
	services directory.ServiceCatalog
	schedule ScheduleProvider
	security SecurityProvider
	capacity int
	log      zerolog.Logger
}

// NewEngine builds an Engine. capacity is the per-doctor daily reception
// limit enforced by the time-conflict rule; zero disables the check.
func NewEngine(
	registry *Registry,
	patients directory.PatientDirectory,
	doctors directory.DoctorDirectory,
	services directory.ServiceCatalog,
	schedule ScheduleProvider,
	security SecurityProvider,
	capacity int,
	log zerolog.Logger,
) *Engine {
	return &Engine{
		registry: registry,
		patients: patients,
		doctors:  doctors,
		services: services,
		schedule: schedule,
		security: security,
		capacity: capacity,
		log:      log,
	}
}

type ruleStep struct {
	id  RuleID
	run func(ctx context.Context, req Request, mode Mode, out *validation.Outcome)
}

// Run executes the rule list for the request. Emergency intake relaxes the
// schedule-related checks: only patient and doctor existence/activity remain
// mandatory, and the time-conflict, working-hours and capacity checks are
// skipped outright.
func (e *Engine) Run(ctx context.Context, req Request, mode Mode) RulesReport {
	report := RulesReport{Outcome: validation.OK()}

	steps := []ruleStep{
		{RulePatientValidation, e.rulePatient},
		{RuleDoctorValidation, e.ruleDoctor},
		{RuleServiceValidation, e.ruleServices},
		{RuleDateValidation, e.ruleDate},
		{RuleTimeConflictValidation, e.ruleTimeConflict},
		{RulePermissionCheck, e.rulePermission},
		{RuleDataSecurity, e.ruleDataSecurity},
		{RuleInputSecurity, e.ruleInputSecurity},
		{RuleFormatValidation, e.ruleFormat},
		{RuleRangeValidation, e.ruleRange},
		{RuleDataTypeValidation, e.ruleDataType},
	}
	for _, step := range steps {
		e.execute(ctx, step, req, mode, &report)
	}

	// Special-case rules run only when their flag is set.
	if req.IsEmergency() {
		e.execute(ctx, ruleStep{RuleEmergencyHandling, e.ruleEmergency}, req, mode, &report)
	}
	if req.IsOnline() {
		e.execute(ctx, ruleStep{RuleOnlineHandling, e.ruleOnline}, req, mode, &report)
	}
	if req.Kind() == KindSpecial {
		e.execute(ctx, ruleStep{RuleSpecialHandling, e.ruleSpecial}, req, mode, &report)
	}

	// Reserved extension points: fixed no-ops that currently always pass.
	for _, id := range []RuleID{RuleLoadBalancing, RuleResourceOptimization, RuleExternalIntegration, RuleDataSync} {
		e.execute(ctx, ruleStep{id, func(context.Context, Request, Mode, *validation.Outcome) {}}, req, mode, &report)
	}

	return report
}

// execute gates a rule by the registry, records the trace entry, and
// converts a panic inside the rule into a violation so one misbehaving rule
// cannot abort the rest of the run.
func (e *Engine) execute(ctx context.Context, step ruleStep, req Request, mode Mode, report *RulesReport) {
	if !e.registry.Enabled(step.id) {
		report.skipped(step.id)
		return
	}
	// Emergency relaxation: the time-conflict rule is skipped outright.
	if step.id == RuleTimeConflictValidation && req.IsEmergency() {
		report.skipped(step.id)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Str("rule", string(step.id)).Msg("rule panicked")
			report.Outcome.AddError(fmt.Sprintf("%s: rule execution failed", step.id))
		}
	}()

	report.applied(step.id)
	step.run(ctx, req, mode, &report.Outcome)
}

// -- Core rules --

func (e *Engine) rulePatient(ctx context.Context, req Request, _ Mode, out *validation.Outcome) {
	if req.PatientID() == uuid.Nil {
		out.AddError("patient reference is required")
		return
	}
	p, err := e.patients.GetPatient(ctx, req.PatientID())
	if errors.Is(err, directory.ErrNotFound) {
		out.AddError("patient does not exist")
		return
	}
	if err != nil {
		out.AddError(fmt.Sprintf("patient validation unavailable: %v", err))
		return
	}
	if !p.Usable() {
		out.AddError("patient is inactive or deleted")
	}
}

func (e *Engine) ruleDoctor(ctx context.Context, req Request, _ Mode, out *validation.Outcome) {
	if req.DoctorID() == uuid.Nil {
		out.AddError("doctor reference is required")
		return
	}
	d, err := e.doctors.GetDoctor(ctx, req.DoctorID())
	if errors.Is(err, directory.ErrNotFound) {
		out.AddError("doctor does not exist")
		return
	}
	if err != nil {
		out.AddError(fmt.Sprintf("doctor validation unavailable: %v", err))
		return
	}
	if !d.Usable() {
		out.AddError("doctor is inactive or deleted")
	}
}

func (e *Engine) ruleServices(ctx context.Context, req Request, _ Mode, out *validation.Outcome) {
	ids := req.ServiceIDs()
	if len(ids) == 0 {
		out.AddError("at least one service must be selected")
		return
	}
	for _, id := range ids {
		s, err := e.services.GetService(ctx, id)
		if errors.Is(err, directory.ErrNotFound) {
			out.AddError(fmt.Sprintf("service %s does not exist", id))
			continue
		}
		if err != nil {
			out.AddError(fmt.Sprintf("service validation unavailable: %v", err))
			continue
		}
		if !s.Usable() {
			out.AddError(fmt.Sprintf("service %s is inactive or deleted", id))
		}
	}
}

func (e *Engine) ruleDate(_ context.Context, req Request, _ Mode, out *validation.Outcome) {
	date := req.ReceptionDate()
	if date.IsZero() {
		out.AddError("reception date is required")
		return
	}
	// Emergency intake takes the next available slot; the calendar checks
	// below do not apply.
	if req.IsEmergency() {
		return
	}
	if date.Before(time.Now().Truncate(24 * time.Hour)) {
		out.AddError("reception date is in the past")
	}
	if e.schedule != nil && !e.schedule.WithinWorkingHours(date) {
		out.AddError("reception time is outside working hours")
	}
}

func (e *Engine) ruleTimeConflict(ctx context.Context, req Request, mode Mode, out *validation.Outcome) {
	if e.schedule == nil || req.ReceptionDate().IsZero() {
		return
	}
	busy, err := e.schedule.HasActiveReception(ctx, req.PatientID(), req.ReceptionDate())
	if err != nil {
		out.AddError(fmt.Sprintf("time conflict check unavailable: %v", err))
	} else if busy && mode == ModeCreate {
		out.AddError("patient already has a reception on this date")
	}

	if e.capacity <= 0 {
		return
	}
	n, err := e.schedule.CountReceptions(ctx, req.DoctorID(), req.ReceptionDate())
	if err != nil {
		out.AddError(fmt.Sprintf("capacity check unavailable: %v", err))
		return
	}
	if n >= e.capacity {
		out.AddError("doctor has reached daily capacity")
	}
}

// -- Security family --

func (e *Engine) rulePermission(ctx context.Context, req Request, mode Mode, out *validation.Outcome) {
	if e.security == nil {
		return
	}
	for _, role := range []string{"receptionist", "doctor"} {
		ok, err := e.security.HasRole(ctx, req.ActorID(), role)
		if err != nil {
			out.AddError(fmt.Sprintf("permission check unavailable: %v", err))
			return
		}
		if ok {
			return
		}
	}
	out.AddError(fmt.Sprintf("actor is not permitted to %s receptions", verbFor(mode)))
}

func (e *Engine) ruleDataSecurity(ctx context.Context, req Request, _ Mode, out *validation.Outcome) {
	if e.security == nil {
		return
	}
	for _, kind := range []string{"patient", "reception"} {
		ok, err := e.security.CanAccessEntity(ctx, kind, req.ActorID())
		if err != nil {
			out.AddError(fmt.Sprintf("data access check unavailable: %v", err))
			return
		}
		if !ok {
			out.AddError("actor may not access " + kind + " records")
		}
	}
}

func (e *Engine) ruleInputSecurity(_ context.Context, req Request, _ Mode, out *validation.Outcome) {
	if field, bad := unsafeInput(req); bad {
		out.AddError("unsafe content detected in " + field)
	}
}

// -- Format family --

const maxNotesLength = 2000

func (e *Engine) ruleFormat(_ context.Context, req Request, _ Mode, out *validation.Outcome) {
	if len(req.Notes()) > maxNotesLength {
		out.AddError(fmt.Sprintf("notes exceed %d characters", maxNotesLength))
	}
}

func (e *Engine) ruleRange(_ context.Context, req Request, _ Mode, out *validation.Outcome) {
	date := req.ReceptionDate()
	if date.IsZero() {
		return
	}
	now := time.Now()
	if date.Before(now.AddDate(-1, 0, 0)) || date.After(now.AddDate(1, 0, 0)) {
		out.AddError("reception date is outside the schedulable range")
	}
}

func (e *Engine) ruleDataType(_ context.Context, req Request, _ Mode, out *validation.Outcome) {
	switch req.Kind() {
	case KindStandard, KindSpecial:
	default:
		out.AddError(fmt.Sprintf("unknown reception type: %q", req.Kind()))
	}
	for _, id := range req.ServiceIDs() {
		if id == uuid.Nil {
			out.AddError("service list contains an empty reference")
			break
		}
	}
}

// -- Special-case family --

func (e *Engine) ruleEmergency(_ context.Context, req Request, _ Mode, out *validation.Outcome) {
	category, symptoms := req.Complaint()
	score := triage.ClassifyOrDefault(category, symptoms)
	if score.Level == triage.ESI1 {
		out.AddWarning("triage ESI-1: immediate escalation required")
	} else if score.Severity >= 8 {
		out.AddWarning("high severity emergency intake")
	}
	if req.DoctorID() == uuid.Nil {
		out.AddError("emergency intake requires an assigned doctor")
	}
}

func (e *Engine) ruleOnline(ctx context.Context, req Request, _ Mode, out *validation.Outcome) {
	for _, id := range req.ServiceIDs() {
		s, err := e.services.GetService(ctx, id)
		if err != nil {
			// The service rule already reports lookup problems.
			continue
		}
		if !s.Online {
			out.AddError(fmt.Sprintf("service %s is not available online", id))
		}
	}
}

func (e *Engine) ruleSpecial(_ context.Context, req Request, _ Mode, out *validation.Outcome) {
	if req.Notes() == "" {
		out.AddError("special receptions require explanatory notes")
	}
}

func verbFor(mode Mode) string {
	if mode == ModeEdit {
		return "edit"
	}
	return "create"
}
