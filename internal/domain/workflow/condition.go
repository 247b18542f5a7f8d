package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/reception/internal/domain/directory"
	"github.com/clinic/reception/internal/platform/validation"
)

// ConditionType is the closed set of guard condition kinds.
type ConditionType string

const (
	ConditionDataValidation ConditionType = "DataValidation"
	ConditionBusinessLogic  ConditionType = "BusinessLogic"
	ConditionTimeConstraint ConditionType = "TimeConstraint"
	ConditionUserPermission ConditionType = "UserPermission"
)

// Condition is a stateless transition-guard check descriptor, evaluated
// fresh on every guard call.
type Condition struct {
	Type        ConditionType     `json:"type"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

// TransitionContext carries the request data a guard check evaluates against.
type TransitionContext struct {
	ReceptionID uuid.UUID
	ActorID     uuid.UUID
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	Date        time.Time
	ServiceIDs  []uuid.UUID
	Extra       map[string]string
}

// WorkingHoursChecker is the calendar collaborator the evaluator consults
// for time constraints. A nil checker means the constraint passes.
type WorkingHoursChecker interface {
	WithinWorkingHours(t time.Time) bool
}

// RoleChecker is the permission collaborator. A nil checker means the
// permission condition passes.
type RoleChecker interface {
	HasRole(ctx context.Context, actorID uuid.UUID, role string) (bool, error)
}

// Evaluator evaluates a single named condition against a transition context
// and the current persisted state of its referenced entities.
type Evaluator struct {
	patients directory.PatientDirectory
	doctors  directory.DoctorDirectory
	hours    WorkingHoursChecker
	roles    RoleChecker
}

// NewEvaluator builds an Evaluator. The hours and roles collaborators may be
// nil; those condition kinds then pass. The directory lookups are required
// for data-validation conditions, which fail closed without them.
func NewEvaluator(patients directory.PatientDirectory, doctors directory.DoctorDirectory, hours WorkingHoursChecker, roles RoleChecker) *Evaluator {
	return &Evaluator{patients: patients, doctors: doctors, hours: hours, roles: roles}
}

// Evaluate runs one condition. Unknown condition types fail closed.
func (e *Evaluator) Evaluate(ctx context.Context, tc TransitionContext, cond Condition) validation.CheckResult {
	switch cond.Type {
	case ConditionDataValidation:
		return e.evaluateData(ctx, tc, cond)
	case ConditionBusinessLogic:
		return e.evaluateBusiness(tc, cond)
	case ConditionTimeConstraint:
		return e.evaluateTime(tc)
	case ConditionUserPermission:
		return e.evaluatePermission(ctx, tc, cond)
	default:
		return validation.Failed("invalid condition type")
	}
}

func (e *Evaluator) evaluateData(ctx context.Context, tc TransitionContext, cond Condition) validation.CheckResult {
	switch cond.Parameters["entity"] {
	case "patient":
		if e.patients == nil {
			return validation.Failed("patient directory unavailable")
		}
		if tc.PatientID == uuid.Nil {
			return validation.Failed("patient reference is missing")
		}
		p, err := e.patients.GetPatient(ctx, tc.PatientID)
		if errors.Is(err, directory.ErrNotFound) {
			return validation.Failed("patient does not exist")
		}
		if err != nil {
			return validation.Failed(fmt.Sprintf("patient lookup failed: %v", err))
		}
		if !p.Usable() {
			return validation.Failed("patient is inactive or deleted")
		}
		return validation.Passed()
	case "doctor":
		if e.doctors == nil {
			return validation.Failed("doctor directory unavailable")
		}
		if tc.DoctorID == uuid.Nil {
			return validation.Failed("doctor reference is missing")
		}
		d, err := e.doctors.GetDoctor(ctx, tc.DoctorID)
		if errors.Is(err, directory.ErrNotFound) {
			return validation.Failed("doctor does not exist")
		}
		if err != nil {
			return validation.Failed(fmt.Sprintf("doctor lookup failed: %v", err))
		}
		if !d.Usable() {
			return validation.Failed("doctor is inactive or deleted")
		}
		return validation.Passed()
	default:
		return validation.Failed("unknown data validation entity: " + cond.Parameters["entity"])
	}
}

func (e *Evaluator) evaluateBusiness(tc TransitionContext, cond Condition) validation.CheckResult {
	switch cond.Parameters["rule"] {
	case "services_selected":
		if len(tc.ServiceIDs) == 0 {
			return validation.Failed("at least one service must be selected")
		}
		return validation.Passed()
	case "payment_confirmed":
		if tc.Extra["payment_confirmed"] != "true" {
			return validation.Failed("payment has not been confirmed")
		}
		return validation.Passed()
	case "insurance_verified":
		if tc.Extra["insurance_verified"] != "true" {
			return validation.Failed("insurance has not been verified")
		}
		return validation.Passed()
	default:
		return validation.Failed("unknown business rule: " + cond.Parameters["rule"])
	}
}

func (e *Evaluator) evaluateTime(tc TransitionContext) validation.CheckResult {
	// Missing calendar collaborator never blocks a transition.
	if e.hours == nil {
		return validation.Passed()
	}
	if tc.Date.IsZero() || e.hours.WithinWorkingHours(tc.Date) {
		return validation.Passed()
	}
	return validation.Failed("reception time is outside working hours")
}

func (e *Evaluator) evaluatePermission(ctx context.Context, tc TransitionContext, cond Condition) validation.CheckResult {
	// Missing permission collaborator never blocks a transition.
	if e.roles == nil {
		return validation.Passed()
	}
	role := cond.Parameters["role"]
	if role == "" {
		return validation.Passed()
	}
	ok, err := e.roles.HasRole(ctx, tc.ActorID, role)
	if err != nil {
		return validation.Failed(fmt.Sprintf("permission check failed: %v", err))
	}
	if !ok {
		return validation.Failed("actor lacks required role: " + role)
	}
	return validation.Passed()
}
