package reception

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/reception/internal/domain/intake"
	"github.com/clinic/reception/internal/domain/workflow"
	"github.com/clinic/reception/internal/platform/validation"
)

// Service hosts reception records. It is the caller of the validation core:
// every write runs through the orchestrator first, and every state change
// through the transition guard. Only this service assigns WorkflowState.
type Service struct {
	repo  Repository
	orch  *intake.Orchestrator
	guard *workflow.Guard
	log   zerolog.Logger
}

func NewService(repo Repository, orch *intake.Orchestrator, guard *workflow.Guard, log zerolog.Logger) *Service {
	return &Service{repo: repo, orch: orch, guard: guard, log: log}
}

// Create validates and persists a new reception. The returned result is
// always populated; the record is persisted only when the result is valid.
func (s *Service) Create(ctx context.Context, r *Reception, actorID uuid.UUID) (*intake.Result, error) {
	req := &intake.CreateRequest{RequestBody: r.intakeRequest(actorID)}
	result := s.orch.Validate(ctx, req, intake.ModeCreate)
	if result.Cancelled {
		return result, ctx.Err()
	}
	if !result.Valid {
		return result, nil
	}

	r.State = workflow.StateInitialized
	if err := s.repo.Create(ctx, r); err != nil {
		return result, fmt.Errorf("persist reception: %w", err)
	}
	s.log.Info().
		Str("reception_id", r.ID.String()).
		Str("patient_id", r.PatientID.String()).
		Bool("emergency", r.Emergency).
		Msg("reception created")
	return result, nil
}

// Update validates and persists changes to an existing reception.
func (s *Service) Update(ctx context.Context, r *Reception, actorID uuid.UUID) (*intake.Result, error) {
	if _, err := s.repo.GetByID(ctx, r.ID); err != nil {
		return nil, fmt.Errorf("load reception: %w", err)
	}

	req := &intake.EditRequest{RequestBody: r.intakeRequest(actorID), ReceptionID: r.ID}
	result := s.orch.Validate(ctx, req, intake.ModeEdit)
	if result.Cancelled {
		return result, ctx.Err()
	}
	if !result.Valid {
		return result, nil
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return result, fmt.Errorf("persist reception: %w", err)
	}
	return result, nil
}

// Get returns one reception.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Reception, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of receptions.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Reception, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// ListByPatient returns a page of one patient's receptions.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Reception, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// Delete removes a reception record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// TransitionState checks the requested lifecycle transition with the guard
// and, only on a fully valid outcome, assigns and persists the new state.
func (s *Service) TransitionState(ctx context.Context, id uuid.UUID, target workflow.State, actorID uuid.UUID, extra map[string]string) (validation.Outcome, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return validation.Outcome{}, fmt.Errorf("load reception: %w", err)
	}

	outcome := s.guard.ValidateTransition(ctx, rec.State, target, rec.transitionContext(actorID, extra))
	if !outcome.Valid {
		return outcome, nil
	}

	if err := s.repo.UpdateState(ctx, id, target); err != nil {
		return outcome, fmt.Errorf("persist state: %w", err)
	}
	s.log.Info().
		Str("reception_id", id.String()).
		Str("from", string(rec.State)).
		Str("to", string(target)).
		Msg("reception state changed")
	return outcome, nil
}
