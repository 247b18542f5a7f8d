package reception

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/clinic/reception/internal/domain/workflow"
)

var ErrNotFound = errors.New("reception not found")

type Repository interface {
	Create(ctx context.Context, r *Reception) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reception, error)
	Update(ctx context.Context, r *Reception) error
	UpdateState(ctx context.Context, id uuid.UUID, state workflow.State) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Reception, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Reception, int, error)
}
