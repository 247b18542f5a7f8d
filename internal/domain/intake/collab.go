package intake

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScheduleProvider answers calendar and capacity questions for the date and
// time-conflict rules.
type ScheduleProvider interface {
	CountReceptions(ctx context.Context, doctorID uuid.UUID, date time.Time) (int, error)
	HasActiveReception(ctx context.Context, patientID uuid.UUID, date time.Time) (bool, error)
	WithinWorkingHours(t time.Time) bool
}

// SecurityProvider answers permission and entity-access questions for the
// security rules and the orchestrator's security stage.
type SecurityProvider interface {
	HasRole(ctx context.Context, actorID uuid.UUID, role string) (bool, error)
	CanAccessEntity(ctx context.Context, entityKind string, actorID uuid.UUID) (bool, error)
}
