package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by lookups when no record exists for the id.
var ErrNotFound = errors.New("directory: not found")

// PatientDirectory resolves patient references for the intake core.
type PatientDirectory interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error)
}

// DoctorDirectory resolves doctor references for the intake core.
type DoctorDirectory interface {
	GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error)
}

// ServiceCatalog resolves medical service references for the intake core.
type ServiceCatalog interface {
	GetService(ctx context.Context, id uuid.UUID) (*MedicalService, error)
}
