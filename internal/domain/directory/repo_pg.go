package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Patient Directory ===========

type patientPG struct{ pool *pgxpool.Pool }

func NewPatientDirectoryPG(pool *pgxpool.Pool) PatientDirectory { return &patientPG{pool: pool} }

func (r *patientPG) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	var p Patient
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, active, deleted, created_at, updated_at
		FROM patient WHERE id = $1`, id).
		Scan(&p.ID, &p.FullName, &p.Active, &p.Deleted, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// =========== Doctor Directory ===========

type doctorPG struct{ pool *pgxpool.Pool }

func NewDoctorDirectoryPG(pool *pgxpool.Pool) DoctorDirectory { return &doctorPG{pool: pool} }

func (r *doctorPG) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	var d Doctor
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, specialty, active, deleted, created_at, updated_at
		FROM doctor WHERE id = $1`, id).
		Scan(&d.ID, &d.FullName, &d.Specialty, &d.Active, &d.Deleted, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// =========== Service Catalog ===========

type servicePG struct{ pool *pgxpool.Pool }

func NewServiceCatalogPG(pool *pgxpool.Pool) ServiceCatalog { return &servicePG{pool: pool} }

func (r *servicePG) GetService(ctx context.Context, id uuid.UUID) (*MedicalService, error) {
	var s MedicalService
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, online, active, deleted, created_at, updated_at
		FROM medical_service WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Online, &s.Active, &s.Deleted, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
