package reception

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/reception/internal/domain/workflow"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const receptionCols = `id, patient_id, doctor_id, reception_date, service_ids, notes,
	emergency, online, kind, state, complaint_category, symptoms, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, rec *Reception) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reception (
			id, patient_id, doctor_id, reception_date, service_ids, notes,
			emergency, online, kind, state, complaint_category, symptoms
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		rec.ID, rec.PatientID, rec.DoctorID, rec.Date, rec.ServiceIDs, rec.Notes,
		rec.Emergency, rec.Online, rec.Kind, rec.State, rec.ComplaintCategory, rec.Symptoms,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Reception, error) {
	return scanReception(r.pool.QueryRow(ctx, `SELECT `+receptionCols+` FROM reception WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rec *Reception) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reception SET
			patient_id=$2, doctor_id=$3, reception_date=$4, service_ids=$5, notes=$6,
			emergency=$7, online=$8, kind=$9, complaint_category=$10, symptoms=$11, updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.PatientID, rec.DoctorID, rec.Date, rec.ServiceIDs, rec.Notes,
		rec.Emergency, rec.Online, rec.Kind, rec.ComplaintCategory, rec.Symptoms,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) UpdateState(ctx context.Context, id uuid.UUID, state workflow.State) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE reception SET state=$2, updated_at=NOW() WHERE id = $1`, id, state)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reception WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Reception, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reception`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+receptionCols+` FROM reception ORDER BY reception_date DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectReceptions(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Reception, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reception WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+receptionCols+` FROM reception WHERE patient_id = $1 ORDER BY reception_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectReceptions(rows, total)
}

func scanReception(row pgx.Row) (*Reception, error) {
	var rec Reception
	err := row.Scan(
		&rec.ID, &rec.PatientID, &rec.DoctorID, &rec.Date, &rec.ServiceIDs, &rec.Notes,
		&rec.Emergency, &rec.Online, &rec.Kind, &rec.State,
		&rec.ComplaintCategory, &rec.Symptoms, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func collectReceptions(rows pgx.Rows, total int) ([]*Reception, int, error) {
	var recs []*Reception
	for rows.Next() {
		rec, err := scanReception(rows)
		if err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}
