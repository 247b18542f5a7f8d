package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type providerPG struct {
	pool  *pgxpool.Pool
	hours Hours
}

// NewProviderPG returns a Provider backed by the reception table.
func NewProviderPG(pool *pgxpool.Pool, hours Hours) Provider {
	return &providerPG{pool: pool, hours: hours}
}

func (p *providerPG) CountReceptions(ctx context.Context, doctorID uuid.UUID, date time.Time) (int, error) {
	var n int
	err := p.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM reception
		WHERE doctor_id = $1 AND reception_date::date = $2::date AND state <> 'Cancelled'`,
		doctorID, date).Scan(&n)
	return n, err
}

func (p *providerPG) HasActiveReception(ctx context.Context, patientID uuid.UUID, date time.Time) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reception
			WHERE patient_id = $1 AND reception_date::date = $2::date AND state <> 'Cancelled'
		)`, patientID, date).Scan(&exists)
	return exists, err
}

func (p *providerPG) WithinWorkingHours(t time.Time) bool {
	return p.hours.Contains(t)
}
