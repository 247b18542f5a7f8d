package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type roleSourcePG struct{ pool *pgxpool.Pool }

// NewRoleSourcePG returns a RoleSource backed by the actor_role table.
func NewRoleSourcePG(pool *pgxpool.Pool) RoleSource { return &roleSourcePG{pool: pool} }

func (r *roleSourcePG) RolesOf(ctx context.Context, actorID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT role FROM actor_role WHERE actor_id = $1`, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
