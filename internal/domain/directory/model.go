package directory

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Only the fields the intake core needs
// are carried; demographics live with the upstream registration system.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Active    bool      `db:"active" json:"active"`
	Deleted   bool      `db:"deleted" json:"deleted"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Doctor maps to the doctor table.
type Doctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Specialty string    `db:"specialty" json:"specialty"`
	Active    bool      `db:"active" json:"active"`
	Deleted   bool      `db:"deleted" json:"deleted"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// MedicalService maps to the medical_service table.
type MedicalService struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Online    bool      `db:"online" json:"online"`
	Active    bool      `db:"active" json:"active"`
	Deleted   bool      `db:"deleted" json:"deleted"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Usable reports whether the patient can be attached to a new reception.
func (p *Patient) Usable() bool { return p.Active && !p.Deleted }

// Usable reports whether the doctor can accept a new reception.
func (d *Doctor) Usable() bool { return d.Active && !d.Deleted }

// Usable reports whether the service can be selected.
func (s *MedicalService) Usable() bool { return s.Active && !s.Deleted }
