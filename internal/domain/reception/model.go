package reception

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinic/reception/internal/domain/intake"
	"github.com/clinic/reception/internal/domain/workflow"
)

// Reception maps to the reception table. The record owns its lifecycle
// state; the workflow guard only validates transitions and the service
// assigns the next state after a successful check.
type Reception struct {
	ID         uuid.UUID            `db:"id" json:"id"`
	PatientID  uuid.UUID            `db:"patient_id" json:"patient_id"`
	DoctorID   uuid.UUID            `db:"doctor_id" json:"doctor_id"`
	Date       time.Time            `db:"reception_date" json:"reception_date"`
	ServiceIDs []uuid.UUID          `db:"service_ids" json:"service_ids"`
	Notes      string               `db:"notes" json:"notes"`
	Emergency  bool                 `db:"emergency" json:"emergency"`
	Online     bool                 `db:"online" json:"online"`
	Kind       intake.ReceptionKind `db:"kind" json:"kind"`
	State      workflow.State       `db:"state" json:"state"`
	// Emergency complaint inputs for triage. Empty for ordinary receptions.
	ComplaintCategory string    `db:"complaint_category" json:"complaint_category,omitempty"`
	Symptoms          []string  `db:"symptoms" json:"symptoms,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// intakeRequest converts the record to the shared intake request shape.
func (r *Reception) intakeRequest(actorID uuid.UUID) intake.RequestBody {
	return intake.RequestBody{
		Patient:           r.PatientID,
		Doctor:            r.DoctorID,
		Date:              r.Date,
		Services:          r.ServiceIDs,
		Note:              r.Notes,
		Actor:             actorID,
		Emergency:         r.Emergency,
		Online:            r.Online,
		ReceptionKind:     r.Kind,
		ComplaintCategory: r.ComplaintCategory,
		Symptoms:          r.Symptoms,
	}
}

// transitionContext converts the record to the workflow guard's context.
func (r *Reception) transitionContext(actorID uuid.UUID, extra map[string]string) workflow.TransitionContext {
	return workflow.TransitionContext{
		ReceptionID: r.ID,
		ActorID:     actorID,
		PatientID:   r.PatientID,
		DoctorID:    r.DoctorID,
		Date:        r.Date,
		ServiceIDs:  r.ServiceIDs,
		Extra:       extra,
	}
}
