// Package schedule exposes the calendar and capacity collaborator used by
// the intake rules engine and the workflow transition guard.
package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Provider answers scheduling questions about doctors and patients.
type Provider interface {
	// CountReceptions returns the number of receptions booked for the doctor
	// on the given calendar day.
	CountReceptions(ctx context.Context, doctorID uuid.UUID, date time.Time) (int, error)
	// HasActiveReception reports whether the patient already has a
	// non-cancelled reception on the given calendar day.
	HasActiveReception(ctx context.Context, patientID uuid.UUID, date time.Time) (bool, error)
	// WithinWorkingHours reports whether the instant falls inside the
	// clinic's working day.
	WithinWorkingHours(t time.Time) bool
}

// Hours describes the clinic working day in local clock hours.
type Hours struct {
	Start int // inclusive, 0..23
	End   int // exclusive, 1..24
}

// DefaultHours is an 08:00-18:00 working day.
var DefaultHours = Hours{Start: 8, End: 18}

// Contains reports whether t's clock hour falls inside the working day.
func (h Hours) Contains(t time.Time) bool {
	hr := t.Hour()
	return hr >= h.Start && hr < h.End
}
