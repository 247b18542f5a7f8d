// Package intake implements the rule-gated validation core for reception
// intake: the rule registry, the business rules engine, and the validation
// orchestrator. It validates requests but never persists anything; the
// hosting reception service owns the record and its lifecycle state.
package intake

import (
	"time"

	"github.com/google/uuid"
)

// ReceptionKind distinguishes ordinary receptions from special-handling ones.
type ReceptionKind string

const (
	KindStandard ReceptionKind = "Standard"
	KindSpecial  ReceptionKind = "Special"
)

// Mode selects the validation variant.
type Mode string

const (
	ModeCreate Mode = "Create"
	ModeEdit   Mode = "Edit"
)

// Request is the shared intake shape both the create and edit variants
// implement. The pipeline treats it as immutable input owned by the caller.
type Request interface {
	PatientID() uuid.UUID
	DoctorID() uuid.UUID
	ReceptionDate() time.Time
	ServiceIDs() []uuid.UUID
	Notes() string
	ActorID() uuid.UUID
	IsEmergency() bool
	IsOnline() bool
	Kind() ReceptionKind
	// Complaint returns the emergency complaint category and symptom list;
	// both are empty for non-emergency intake.
	Complaint() (category string, symptoms []string)
}

// RequestBody carries the fields shared by both request variants.
type RequestBody struct {
	Patient           uuid.UUID     `json:"patient_id"`
	Doctor            uuid.UUID     `json:"doctor_id"`
	Date              time.Time     `json:"reception_date"`
	Services          []uuid.UUID   `json:"service_ids"`
	Note              string        `json:"notes"`
	Actor             uuid.UUID     `json:"actor_id"`
	Emergency         bool          `json:"is_emergency"`
	Online            bool          `json:"is_online"`
	ReceptionKind     ReceptionKind `json:"type"`
	ComplaintCategory string        `json:"complaint_category,omitempty"`
	Symptoms          []string      `json:"symptoms,omitempty"`
}

func (b *RequestBody) PatientID() uuid.UUID      { return b.Patient }
func (b *RequestBody) DoctorID() uuid.UUID       { return b.Doctor }
func (b *RequestBody) ReceptionDate() time.Time  { return b.Date }
func (b *RequestBody) ServiceIDs() []uuid.UUID   { return b.Services }
func (b *RequestBody) Notes() string             { return b.Note }
func (b *RequestBody) ActorID() uuid.UUID        { return b.Actor }
func (b *RequestBody) IsEmergency() bool         { return b.Emergency }
func (b *RequestBody) IsOnline() bool            { return b.Online }
func (b *RequestBody) Kind() ReceptionKind       { return b.ReceptionKind }
func (b *RequestBody) Complaint() (string, []string) {
	return b.ComplaintCategory, b.Symptoms
}

// CreateRequest asks for a new reception.
type CreateRequest struct {
	RequestBody
}

// EditRequest asks to change an existing reception.
type EditRequest struct {
	RequestBody
	ReceptionID uuid.UUID `json:"reception_id"`
}
