package reception

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/reception/internal/domain/directory"
	"github.com/clinic/reception/internal/domain/intake"
	"github.com/clinic/reception/internal/domain/workflow"
)

type mockRepo struct {
	byID map[uuid.UUID]*Reception
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[uuid.UUID]*Reception)}
}

func (m *mockRepo) Create(_ context.Context, r *Reception) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Reception, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, r *Reception) error {
	if _, ok := m.byID[r.ID]; !ok {
		return ErrNotFound
	}
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *mockRepo) UpdateState(_ context.Context, id uuid.UUID, state workflow.State) error {
	r, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.State = state
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Reception, int, error) {
	var recs []*Reception
	for _, r := range m.byID {
		recs = append(recs, r)
	}
	return recs, len(m.byID), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Reception, int, error) {
	var recs []*Reception
	for _, r := range m.byID {
		if r.PatientID == patientID {
			recs = append(recs, r)
		}
	}
	return recs, len(recs), nil
}

type mockPatients struct {
	byID map[uuid.UUID]*directory.Patient
}

func (m *mockPatients) GetPatient(_ context.Context, id uuid.UUID) (*directory.Patient, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, directory.ErrNotFound
	}
	return p, nil
}

type mockDoctors struct {
	byID map[uuid.UUID]*directory.Doctor
}

func (m *mockDoctors) GetDoctor(_ context.Context, id uuid.UUID) (*directory.Doctor, error) {
	d, ok := m.byID[id]
	if !ok {
		return nil, directory.ErrNotFound
	}
	return d, nil
}

type mockServices struct {
	byID map[uuid.UUID]*directory.MedicalService
}

func (m *mockServices) GetService(_ context.Context, id uuid.UUID) (*directory.MedicalService, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, directory.ErrNotFound
	}
	return s, nil
}

type mockSchedule struct {
	count  int
	busy   bool
	within bool
}

func (m *mockSchedule) CountReceptions(context.Context, uuid.UUID, time.Time) (int, error) {
	return m.count, nil
}

func (m *mockSchedule) HasActiveReception(context.Context, uuid.UUID, time.Time) (bool, error) {
	return m.busy, nil
}

func (m *mockSchedule) WithinWorkingHours(time.Time) bool { return m.within }

type mockSecurity struct {
	roles map[uuid.UUID][]string
}

func (m *mockSecurity) HasRole(_ context.Context, actorID uuid.UUID, role string) (bool, error) {
	for _, r := range m.roles[actorID] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSecurity) CanAccessEntity(context.Context, string, uuid.UUID) (bool, error) {
	return true, nil
}

type fixture struct {
	svc     *Service
	repo    *mockRepo
	patient *directory.Patient
	doctor  *directory.Doctor
	service *directory.MedicalService
	actor   uuid.UUID
}

func newFixture() *fixture {
	patient := &directory.Patient{ID: uuid.New(), FullName: "Ada", Active: true}
	doctor := &directory.Doctor{ID: uuid.New(), FullName: "Dr. Grace", Specialty: "cardiology", Active: true}
	service := &directory.MedicalService{ID: uuid.New(), Name: "consultation", Online: true, Active: true}
	actor := uuid.New()

	patients := &mockPatients{byID: map[uuid.UUID]*directory.Patient{patient.ID: patient}}
	doctors := &mockDoctors{byID: map[uuid.UUID]*directory.Doctor{doctor.ID: doctor}}
	services := &mockServices{byID: map[uuid.UUID]*directory.MedicalService{service.ID: service}}
	schedule := &mockSchedule{within: true}
	security := &mockSecurity{roles: map[uuid.UUID][]string{actor: {"receptionist"}}}

	engine := intake.NewEngine(intake.NewRegistry(nil), patients, doctors, services,
		schedule, security, 10, zerolog.Nop())
	eval := workflow.NewEvaluator(patients, doctors, schedule, security)
	guard := workflow.NewGuard(workflow.DefaultRuleSet(), workflow.DefaultStateRules(), eval, zerolog.Nop())
	orch := intake.NewOrchestrator(engine, security, guard, zerolog.Nop())

	repo := newMockRepo()
	return &fixture{
		svc:     NewService(repo, orch, guard, zerolog.Nop()),
		repo:    repo,
		patient: patient,
		doctor:  doctor,
		service: service,
		actor:   actor,
	}
}

func (f *fixture) reception() *Reception {
	return &Reception{
		PatientID:  f.patient.ID,
		DoctorID:   f.doctor.ID,
		Date:       time.Now().AddDate(0, 0, 1),
		ServiceIDs: []uuid.UUID{f.service.ID},
		Notes:      "routine check",
		Kind:       intake.KindStandard,
	}
}

func TestServiceCreatePersistsValidReception(t *testing.T) {
	f := newFixture()
	rec := f.reception()

	result, err := f.svc.Create(context.Background(), rec, f.actor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}
	if rec.State != workflow.StateInitialized {
		t.Errorf("expected state %s, got %s", workflow.StateInitialized, rec.State)
	}
	stored, err := f.repo.GetByID(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.PatientID != f.patient.ID {
		t.Errorf("stored wrong patient id")
	}
}

func TestServiceCreateRejectsInvalidReception(t *testing.T) {
	f := newFixture()
	rec := f.reception()
	rec.PatientID = uuid.New() // unknown patient

	result, err := f.svc.Create(context.Background(), rec, f.actor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(f.repo.byID) != 0 {
		t.Error("invalid reception must not be persisted")
	}
}

func TestServiceUpdateUnknownReception(t *testing.T) {
	f := newFixture()
	rec := f.reception()
	rec.ID = uuid.New()

	_, err := f.svc.Update(context.Background(), rec, f.actor)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceUpdateRunsValidation(t *testing.T) {
	f := newFixture()
	rec := f.reception()
	if _, err := f.svc.Create(context.Background(), rec, f.actor); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec.ServiceIDs = nil
	result, err := f.svc.Update(context.Background(), rec, f.actor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result for empty service list")
	}
	stored, _ := f.repo.GetByID(context.Background(), rec.ID)
	if len(stored.ServiceIDs) == 0 {
		t.Error("invalid update must not be persisted")
	}
}

func TestServiceTransitionAssignsState(t *testing.T) {
	f := newFixture()
	rec := f.reception()
	if _, err := f.svc.Create(context.Background(), rec, f.actor); err != nil {
		t.Fatalf("create: %v", err)
	}

	outcome, err := f.svc.TransitionState(context.Background(), rec.ID,
		workflow.StatePatientVerification, f.actor, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Valid {
		t.Fatalf("expected valid outcome, got errors: %v", outcome.Errors)
	}
	stored, _ := f.repo.GetByID(context.Background(), rec.ID)
	if stored.State != workflow.StatePatientVerification {
		t.Errorf("expected state %s, got %s", workflow.StatePatientVerification, stored.State)
	}
}

func TestServiceTransitionDeniedKeepsState(t *testing.T) {
	f := newFixture()
	rec := f.reception()
	if _, err := f.svc.Create(context.Background(), rec, f.actor); err != nil {
		t.Fatalf("create: %v", err)
	}

	// No rule covers Initialized -> Completed, so the guard denies it.
	outcome, err := f.svc.TransitionState(context.Background(), rec.ID,
		workflow.StateCompleted, f.actor, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Valid {
		t.Fatal("expected denied transition")
	}
	stored, _ := f.repo.GetByID(context.Background(), rec.ID)
	if stored.State != workflow.StateInitialized {
		t.Errorf("state must not change on a denied transition, got %s", stored.State)
	}
}

func TestServiceTransitionCancellation(t *testing.T) {
	f := newFixture()
	rec := f.reception()
	if _, err := f.svc.Create(context.Background(), rec, f.actor); err != nil {
		t.Fatalf("create: %v", err)
	}

	outcome, err := f.svc.TransitionState(context.Background(), rec.ID,
		workflow.StateCancelled, f.actor, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Valid {
		t.Fatalf("receptionist should be allowed to cancel, got errors: %v", outcome.Errors)
	}
	stored, _ := f.repo.GetByID(context.Background(), rec.ID)
	if stored.State != workflow.StateCancelled {
		t.Errorf("expected state %s, got %s", workflow.StateCancelled, stored.State)
	}
}

func TestServiceTransitionUnknownReception(t *testing.T) {
	f := newFixture()

	_, err := f.svc.TransitionState(context.Background(), uuid.New(),
		workflow.StateCancelled, f.actor, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
