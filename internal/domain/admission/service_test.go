package admission

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/platform/apperror"
)

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockBedRepo struct {
	beds map[uuid.UUID]*Bed
}

func newMockBedRepo() *mockBedRepo {
	return &mockBedRepo{beds: make(map[uuid.UUID]*Bed)}
}

func (m *mockBedRepo) Create(ctx context.Context, b *Bed) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BedAvailable
	}
	m.beds[b.ID] = b
	return nil
}

func (m *mockBedRepo) GetByID(ctx context.Context, id uuid.UUID) (*Bed, error) {
	b, ok := m.beds[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return b, nil
}

func (m *mockBedRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	b, ok := m.beds[id]
	if !ok {
		return pgx.ErrNoRows
	}
	b.Status = status
	return nil
}

func (m *mockBedRepo) List(ctx context.Context, limit, offset int) ([]*Bed, int, error) {
	var items []*Bed
	for _, b := range m.beds {
		items = append(items, b)
	}
	return items, len(items), nil
}

type mockAdmissionRepo struct {
	admissions map[uuid.UUID]*Admission
}

func newMockAdmissionRepo() *mockAdmissionRepo {
	return &mockAdmissionRepo{admissions: make(map[uuid.UUID]*Admission)}
}

func (m *mockAdmissionRepo) Create(ctx context.Context, a *Admission) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusActive
	}
	m.admissions[a.ID] = a
	return nil
}

func (m *mockAdmissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*Admission, error) {
	a, ok := m.admissions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (m *mockAdmissionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	a, ok := m.admissions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	a.Status = status
	return nil
}

func (m *mockAdmissionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Admission, int, error) {
	var items []*Admission
	for _, a := range m.admissions {
		if a.PatientID == patientID {
			items = append(items, a)
		}
	}
	return items, len(items), nil
}

func (m *mockAdmissionRepo) List(ctx context.Context, limit, offset int) ([]*Admission, int, error) {
	var items []*Admission
	for _, a := range m.admissions {
		items = append(items, a)
	}
	return items, len(items), nil
}

type mockPatientRepo struct {
	ids map[uuid.UUID]bool
}

func (m *mockPatientRepo) Create(ctx context.Context, p *identity.Patient) error { return nil }
func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*identity.Patient, error) {
	return nil, pgx.ErrNoRows
}
func (m *mockPatientRepo) GetByMRN(ctx context.Context, mrn string) (*identity.Patient, error) {
	return nil, pgx.ErrNoRows
}
func (m *mockPatientRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.ids[id], nil
}
func (m *mockPatientRepo) List(ctx context.Context, limit, offset int) ([]*identity.Patient, int, error) {
	return nil, 0, nil
}

type fixture struct {
	svc        *Service
	beds       *mockBedRepo
	admissions *mockAdmissionRepo
	patients   *mockPatientRepo
}

func newFixture() *fixture {
	beds := newMockBedRepo()
	admissions := newMockAdmissionRepo()
	patients := &mockPatientRepo{ids: make(map[uuid.UUID]bool)}
	return &fixture{
		svc:        NewService(beds, admissions, patients, passthroughTx{}),
		beds:       beds,
		admissions: admissions,
		patients:   patients,
	}
}

func (f *fixture) addPatient() uuid.UUID {
	id := uuid.New()
	f.patients.ids[id] = true
	return id
}

func (f *fixture) addBed(status string) *Bed {
	b := &Bed{ID: uuid.New(), BedNumber: "B-101", Status: status}
	f.beds.beds[b.ID] = b
	return b
}

func TestAdmitPatient(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient()
	bed := f.addBed(BedAvailable)

	a := &Admission{PatientID: patientID, BedID: bed.ID}
	if err := f.svc.AdmitPatient(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Status != StatusActive {
		t.Errorf("expected status active, got %s", a.Status)
	}
	if bed.Status != BedOccupied {
		t.Errorf("expected bed occupied, got %s", bed.Status)
	}
}

func TestAdmitPatient_PatientNotFound(t *testing.T) {
	f := newFixture()
	bed := f.addBed(BedAvailable)

	err := f.svc.AdmitPatient(context.Background(), &Admission{PatientID: uuid.New(), BedID: bed.ID})
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if len(f.admissions.admissions) != 0 {
		t.Error("expected no admission created")
	}
}

func TestAdmitPatient_BedNotFound(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient()

	err := f.svc.AdmitPatient(context.Background(), &Admission{PatientID: patientID, BedID: uuid.New()})
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestAdmitPatient_BedOccupied(t *testing.T) {
	f := newFixture()
	patientID := f.addPatient()
	bed := f.addBed(BedOccupied)

	err := f.svc.AdmitPatient(context.Background(), &Admission{PatientID: patientID, BedID: bed.ID})
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Errorf("expected Conflict, got %v", err)
	}
	if len(f.admissions.admissions) != 0 {
		t.Error("expected no admission created")
	}
}

func TestAdmitPatient_Validation(t *testing.T) {
	f := newFixture()

	err := f.svc.AdmitPatient(context.Background(), &Admission{})
	if !apperror.IsKind(err, apperror.KindInvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestCreateBed_Validation(t *testing.T) {
	f := newFixture()

	err := f.svc.CreateBed(context.Background(), &Bed{})
	if !apperror.IsKind(err, apperror.KindInvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestGetAdmission_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetAdmission(context.Background(), uuid.New())
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}
