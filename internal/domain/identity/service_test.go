package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hms/hms/internal/platform/apperror"
)

// mockPatientRepo is a map-backed PatientRepository.
type mockPatientRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockPatientRepo) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockPatientRepo) GetByMRN(ctx context.Context, mrn string) (*Patient, error) {
	for _, p := range m.patients {
		if p.MRN == mrn {
			return p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockPatientRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.patients[id]
	return ok, nil
}

func (m *mockPatientRepo) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.patients {
		items = append(items, p)
	}
	return items, len(items), nil
}

// mockDoctorRepo is a map-backed DoctorRepository.
type mockDoctorRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockDoctorRepo) Create(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return d, nil
}

func (m *mockDoctorRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.doctors[id]
	return ok, nil
}

func (m *mockDoctorRepo) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var items []*Doctor
	for _, d := range m.doctors {
		items = append(items, d)
	}
	return items, len(items), nil
}

func newTestService() (*Service, *mockPatientRepo, *mockDoctorRepo) {
	patients := newMockPatientRepo()
	doctors := newMockDoctorRepo()
	return NewService(patients, doctors), patients, doctors
}

func TestCreatePatient(t *testing.T) {
	svc, patients, _ := newTestService()

	p := &Patient{MRN: "MRN-001", FirstName: "Asha", LastName: "Verma"}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patients.patients) != 1 {
		t.Errorf("expected 1 patient stored, got %d", len(patients.patients))
	}
}

func TestCreatePatient_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name    string
		patient Patient
	}{
		{"missing first name", Patient{MRN: "MRN-001", LastName: "Verma"}},
		{"missing last name", Patient{MRN: "MRN-001", FirstName: "Asha"}},
		{"missing mrn", Patient{FirstName: "Asha", LastName: "Verma"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreatePatient(context.Background(), &tt.patient)
			if !apperror.IsKind(err, apperror.KindInvalidInput) {
				t.Errorf("expected InvalidInput, got %v", err)
			}
		})
	}
}

func TestGetPatient_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetPatient(context.Background(), uuid.New())
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestGetPatient(t *testing.T) {
	svc, _, _ := newTestService()

	p := &Patient{MRN: "MRN-002", FirstName: "Ravi", LastName: "Kumar"}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetPatient(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FullName() != "Ravi Kumar" {
		t.Errorf("expected full name 'Ravi Kumar', got %q", got.FullName())
	}
}

func TestCreateDoctor_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.CreateDoctor(context.Background(), &Doctor{FirstName: "Meera"})
	if !apperror.IsKind(err, apperror.KindInvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestGetDoctor_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetDoctor(context.Background(), uuid.New())
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}
