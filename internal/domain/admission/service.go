package admission

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/platform/apperror"
	"github.com/hms/hms/internal/platform/db"
)

type Service struct {
	beds       BedRepository
	admissions AdmissionRepository
	patients   identity.PatientRepository
	tx         db.Transactor
}

func NewService(beds BedRepository, admissions AdmissionRepository, patients identity.PatientRepository, tx db.Transactor) *Service {
	return &Service{beds: beds, admissions: admissions, patients: patients, tx: tx}
}

// -- Bed --

func (s *Service) CreateBed(ctx context.Context, b *Bed) error {
	if b.BedNumber == "" {
		return apperror.InvalidInput("bed_number is required")
	}
	if err := s.beds.Create(ctx, b); err != nil {
		return apperror.Internal("create bed", err)
	}
	return nil
}

func (s *Service) GetBed(ctx context.Context, id uuid.UUID) (*Bed, error) {
	b, err := s.beds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("bed not found")
		}
		return nil, apperror.Internal("get bed", err)
	}
	return b, nil
}

func (s *Service) ListBeds(ctx context.Context, limit, offset int) ([]*Bed, int, error) {
	items, total, err := s.beds.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("list beds", err)
	}
	return items, total, nil
}

// -- Admission --

// AdmitPatient creates an active admission and occupies the chosen bed in
// one transaction. The bed must exist and be available; bed choice is
// supplied by the caller, never computed here.
func (s *Service) AdmitPatient(ctx context.Context, a *Admission) error {
	if a.PatientID == uuid.Nil {
		return apperror.InvalidInput("patient_id is required")
	}
	if a.BedID == uuid.Nil {
		return apperror.InvalidInput("bed_id is required")
	}

	exists, err := s.patients.Exists(ctx, a.PatientID)
	if err != nil {
		return apperror.Internal("check patient", err)
	}
	if !exists {
		return apperror.NotFound("patient not found")
	}

	bed, err := s.beds.GetByID(ctx, a.BedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound("bed not found")
		}
		return apperror.Internal("get bed", err)
	}
	if bed.Status != BedAvailable {
		return apperror.Conflict("bed is not available")
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.admissions.Create(ctx, a); err != nil {
			return apperror.Internal("create admission", err)
		}
		if err := s.beds.UpdateStatus(ctx, a.BedID, BedOccupied); err != nil {
			return apperror.Internal("occupy bed", err)
		}
		return nil
	})
}

func (s *Service) GetAdmission(ctx context.Context, id uuid.UUID) (*Admission, error) {
	a, err := s.admissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("admission not found")
		}
		return nil, apperror.Internal("get admission", err)
	}
	return a, nil
}

func (s *Service) ListAdmissions(ctx context.Context, limit, offset int) ([]*Admission, int, error) {
	items, total, err := s.admissions.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("list admissions", err)
	}
	return items, total, nil
}

func (s *Service) ListAdmissionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Admission, int, error) {
	items, total, err := s.admissions.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("list admissions", err)
	}
	return items, total, nil
}
