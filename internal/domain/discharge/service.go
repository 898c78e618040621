package discharge

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hms/hms/internal/domain/admission"
	"github.com/hms/hms/internal/domain/audit"
	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/platform/apperror"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
)

// Service drives the discharge pipeline: medical discharge, billing,
// payment, bed release. Each stage validates its preconditions before any
// write, then commits its rows and the audit entry in one transaction.
type Service struct {
	discharges  DischargeRepository
	billings    BillingRepository
	payments    PaymentRepository
	bedReleases BedReleaseRepository
	patients    identity.PatientRepository
	admissions  admission.AdmissionRepository
	beds        admission.BedRepository
	audits      audit.Repository
	tx          db.Transactor
}

func NewService(
	discharges DischargeRepository,
	billings BillingRepository,
	payments PaymentRepository,
	bedReleases BedReleaseRepository,
	patients identity.PatientRepository,
	admissions admission.AdmissionRepository,
	beds admission.BedRepository,
	audits audit.Repository,
	tx db.Transactor,
) *Service {
	return &Service{
		discharges:  discharges,
		billings:    billings,
		payments:    payments,
		bedReleases: bedReleases,
		patients:    patients,
		admissions:  admissions,
		beds:        beds,
		audits:      audits,
		tx:          tx,
	}
}

// requireRole gates a stage on the caller-supplied staff role. The role
// string is parsed at the boundary; business logic never compares raw
// strings. A missing id or role is an authentication failure, an
// unrecognized or insufficient role an authorization one.
func requireRole(staff StaffInput, allowed ...auth.Role) error {
	if staff.StaffID == "" || staff.StaffRole == "" {
		return apperror.AuthMissing("staff_id and staff_role are required")
	}
	role, err := auth.ParseRole(staff.StaffRole)
	if err != nil {
		return apperror.AuthDenied("unrecognized staff role")
	}
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return apperror.AuthDenied("staff role not permitted for this operation")
}

// InitiateDischarge closes an active admission and opens the discharge
// case. Doctor-only.
func (s *Service) InitiateDischarge(ctx context.Context, in DischargeInput) (*DischargeRecord, error) {
	if err := requireRole(in.StaffInput, auth.RoleDoctor); err != nil {
		return nil, err
	}
	if in.PatientID == uuid.Nil || in.AdmissionID == uuid.Nil {
		return nil, apperror.InvalidInput("patient_id and admission_id are required")
	}

	exists, err := s.patients.Exists(ctx, in.PatientID)
	if err != nil {
		return nil, apperror.Internal("check patient", err)
	}
	if !exists {
		return nil, apperror.NotFound("patient not found")
	}

	adm, err := s.admissions.GetByID(ctx, in.AdmissionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("admission not found")
		}
		return nil, apperror.Internal("get admission", err)
	}
	if adm.PatientID != in.PatientID {
		return nil, apperror.NotFound("admission not found for this patient")
	}
	if !adm.IsActive() {
		return nil, apperror.Conflict("patient is not currently admitted")
	}

	rec := &DischargeRecord{
		PatientID:     in.PatientID,
		DoctorID:      in.StaffID,
		AdmissionID:   in.AdmissionID,
		Status:        StatusMedicalDischargeComplete,
		DischargeDate: time.Now().UTC(),
	}
	if in.DischargeNotes != "" {
		rec.DischargeNotes = &in.DischargeNotes
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.discharges.Create(ctx, rec); err != nil {
			if db.IsUniqueViolation(err) {
				return apperror.Conflict("admission already discharged")
			}
			return apperror.Internal("create discharge record", err)
		}
		if err := s.admissions.UpdateStatus(ctx, adm.ID, admission.StatusDischarged); err != nil {
			return apperror.Internal("update admission status", err)
		}
		return s.writeAudit(ctx, &rec.ID, audit.ActionDischargeInitiated, in.StaffInput, map[string]interface{}{
			"patient_id":      in.PatientID,
			"admission_id":    in.AdmissionID,
			"discharge_notes": in.DischargeNotes,
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// CalculateBilling computes the bill for a discharge case. Admin-only;
// at most one billing per discharge.
func (s *Service) CalculateBilling(ctx context.Context, dischargeID uuid.UUID, in BillingInput) (*BillingRecord, error) {
	if err := requireRole(in.StaffInput, auth.RoleAdmin); err != nil {
		return nil, err
	}

	d, err := s.getDischarge(ctx, dischargeID)
	if err != nil {
		return nil, err
	}

	if in.Subtotal < 0 {
		return nil, apperror.InvalidInput("subtotal must not be negative")
	}
	if in.DiscountPercentage < 0 || in.DiscountPercentage > 100 {
		return nil, apperror.InvalidInput("discount_percentage must be between 0 and 100")
	}

	if _, err := s.billings.GetByDischarge(ctx, dischargeID); err == nil {
		return nil, apperror.Conflict("billing already calculated for this discharge")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.Internal("check existing billing", err)
	}

	discountAmount, totalAmount := BillAmounts(in.Subtotal, in.DiscountPercentage)
	bill := &BillingRecord{
		DischargeID:        dischargeID,
		PatientID:          d.PatientID,
		Subtotal:           in.Subtotal,
		DiscountPercentage: in.DiscountPercentage,
		DiscountAmount:     discountAmount,
		TotalAmount:        totalAmount,
		Status:             StatusBillingComplete,
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.billings.Create(ctx, bill); err != nil {
			if db.IsUniqueViolation(err) {
				return apperror.Conflict("billing already calculated for this discharge")
			}
			return apperror.Internal("create billing record", err)
		}
		for _, it := range in.Items {
			item := &BillingItem{
				BillingID:   bill.ID,
				Description: it.Description,
				Amount:      it.Amount,
				Quantity:    it.Quantity,
			}
			if it.ItemType != "" {
				t := it.ItemType
				item.ItemType = &t
			}
			if err := s.billings.AddItem(ctx, item); err != nil {
				return apperror.Internal("create billing item", err)
			}
		}
		return s.writeAudit(ctx, &dischargeID, audit.ActionBillingCalculated, in.StaffInput, map[string]interface{}{
			"subtotal":            in.Subtotal,
			"discount_percentage": in.DiscountPercentage,
			"discount_amount":     discountAmount,
			"total_amount":        totalAmount,
		})
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// ProcessPayment settles a billing record. Admin-only; at most one
// payment per billing, partial payments leave a positive balance.
func (s *Service) ProcessPayment(ctx context.Context, billingID uuid.UUID, in PaymentInput) (*PaymentRecord, error) {
	if err := requireRole(in.StaffInput, auth.RoleAdmin); err != nil {
		return nil, err
	}

	bill, err := s.billings.GetByID(ctx, billingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("billing record not found")
		}
		return nil, apperror.Internal("get billing record", err)
	}

	if in.PaymentMethod == "" {
		return nil, apperror.InvalidInput("payment_method is required")
	}
	if in.PaymentAmount <= 0 {
		return nil, apperror.InvalidInput("payment_amount must be positive")
	}
	if in.PaymentAmount > bill.TotalAmount {
		return nil, apperror.InvalidInput("payment exceeds total bill")
	}

	if _, err := s.payments.GetByBilling(ctx, billingID); err == nil {
		return nil, apperror.Conflict("payment already processed for this billing")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.Internal("check existing payment", err)
	}

	pay := &PaymentRecord{
		BillingID:        billingID,
		PaymentAmount:    in.PaymentAmount,
		PaymentMethod:    in.PaymentMethod,
		PaymentStatus:    StatusPaymentComplete,
		RemainingBalance: bill.TotalAmount - in.PaymentAmount,
		AdminID:          in.StaffID,
	}
	if in.Notes != "" {
		pay.Notes = &in.Notes
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.payments.Create(ctx, pay); err != nil {
			if db.IsUniqueViolation(err) {
				return apperror.Conflict("payment already processed for this billing")
			}
			return apperror.Internal("create payment record", err)
		}
		return s.writeAudit(ctx, &bill.DischargeID, audit.ActionPaymentProcessed, in.StaffInput, map[string]interface{}{
			"billing_id":        billingID,
			"payment_amount":    in.PaymentAmount,
			"payment_method":    in.PaymentMethod,
			"remaining_balance": pay.RemainingBalance,
		})
	})
	if err != nil {
		return nil, err
	}
	return pay, nil
}

// ReleaseBed frees the bed once billing and payment are both complete.
// Admin-only; the terminal stage of the pipeline.
func (s *Service) ReleaseBed(ctx context.Context, dischargeID uuid.UUID, in BedReleaseInput) (*BedRelease, error) {
	if err := requireRole(in.StaffInput, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if in.BedID == uuid.Nil {
		return nil, apperror.InvalidInput("bed_id is required")
	}

	d, err := s.getDischarge(ctx, dischargeID)
	if err != nil {
		return nil, err
	}

	if _, err := s.beds.GetByID(ctx, in.BedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("bed not found")
		}
		return nil, apperror.Internal("get bed", err)
	}

	bill, err := s.billings.GetByDischarge(ctx, dischargeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.Conflict("billing not calculated for this discharge")
		}
		return nil, apperror.Internal("get billing record", err)
	}

	if _, err := s.payments.GetByBilling(ctx, bill.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.Conflict("payment not processed for this billing")
		}
		return nil, apperror.Internal("get payment record", err)
	}

	if _, err := s.bedReleases.GetByDischarge(ctx, dischargeID); err == nil {
		return nil, apperror.Conflict("bed already released for this discharge")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.Internal("check existing bed release", err)
	}

	rel := &BedRelease{
		DischargeID: dischargeID,
		BedID:       in.BedID,
		PatientID:   d.PatientID,
		Status:      StatusBedAvailable,
		ReleaseDate: time.Now().UTC(),
		AdminID:     in.StaffID,
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.bedReleases.Create(ctx, rel); err != nil {
			if db.IsUniqueViolation(err) {
				return apperror.Conflict("bed already released for this discharge")
			}
			return apperror.Internal("create bed release", err)
		}
		if err := s.beds.UpdateStatus(ctx, in.BedID, admission.BedAvailable); err != nil {
			return apperror.Internal("update bed status", err)
		}
		return s.writeAudit(ctx, &dischargeID, audit.ActionBedReleased, in.StaffInput, map[string]interface{}{
			"bed_id":       in.BedID,
			"patient_id":   d.PatientID,
			"release_date": rel.ReleaseDate,
		})
	})
	if err != nil {
		return nil, err
	}
	return rel, nil
}

// -- Reads --

func (s *Service) GetDischarge(ctx context.Context, id uuid.UUID) (*DischargeRecord, error) {
	return s.getDischarge(ctx, id)
}

func (s *Service) ListDischarges(ctx context.Context, limit, offset int) ([]*DischargeRecord, int, error) {
	items, total, err := s.discharges.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("list discharge records", err)
	}
	return items, total, nil
}

// GetBillingForDischarge returns the billing record with its line items.
func (s *Service) GetBillingForDischarge(ctx context.Context, dischargeID uuid.UUID) (*BillingRecord, []*BillingItem, error) {
	bill, err := s.billings.GetByDischarge(ctx, dischargeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperror.NotFound("billing record not found")
		}
		return nil, nil, apperror.Internal("get billing record", err)
	}
	items, err := s.billings.GetItems(ctx, bill.ID)
	if err != nil {
		return nil, nil, apperror.Internal("get billing items", err)
	}
	return bill, items, nil
}

func (s *Service) GetPaymentForBilling(ctx context.Context, billingID uuid.UUID) (*PaymentRecord, error) {
	p, err := s.payments.GetByBilling(ctx, billingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("payment record not found")
		}
		return nil, apperror.Internal("get payment record", err)
	}
	return p, nil
}

func (s *Service) getDischarge(ctx context.Context, id uuid.UUID) (*DischargeRecord, error) {
	d, err := s.discharges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("discharge record not found")
		}
		return nil, apperror.Internal("get discharge record", err)
	}
	return d, nil
}

func (s *Service) writeAudit(ctx context.Context, dischargeID *uuid.UUID, action string, staff StaffInput, details map[string]interface{}) error {
	entry := &audit.DischargeAudit{
		DischargeID: dischargeID,
		Action:      action,
		StaffID:     staff.StaffID,
		StaffName:   staff.StaffName,
		StaffRole:   staff.StaffRole,
		Details:     details,
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		return apperror.Internal("write audit entry", err)
	}
	return nil
}
