package discharge

import (
	"context"

	"github.com/google/uuid"
)

type DischargeRepository interface {
	Create(ctx context.Context, d *DischargeRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*DischargeRecord, error)
	GetByAdmission(ctx context.Context, admissionID uuid.UUID) (*DischargeRecord, error)
	List(ctx context.Context, limit, offset int) ([]*DischargeRecord, int, error)
}

type BillingRepository interface {
	Create(ctx context.Context, b *BillingRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*BillingRecord, error)
	GetByDischarge(ctx context.Context, dischargeID uuid.UUID) (*BillingRecord, error)
	AddItem(ctx context.Context, item *BillingItem) error
	GetItems(ctx context.Context, billingID uuid.UUID) ([]*BillingItem, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *PaymentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentRecord, error)
	GetByBilling(ctx context.Context, billingID uuid.UUID) (*PaymentRecord, error)
}

type BedReleaseRepository interface {
	Create(ctx context.Context, br *BedRelease) error
	GetByDischarge(ctx context.Context, dischargeID uuid.UUID) (*BedRelease, error)
}
