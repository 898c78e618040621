package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists the audit trail. Create is always called inside the
// stage transaction so the audit row commits or rolls back with the stage.
type Repository interface {
	Create(ctx context.Context, a *DischargeAudit) error
	ListByDischarge(ctx context.Context, dischargeID uuid.UUID) ([]*DischargeAudit, error)
	List(ctx context.Context, limit, offset int) ([]*DischargeAudit, int, error)
}
