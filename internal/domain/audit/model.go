package audit

import (
	"time"

	"github.com/google/uuid"
)

// Pipeline actions, one per stage transition.
const (
	ActionDischargeInitiated = "discharge_initiated"
	ActionBillingCalculated  = "billing_calculated"
	ActionPaymentProcessed   = "payment_processed"
	ActionBedReleased        = "bed_released"
)

// DischargeAudit is one append-only row per successful stage transition.
// Rows are never updated or deleted; rejected attempts never reach this
// table and are logged at the transport layer instead.
type DischargeAudit struct {
	ID          uuid.UUID              `db:"id" json:"id"`
	DischargeID *uuid.UUID             `db:"discharge_id" json:"discharge_id,omitempty"`
	Action      string                 `db:"action" json:"action"`
	StaffID     string                 `db:"staff_id" json:"staff_id"`
	StaffName   string                 `db:"staff_name" json:"staff_name"`
	StaffRole   string                 `db:"staff_role" json:"staff_role"`
	Details     map[string]interface{} `db:"details" json:"details"`
	CreatedAt   time.Time              `db:"created_at" json:"created_at"`
}
