package admission

import (
	"time"

	"github.com/google/uuid"
)

// Bed statuses.
const (
	BedAvailable = "available"
	BedOccupied  = "occupied"
)

// Admission statuses.
const (
	StatusActive     = "active"
	StatusDischarged = "discharged"
)

// Bed maps to the beds table.
type Bed struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BedNumber string    `db:"bed_number" json:"bed_number"`
	Ward      *string   `db:"ward" json:"ward,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Admission maps to the admissions table. Status moves from active to
// discharged exactly once, as a side effect of the discharge pipeline; the
// bed itself is freed later by the bed-release stage.
type Admission struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	BedID      uuid.UUID `db:"bed_id" json:"bed_id"`
	Status     string    `db:"status" json:"status"`
	Reason     *string   `db:"reason" json:"reason,omitempty"`
	AdmittedAt time.Time `db:"admitted_at" json:"admitted_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the patient is currently admitted.
func (a *Admission) IsActive() bool {
	return a.Status == StatusActive
}
