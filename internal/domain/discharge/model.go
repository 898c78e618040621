package discharge

import (
	"time"

	"github.com/google/uuid"
)

// Record statuses, one per pipeline stage.
const (
	StatusMedicalDischargeComplete = "medical_discharge_complete"
	StatusBillingComplete          = "billing_complete"
	StatusPaymentComplete          = "complete"
	StatusBedAvailable             = "available"
)

// DischargeRecord opens a discharge case against an active admission.
// Created exactly once per admission; immutable after creation.
type DischargeRecord struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID       string    `db:"doctor_id" json:"doctor_id"`
	AdmissionID    uuid.UUID `db:"admission_id" json:"admission_id"`
	Status         string    `db:"status" json:"status"`
	DischargeNotes *string   `db:"discharge_notes" json:"discharge_notes,omitempty"`
	DischargeDate  time.Time `db:"discharge_date" json:"discharge_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// BillingRecord holds the computed bill for one discharge case. At most one
// per discharge, enforced by a unique index on discharge_id.
type BillingRecord struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	DischargeID        uuid.UUID `db:"discharge_id" json:"discharge_id"`
	PatientID          uuid.UUID `db:"patient_id" json:"patient_id"`
	Subtotal           float64   `db:"subtotal" json:"subtotal"`
	DiscountPercentage float64   `db:"discount_percentage" json:"discount_percentage"`
	DiscountAmount     float64   `db:"discount_amount" json:"discount_amount"`
	TotalAmount        float64   `db:"total_amount" json:"total_amount"`
	Status             string    `db:"status" json:"status"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// BillingItem is a descriptive line item. Items are never re-aggregated
// into the subtotal; the caller supplies the subtotal.
type BillingItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	BillingID   uuid.UUID `db:"billing_id" json:"billing_id"`
	Description string    `db:"description" json:"description"`
	Amount      float64   `db:"amount" json:"amount"`
	Quantity    int       `db:"quantity" json:"quantity"`
	ItemType    *string   `db:"item_type" json:"item_type,omitempty"`
}

// PaymentRecord settles a billing record. One per billing, enforced by a
// unique index on billing_id; remaining_balance may stay positive since
// installments are not modeled.
type PaymentRecord struct {
	ID               uuid.UUID `db:"id" json:"id"`
	BillingID        uuid.UUID `db:"billing_id" json:"billing_id"`
	PaymentAmount    float64   `db:"payment_amount" json:"payment_amount"`
	PaymentMethod    string    `db:"payment_method" json:"payment_method"`
	PaymentStatus    string    `db:"payment_status" json:"payment_status"`
	RemainingBalance float64   `db:"remaining_balance" json:"remaining_balance"`
	AdminID          string    `db:"admin_id" json:"admin_id"`
	Notes            *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// BedRelease is the pipeline's terminal record: the bed goes back to the
// ward in the same transaction that creates it.
type BedRelease struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DischargeID uuid.UUID `db:"discharge_id" json:"discharge_id"`
	BedID       uuid.UUID `db:"bed_id" json:"bed_id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	Status      string    `db:"status" json:"status"`
	ReleaseDate time.Time `db:"release_date" json:"release_date"`
	AdminID     string    `db:"admin_id" json:"admin_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// StaffInput is the caller-supplied identity on every stage input. It is
// trusted as provided by the upstream authentication layer; only the role
// string is matched against the stage gate.
type StaffInput struct {
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	StaffRole string `json:"staff_role"`
}

// DischargeInput is the discharge stage request.
type DischargeInput struct {
	StaffInput
	PatientID      uuid.UUID `json:"patient_id"`
	AdmissionID    uuid.UUID `json:"admission_id"`
	DischargeNotes string    `json:"discharge_notes"`
}

// BillingItemInput is one optional line item on the billing stage request.
type BillingItemInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Quantity    int     `json:"quantity"`
	ItemType    string  `json:"item_type"`
}

// BillingInput is the billing stage request; the discharge id comes from
// the URL.
type BillingInput struct {
	StaffInput
	Subtotal           float64            `json:"subtotal"`
	DiscountPercentage float64            `json:"discount_percentage"`
	Items              []BillingItemInput `json:"items,omitempty"`
}

// PaymentInput is the payment stage request; the billing id comes from
// the URL.
type PaymentInput struct {
	StaffInput
	PaymentAmount float64 `json:"payment_amount"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}

// BedReleaseInput is the bed-release stage request; the discharge id comes
// from the URL.
type BedReleaseInput struct {
	StaffInput
	BedID uuid.UUID `json:"bed_id"`
}

// BillAmounts computes the discount and total for a subtotal. Standard
// float64 arithmetic, no rounding; a zero discount returns the subtotal
// exactly.
func BillAmounts(subtotal, discountPercentage float64) (discountAmount, totalAmount float64) {
	if discountPercentage == 0 {
		return 0, subtotal
	}
	discountAmount = subtotal * discountPercentage / 100
	totalAmount = subtotal - discountAmount
	return discountAmount, totalAmount
}
