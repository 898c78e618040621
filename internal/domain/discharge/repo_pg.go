package discharge

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Discharge Repository ===========

type dischargeRepoPG struct{ pool *pgxpool.Pool }

func NewDischargeRepoPG(pool *pgxpool.Pool) DischargeRepository { return &dischargeRepoPG{pool: pool} }

func (r *dischargeRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const dischargeCols = `id, patient_id, doctor_id, admission_id, status, discharge_notes, discharge_date, created_at, updated_at`

func (r *dischargeRepoPG) scan(row pgx.Row) (*DischargeRecord, error) {
	var d DischargeRecord
	err := row.Scan(&d.ID, &d.PatientID, &d.DoctorID, &d.AdmissionID, &d.Status,
		&d.DischargeNotes, &d.DischargeDate, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *dischargeRepoPG) Create(ctx context.Context, d *DischargeRecord) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO discharge_records (id, patient_id, doctor_id, admission_id, status, discharge_notes, discharge_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, d.PatientID, d.DoctorID, d.AdmissionID, d.Status, d.DischargeNotes, d.DischargeDate)
	return err
}

func (r *dischargeRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DischargeRecord, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+dischargeCols+` FROM discharge_records WHERE id = $1`, id))
}

func (r *dischargeRepoPG) GetByAdmission(ctx context.Context, admissionID uuid.UUID) (*DischargeRecord, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+dischargeCols+` FROM discharge_records WHERE admission_id = $1`, admissionID))
}

func (r *dischargeRepoPG) List(ctx context.Context, limit, offset int) ([]*DischargeRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM discharge_records`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+dischargeCols+` FROM discharge_records ORDER BY discharge_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*DischargeRecord
	for rows.Next() {
		d, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}

// =========== Billing Repository ===========

type billingRepoPG struct{ pool *pgxpool.Pool }

func NewBillingRepoPG(pool *pgxpool.Pool) BillingRepository { return &billingRepoPG{pool: pool} }

func (r *billingRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const billingCols = `id, discharge_id, patient_id, subtotal, discount_percentage, discount_amount, total_amount, status, created_at`

func (r *billingRepoPG) scan(row pgx.Row) (*BillingRecord, error) {
	var b BillingRecord
	err := row.Scan(&b.ID, &b.DischargeID, &b.PatientID, &b.Subtotal, &b.DiscountPercentage,
		&b.DiscountAmount, &b.TotalAmount, &b.Status, &b.CreatedAt)
	return &b, err
}

func (r *billingRepoPG) Create(ctx context.Context, b *BillingRecord) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO billing_records (id, discharge_id, patient_id, subtotal, discount_percentage, discount_amount, total_amount, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		b.ID, b.DischargeID, b.PatientID, b.Subtotal, b.DiscountPercentage, b.DiscountAmount, b.TotalAmount, b.Status)
	return err
}

func (r *billingRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*BillingRecord, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+billingCols+` FROM billing_records WHERE id = $1`, id))
}

func (r *billingRepoPG) GetByDischarge(ctx context.Context, dischargeID uuid.UUID) (*BillingRecord, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+billingCols+` FROM billing_records WHERE discharge_id = $1`, dischargeID))
}

func (r *billingRepoPG) AddItem(ctx context.Context, item *BillingItem) error {
	item.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO billing_items (id, billing_id, description, amount, quantity, item_type)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		item.ID, item.BillingID, item.Description, item.Amount, item.Quantity, item.ItemType)
	return err
}

func (r *billingRepoPG) GetItems(ctx context.Context, billingID uuid.UUID) ([]*BillingItem, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, billing_id, description, amount, quantity, item_type
		FROM billing_items WHERE billing_id = $1 ORDER BY description`, billingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*BillingItem
	for rows.Next() {
		var it BillingItem
		if err := rows.Scan(&it.ID, &it.BillingID, &it.Description, &it.Amount, &it.Quantity, &it.ItemType); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, nil
}

// =========== Payment Repository ===========

type paymentRepoPG struct{ pool *pgxpool.Pool }

func NewPaymentRepoPG(pool *pgxpool.Pool) PaymentRepository { return &paymentRepoPG{pool: pool} }

func (r *paymentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const paymentCols = `id, billing_id, payment_amount, payment_method, payment_status, remaining_balance, admin_id, notes, created_at`

func (r *paymentRepoPG) scan(row pgx.Row) (*PaymentRecord, error) {
	var p PaymentRecord
	err := row.Scan(&p.ID, &p.BillingID, &p.PaymentAmount, &p.PaymentMethod, &p.PaymentStatus,
		&p.RemainingBalance, &p.AdminID, &p.Notes, &p.CreatedAt)
	return &p, err
}

func (r *paymentRepoPG) Create(ctx context.Context, p *PaymentRecord) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO payment_records (id, billing_id, payment_amount, payment_method, payment_status, remaining_balance, admin_id, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.BillingID, p.PaymentAmount, p.PaymentMethod, p.PaymentStatus, p.RemainingBalance, p.AdminID, p.Notes)
	return err
}

func (r *paymentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*PaymentRecord, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+paymentCols+` FROM payment_records WHERE id = $1`, id))
}

func (r *paymentRepoPG) GetByBilling(ctx context.Context, billingID uuid.UUID) (*PaymentRecord, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+paymentCols+` FROM payment_records WHERE billing_id = $1`, billingID))
}

// =========== Bed Release Repository ===========

type bedReleaseRepoPG struct{ pool *pgxpool.Pool }

func NewBedReleaseRepoPG(pool *pgxpool.Pool) BedReleaseRepository { return &bedReleaseRepoPG{pool: pool} }

func (r *bedReleaseRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const bedReleaseCols = `id, discharge_id, bed_id, patient_id, status, release_date, admin_id, created_at`

func (r *bedReleaseRepoPG) scan(row pgx.Row) (*BedRelease, error) {
	var br BedRelease
	err := row.Scan(&br.ID, &br.DischargeID, &br.BedID, &br.PatientID, &br.Status,
		&br.ReleaseDate, &br.AdminID, &br.CreatedAt)
	return &br, err
}

func (r *bedReleaseRepoPG) Create(ctx context.Context, br *BedRelease) error {
	br.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bed_releases (id, discharge_id, bed_id, patient_id, status, release_date, admin_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		br.ID, br.DischargeID, br.BedID, br.PatientID, br.Status, br.ReleaseDate, br.AdminID)
	return err
}

func (r *bedReleaseRepoPG) GetByDischarge(ctx context.Context, dischargeID uuid.UUID) (*BedRelease, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+bedReleaseCols+` FROM bed_releases WHERE discharge_id = $1`, dischargeID))
}
