package audit

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const auditCols = `id, discharge_id, action, staff_id, staff_name, staff_role, details, created_at`

func (r *repoPG) scanAudit(row pgx.Row) (*DischargeAudit, error) {
	var a DischargeAudit
	err := row.Scan(&a.ID, &a.DischargeID, &a.Action, &a.StaffID, &a.StaffName,
		&a.StaffRole, &a.Details, &a.CreatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *DischargeAudit) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO discharge_audits (id, discharge_id, action, staff_id, staff_name, staff_role, details)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.DischargeID, a.Action, a.StaffID, a.StaffName, a.StaffRole, a.Details)
	return err
}

func (r *repoPG) ListByDischarge(ctx context.Context, dischargeID uuid.UUID) ([]*DischargeAudit, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+auditCols+` FROM discharge_audits WHERE discharge_id = $1 ORDER BY created_at ASC`, dischargeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*DischargeAudit
	for rows.Next() {
		a, err := r.scanAudit(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*DischargeAudit, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM discharge_audits`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+auditCols+` FROM discharge_audits ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*DischargeAudit
	for rows.Next() {
		a, err := r.scanAudit(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}
