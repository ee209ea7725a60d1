package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/db"
)

type billRepoPG struct {
	pool *pgxpool.Pool
}

func NewBillRepoPG(pool *pgxpool.Pool) BillRepository {
	return &billRepoPG{pool: pool}
}

func (r *billRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const billCols = `id, appointment_id, patient_id, patient_name, doctor_name,
	consultation_fee, tax_amount, discount, total_amount, bill_type, billed_at`

func (r *billRepoPG) Create(ctx context.Context, b *Bill) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bills (`+billCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		b.ID, b.AppointmentID, b.PatientID, b.PatientName, b.DoctorName,
		b.ConsultationFee, b.TaxAmount, b.Discount, b.TotalAmount, b.BillType, b.BilledAt,
	)
	if db.IsUniqueViolation(err) {
		return apperr.InvalidData("id", "Bill already exists: "+b.ID)
	}
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

func (r *billRepoPG) GetByID(ctx context.Context, id string) (*Bill, error) {
	b, err := scanBill(r.conn(ctx).QueryRow(ctx, `SELECT `+billCols+` FROM bills WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("Bill", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

func (r *billRepoPG) List(ctx context.Context, f Filter) ([]*Bill, error) {
	var where []string
	var args []any
	if f.PatientID != "" {
		args = append(args, f.PatientID)
		where = append(where, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if f.AppointmentID != "" {
		args = append(args, f.AppointmentID)
		where = append(where, fmt.Sprintf("appointment_id = $%d", len(args)))
	}

	sql := `SELECT ` + billCols + ` FROM bills`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	sql += ` ORDER BY billed_at, id`

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query bills: %w", err)
	}
	defer rows.Close()

	var items []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	err := row.Scan(&b.ID, &b.AppointmentID, &b.PatientID, &b.PatientName, &b.DoctorName,
		&b.ConsultationFee, &b.TaxAmount, &b.Discount, &b.TotalAmount, &b.BillType, &b.BilledAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
