package identity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/db"
)

// -- Doctor Repository --

type doctorRepoPG struct {
	pool *pgxpool.Pool
}

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const doctorCols = `id, name, age, gender, phone, email, specialization,
	consultation_fee, years_of_experience, available_slots, created_at`

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctors (`+doctorCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		d.ID, d.Name, d.Age, d.Gender, d.Phone, d.Email, string(d.Specialization),
		d.ConsultationFee, d.YearsOfExperience, nonNil(d.AvailableSlots), d.CreatedAt,
	)
	if db.IsUniqueViolation(err) {
		return apperr.InvalidData("id", "Doctor already exists: "+d.ID)
	}
	if err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id string) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("Doctor", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (r *doctorRepoPG) Delete(ctx context.Context, id string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Doctor", id)
	}
	return nil
}

func (r *doctorRepoPG) List(ctx context.Context) ([]*Doctor, error) {
	return r.query(ctx, `SELECT `+doctorCols+` FROM doctors ORDER BY created_at, id`)
}

func (r *doctorRepoPG) Search(ctx context.Context, keyword string) ([]*Doctor, error) {
	return r.query(ctx, `SELECT `+doctorCols+` FROM doctors
		WHERE name ILIKE '%' || $1 || '%'
		   OR id ILIKE '%' || $1 || '%'
		   OR specialization ILIKE '%' || $1 || '%'
		ORDER BY created_at, id`, keyword)
}

func (r *doctorRepoPG) query(ctx context.Context, sql string, args ...any) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query doctors: %w", err)
	}
	defer rows.Close()

	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	var spec string
	err := row.Scan(&d.ID, &d.Name, &d.Age, &d.Gender, &d.Phone, &d.Email, &spec,
		&d.ConsultationFee, &d.YearsOfExperience, &d.AvailableSlots, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	d.Specialization = Specialization(spec)
	return &d, nil
}

// -- Patient Repository --

type patientRepoPG struct {
	pool *pgxpool.Pool
}

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const patientCols = `id, name, age, gender, phone, email, blood_group,
	allergies, medical_history, created_at`

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (`+patientCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.Name, p.Age, p.Gender, p.Phone, p.Email, p.BloodGroup,
		nonNil(p.Allergies), nonNil(p.MedicalHistory), p.CreatedAt,
	)
	if db.IsUniqueViolation(err) {
		return apperr.InvalidData("id", "Patient already exists: "+p.ID)
	}
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, id string) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return nil, apperr.NotFound("Patient", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (r *patientRepoPG) Delete(ctx context.Context, id string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Patient", id)
	}
	return nil
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	return r.query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY created_at, id`)
}

func (r *patientRepoPG) Search(ctx context.Context, keyword string) ([]*Patient, error) {
	return r.query(ctx, `SELECT `+patientCols+` FROM patients
		WHERE name ILIKE '%' || $1 || '%'
		   OR id ILIKE '%' || $1 || '%'
		   OR blood_group ILIKE '%' || $1 || '%'
		ORDER BY created_at, id`, keyword)
}

func (r *patientRepoPG) query(ctx context.Context, sql string, args ...any) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Email, &p.BloodGroup,
		&p.Allergies, &p.MedicalHistory, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
