package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nivedpm/hostelhub/internal/app/models"
	"github.com/nivedpm/hostelhub/internal/db"
)

// IAttendanceRepository defines the interface for attendance database operations
type IAttendanceRepository interface {
	UpsertBatch(ctx context.Context, date string, records []models.AttendanceRecord) error
	ListByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error)
}

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// UpsertBatch writes one date's records inside a single transaction. Each
// record fully replaces any existing row for (date, admission_number); a
// failure rolls back the whole batch.
func (r *AttendanceRepository) UpsertBatch(ctx context.Context, date string, records []models.AttendanceRecord) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, rec := range records {
			_, err := tx.Exec(ctx, `
				INSERT INTO attendance_records (date, admission_number, attendance, messcut, selected)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (date, admission_number) DO UPDATE SET
					attendance = EXCLUDED.attendance,
					messcut = EXCLUDED.messcut,
					selected = EXCLUDED.selected
			`, date, rec.AdmissionNumber, rec.Attendance, rec.Messcut, rec.Selected)
			if err != nil {
				return fmt.Errorf("error upserting attendance for %s: %w", rec.AdmissionNumber, err)
			}
		}
		return nil
	})
}

// ListByDate returns all attendance records stored for a date
func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT date, admission_number, attendance, messcut, selected
		FROM attendance_records
		WHERE date = $1
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		if err := rows.Scan(&rec.Date, &rec.AdmissionNumber, &rec.Attendance, &rec.Messcut, &rec.Selected); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
