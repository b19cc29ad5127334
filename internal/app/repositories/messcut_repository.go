package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nivedpm/hostelhub/internal/app/models"
	"github.com/nivedpm/hostelhub/internal/pkg/apperrors"
)

// IMesscutRepository defines the interface for messcut database operations
type IMesscutRepository interface {
	Create(ctx context.Context, request *models.MesscutRequest) error
	UpdateStatus(ctx context.Context, id, status string) error
	ListAccepted(ctx context.Context, admissionNo string) ([]models.MesscutRequest, error)
	ListAcceptedByStudent(ctx context.Context, admissionNo string) ([]models.MesscutRequest, error)
}

// MesscutRepository handles database operations for messcut requests
type MesscutRepository struct {
	db *pgxpool.Pool
}

// NewMesscutRepository creates a new messcut repository
func NewMesscutRepository(db *pgxpool.Pool) *MesscutRepository {
	return &MesscutRepository{db: db}
}

// Create inserts a new messcut request, generating its id when absent
func (r *MesscutRepository) Create(ctx context.Context, request *models.MesscutRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = models.MesscutStatusPending
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO messcut_requests (id, admission_no, name, leaving_date, joining_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, request.ID, request.AdmissionNo, request.Name, request.LeavingDate, request.JoiningDate, request.Status).Scan(&request.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating messcut request: %w", err)
	}

	return nil
}

// UpdateStatus transitions a request's lifecycle status
func (r *MesscutRepository) UpdateStatus(ctx context.Context, id, status string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE messcut_requests SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating messcut status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMesscutNotFound
	}

	return nil
}

func (r *MesscutRepository) queryRequests(ctx context.Context, query string, args ...any) ([]models.MesscutRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.MesscutRequest
	for rows.Next() {
		var req models.MesscutRequest
		if err := rows.Scan(&req.ID, &req.AdmissionNo, &req.Name, &req.LeavingDate, &req.JoiningDate, &req.Status, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// ListAccepted returns accepted requests, optionally narrowed to one student,
// in insertion order
func (r *MesscutRepository) ListAccepted(ctx context.Context, admissionNo string) ([]models.MesscutRequest, error) {
	query := `
		SELECT id, admission_no, name, leaving_date, joining_date, status, created_at
		FROM messcut_requests
		WHERE status = $1
	`
	args := []any{models.MesscutStatusAccepted}
	if admissionNo != "" {
		query += ` AND admission_no = $2`
		args = append(args, admissionNo)
	}
	query += ` ORDER BY created_at, id`

	return r.queryRequests(ctx, query, args...)
}

// ListAcceptedByStudent returns one student's accepted requests, newest first
func (r *MesscutRepository) ListAcceptedByStudent(ctx context.Context, admissionNo string) ([]models.MesscutRequest, error) {
	return r.queryRequests(ctx, `
		SELECT id, admission_no, name, leaving_date, joining_date, status, created_at
		FROM messcut_requests
		WHERE status = $1 AND admission_no = $2
		ORDER BY created_at DESC
	`, models.MesscutStatusAccepted, admissionNo)
}
