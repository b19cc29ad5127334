package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nivedpm/hostelhub/internal/app/models"
	"github.com/nivedpm/hostelhub/internal/pkg/apperrors"
	"github.com/nivedpm/hostelhub/internal/pkg/dberrors"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByAdmissionNumber(ctx context.Context, admissionNumber string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	AdmissionNumberExists(ctx context.Context, admissionNumber string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfilePhoto(ctx context.Context, id int64, filename string) error
	Delete(ctx context.Context, id int64) error

	ListCards(ctx context.Context) ([]models.UserCard, error)
	ListRooms(ctx context.Context) ([]string, error)
	ListByRoom(ctx context.Context, roomNo string) ([]models.UserCard, error)
	ListSemesters(ctx context.Context) ([]string, error)
	ListBySemester(ctx context.Context, sem string) ([]models.StudentInfo, error)
	ListStudents(ctx context.Context) ([]models.StudentInfo, error)
	ListNonAdmin(ctx context.Context) ([]models.StudentInfo, error)
	ListBranchSem(ctx context.Context) ([]models.BranchSem, error)
	CountStudents(ctx context.Context) (total int64, occupiedRooms int64, err error)
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, admission_number, name, phone_number, branch, year, sem,
	parent_name, gmail, password_hash, role, room_no, profile_photo, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.AdmissionNumber,
		&u.Name,
		&u.PhoneNumber,
		&u.Branch,
		&u.Year,
		&u.Sem,
		&u.ParentName,
		&u.Gmail,
		&u.PasswordHash,
		&u.Role,
		&u.RoomNo,
		&u.ProfilePhoto,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user. A unique violation on the admission number is
// translated to the duplicate-admission sentinel.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (admission_number, name, phone_number, branch, year, sem,
			parent_name, gmail, password_hash, role, room_no, profile_photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.AdmissionNumber,
		user.Name,
		user.PhoneNumber,
		user.Branch,
		user.Year,
		user.Sem,
		user.ParentName,
		user.Gmail,
		user.PasswordHash,
		user.Role,
		user.RoomNo,
		user.ProfilePhoto,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateAdmission
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByAdmissionNumber retrieves a user by admission number, nil when absent.
func (r *UserRepository) GetByAdmissionNumber(ctx context.Context, admissionNumber string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE admission_number = $1`
	return scanUser(r.db.QueryRow(ctx, query, admissionNumber))
}

// GetByID retrieves a user by ID, nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// AdmissionNumberExists checks if an admission number is already registered
func (r *UserRepository) AdmissionNumberExists(ctx context.Context, admissionNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE admission_number = $1)`,
		admissionNumber).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking admission number existence: %w", err)
	}

	return exists, nil
}

// Update updates a user's profile fields
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1, phone_number = $2, branch = $3, year = $4, sem = $5,
			parent_name = $6, gmail = $7, room_no = $8, updated_at = NOW()
		WHERE id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		user.Name,
		user.PhoneNumber,
		user.Branch,
		user.Year,
		user.Sem,
		user.ParentName,
		user.Gmail,
		user.RoomNo,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateProfilePhoto replaces a user's stored profile photo filename
func (r *UserRepository) UpdateProfilePhoto(ctx context.Context, id int64, filename string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET profile_photo = $1, updated_at = NOW() WHERE id = $2`,
		filename, id)
	if err != nil {
		return fmt.Errorf("error updating profile photo: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a user record
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// ListCards returns the attendance projection of every user in insertion order
func (r *UserRepository) ListCards(ctx context.Context) ([]models.UserCard, error) {
	rows, err := r.db.Query(ctx,
		`SELECT admission_number, name, sem, room_no FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.UserCard
	for rows.Next() {
		var c models.UserCard
		if err := rows.Scan(&c.AdmissionNumber, &c.Name, &c.Sem, &c.RoomNo); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

// ListRooms returns distinct non-empty room numbers
func (r *UserRepository) ListRooms(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT room_no FROM users WHERE room_no <> '' ORDER BY room_no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []string
	for rows.Next() {
		var room string
		if err := rows.Scan(&room); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// ListByRoom returns the students assigned to a room
func (r *UserRepository) ListByRoom(ctx context.Context, roomNo string) ([]models.UserCard, error) {
	rows, err := r.db.Query(ctx,
		`SELECT admission_number, name, sem, room_no FROM users WHERE room_no = $1 ORDER BY name`,
		roomNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.UserCard
	for rows.Next() {
		var c models.UserCard
		if err := rows.Scan(&c.AdmissionNumber, &c.Name, &c.Sem, &c.RoomNo); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

// ListSemesters returns distinct semester labels, sorted
func (r *UserRepository) ListSemesters(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT sem FROM users WHERE sem <> '' ORDER BY sem`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sems []string
	for rows.Next() {
		var sem string
		if err := rows.Scan(&sem); err != nil {
			return nil, err
		}
		sems = append(sems, sem)
	}

	return sems, rows.Err()
}

func scanStudentInfos(rows pgx.Rows) ([]models.StudentInfo, error) {
	defer rows.Close()

	var students []models.StudentInfo
	for rows.Next() {
		var s models.StudentInfo
		if err := rows.Scan(&s.AdmissionNumber, &s.Name, &s.Branch, &s.Sem, &s.Year, &s.RoomNo); err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

// ListBySemester returns students of one semester sorted alphabetically
func (r *UserRepository) ListBySemester(ctx context.Context, sem string) ([]models.StudentInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT admission_number, name, branch, sem, year, room_no
		FROM users WHERE sem = $1 ORDER BY name
	`, sem)
	if err != nil {
		return nil, err
	}
	return scanStudentInfos(rows)
}

// ListStudents returns the full roster sorted by semester then name
func (r *UserRepository) ListStudents(ctx context.Context) ([]models.StudentInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT admission_number, name, branch, sem, year, room_no
		FROM users ORDER BY sem, name
	`)
	if err != nil {
		return nil, err
	}
	return scanStudentInfos(rows)
}

// ListNonAdmin returns every non-admin user, the source of the student map
func (r *UserRepository) ListNonAdmin(ctx context.Context) ([]models.StudentInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT admission_number, name, branch, sem, year, room_no
		FROM users WHERE role <> $1 ORDER BY id
	`, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return scanStudentInfos(rows)
}

// ListBranchSem returns the enrichment projection for messcut reporting
func (r *UserRepository) ListBranchSem(ctx context.Context) ([]models.BranchSem, error) {
	rows, err := r.db.Query(ctx, `SELECT admission_number, branch, sem FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.BranchSem
	for rows.Next() {
		var e models.BranchSem
		if err := rows.Scan(&e.AdmissionNumber, &e.Branch, &e.Sem); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// CountStudents returns the student total and how many occupy a room
func (r *UserRepository) CountStudents(ctx context.Context) (int64, int64, error) {
	var total, occupied int64
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE role = $1),
			COUNT(DISTINCT room_no) FILTER (WHERE role = $1 AND room_no <> '')
		FROM users
	`, models.RoleStudent).Scan(&total, &occupied)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting students: %w", err)
	}

	return total, occupied, nil
}
