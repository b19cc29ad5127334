package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/nivedpm/hostelhub/internal/app/models"
	"github.com/nivedpm/hostelhub/internal/app/models/dto"
	"github.com/nivedpm/hostelhub/internal/app/repositories"
	"github.com/nivedpm/hostelhub/internal/pkg/apperrors"
	"github.com/nivedpm/hostelhub/internal/pkg/auth"
	"github.com/nivedpm/hostelhub/internal/pkg/filestorage"
	"github.com/nivedpm/hostelhub/internal/pkg/logger"
)

const minPasswordLength = 6

// UserService handles registration, authentication and roster management
type UserService struct {
	userRepo    repositories.IUserRepository
	jwtService  *auth.JWTService
	fileStorage filestorage.FileStorage
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	fileStorage filestorage.FileStorage,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		fileStorage: fileStorage,
	}
}

// Register creates a new user. The admission number is normalized to a
// trimmed string before the duplicate check so "5001" and "5001 " collide.
func (s *UserService) Register(ctx context.Context, req dto.RegisterUserRequest) (*models.User, error) {
	admission := req.AdmissionNumber.String()
	name := strings.TrimSpace(req.Name)
	sem := strings.TrimSpace(req.Sem)

	if name == "" || admission == "" || sem == "" || req.Password == "" {
		return nil, apperrors.NewBadRequestError("Name, admission number, sem and password are required")
	}

	exists, err := s.userRepo.AdmissionNumberExists(ctx, admission)
	if err != nil {
		return nil, fmt.Errorf("failed to check admission number: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("Admission number already registered")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		AdmissionNumber: admission,
		Name:            name,
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		Branch:          strings.TrimSpace(req.Branch),
		Year:            strings.TrimSpace(req.Year),
		Sem:             sem,
		ParentName:      strings.TrimSpace(req.ParentName),
		Gmail:           strings.ToLower(strings.TrimSpace(req.Gmail)),
		PasswordHash:    passwordHash,
		Role:            role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("admissionNumber", admission).Msg("User registered")
	return user, nil
}

// Login authenticates by admission number and password and issues a JWT.
// An unknown admission number is a 404; a wrong password a 401.
func (s *UserService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	admission := req.AdmissionNumber.String()
	if admission == "" || req.Password == "" {
		return nil, apperrors.NewBadRequestError("Admission number and password are required")
	}

	user, err := s.userRepo.GetByAdmissionNumber(ctx, admission)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Incorrect password")
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.AdmissionNumber, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info().Str("admissionNumber", admission).Str("role", user.Role).Msg("User logged in")
	return &dto.LoginResponse{
		Role:      user.Role,
		Token:     token,
		ExpiresIn: expiresIn,
		User:      user,
	}, nil
}

// GetByAdmission returns the sanitized profile for an admission number.
func (s *UserService) GetByAdmission(ctx context.Context, admissionNumber string) (*dto.UserProfileResponse, error) {
	admissionNumber = strings.TrimSpace(admissionNumber)
	if admissionNumber == "" {
		return nil, apperrors.NewBadRequestError("Admission number is required")
	}

	user, err := s.userRepo.GetByAdmissionNumber(ctx, admissionNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	profile := dto.NewUserProfileResponse(user)
	return &profile, nil
}

// UpdatePassword changes a user's password after verifying the current one.
// Every rule violation maps to its own message.
func (s *UserService) UpdatePassword(ctx context.Context, req dto.UpdatePasswordRequest) error {
	admission := req.AdmissionNumber.String()
	if admission == "" || req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return apperrors.NewBadRequestError("All fields are required")
	}
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.NewBadRequestError("New password and confirmation do not match")
	}
	if req.NewPassword == req.CurrentPassword {
		return apperrors.NewBadRequestError("New password must differ from the current password")
	}
	if len(req.NewPassword) < minPasswordLength {
		return apperrors.NewBadRequestError("Password must be at least 6 characters")
	}

	user, err := s.userRepo.GetByAdmissionNumber(ctx, admission)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Current password is incorrect")
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	logger.Info().Str("admissionNumber", admission).Msg("Password updated")
	return nil
}

// Rooms returns the distinct room numbers in use.
func (s *UserService) Rooms(ctx context.Context) ([]string, error) {
	rooms, err := s.userRepo.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []string{}
	}
	return rooms, nil
}

// StudentsByRoom returns the occupants of one room.
func (s *UserService) StudentsByRoom(ctx context.Context, roomNo string) ([]models.UserCard, error) {
	roomNo = strings.TrimSpace(roomNo)
	if roomNo == "" {
		return nil, apperrors.NewBadRequestError("Room number is required")
	}

	cards, err := s.userRepo.ListByRoom(ctx, roomNo)
	if err != nil {
		return nil, fmt.Errorf("failed to list room occupants: %w", err)
	}
	if cards == nil {
		cards = []models.UserCard{}
	}
	return cards, nil
}

// Semesters returns the sorted distinct semester labels.
func (s *UserService) Semesters(ctx context.Context) ([]string, error) {
	sems, err := s.userRepo.ListSemesters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list semesters: %w", err)
	}
	if sems == nil {
		sems = []string{}
	}
	return sems, nil
}

// StudentsBySemester returns one semester's students sorted by name.
func (s *UserService) StudentsBySemester(ctx context.Context, sem string) ([]models.StudentInfo, error) {
	sem = strings.TrimSpace(sem)
	if sem == "" {
		return nil, apperrors.NewBadRequestError("Semester is required")
	}

	students, err := s.userRepo.ListBySemester(ctx, sem)
	if err != nil {
		return nil, fmt.Errorf("failed to list students by semester: %w", err)
	}
	if students == nil {
		students = []models.StudentInfo{}
	}
	return students, nil
}

// AllStudents returns every student sorted by semester then name.
func (s *UserService) AllStudents(ctx context.Context) ([]models.StudentInfo, error) {
	students, err := s.userRepo.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	if students == nil {
		students = []models.StudentInfo{}
	}
	return students, nil
}

// Summary returns roster totals.
func (s *UserService) Summary(ctx context.Context) (*dto.StudentCountSummary, error) {
	total, occupiedRooms, err := s.userRepo.CountStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	return &dto.StudentCountSummary{
		TotalStudents: total,
		OccupiedRooms: occupiedRooms,
	}, nil
}

// StudentMap returns an admission-number-keyed map of non-admin users, for
// clients that do their own joining.
func (s *UserService) StudentMap(ctx context.Context) (map[string]models.StudentInfo, error) {
	students, err := s.userRepo.ListNonAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	byAdmission := make(map[string]models.StudentInfo, len(students))
	for _, student := range students {
		byAdmission[student.AdmissionNumber] = student
	}
	return byAdmission, nil
}

// GetStudent returns a single student by id.
func (s *UserService) GetStudent(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return user, nil
}

// UpdateStudent applies the non-nil fields of the request to a student's
// profile.
func (s *UserService) UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.User, error) {
	user, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Branch != nil {
		user.Branch = strings.TrimSpace(*req.Branch)
	}
	if req.Year != nil {
		user.Year = strings.TrimSpace(*req.Year)
	}
	if req.Sem != nil {
		user.Sem = strings.TrimSpace(*req.Sem)
	}
	if req.ParentName != nil {
		user.ParentName = strings.TrimSpace(*req.ParentName)
	}
	if req.Gmail != nil {
		user.Gmail = strings.ToLower(strings.TrimSpace(*req.Gmail))
	}
	if req.RoomNo != nil {
		user.RoomNo = strings.TrimSpace(*req.RoomNo)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("id", id).Msg("Student updated")
	return user, nil
}

// DeleteStudent removes a student and, best effort, their stored photo.
func (s *UserService) DeleteStudent(ctx context.Context, id int64) error {
	user, err := s.GetStudent(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	if user.ProfilePhoto != "" && s.fileStorage != nil {
		if err := s.fileStorage.DeleteFile(user.ProfilePhoto); err != nil {
			logger.Warn().Err(err).Str("file", user.ProfilePhoto).Msg("Failed to delete profile photo")
		}
	}

	logger.Info().Int64("id", id).Str("admissionNumber", user.AdmissionNumber).Msg("Student deleted")
	return nil
}

// UpdateProfilePhoto stores a new photo for a student and deletes the old
// file. Old-file deletion failures are logged, not surfaced.
func (s *UserService) UpdateProfilePhoto(ctx context.Context, id int64, fileHeader *multipart.FileHeader) (*models.User, error) {
	user, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.fileStorage == nil {
		return nil, fmt.Errorf("file storage is not configured")
	}

	filename, err := s.fileStorage.SaveFile(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	if err := s.userRepo.UpdateProfilePhoto(ctx, id, filename); err != nil {
		if delErr := s.fileStorage.DeleteFile(filename); delErr != nil {
			logger.Warn().Err(delErr).Str("file", filename).Msg("Failed to clean up photo after db error")
		}
		return nil, err
	}

	if user.ProfilePhoto != "" {
		if err := s.fileStorage.DeleteFile(user.ProfilePhoto); err != nil {
			logger.Warn().Err(err).Str("file", user.ProfilePhoto).Msg("Failed to delete previous photo")
		}
	}

	user.ProfilePhoto = filename
	logger.Info().Int64("id", id).Str("file", filename).Msg("Profile photo updated")
	return user, nil
}
