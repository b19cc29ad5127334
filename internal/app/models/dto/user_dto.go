package dto

import "github.com/nivedpm/hostelhub/internal/app/models"

// RegisterUserRequest is the payload for user registration.
type RegisterUserRequest struct {
	Name            string     `json:"name"`
	AdmissionNumber FlexString `json:"admissionNumber"`
	PhoneNumber     string     `json:"phoneNumber"`
	Branch          string     `json:"branch"`
	Year            string     `json:"year"`
	Sem             string     `json:"sem"`
	ParentName      string     `json:"parentName"`
	Gmail           string     `json:"gmail"`
	Password        string     `json:"password"`
	Role            string     `json:"role"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	AdmissionNumber FlexString `json:"admissionNumber"`
	Password        string     `json:"password"`
}

// LoginResponse carries the authenticated user, their role, and an access token.
type LoginResponse struct {
	Role      string       `json:"role"`
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"`
	User      *models.User `json:"user"`
}

// UpdatePasswordRequest is the payload for a password change.
type UpdatePasswordRequest struct {
	AdmissionNumber FlexString `json:"admissionNumber"`
	CurrentPassword string     `json:"currentPassword"`
	NewPassword     string     `json:"newPassword"`
	ConfirmPassword string     `json:"confirmPassword"`
}

// UpdateStudentRequest is the payload for updating a student's profile.
// Nil fields are left untouched.
type UpdateStudentRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Branch      *string `json:"branch"`
	Year        *string `json:"year"`
	Sem         *string `json:"sem"`
	ParentName  *string `json:"parentName"`
	Gmail       *string `json:"gmail"`
	RoomNo      *string `json:"roomNo"`
}

// UserProfileResponse is the sanitized profile returned by lookups.
type UserProfileResponse struct {
	Name            string `json:"name"`
	AdmissionNumber string `json:"admissionNumber"`
	PhoneNumber     string `json:"phoneNumber"`
	Branch          string `json:"branch"`
	Year            string `json:"year"`
	Sem             string `json:"sem"`
	ParentName      string `json:"parentName"`
	Gmail           string `json:"gmail"`
	RoomNo          string `json:"roomNo"`
	Role            string `json:"role"`
}

// StudentCountSummary reports roster totals.
type StudentCountSummary struct {
	TotalStudents int64 `json:"totalStudents"`
	OccupiedRooms int64 `json:"occupiedRooms"`
}

// NewUserProfileResponse maps a user model to its sanitized profile.
func NewUserProfileResponse(u *models.User) UserProfileResponse {
	return UserProfileResponse{
		Name:            u.Name,
		AdmissionNumber: u.AdmissionNumber,
		PhoneNumber:     u.PhoneNumber,
		Branch:          u.Branch,
		Year:            u.Year,
		Sem:             u.Sem,
		ParentName:      u.ParentName,
		Gmail:           u.Gmail,
		RoomNo:          u.RoomNo,
		Role:            u.Role,
	}
}
