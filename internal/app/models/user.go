package models

import (
	"time"
)

// Role labels stored on the users table.
const (
	RoleUser    = "User"
	RoleStudent = "Student"
	RoleAdmin   = "Admin"
)

// User defines the user model based on the 'users' table. The admission
// number is the join key used by every other store; it is always persisted
// as a trimmed string even when clients submit it as a number.
type User struct {
	ID              int64     `json:"id" db:"id"`
	AdmissionNumber string    `json:"admissionNumber" db:"admission_number"`
	Name            string    `json:"name" db:"name"`
	PhoneNumber     string    `json:"phoneNumber" db:"phone_number"`
	Branch          string    `json:"branch" db:"branch"`
	Year            string    `json:"year" db:"year"`
	Sem             string    `json:"sem" db:"sem"`
	ParentName      string    `json:"parentName" db:"parent_name"`
	Gmail           string    `json:"gmail" db:"gmail"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	Role            string    `json:"role" db:"role"`
	RoomNo          string    `json:"roomNo" db:"room_no"`
	ProfilePhoto    string    `json:"profilePhoto,omitempty" db:"profile_photo"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// UserCard is the projection used by attendance reporting and room listings.
type UserCard struct {
	AdmissionNumber string `json:"admissionNumber" db:"admission_number"`
	Name            string `json:"name" db:"name"`
	Sem             string `json:"sem" db:"sem"`
	RoomNo          string `json:"roomNo" db:"room_no"`
}

// StudentInfo is the projection used by semester and roster listings.
type StudentInfo struct {
	AdmissionNumber string `json:"admissionNumber" db:"admission_number"`
	Name            string `json:"name" db:"name"`
	Branch          string `json:"branch" db:"branch"`
	Sem             string `json:"sem" db:"sem"`
	Year            string `json:"year" db:"year"`
	RoomNo          string `json:"roomNo" db:"room_no"`
}

// BranchSem is the projection used to enrich messcut report groups.
type BranchSem struct {
	AdmissionNumber string `db:"admission_number"`
	Branch          string `db:"branch"`
	Sem             string `db:"sem"`
}
