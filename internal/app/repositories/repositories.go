package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories combines all data access repositories
type Repositories struct {
	UserRepository       *UserRepository
	AttendanceRepository *AttendanceRepository
	MesscutRepository    *MesscutRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		MesscutRepository:    NewMesscutRepository(db),
	}
}
