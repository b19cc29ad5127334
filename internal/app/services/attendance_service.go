package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nivedpm/hostelhub/internal/app/models"
	"github.com/nivedpm/hostelhub/internal/app/models/dto"
	"github.com/nivedpm/hostelhub/internal/app/repositories"
	"github.com/nivedpm/hostelhub/internal/pkg/apperrors"
	"github.com/nivedpm/hostelhub/internal/pkg/logger"
)

// AttendanceService handles attendance capture and reporting
type AttendanceService struct {
	attendanceRepo repositories.IAttendanceRepository
	userRepo       repositories.IUserRepository
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo repositories.IAttendanceRepository,
	userRepo repositories.IUserRepository,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
	}
}

// Save validates and persists one date's attendance batch. The whole batch
// is written in a single transaction; re-submitting the same date replaces
// the previous flags per student.
func (s *AttendanceService) Save(ctx context.Context, req dto.SaveAttendanceRequest) error {
	date := strings.TrimSpace(req.Date)
	if date == "" || len(req.Records) == 0 {
		return apperrors.NewBadRequestError("Date and records are required")
	}

	records := make([]models.AttendanceRecord, 0, len(req.Records))
	for _, entry := range req.Records {
		admission := entry.AdmissionNumber.String()
		if admission == "" {
			return apperrors.NewBadRequestError("Each record needs an admission number")
		}
		records = append(records, models.AttendanceRecord{
			Date:            date,
			AdmissionNumber: admission,
			Attendance:      entry.Attendance,
			Messcut:         entry.Messcut,
			Selected:        entry.Selected,
		})
	}

	if err := s.attendanceRepo.UpsertBatch(ctx, date, records); err != nil {
		return fmt.Errorf("failed to save attendance: %w", err)
	}

	logger.Info().Str("date", date).Int("records", len(records)).Msg("Attendance saved")
	return nil
}

// ReportByDate returns one row per registered user for the given date,
// joined against that date's stored records. Users without a record appear
// with all flags false, so the report length always equals the user count.
func (s *AttendanceService) ReportByDate(ctx context.Context, date string) ([]dto.AttendanceRow, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, apperrors.NewBadRequestError("Date is required")
	}

	users, err := s.userRepo.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	recordsByAdmission, err := s.recordsByAdmission(ctx, date)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.AttendanceRow, 0, len(users))
	for i, user := range users {
		row := dto.AttendanceRow{
			SlNo:            i + 1,
			AdmissionNumber: user.AdmissionNumber,
			Name:            user.Name,
			Semester:        user.Sem,
			RoomNo:          user.RoomNo,
		}
		if rec, ok := recordsByAdmission[user.AdmissionNumber]; ok {
			row.Messcut = rec.Messcut
			row.Attendance = rec.Attendance
			row.Selected = rec.Selected
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// AbsenteesByDate returns the users with no record for the date or an
// explicit attendance=false record, re-numbered from 1.
func (s *AttendanceService) AbsenteesByDate(ctx context.Context, date string) ([]dto.AbsenteeRow, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, apperrors.NewBadRequestError("Date is required")
	}

	users, err := s.userRepo.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	recordsByAdmission, err := s.recordsByAdmission(ctx, date)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.AbsenteeRow, 0)
	for _, user := range users {
		rec, ok := recordsByAdmission[user.AdmissionNumber]
		if ok && rec.Attendance {
			continue
		}
		rows = append(rows, dto.AbsenteeRow{
			SlNo:     len(rows) + 1,
			Semester: user.Sem,
			RoomNo:   user.RoomNo,
			Name:     user.Name,
		})
	}

	return rows, nil
}

func (s *AttendanceService) recordsByAdmission(ctx context.Context, date string) (map[string]models.AttendanceRecord, error) {
	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	byAdmission := make(map[string]models.AttendanceRecord, len(records))
	for _, rec := range records {
		byAdmission[rec.AdmissionNumber] = rec
	}
	return byAdmission, nil
}
