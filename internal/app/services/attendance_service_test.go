package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivedpm/hostelhub/internal/app/models"
	"github.com/nivedpm/hostelhub/internal/app/models/dto"
	"github.com/nivedpm/hostelhub/internal/pkg/apperrors"
)

func rosterUsers() []*models.User {
	return []*models.User{
		{AdmissionNumber: "5001", Name: "Anand", Sem: "Sem3", RoomNo: "101", Role: models.RoleStudent},
		{AdmissionNumber: "5002", Name: "Binu", Sem: "Sem3", RoomNo: "101", Role: models.RoleStudent},
		{AdmissionNumber: "5003", Name: "Chitra", Sem: "Sem5", RoomNo: "204", Role: models.RoleStudent},
	}
}

func TestAttendanceSaveValidation(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo(), newFakeUserRepo())

	tests := []struct {
		name string
		req  dto.SaveAttendanceRequest
	}{
		{"missing date", dto.SaveAttendanceRequest{Records: []dto.AttendanceEntry{{AdmissionNumber: "5001"}}}},
		{"empty records", dto.SaveAttendanceRequest{Date: "2025-01-10"}},
		{"blank date", dto.SaveAttendanceRequest{Date: "   ", Records: []dto.AttendanceEntry{{AdmissionNumber: "5001"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Save(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		})
	}
}

func TestAttendanceSaveAndReport(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	svc := NewAttendanceService(attendanceRepo, newFakeUserRepo(rosterUsers()...))

	err := svc.Save(context.Background(), dto.SaveAttendanceRequest{
		Date: "2025-01-10",
		Records: []dto.AttendanceEntry{
			{AdmissionNumber: "5001", Attendance: true, Messcut: false, Selected: true},
			{AdmissionNumber: "5003", Attendance: false, Messcut: true, Selected: false},
		},
	})
	require.NoError(t, err)

	rows, err := svc.ReportByDate(context.Background(), "2025-01-10")
	require.NoError(t, err)

	// Every registered user appears exactly once regardless of saved records.
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, i+1, row.SlNo)
	}

	byAdmission := map[string]dto.AttendanceRow{}
	for _, row := range rows {
		byAdmission[row.AdmissionNumber] = row
	}

	assert.True(t, byAdmission["5001"].Attendance)
	assert.True(t, byAdmission["5001"].Selected)
	assert.False(t, byAdmission["5001"].Messcut)

	// No record saved: all flags default to false.
	assert.False(t, byAdmission["5002"].Attendance)
	assert.False(t, byAdmission["5002"].Messcut)
	assert.False(t, byAdmission["5002"].Selected)

	assert.True(t, byAdmission["5003"].Messcut)
	assert.Equal(t, "Sem5", byAdmission["5003"].Semester)
	assert.Equal(t, "204", byAdmission["5003"].RoomNo)
}

func TestAttendanceSaveIdempotent(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	svc := NewAttendanceService(attendanceRepo, newFakeUserRepo(rosterUsers()...))

	batch := dto.SaveAttendanceRequest{
		Date: "2025-01-10",
		Records: []dto.AttendanceEntry{
			{AdmissionNumber: "5001", Attendance: true},
			{AdmissionNumber: "5002", Attendance: false, Messcut: true},
		},
	}
	require.NoError(t, svc.Save(context.Background(), batch))
	first, err := svc.ReportByDate(context.Background(), "2025-01-10")
	require.NoError(t, err)

	require.NoError(t, svc.Save(context.Background(), batch))
	second, err := svc.ReportByDate(context.Background(), "2025-01-10")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAttendanceResave_ReplacesFlags(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo(), newFakeUserRepo(rosterUsers()...))

	require.NoError(t, svc.Save(context.Background(), dto.SaveAttendanceRequest{
		Date:    "2025-01-10",
		Records: []dto.AttendanceEntry{{AdmissionNumber: "5001", Attendance: false}},
	}))
	require.NoError(t, svc.Save(context.Background(), dto.SaveAttendanceRequest{
		Date:    "2025-01-10",
		Records: []dto.AttendanceEntry{{AdmissionNumber: "5001", Attendance: true, Selected: true}},
	}))

	rows, err := svc.ReportByDate(context.Background(), "2025-01-10")
	require.NoError(t, err)
	assert.True(t, rows[0].Attendance)
	assert.True(t, rows[0].Selected)
}

func TestAbsenteesByDate(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo(), newFakeUserRepo(rosterUsers()...))

	require.NoError(t, svc.Save(context.Background(), dto.SaveAttendanceRequest{
		Date: "2025-01-10",
		Records: []dto.AttendanceEntry{
			{AdmissionNumber: "5001", Attendance: true},
			{AdmissionNumber: "5002", Attendance: false},
			// 5003 has no record at all
		},
	}))

	absentees, err := svc.AbsenteesByDate(context.Background(), "2025-01-10")
	require.NoError(t, err)

	// Absentees are exactly: explicit attendance=false plus users with no record.
	require.Len(t, absentees, 2)
	names := []string{absentees[0].Name, absentees[1].Name}
	assert.ElementsMatch(t, []string{"Binu", "Chitra"}, names)
	assert.Equal(t, 1, absentees[0].SlNo)
	assert.Equal(t, 2, absentees[1].SlNo)
}

func TestAttendanceReportRequiresDate(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo(), newFakeUserRepo())

	_, err := svc.ReportByDate(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)

	_, err = svc.AbsenteesByDate(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestAttendanceReportStorageFailure(t *testing.T) {
	userRepo := newFakeUserRepo(rosterUsers()...)
	attendanceRepo := newFakeAttendanceRepo()
	attendanceRepo.err = errors.New("connection reset")
	svc := NewAttendanceService(attendanceRepo, userRepo)

	_, err := svc.ReportByDate(context.Background(), "2025-01-10")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidRequest)
}
