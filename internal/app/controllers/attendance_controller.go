package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nivedpm/hostelhub/internal/app/models/dto"
	"github.com/nivedpm/hostelhub/internal/app/services"
	"github.com/nivedpm/hostelhub/internal/middleware"
	"github.com/nivedpm/hostelhub/internal/pkg/apperrors"
)

// AttendanceController handles attendance endpoints
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new attendance controller
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// Save godoc
// @Summary Save attendance for a date
// @Description Upserts the whole batch of per-student flags in one transaction
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.SaveAttendanceRequest true "Attendance batch"
// @Success 200 {object} dto.APIResponse
// @Router /attendance [post]
func (ac *AttendanceController) Save(c *gin.Context) {
	var req dto.SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	if err := ac.attendanceService.Save(c.Request.Context(), req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("Attendance saved successfully"))
}

// Report godoc
// @Summary Attendance report for a date
// @Description One row per registered user, joined with that date's records
// @Tags attendance
// @Produce json
// @Param date query string true "Report date"
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendanceRow}
// @Router /attendance [get]
func (ac *AttendanceController) Report(c *gin.Context) {
	rows, err := ac.attendanceService.ReportByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(rows, len(rows)))
}

// Absentees godoc
// @Summary Absentee report for a date
// @Description Users with no record for the date or attendance=false
// @Tags attendance
// @Produce json
// @Param date query string true "Report date"
// @Success 200 {object} dto.APIResponse{data=[]dto.AbsenteeRow}
// @Router /attendance/absentees [get]
func (ac *AttendanceController) Absentees(c *gin.Context) {
	rows, err := ac.attendanceService.AbsenteesByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(rows, len(rows)))
}
