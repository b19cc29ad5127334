package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nivedpm/hostelhub/internal/app/models/dto"
	"github.com/nivedpm/hostelhub/internal/app/services"
	"github.com/nivedpm/hostelhub/internal/middleware"
	"github.com/nivedpm/hostelhub/internal/pkg/apperrors"
)

// MesscutController handles messcut endpoints
type MesscutController struct {
	messcutService *services.MesscutService
}

// NewMesscutController creates a new messcut controller
func NewMesscutController(messcutService *services.MesscutService) *MesscutController {
	return &MesscutController{messcutService: messcutService}
}

// Create godoc
// @Summary File a messcut request
// @Description Creates a PENDING meal-opt-out request
// @Tags messcut
// @Accept json
// @Produce json
// @Param request body dto.CreateMesscutRequest true "Messcut request"
// @Success 201 {object} dto.APIResponse
// @Router /messcut [post]
func (mc *MesscutController) Create(c *gin.Context) {
	var req dto.CreateMesscutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	request, err := mc.messcutService.CreateRequest(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(request, "Messcut request submitted"))
}

// UpdateStatus godoc
// @Summary Accept or reject a messcut request
// @Tags messcut
// @Accept json
// @Produce json
// @Param id path string true "Request id"
// @Param request body dto.UpdateMesscutStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse
// @Router /messcut/{id}/status [put]
func (mc *MesscutController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateMesscutStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	if err := mc.messcutService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse("Messcut status updated"))
}

// Report godoc
// @Summary Messcut summary report
// @Description Accepted requests grouped per student with count and latest leaving date
// @Tags messcut
// @Produce json
// @Param admissionNumber query string false "Filter by admission number"
// @Success 200 {object} dto.APIResponse{data=[]dto.MesscutSummary}
// @Router /messcut/report [get]
func (mc *MesscutController) Report(c *gin.Context) {
	report, err := mc.messcutService.Report(c.Request.Context(), c.Query("admissionNumber"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp := dto.NewListResponse(report, len(report))
	if len(report) == 0 {
		resp.Message = "No accepted messcut records found."
	}
	c.JSON(http.StatusOK, resp)
}

// StudentDetails godoc
// @Summary Accepted messcut entries for one student
// @Tags messcut
// @Produce json
// @Param admissionNo query string true "Admission number"
// @Success 200 {object} dto.APIResponse
// @Router /messcut/student [get]
func (mc *MesscutController) StudentDetails(c *gin.Context) {
	records, err := mc.messcutService.StudentDetails(c.Request.Context(), c.Query("admissionNo"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp := dto.NewListResponse(records, len(records))
	if len(records) == 0 {
		resp.Message = "No accepted messcut records found for this student."
	}
	c.JSON(http.StatusOK, resp)
}
