package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/app/services"
	"github.com/attendlink/attendlink/internal/middleware"
)

// ReportController handles report download endpoints.
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// DownloadPDF streams a student's attendance report as PDF
// @Summary Download an attendance report (PDF)
// @Description Students can fetch their own report; faculty and admins any report
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {file} binary "PDF report"
// @Failure 403 {object} dto.ErrorResponse "Not your report"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /api/reports/download/pdf/{studentId} [get]
func (c *ReportController) DownloadPDF(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	studentID, ok := parseUUIDParam(ctx, "studentId")
	if !ok {
		return
	}

	role := models.RoleType(middleware.CurrentRole(ctx))
	content, filename, err := c.reportService.StudentPDF(ctx.Request.Context(), userID, role, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", content)
}

// DownloadExcel streams a student's attendance report as XLSX
// @Summary Download an attendance report (Excel)
// @Description Students can fetch their own report; faculty and admins any report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {file} binary "XLSX report"
// @Failure 403 {object} dto.ErrorResponse "Not your report"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /api/reports/download/excel/{studentId} [get]
func (c *ReportController) DownloadExcel(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	studentID, ok := parseUUIDParam(ctx, "studentId")
	if !ok {
		return
	}

	role := models.RoleType(middleware.CurrentRole(ctx))
	content, filename, err := c.reportService.StudentExcel(ctx.Request.Context(), userID, role, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
