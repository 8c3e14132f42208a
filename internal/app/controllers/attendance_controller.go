package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/app/services"
	"github.com/attendlink/attendlink/internal/middleware"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
)

// AttendanceController handles attendance marking endpoints.
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// MarkBulk records attendance for a list of students
// @Summary Mark attendance in bulk
// @Description Records attendance for a list of students in one course on one class date. Students without an enrollment are skipped; existing records for the same date are overwritten.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkAttendanceRequest true "Marks"
// @Success 200 {object} dto.APIResponse "Marked and skipped counts"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /api/attendance/bulk [post]
// @Router /api/faculty/attendance/mark [post]
func (c *AttendanceController) MarkBulk(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.BulkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	result, err := c.attendanceService.MarkBulk(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	for _, mark := range req.AttendanceData {
		middleware.CountAttendanceMark(mark.Status)
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// QuickMark marks a whole course as present for today
// @Summary Quick-mark a course
// @Description Marks every enrollment of a course as present for today. Fails with 409 when the course already has records for today.
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse "Marked count"
// @Failure 404 {object} dto.ErrorResponse "Course not found or no enrollments"
// @Failure 409 {object} dto.ErrorResponse "Already marked today"
// @Router /api/faculty/courses/{id}/quick-mark [post]
func (c *AttendanceController) QuickMark(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	marked, err := c.attendanceService.QuickMark(ctx.Request.Context(), userID, courseID, models.StatusPresent)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	for i := 0; i < marked; i++ {
		middleware.CountAttendanceMark(string(models.StatusPresent))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"marked": marked}))
}

// StudentSummaries returns a student's per-course aggregates
// @Summary Get a student's attendance summaries
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.APIResponse "Summaries"
// @Router /api/attendance/student/{studentId} [get]
func (c *AttendanceController) StudentSummaries(ctx *gin.Context) {
	studentID, ok := parseUUIDParam(ctx, "studentId")
	if !ok {
		return
	}

	summaries, err := c.attendanceService.StudentSummaries(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summaries))
}

// CourseRecords returns a course's records for one class date
// @Summary Get a course's attendance records
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param class_date query string true "Class date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse "Records"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /api/attendance/course/{courseId} [get]
func (c *AttendanceController) CourseRecords(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "courseId")
	if !ok {
		return
	}

	classDate, err := time.Parse("2006-01-02", ctx.Query("class_date"))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("class_date must be formatted as YYYY-MM-DD"))
		return
	}

	records, err := c.attendanceService.CourseRecords(ctx.Request.Context(), courseID, classDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records))
}

// GetSummary returns one enrollment's aggregate
// @Summary Get an enrollment summary
// @Description Returns the cached attendance aggregate for one enrollment
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param enrollmentId path string true "Enrollment ID"
// @Success 200 {object} dto.APIResponse "Summary"
// @Failure 404 {object} dto.ErrorResponse "Summary not found"
// @Router /api/attendance/summary/{enrollmentId} [get]
func (c *AttendanceController) GetSummary(ctx *gin.Context) {
	enrollmentID, ok := parseUUIDParam(ctx, "enrollmentId")
	if !ok {
		return
	}

	summary, err := c.attendanceService.GetSummary(ctx.Request.Context(), enrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}
