package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/app/services"
	"github.com/attendlink/attendlink/internal/middleware"
)

// DashboardController handles role-specific dashboard endpoints.
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Student returns the student dashboard
// @Summary Student dashboard
// @Description Per-course attendance with the overall percentage weighted by class counts
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse} "Dashboard"
// @Router /api/dashboard/student [get]
func (c *DashboardController) Student(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.dashboardService.StudentDashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}

// StudentOverview returns the compact course list view
// @Summary Student course overview
// @Description Per-course attendance with the overall percentage as the plain average of course percentages
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse} "Overview"
// @Router /api/students/dashboard [get]
func (c *DashboardController) StudentOverview(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	overview, err := c.dashboardService.StudentOverview(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(overview))
}

// Faculty returns the faculty dashboard
// @Summary Faculty dashboard
// @Description Per-course stats, totals and the last week of marking activity
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.FacultyDashboardResponse} "Dashboard"
// @Router /api/dashboard/faculty [get]
func (c *DashboardController) Faculty(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.dashboardService.FacultyDashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}

// Admin returns the admin dashboard
// @Summary Admin dashboard
// @Description Campus-wide totals, department distribution and course performance
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboardResponse} "Dashboard"
// @Router /api/dashboard/admin [get]
func (c *DashboardController) Admin(ctx *gin.Context) {
	dashboard, err := c.dashboardService.AdminDashboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}

// Trend returns the student attendance trend
// @Summary Student attendance trend
// @Description The last month of per-day attendance percentages for the calling student
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Trend points"
// @Router /api/students/trends [get]
func (c *DashboardController) Trend(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	points, err := c.dashboardService.StudentTrend(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(points))
}

// History returns the student's full record history
// @Summary Student attendance history
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Attendance entries"
// @Router /api/students/attendance [get]
func (c *DashboardController) History(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	entries, err := c.dashboardService.AttendanceHistory(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entries))
}

// MarkingHistory returns the faculty user's marking sessions
// @Summary Faculty marking history
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Marking sessions"
// @Router /api/faculty/history [get]
func (c *DashboardController) MarkingHistory(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	sessions, err := c.dashboardService.MarkingHistory(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sessions))
}

// Directory lists all students
// @Summary Student directory
// @Description Lists all students for enrollment screens
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Students"
// @Router /api/students [get]
// @Router /api/faculty/students [get]
func (c *DashboardController) Directory(ctx *gin.Context) {
	entries, err := c.dashboardService.StudentDirectory(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entries))
}
