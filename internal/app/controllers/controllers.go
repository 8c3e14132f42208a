package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/app/services"
	"github.com/attendlink/attendlink/internal/middleware"
)

// Controllers bundles all HTTP controllers for route registration.
type Controllers struct {
	Auth         *AuthController
	Attendance   *AttendanceController
	Course       *CourseController
	Dashboard    *DashboardController
	Notification *NotificationController
	Report       *ReportController
}

// NewControllers creates all controllers against the service layer.
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		Auth:         NewAuthController(svcs.Auth),
		Attendance:   NewAttendanceController(svcs.Attendance),
		Course:       NewCourseController(svcs.Course),
		Dashboard:    NewDashboardController(svcs.Dashboard),
		Notification: NewNotificationController(svcs.Notification),
		Report:       NewReportController(svcs.Report),
	}
}

// parseUUIDParam reads a UUID path parameter, responding with a
// validation error when it is malformed.
func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// requireUserID reads the authenticated user ID set by the JWT middleware.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return userID, true
}
