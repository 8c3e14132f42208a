package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/attendlink/attendlink/internal/app/controllers"
	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", rateLimiter.LimitLogin(), ctrl.Auth.Login)
		auth.POST("/forgot-password", rateLimiter.LimitPasswordReset(), ctrl.Auth.ForgotPassword)
		auth.POST("/reset-password/:token", ctrl.Auth.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", ctrl.Auth.Me)

	facultyOrAdmin := authMiddleware.RoleRequired(string(models.RoleFaculty), string(models.RoleAdmin))
	adminOnly := authMiddleware.RoleRequired(string(models.RoleAdmin))
	studentOnly := authMiddleware.RoleRequired(string(models.RoleStudent))

	// Attendance marking and lookups (faculty and admin)
	attendance := authenticated.Group("/attendance", facultyOrAdmin)
	{
		attendance.POST("/bulk", ctrl.Attendance.MarkBulk)
		attendance.GET("/student/:studentId", ctrl.Attendance.StudentSummaries)
		attendance.GET("/course/:courseId", ctrl.Attendance.CourseRecords)
		attendance.GET("/summary/:enrollmentId", ctrl.Attendance.GetSummary)
	}

	// Course catalog
	courses := authenticated.Group("/courses")
	{
		courses.GET("", ctrl.Course.List)
		courses.GET("/:id", ctrl.Course.Get)
		courses.GET("/:id/students", facultyOrAdmin, ctrl.Course.Students)
		courses.POST("/enroll", facultyOrAdmin, ctrl.Course.Enroll)
	}

	// Faculty course management and marking
	faculty := authenticated.Group("/faculty", facultyOrAdmin)
	{
		faculty.POST("/attendance/mark", ctrl.Attendance.MarkBulk)

		faculty.GET("/courses", ctrl.Course.ListMine)
		faculty.POST("/courses", ctrl.Course.Create)
		faculty.PUT("/courses/:id", ctrl.Course.Update)
		faculty.DELETE("/courses/:id", ctrl.Course.Delete)
		faculty.POST("/courses/:id/quick-mark", ctrl.Attendance.QuickMark)
		faculty.POST("/courses/enroll", ctrl.Course.EnrollByRollNumber)
		faculty.DELETE("/courses/:id/unenroll/:studentId", ctrl.Course.Unenroll)

		faculty.GET("/students", ctrl.Dashboard.Directory)
		faculty.GET("/history", ctrl.Dashboard.MarkingHistory)
	}

	// Dashboards
	dashboard := authenticated.Group("/dashboard")
	{
		dashboard.GET("/student", studentOnly, ctrl.Dashboard.Student)
		dashboard.GET("/faculty", facultyOrAdmin, ctrl.Dashboard.Faculty)
		dashboard.GET("/admin", adminOnly, ctrl.Dashboard.Admin)
	}

	// Student self-service and directory
	students := authenticated.Group("/students")
	{
		students.GET("", facultyOrAdmin, ctrl.Dashboard.Directory)
		students.GET("/dashboard", studentOnly, ctrl.Dashboard.StudentOverview)
		students.GET("/attendance", studentOnly, ctrl.Dashboard.History)
		students.GET("/trends", studentOnly, ctrl.Dashboard.Trend)
	}

	// Notifications and settings
	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", ctrl.Notification.List)
		notifications.PUT("/read-all", ctrl.Notification.MarkAllRead)
		notifications.POST("/send", facultyOrAdmin, ctrl.Notification.SendReminder)
	}
	authenticated.GET("/settings", ctrl.Notification.GetSettings)
	authenticated.PUT("/settings", ctrl.Notification.UpdateSettings)

	// Reports
	reports := authenticated.Group("/reports")
	{
		reports.GET("/download/pdf/:studentId", ctrl.Report.DownloadPDF)
		reports.GET("/download/excel/:studentId", ctrl.Report.DownloadExcel)
	}
}
