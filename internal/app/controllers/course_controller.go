package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/app/services"
	"github.com/attendlink/attendlink/internal/middleware"
)

// CourseController handles course management and enrollment endpoints.
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// Create adds a course
// @Summary Create a course
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse "Course created"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /api/faculty/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	course, err := c.courseService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// List returns all courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Courses"
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.courseService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// Get returns one course
// @Summary Get a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// Update applies a partial course update
// @Summary Update a course
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Changed fields"
// @Success 200 {object} dto.APIResponse "Course updated"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /api/faculty/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	course, err := c.courseService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// Delete removes a course
// @Summary Delete a course
// @Description Deletes a course together with its enrollments, records and summaries
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /api/faculty/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted"))
}

// Enroll binds a student to a course
// @Summary Enroll a student
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Enrollment data"
// @Success 201 {object} dto.APIResponse "Enrollment created"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /api/courses/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	enrollment, err := c.courseService.Enroll(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(enrollment))
}

// EnrollByRollNumber enrolls a student identified by roll number
// @Summary Enroll a student by roll number
// @Description Enrolls a student into a course by roll number, recording the calling faculty as the enrolling faculty
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollByRollNumberRequest true "Enrollment data"
// @Success 201 {object} dto.APIResponse "Enrollment created"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /api/faculty/courses/enroll [post]
func (c *CourseController) EnrollByRollNumber(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.EnrollByRollNumberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	enrollment, err := c.courseService.EnrollByRollNumber(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(enrollment))
}

// Unenroll removes a student from a course
// @Summary Unenroll a student
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.APIResponse "Enrollment removed"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /api/faculty/courses/{id}/unenroll/{studentId} [delete]
func (c *CourseController) Unenroll(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseUUIDParam(ctx, "studentId")
	if !ok {
		return
	}

	if err := c.courseService.Unenroll(ctx.Request.Context(), studentID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Enrollment removed"))
}

// ListMine returns the calling faculty user's courses
// @Summary List my courses
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Courses"
// @Router /api/faculty/courses [get]
func (c *CourseController) ListMine(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	courses, err := c.courseService.ListByFaculty(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// Students returns a course's enrolled students
// @Summary List students of a course
// @Description Lists the students enrolled in a course with their current attendance percentage, for the marking screen
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse "Students"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /api/courses/{id}/students [get]
func (c *CourseController) Students(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	students, err := c.courseService.CourseStudents(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}
