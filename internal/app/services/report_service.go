package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
	"github.com/attendlink/attendlink/internal/pkg/report"
)

// ReportService produces downloadable attendance reports.
type ReportService struct {
	users     UserStore
	students  StudentStore
	records   AttendanceStore
	summaries SummaryStore
}

// NewReportService creates a new ReportService
func NewReportService(users UserStore, students StudentStore, records AttendanceStore,
	summaries SummaryStore) *ReportService {
	return &ReportService{
		users:     users,
		students:  students,
		records:   records,
		summaries: summaries,
	}
}

// authorize rejects students asking for another student's report.
// Faculty and admins may fetch any report.
func (s *ReportService) authorize(ctx context.Context, requesterID uuid.UUID, role models.RoleType, studentID uuid.UUID) error {
	if role != models.RoleStudent {
		return nil
	}

	own, err := s.students.GetByUserID(ctx, requesterID)
	if err != nil {
		return err
	}
	if own.ID != studentID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

func (s *ReportService) buildReport(ctx context.Context, studentID uuid.UUID) (*report.StudentReport, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, student.UserID)
	if err != nil {
		return nil, err
	}

	summaryRows, err := s.summaries.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	recordRows, err := s.records.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	data := &report.StudentReport{
		StudentName: user.FullName,
		RollNumber:  student.RollNumber,
		Department:  student.Department,
		Semester:    student.Semester,
		GeneratedAt: time.Now(),
	}

	for _, row := range summaryRows {
		data.Summaries = append(data.Summaries, report.CourseSummary{
			CourseCode: row.CourseCode,
			CourseName: row.CourseName,
			Total:      row.Summary.TotalClasses,
			Attended:   row.Summary.ClassesAttended + row.Summary.ClassesLate,
			Percentage: row.Summary.AttendancePercentage,
			Shortage:   row.Summary.ShortageStatus,
		})
	}

	for _, row := range recordRows {
		remarks := ""
		if row.Record.Remarks != nil {
			remarks = *row.Record.Remarks
		}
		data.Records = append(data.Records, report.RecordLine{
			Date:       row.Record.ClassDate.Format("2006-01-02"),
			CourseCode: row.CourseCode,
			Status:     string(row.Record.Status),
			Remarks:    remarks,
		})
	}

	return data, nil
}

// StudentPDF renders a student's attendance report as PDF.
func (s *ReportService) StudentPDF(ctx context.Context, requesterID uuid.UUID, role models.RoleType, studentID uuid.UUID) (content []byte, filename string, err error) {
	if err := s.authorize(ctx, requesterID, role, studentID); err != nil {
		return nil, "", err
	}

	data, err := s.buildReport(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	content, err = report.RenderPDF(data)
	if err != nil {
		return nil, "", err
	}
	return content, fmt.Sprintf("attendance_%s.pdf", data.RollNumber), nil
}

// StudentExcel renders a student's attendance report as XLSX.
func (s *ReportService) StudentExcel(ctx context.Context, requesterID uuid.UUID, role models.RoleType, studentID uuid.UUID) (content []byte, filename string, err error) {
	if err := s.authorize(ctx, requesterID, role, studentID); err != nil {
		return nil, "", err
	}

	data, err := s.buildReport(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	content, err = report.RenderExcel(data)
	if err != nil {
		return nil, "", err
	}
	return content, fmt.Sprintf("attendance_%s.xlsx", data.RollNumber), nil
}
