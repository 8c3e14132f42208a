package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// RenderPDF produces the attendance report as a PDF document.
func RenderPDF(data *StudentReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Header block
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "AttendLink", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Attendance Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Student: %s (%s)", data.StudentName, data.RollNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Department: %s    Semester: %d", data.Department, data.Semester), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated: "+data.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Summary table
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Course Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(25, 7, "Code", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, "Course", "1", 0, "L", true, 0, "")
	pdf.CellFormat(22, 7, "Classes", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 7, "Attended", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Percentage", "1", 0, "C", true, 0, "")
	pdf.CellFormat(26, 7, "Status", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range data.Summaries {
		status := "OK"
		if row.Shortage {
			status = "SHORTAGE"
		}
		pdf.CellFormat(25, 6, row.CourseCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 6, row.CourseName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%d", row.Total), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%d", row.Attended), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f%%", row.Percentage), "1", 0, "C", false, 0, "")
		pdf.CellFormat(26, 6, status, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	// Record history
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Attendance History", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(30, 7, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Course", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(100, 7, "Remarks", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range data.Records {
		pdf.CellFormat(30, 6, line.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, line.CourseCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, line.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(100, 6, line.Remarks, "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF report: %w", err)
	}
	return buf.Bytes(), nil
}
