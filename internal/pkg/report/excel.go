package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RenderExcel produces the attendance report as an XLSX workbook with a
// summary sheet and a history sheet.
func RenderExcel(data *StudentReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	const historySheet = "History"

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(historySheet); err != nil {
		return nil, fmt.Errorf("failed to create history sheet: %w", err)
	}

	header := [][]interface{}{
		{"AttendLink Attendance Report"},
		{"Student", data.StudentName},
		{"Roll Number", data.RollNumber},
		{"Department", data.Department},
		{"Semester", data.Semester},
		{"Generated", data.GeneratedAt.Format("2006-01-02 15:04")},
		{},
		{"Course Code", "Course Name", "Classes", "Attended", "Percentage", "Shortage"},
	}
	for i, row := range header {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary header: %w", err)
		}
	}

	for i, row := range data.Summaries {
		cell, _ := excelize.CoordinatesToCellName(1, len(header)+i+1)
		values := []interface{}{row.CourseCode, row.CourseName, row.Total, row.Attended, row.Percentage, row.Shortage}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	historyHeader := []interface{}{"Date", "Course", "Status", "Remarks"}
	if err := f.SetSheetRow(historySheet, "A1", &historyHeader); err != nil {
		return nil, fmt.Errorf("failed to write history header: %w", err)
	}
	for i, line := range data.Records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{line.Date, line.CourseCode, line.Status, line.Remarks}
		if err := f.SetSheetRow(historySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write history row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render Excel report: %w", err)
	}
	return buf.Bytes(), nil
}
