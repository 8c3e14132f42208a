package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *StudentReport {
	return &StudentReport{
		StudentName: "Maya Patel",
		RollNumber:  "STU12AB34CD",
		Department:  "Computer Science",
		Semester:    5,
		GeneratedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Summaries: []CourseSummary{
			{CourseCode: "CS301", CourseName: "Operating Systems", Total: 20, Attended: 15, Percentage: 75, Shortage: false},
			{CourseCode: "CS302", CourseName: "Databases", Total: 18, Attended: 10, Percentage: 55.56, Shortage: true},
		},
		Records: []RecordLine{
			{Date: "2026-08-20", CourseCode: "CS301", Status: "present", Remarks: ""},
			{Date: "2026-08-19", CourseCode: "CS302", Status: "absent", Remarks: "medical"},
		},
	}
}

func TestRenderPDF(t *testing.T) {
	content, err := RenderPDF(sampleReport())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	assert.Greater(t, len(content), 1000)
}

func TestRenderPDFEmptyReport(t *testing.T) {
	content, err := RenderPDF(&StudentReport{
		StudentName: "Maya Patel",
		RollNumber:  "STU12AB34CD",
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestRenderExcelRoundTrip(t *testing.T) {
	content, err := RenderExcel(sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "History"}, f.GetSheetList())

	name, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Maya Patel", name)

	code, err := f.GetCellValue("Summary", "A9")
	require.NoError(t, err)
	assert.Equal(t, "CS301", code)

	status, err := f.GetCellValue("History", "C3")
	require.NoError(t, err)
	assert.Equal(t, "absent", status)
}
