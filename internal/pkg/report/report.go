package report

import (
	"time"
)

// StudentReport is the input to the PDF and Excel renderers.
type StudentReport struct {
	StudentName string
	RollNumber  string
	Department  string
	Semester    int
	GeneratedAt time.Time
	Summaries   []CourseSummary
	Records     []RecordLine
}

// CourseSummary is one per-course aggregate line.
type CourseSummary struct {
	CourseCode string
	CourseName string
	Total      int
	Attended   int
	Percentage float64
	Shortage   bool
}

// RecordLine is one attendance record line, newest first.
type RecordLine struct {
	Date       string
	CourseCode string
	Status     string
	Remarks    string
}
