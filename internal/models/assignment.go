package models

import (
	"time"

	"github.com/google/uuid"

	"campusd/internal/storage"
)

type Assignment struct {
	ID          string
	CourseID    string
	Title       string
	Description string
	DueDate     string
	MaxMarks    int
	CreatedBy   string
	CreatedAt   time.Time
}

func NewAssignment(courseID, title, description, dueDate, createdBy string, maxMarks int, now time.Time) Assignment {
	return Assignment{
		ID:          uuid.NewString(),
		CourseID:    courseID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		MaxMarks:    maxMarks,
		CreatedBy:   createdBy,
		CreatedAt:   now,
	}
}

func (a Assignment) ToRecord() storage.Record {
	return storage.Record{
		"id":          a.ID,
		"course_id":   a.CourseID,
		"title":       a.Title,
		"description": a.Description,
		"due_date":    a.DueDate,
		"max_marks":   a.MaxMarks,
		"created_by":  a.CreatedBy,
		"created_at":  a.CreatedAt.Format(time.RFC3339Nano),
	}
}

func AssignmentFromRecord(rec storage.Record) Assignment {
	return Assignment{
		ID:          rec.GetString("id", ""),
		CourseID:    rec.GetString("course_id", ""),
		Title:       rec.GetString("title", ""),
		Description: rec.GetString("description", ""),
		DueDate:     rec.GetString("due_date", ""),
		MaxMarks:    rec.GetInt("max_marks", 100),
		CreatedBy:   rec.GetString("created_by", ""),
		CreatedAt:   parseTime(rec.GetString("created_at", "")),
	}
}

type Grade struct {
	ID           string
	StudentID    string
	CourseID     string
	AssignmentID string
	Marks        float64
	MaxMarks     float64
	GradeLetter  string
	GradedAt     time.Time
}

func NewGrade(studentID, courseID, assignmentID string, marks, maxMarks float64, now time.Time) Grade {
	return Grade{
		ID:           uuid.NewString(),
		StudentID:    studentID,
		CourseID:     courseID,
		AssignmentID: assignmentID,
		Marks:        marks,
		MaxMarks:     maxMarks,
		GradeLetter:  letterFor(marks, maxMarks),
		GradedAt:     now,
	}
}

func letterFor(marks, maxMarks float64) string {
	if maxMarks <= 0 {
		return "F"
	}
	pct := marks / maxMarks * 100
	switch {
	case pct >= 90:
		return "A+"
	case pct >= 80:
		return "A"
	case pct >= 70:
		return "B"
	case pct >= 60:
		return "C"
	case pct >= 50:
		return "D"
	default:
		return "F"
	}
}

func (g Grade) ToRecord() storage.Record {
	return storage.Record{
		"id":            g.ID,
		"student_id":    g.StudentID,
		"course_id":     g.CourseID,
		"assignment_id": g.AssignmentID,
		"marks":         g.Marks,
		"max_marks":     g.MaxMarks,
		"grade_letter":  g.GradeLetter,
		"graded_at":     g.GradedAt.Format(time.RFC3339Nano),
	}
}

func GradeFromRecord(rec storage.Record) Grade {
	return Grade{
		ID:           rec.GetString("id", ""),
		StudentID:    rec.GetString("student_id", ""),
		CourseID:     rec.GetString("course_id", ""),
		AssignmentID: rec.GetString("assignment_id", ""),
		Marks:        rec.GetFloat("marks", 0),
		MaxMarks:     rec.GetFloat("max_marks", 100),
		GradeLetter:  rec.GetString("grade_letter", "N/A"),
		GradedAt:     parseTime(rec.GetString("graded_at", "")),
	}
}
