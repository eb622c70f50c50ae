package models

import (
	"time"

	"github.com/google/uuid"

	"campusd/internal/storage"
)

type Course struct {
	ID           string
	Code         string
	Name         string
	Description  string
	Credits      int
	Department   string
	InstructorID string
	Students     []string
	CreatedAt    time.Time
}

func NewCourse(code, name, description, department, instructorID string, credits int, now time.Time) Course {
	return Course{
		ID:           uuid.NewString(),
		Code:         code,
		Name:         name,
		Description:  description,
		Credits:      credits,
		Department:   department,
		InstructorID: instructorID,
		Students:     []string{},
		CreatedAt:    now,
	}
}

func (c Course) ToRecord() storage.Record {
	return storage.Record{
		"id":            c.ID,
		"code":          c.Code,
		"name":          c.Name,
		"description":   c.Description,
		"credits":       c.Credits,
		"department":    c.Department,
		"instructor_id": c.InstructorID,
		"students":      toAnySlice(c.Students),
		"created_at":    c.CreatedAt.Format(time.RFC3339Nano),
	}
}

func CourseFromRecord(rec storage.Record) Course {
	return Course{
		ID:           rec.GetString("id", ""),
		Code:         rec.GetString("code", ""),
		Name:         rec.GetString("name", ""),
		Description:  rec.GetString("description", ""),
		Credits:      rec.GetInt("credits", 0),
		Department:   rec.GetString("department", ""),
		InstructorID: rec.GetString("instructor_id", ""),
		Students:     toStringSlice(rec["students"]),
		CreatedAt:    parseTime(rec.GetString("created_at", "")),
	}
}

// HasStudent reports whether the student is enrolled.
func (c Course) HasStudent(studentID string) bool {
	for _, id := range c.Students {
		if id == studentID {
			return true
		}
	}
	return false
}
