package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"campusd/internal/storage"
)

const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Department   string
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    time.Time

	// Role-specific identifiers, empty for the other roles.
	StudentID string
	FacultyID string
	AdminID   string

	EnrolledCourses []string
	AssignedCourses []string
}

// NewUser builds a user with a role-prefixed short identifier derived from
// the record id, matching the STU/FAC/ADM convention of the portal.
func NewUser(email, name, role, department string, now time.Time) User {
	u := User{
		ID:         uuid.NewString(),
		Email:      email,
		Name:       name,
		Role:       role,
		Department: department,
		IsActive:   true,
		CreatedAt:  now,
	}
	short := strings.ToUpper(u.ID[:8])
	switch role {
	case RoleStudent:
		u.StudentID = "STU" + short
	case RoleFaculty:
		u.FacultyID = "FAC" + short
	case RoleAdmin:
		u.AdminID = "ADM" + short
	}
	return u
}

func (u User) ToRecord() storage.Record {
	rec := storage.Record{
		"id":            u.ID,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"name":          u.Name,
		"role":          u.Role,
		"department":    u.Department,
		"is_active":     u.IsActive,
		"created_at":    u.CreatedAt.Format(time.RFC3339Nano),
	}
	if !u.LastLogin.IsZero() {
		rec["last_login"] = u.LastLogin.Format(time.RFC3339Nano)
	}
	switch u.Role {
	case RoleStudent:
		rec["student_id"] = u.StudentID
		rec["enrolled_courses"] = toAnySlice(u.EnrolledCourses)
	case RoleFaculty:
		rec["faculty_id"] = u.FacultyID
		rec["assigned_courses"] = toAnySlice(u.AssignedCourses)
	case RoleAdmin:
		rec["admin_id"] = u.AdminID
	}
	return rec
}

func UserFromRecord(rec storage.Record) User {
	return User{
		ID:              rec.GetString("id", ""),
		Email:           rec.GetString("email", ""),
		PasswordHash:    rec.GetString("password_hash", ""),
		Name:            rec.GetString("name", ""),
		Role:            rec.GetString("role", RoleStudent),
		Department:      rec.GetString("department", ""),
		IsActive:        rec.GetBool("is_active", true),
		CreatedAt:       parseTime(rec.GetString("created_at", "")),
		LastLogin:       parseTime(rec.GetString("last_login", "")),
		StudentID:       rec.GetString("student_id", ""),
		FacultyID:       rec.GetString("faculty_id", ""),
		AdminID:         rec.GetString("admin_id", ""),
		EnrolledCourses: toStringSlice(rec["enrolled_courses"]),
		AssignedCourses: toStringSlice(rec["assigned_courses"]),
	}
}

// Sanitized strips the password hash for API responses.
func (u User) Sanitized() storage.Record {
	rec := u.ToRecord()
	delete(rec, "password_hash")
	return rec
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
