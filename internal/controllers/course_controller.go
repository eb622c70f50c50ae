package controllers

import (
	"net/http"

	"campusd/internal/models"
	"campusd/internal/providers"
	"campusd/internal/storage"
)

type CourseController struct {
	logger providers.Logger
	store  storage.StoreInterface
}

func NewCourseController(logger providers.Logger, store storage.StoreInterface) *CourseController {
	return &CourseController{logger: logger, store: store}
}

// List scopes courses by role: faculty see the courses they teach,
// students the ones they are enrolled in, admins everything.
func (cc *CourseController) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := providers.IdentityFrom(r)

	var recs []storage.Record
	switch identity.Role {
	case models.RoleFaculty:
		recs = cc.store.GetByField("courses", "instructor_id", identity.ID)
	case models.RoleStudent:
		for _, rec := range cc.store.GetAll("courses") {
			if models.CourseFromRecord(rec).HasStudent(identity.ID) {
				recs = append(recs, rec)
			}
		}
	default:
		recs = cc.store.GetAll("courses")
	}

	out := make([]storage.Record, 0, len(recs))
	for _, rec := range recs {
		out = append(out, cc.enrich(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": out})
}

func (cc *CourseController) Get(w http.ResponseWriter, r *http.Request) {
	rec, ok := cc.store.GetByID("courses", r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "course not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"course": cc.enrich(rec)})
}

type createCourseRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Credits     int    `json:"credits"`
	Department  string `json:"department"`
}

func (cc *CourseController) Create(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Code == "" || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "code and name required"})
		return
	}
	identity, _ := providers.IdentityFrom(r)

	course := models.NewCourse(req.Code, req.Name, req.Description, req.Department, identity.ID, req.Credits, timeNow())
	saved, err := cc.store.Create("courses", course.ToRecord())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"course": saved, "message": "Course created"})
}

// enrich attaches the enrollment count and the instructor name, tolerating
// a dangling instructor_id.
func (cc *CourseController) enrich(rec storage.Record) storage.Record {
	course := models.CourseFromRecord(rec)
	out := rec.Clone()
	out["enrolled_count"] = len(course.Students)
	if instructor, ok := cc.store.GetByID("users", course.InstructorID); ok {
		out["instructor_name"] = instructor.GetString("name", "")
	}
	return out
}
