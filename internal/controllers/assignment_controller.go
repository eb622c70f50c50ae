package controllers

import (
	"net/http"

	"campusd/internal/models"
	"campusd/internal/providers"
	"campusd/internal/storage"
)

type AssignmentController struct {
	logger providers.Logger
	store  storage.StoreInterface
}

func NewAssignmentController(logger providers.Logger, store storage.StoreInterface) *AssignmentController {
	return &AssignmentController{logger: logger, store: store}
}

func (ac *AssignmentController) List(w http.ResponseWriter, r *http.Request) {
	courseID := r.URL.Query().Get("course_id")

	var recs []storage.Record
	if courseID != "" {
		recs = ac.store.GetByField("assignments", "course_id", courseID)
	} else {
		recs = ac.store.GetAll("assignments")
	}
	writeJSON(w, http.StatusOK, map[string]any{"assignments": recs})
}

func (ac *AssignmentController) Get(w http.ResponseWriter, r *http.Request) {
	rec, ok := ac.store.GetByID("assignments", r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "assignment not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assignment": rec})
}

type createAssignmentRequest struct {
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	MaxMarks    int    `json:"max_marks"`
}

func (ac *AssignmentController) Create(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.CourseID == "" || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "course_id and title required"})
		return
	}
	if req.MaxMarks <= 0 {
		req.MaxMarks = 100
	}
	identity, _ := providers.IdentityFrom(r)

	assignment := models.NewAssignment(req.CourseID, req.Title, req.Description, req.DueDate, identity.ID, req.MaxMarks, timeNow())
	saved, err := ac.store.Create("assignments", assignment.ToRecord())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"assignment": saved, "message": "Assignment created"})
}

// Grades lists grade records scoped to the caller: students see their own,
// faculty and admins can filter by course or student.
func (ac *AssignmentController) Grades(w http.ResponseWriter, r *http.Request) {
	identity, _ := providers.IdentityFrom(r)

	filters := map[string]any{}
	if identity.Role == models.RoleStudent {
		filters["student_id"] = identity.ID
	} else {
		if v := r.URL.Query().Get("student_id"); v != "" {
			filters["student_id"] = v
		}
	}
	if v := r.URL.Query().Get("course_id"); v != "" {
		filters["course_id"] = v
	}

	writeJSON(w, http.StatusOK, map[string]any{"grades": ac.store.Query("grades", filters)})
}
