package controllers

import (
	"net/http"

	"campusd/internal/models"
	"campusd/internal/providers"
	"campusd/internal/services"
	"campusd/internal/storage"
)

type AdminController struct {
	logger  providers.Logger
	store   storage.StoreInterface
	auth    services.AuthServiceInterface
	archive services.ArchiveServiceInterface
}

func NewAdminController(logger providers.Logger, store storage.StoreInterface, auth services.AuthServiceInterface, archive services.ArchiveServiceInterface) *AdminController {
	return &AdminController{logger: logger, store: store, auth: auth, archive: archive}
}

func (ac *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")

	var recs []storage.Record
	if role != "" {
		recs = ac.store.GetByField("users", "role", role)
	} else {
		recs = ac.store.GetAll("users")
	}

	out := make([]storage.Record, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.UserFromRecord(rec).Sanitized())
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": out})
}

func (ac *AdminController) GetUser(w http.ResponseWriter, r *http.Request) {
	rec, ok := ac.store.GetByID("users", r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": models.UserFromRecord(rec).Sanitized()})
}

// CreateUser is registration on behalf of someone else, admin-gated at the
// route level.
func (ac *AdminController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := ac.auth.Register(req.Email, req.Password, req.Name, req.Role, req.Department)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user.Sanitized()})
}

type bulkCreateRequest struct {
	Users []registerRequest `json:"users"`
}

type bulkCreateError struct {
	Index int    `json:"index"`
	Email string `json:"email,omitempty"`
	Error string `json:"error"`
}

// BulkCreateUsers registers a batch of accounts in one call, reporting
// per-row outcomes. A bad row is skipped, not fatal to the batch.
func (ac *AdminController) BulkCreateUsers(w http.ResponseWriter, r *http.Request) {
	var req bulkCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Users) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no users provided"})
		return
	}

	created := []storage.Record{}
	failures := []bulkCreateError{}
	for i, row := range req.Users {
		user, err := ac.auth.Register(row.Email, row.Password, row.Name, row.Role, row.Department)
		if err != nil {
			failures = append(failures, bulkCreateError{Index: i, Email: row.Email, Error: err.Error()})
			continue
		}
		created = append(created, user.Sanitized())
	}

	ac.logger.Infof(providers.TypeApp, "Bulk create: %d created, %d failed", len(created), len(failures))
	writeJSON(w, http.StatusCreated, map[string]any{
		"created": created,
		"errors":  failures,
	})
}

type updateUserRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Email      *string `json:"email"`
}

// UpdateUser merges only the provided fields.
func (ac *AdminController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if len(fields) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no fields to update"})
		return
	}

	rec, found, err := ac.store.Update("users", r.PathValue("id"), fields)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": models.UserFromRecord(rec).Sanitized()})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (ac *AdminController) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	switch req.Role {
	case models.RoleStudent, models.RoleFaculty, models.RoleAdmin:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown role"})
		return
	}

	rec, found, err := ac.store.Update("users", r.PathValue("id"), map[string]any{"role": req.Role})
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": models.UserFromRecord(rec).Sanitized()})
}

// DeactivateUser flips is_active off instead of deleting, so the account
// and its history survive.
func (ac *AdminController) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	ac.setActive(w, r, false, "User deactivated")
}

func (ac *AdminController) RestoreUser(w http.ResponseWriter, r *http.Request) {
	ac.setActive(w, r, true, "User restored")
}

func (ac *AdminController) setActive(w http.ResponseWriter, r *http.Request, active bool, message string) {
	_, found, err := ac.store.Update("users", r.PathValue("id"), map[string]any{"is_active": active})
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (ac *AdminController) SystemStats(w http.ResponseWriter, r *http.Request) {
	stats := make(map[string]int, len(storage.Collections))
	for _, name := range storage.Collections {
		stats[name] = ac.store.Count(name, nil)
	}
	writeJSON(w, http.StatusOK, map[string]any{"collections": stats})
}

// Archive writes a compressed snapshot of every collection.
func (ac *AdminController) Archive(w http.ResponseWriter, r *http.Request) {
	name, err := ac.archive.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"archive": name})
}

// DownloadArchive serves a snapshot back as plain JSON.
func (ac *AdminController) DownloadArchive(w http.ResponseWriter, r *http.Request) {
	data, err := ac.archive.Load(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, data)
}
