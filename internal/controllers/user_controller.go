package controllers

import (
	"net/http"
	"strings"

	"campusd/internal/models"
	"campusd/internal/providers"
	"campusd/internal/storage"
)

type UserController struct {
	logger providers.Logger
	store  storage.StoreInterface
}

func NewUserController(logger providers.Logger, store storage.StoreInterface) *UserController {
	return &UserController{logger: logger, store: store}
}

// Directory is the campus-wide people search: any authenticated user may
// browse it, so each entry carries only the public fields.
func (uc *UserController) Directory(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))

	out := []storage.Record{}
	for _, rec := range uc.store.GetAll("users") {
		name := strings.ToLower(rec.GetString("name", ""))
		email := strings.ToLower(rec.GetString("email", ""))
		if q != "" && !strings.Contains(name, q) && !strings.Contains(email, q) {
			continue
		}
		out = append(out, storage.Record{
			"id":         rec.GetString("id", ""),
			"name":       rec.GetString("name", ""),
			"email":      rec.GetString("email", ""),
			"role":       rec.GetString("role", ""),
			"department": rec.GetString("department", ""),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": out})
}

// Get returns a full profile, visible only to its owner or an admin.
func (uc *UserController) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := providers.IdentityFrom(r)
	id := r.PathValue("id")

	if identity.ID != id && identity.Role != models.RoleAdmin {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not allowed"})
		return
	}

	rec, ok := uc.store.GetByID("users", id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": models.UserFromRecord(rec).Sanitized()})
}

// protectedUserFields may never be set through a profile update; role is
// special-cased so only admins can change it.
var protectedUserFields = []string{"id", "email", "password_hash", "role", "created_at"}

// Update lets a user edit their own profile, or an admin edit anyone's.
func (uc *UserController) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := providers.IdentityFrom(r)
	id := r.PathValue("id")

	if identity.ID != id && identity.Role != models.RoleAdmin {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not allowed"})
		return
	}

	var fields map[string]any
	if !decodeBody(w, r, &fields) {
		return
	}

	var role any
	if identity.Role == models.RoleAdmin {
		role = fields["role"]
	}
	for _, f := range protectedUserFields {
		delete(fields, f)
	}
	if role != nil {
		fields["role"] = role
	}
	if len(fields) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no fields to update"})
		return
	}

	rec, found, err := uc.store.Update("users", id, fields)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}

	uc.logger.Infof(providers.TypeApp, "Profile %s updated by %s", id, identity.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"user":    models.UserFromRecord(rec).Sanitized(),
		"message": "Profile updated",
	})
}
