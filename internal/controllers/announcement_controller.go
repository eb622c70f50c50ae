package controllers

import (
	"net/http"
	"sort"

	"campusd/internal/models"
	"campusd/internal/providers"
	"campusd/internal/storage"
)

type AnnouncementController struct {
	logger providers.Logger
	store  storage.StoreInterface
}

func NewAnnouncementController(logger providers.Logger, store storage.StoreInterface) *AnnouncementController {
	return &AnnouncementController{logger: logger, store: store}
}

// List returns announcements newest first, pinned ones ahead of the rest.
func (ac *AnnouncementController) List(w http.ResponseWriter, r *http.Request) {
	recs := ac.store.GetAll("announcements")
	items := make([]models.Announcement, 0, len(recs))
	for _, rec := range recs {
		items = append(items, models.AnnouncementFromRecord(rec))
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsPinned != items[j].IsPinned {
			return items[i].IsPinned
		}
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	out := make([]storage.Record, 0, len(items))
	for _, item := range items {
		out = append(out, item.ToRecord())
	}
	writeJSON(w, http.StatusOK, map[string]any{"announcements": out})
}

type createAnnouncementRequest struct {
	Title          string `json:"title"`
	Content        string `json:"content"`
	Category       string `json:"category"`
	TargetAudience string `json:"target_audience"`
	AuthorName     string `json:"author_name"`
}

func (ac *AnnouncementController) Create(w http.ResponseWriter, r *http.Request) {
	var req createAnnouncementRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and content required"})
		return
	}
	identity, _ := providers.IdentityFrom(r)

	authorName := req.AuthorName
	if authorName == "" {
		if user, ok := ac.store.GetByID("users", identity.ID); ok {
			authorName = user.GetString("name", "")
		}
	}

	ann := models.NewAnnouncement(req.Title, req.Content, identity.ID, authorName, req.Category, req.TargetAudience, timeNow())
	saved, err := ac.store.Create("announcements", ann.ToRecord())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"announcement": saved, "message": "Announcement posted"})
}

// Delete is restricted to the author or an admin.
func (ac *AnnouncementController) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, ok := ac.store.GetByID("announcements", id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "announcement not found"})
		return
	}
	identity, _ := providers.IdentityFrom(r)
	if rec.GetString("author_id", "") != identity.ID && identity.Role != models.RoleAdmin {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not allowed"})
		return
	}

	if _, err := ac.store.Delete("announcements", id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}
