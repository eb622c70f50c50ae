package models

import (
	"time"

	"github.com/google/uuid"

	"campusd/internal/storage"
)

type Announcement struct {
	ID             string
	Title          string
	Content        string
	AuthorID       string
	AuthorName     string
	Category       string
	TargetAudience string
	IsPinned       bool
	PublishedAt    time.Time
}

func NewAnnouncement(title, content, authorID, authorName, category, audience string, now time.Time) Announcement {
	return Announcement{
		ID:             uuid.NewString(),
		Title:          title,
		Content:        content,
		AuthorID:       authorID,
		AuthorName:     authorName,
		Category:       category,
		TargetAudience: audience,
		PublishedAt:    now,
	}
}

func (a Announcement) ToRecord() storage.Record {
	return storage.Record{
		"id":              a.ID,
		"title":           a.Title,
		"content":         a.Content,
		"author_id":       a.AuthorID,
		"author_name":     a.AuthorName,
		"category":        a.Category,
		"target_audience": a.TargetAudience,
		"is_pinned":       a.IsPinned,
		"published_at":    a.PublishedAt.Format(time.RFC3339Nano),
	}
}

func AnnouncementFromRecord(rec storage.Record) Announcement {
	return Announcement{
		ID:             rec.GetString("id", ""),
		Title:          rec.GetString("title", ""),
		Content:        rec.GetString("content", ""),
		AuthorID:       rec.GetString("author_id", ""),
		AuthorName:     rec.GetString("author_name", ""),
		Category:       rec.GetString("category", "general"),
		TargetAudience: rec.GetString("target_audience", "all"),
		IsPinned:       rec.GetBool("is_pinned", false),
		PublishedAt:    parseTime(rec.GetString("published_at", "")),
	}
}
