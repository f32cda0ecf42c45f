package model

import (
	"database/sql"
	"time"
)

// NoteEntity is the persisted notes row.
type NoteEntity struct {
	ID        int64
	OwnerID   int64
	Title     string
	Content   string
	Summary   sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Summary   *string   `json:"summary"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResponse(n NoteEntity) NoteResponse {
	resp := NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		OwnerID:   n.OwnerID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.Summary.Valid {
		s := n.Summary.String
		resp.Summary = &s
	}
	return resp
}

func ToResponses(notes []NoteEntity) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, ToResponse(n))
	}
	return out
}
