package service

import (
	"context"
	"fmt"
	"strings"

	"notesai/internal/common"
	"notesai/internal/note/model"
	"notesai/pkg/logger"
)

type NoteStore interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]model.NoteEntity, error)
	Create(ctx context.Context, ownerID int64, title, content string) (*model.NoteEntity, error)
	Get(ctx context.Context, id, ownerID int64) (*model.NoteEntity, error)
	Update(ctx context.Context, id, ownerID int64, title, content string) (*model.NoteEntity, error)
	SetSummary(ctx context.Context, id, ownerID int64, summary string) (*model.NoteEntity, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

// Summarizer never fails: problems come back as user-facing text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

type NoteService struct {
	Repo       NoteStore
	Summarizer Summarizer
}

func NewNoteService(repo NoteStore, summarizer Summarizer) *NoteService {
	return &NoteService{Repo: repo, Summarizer: summarizer}
}

func (s *NoteService) List(ctx context.Context, ownerID int64) ([]model.NoteEntity, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *NoteService) Create(ctx context.Context, ownerID int64, req model.NoteRequest) (*model.NoteEntity, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	n, err := s.Repo.Create(ctx, ownerID, req.Title, req.Content)
	if err != nil {
		return nil, err
	}
	logger.Sugar.Infow("Note created", "note_id", n.ID, "owner_id", ownerID)
	return n, nil
}

func (s *NoteService) Update(ctx context.Context, ownerID, id int64, req model.NoteRequest) (*model.NoteEntity, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, id, ownerID, req.Title, req.Content)
}

func (s *NoteService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.Repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	logger.Sugar.Infow("Note deleted", "note_id", id, "owner_id", ownerID)
	return nil
}

// Summarize stores whatever the summarizer returns, including its offline and
// failure notices. Only title, content and timestamps are left untouched.
func (s *NoteService) Summarize(ctx context.Context, ownerID, id int64) (*model.NoteEntity, error) {
	n, err := s.Repo.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	summary := s.Summarizer.Summarize(ctx, n.Content)
	return s.Repo.SetSummary(ctx, id, ownerID, summary)
}

func validate(req model.NoteRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", common.ErrValidation)
	}
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("%w: content cannot be empty", common.ErrValidation)
	}
	return nil
}
