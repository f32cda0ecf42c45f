package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notesai/internal/common"
	"notesai/internal/note/model"
	"notesai/pkg/logger"
)

const noteColumns = `id, owner_id, title, content, summary, created_at, updated_at`

// NoteRepository scopes every statement by owner_id, so a note that belongs to
// someone else is indistinguishable from one that does not exist.
type NoteRepository struct {
	DB *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (*model.NoteEntity, error) {
	n := &model.NoteEntity{}
	err := row.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.Summary, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.NoteEntity, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE owner_id = $1 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		logger.Sugar.Errorf("Failed to get notes for user %d: %v", ownerID, err)
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []model.NoteEntity{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Create(ctx context.Context, ownerID int64, title, content string) (*model.NoteEntity, error) {
	n, err := scanNote(r.DB.QueryRowContext(ctx,
		`INSERT INTO notes (owner_id, title, content) VALUES ($1, $2, $3) RETURNING `+noteColumns,
		ownerID, title, content))
	if err != nil {
		logger.Sugar.Errorf("Failed to create note for user %d: %v", ownerID, err)
		return nil, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) Get(ctx context.Context, id, ownerID int64) (*model.NoteEntity, error) {
	n, err := scanNote(r.DB.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1 AND owner_id = $2`, id, ownerID))
	return n, r.mapErr("get", id, err)
}

// Update overwrites title and content, drops any summary and bumps updated_at
// in one statement.
func (r *NoteRepository) Update(ctx context.Context, id, ownerID int64, title, content string) (*model.NoteEntity, error) {
	n, err := scanNote(r.DB.QueryRowContext(ctx,
		`UPDATE notes SET title = $1, content = $2, summary = NULL, updated_at = NOW()
		WHERE id = $3 AND owner_id = $4 RETURNING `+noteColumns,
		title, content, id, ownerID))
	return n, r.mapErr("update", id, err)
}

// SetSummary leaves updated_at alone.
func (r *NoteRepository) SetSummary(ctx context.Context, id, ownerID int64, summary string) (*model.NoteEntity, error) {
	n, err := scanNote(r.DB.QueryRowContext(ctx,
		`UPDATE notes SET summary = $1 WHERE id = $2 AND owner_id = $3 RETURNING `+noteColumns,
		summary, id, ownerID))
	return n, r.mapErr("set summary", id, err)
}

func (r *NoteRepository) Delete(ctx context.Context, id, ownerID int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete note %d: %v", id, err)
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *NoteRepository) mapErr(op string, id int64, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	logger.Sugar.Errorf("Failed to %s note %d: %v", op, id, err)
	return fmt.Errorf("%s note: %w", op, err)
}
