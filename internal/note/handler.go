package handler

import (
	"errors"
	"net/http"
	"strconv"

	"notesai/internal/common"
	"notesai/internal/note/model"
	"notesai/internal/note/service"
	"notesai/middleware"
	"notesai/pkg/logger"
	"notesai/pkg/response"
)

type NoteHandler struct {
	Service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{Service: service}
}

func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	notes, err := h.Service.List(r.Context(), user.ID)
	if err != nil {
		logger.Sugar.Errorf("Error fetching notes: %v", err)
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, model.ToResponses(notes))
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	var req model.NoteRequest
	if !response.DecodeJSON(w, r, &req) {
		return
	}

	n, err := h.Service.Create(r.Context(), user.ID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, model.ToResponse(*n))
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.target(w, r)
	if !ok {
		return
	}

	var req model.NoteRequest
	if !response.DecodeJSON(w, r, &req) {
		return
	}

	n, err := h.Service.Update(r.Context(), user, id, req)
	if err != nil {
		h.logUnexpected("update", id, err)
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, model.ToResponse(*n))
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), user, id); err != nil {
		h.logUnexpected("delete", id, err)
		response.FromError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) SummarizeNote(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.target(w, r)
	if !ok {
		return
	}

	n, err := h.Service.Summarize(r.Context(), user, id)
	if err != nil {
		h.logUnexpected("summarize", id, err)
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, model.ToResponse(*n))
}

// target extracts the caller and the {id} path value. An id that is not a
// number cannot name any note, so it is reported as 404.
func (h *NoteHandler) target(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return 0, 0, false
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		response.FromError(w, common.ErrNotFound)
		return 0, 0, false
	}
	return user.ID, id, true
}

func (h *NoteHandler) logUnexpected(op string, id int64, err error) {
	if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrValidation) {
		return
	}
	logger.Sugar.Errorf("Handler: Failed to %s note %d: %v", op, id, err)
}
