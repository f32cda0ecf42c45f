package handler

import (
	"errors"
	"net/http"

	"notesai/internal/auth/model"
	"notesai/internal/auth/service"
	"notesai/internal/common"
	"notesai/pkg/logger"
	"notesai/pkg/response"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if !response.DecodeJSON(w, r, &req) {
		return
	}

	token, err := h.Service.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, common.ErrConflict) && !errors.Is(err, common.ErrValidation) {
			logger.Sugar.Errorf("Handler: Failed to sign up: %v", err)
		}
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, model.TokenResponse{AccessToken: token, TokenType: service.TokenType})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if !response.DecodeJSON(w, r, &req) {
		return
	}

	token, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			response.Unauthorized(w, "Incorrect username or password")
			return
		}
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, model.TokenResponse{AccessToken: token, TokenType: service.TokenType})
}
