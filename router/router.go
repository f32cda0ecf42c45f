package router

import (
	"database/sql"
	"net/http"

	"notesai/config"
	authHandler "notesai/internal/auth"
	authRepository "notesai/internal/auth/repository"
	authService "notesai/internal/auth/service"
	noteHandler "notesai/internal/note"
	noteRepository "notesai/internal/note/repository"
	noteService "notesai/internal/note/service"
	"notesai/middleware"
	"notesai/pkg/response"
)

func Setup(db *sql.DB, cfg *config.Config, summarizer noteService.Summarizer) http.Handler {
	mux := http.NewServeMux()

	userRepo := authRepository.NewUserRepository(db)
	authSvc := authService.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.AccessTokenTTL)
	authH := authHandler.NewAuthHandler(authSvc)

	noteRepo := noteRepository.NewNoteRepository(db)
	noteSvc := noteService.NewNoteService(noteRepo, summarizer)
	noteH := noteHandler.NewNoteHandler(noteSvc)

	auth := middleware.AuthMiddleware(authSvc)

	mux.HandleFunc("GET /healthz", health(db))

	mux.HandleFunc("POST /signup", authH.Signup)
	mux.HandleFunc("POST /token", authH.Login)

	mux.Handle("GET /notes", auth(http.HandlerFunc(noteH.ListNotes)))
	mux.Handle("POST /notes", auth(http.HandlerFunc(noteH.CreateNote)))
	mux.Handle("PUT /notes/{id}", auth(http.HandlerFunc(noteH.UpdateNote)))
	mux.Handle("DELETE /notes/{id}", auth(http.HandlerFunc(noteH.DeleteNote)))
	mux.Handle("POST /notes/{id}/summarize", auth(http.HandlerFunc(noteH.SummarizeNote)))

	return middleware.RequestLogger(middleware.CORSMiddleware(mux))
}

func health(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
