package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"notesai/client"
	"notesai/config"
	"notesai/config/database"
	"notesai/internal/summarizer"
	"notesai/pkg/logger"
	"notesai/router"
	"notesai/ui"
)

var uiLogFile string

var rootCmd = &cobra.Command{
	Use:   "notesai",
	Short: "Personal notes with AI summaries",
	Long: `notesai stores per-user Markdown notes behind a token-authenticated REST API
and can summarize any note with a configured LLM provider.

Run "notesai serve" for the API and "notesai ui" for the terminal client.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP API",
	RunE:  serve,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  migrate,
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the terminal client against NOTES_API_URL",
	RunE:  runUI,
}

func init() {
	uiCmd.Flags().StringVar(&uiLogFile, "log-file", "notesai-ui.log", "file the terminal client logs to")
	rootCmd.AddCommand(serveCmd, migrateCmd, uiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	ai := summarizer.FromConfig(ctx, cfg.AI)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.Setup(db, cfg, ai),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Sugar.Infow("notes API listening", "addr", cfg.HTTPAddr, "ai_configured", ai.Configured())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Sugar.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func migrate(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	db, err := database.Connect(cmd.Context(), cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.Migrate(cmd.Context(), db)
}

func runUI(_ *cobra.Command, _ []string) error {
	cfg := config.Load()
	f, err := logger.InitFile(cfg.LogLevel, uiLogFile)
	if err != nil {
		return err
	}
	defer f.Close()
	defer logger.Sync()

	logger.Sugar.Infow("terminal client starting", "api", cfg.APIURL)
	return ui.Run(client.New(cfg.APIURL))
}
