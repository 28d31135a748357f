// gastozerod is the expense-tracking backend: receipt upload intake, vision
// model extraction, normalization, classification and the HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/gastozero/backend/internal/classifier"
	"github.com/gastozero/backend/internal/common"
	"github.com/gastozero/backend/internal/llm/groq"
	"github.com/gastozero/backend/internal/pipeline"
	"github.com/gastozero/backend/internal/repository"
	"github.com/gastozero/backend/internal/server"
	"github.com/gastozero/backend/internal/storage"
)

func main() {
	// .env is a developer convenience; in production variables come from the
	// environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("main.config_invalid", "error", err)
		os.Exit(1)
	}
	if cfg.LLM.APIKey == "" {
		logger.Warn("main.llm_key_missing", "hint", "set GROQ_API_KEY; analysis requests will fail until it is")
	}

	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("main.db_open_failed", "error", err, "path", cfg.Database.Path)
		os.Exit(1)
	}
	users := repository.NewUserRepository(db)

	llmClient := groq.NewClient(groq.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		VisionModel: cfg.LLM.VisionModel,
		TextModel:   cfg.LLM.TextModel,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	store := storage.NewLocalStore(cfg.Upload.Dir, logger)
	cls := classifier.New(llmClient, logger)
	processor := pipeline.NewProcessor(store, llmClient, cls, logger)

	srv := server.New(cfg, users, processor, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("main.http_listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("main.http_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("main.shutdown_start")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("main.shutdown_failed", "error", err)
		os.Exit(1)
	}
	logger.Info("main.shutdown_complete")
}
