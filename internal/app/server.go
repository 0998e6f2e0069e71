package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/MediaLibrary/internal/config"
	"github.com/GoArmGo/MediaLibrary/internal/handler"
	"github.com/GoArmGo/MediaLibrary/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// runServer запускает HTTP сервер с REST API медиа-библиотеки
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	fileUseCase usecase.FileUseCase,
	libraryUseCase usecase.LibraryUseCase,
	userUseCase usecase.UserUseCase,
	commentUseCase usecase.CommentUseCase,
	uploadLimiter chan struct{},
) error {
	fileHandler := handler.NewFileHandler(fileUseCase, uploadLimiter, logger)
	libraryHandler := handler.NewLibraryHandler(libraryUseCase, logger)
	userHandler := handler.NewUserHandler(userUseCase, logger)
	commentHandler := handler.NewCommentHandler(commentUseCase, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/auth", userHandler.Auth)

		r.Route("/libraries", func(r chi.Router) {
			r.Get("/", libraryHandler.ListLibraries)
			r.Post("/", libraryHandler.CreateLibrary)
			r.Get("/by-name/{name}", libraryHandler.GetLibraryByName)
			r.Get("/{id}", libraryHandler.GetLibraryByID)
			r.Delete("/{id}", libraryHandler.DeleteLibrary)
		})

		r.Route("/files", func(r chi.Router) {
			r.Post("/upload", fileHandler.UploadFile)
			r.Get("/", fileHandler.ListFiles)
			r.Get("/{id}", fileHandler.GetFile)
			r.Delete("/{id}", fileHandler.DeleteFile)
			r.Put("/{id}/like", fileHandler.ToggleReaction)
			r.Post("/{id}/view", fileHandler.RecordView)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{fileId}", commentHandler.ListComments)
			r.Post("/{fileId}", commentHandler.AddComment)
		})
	})

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping HTTP server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("HTTP server stopped gracefully")
	return nil
}
