package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/MediaLibrary/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CommentHandler — обработчик HTTP-запросов для комментариев.
type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *slog.Logger
}

// NewCommentHandler создаёт новый экземпляр CommentHandler.
func NewCommentHandler(uc usecase.CommentUseCase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{commentUseCase: uc, logger: logger}
}

// ListComments — отдаёт комментарии файла, новые первыми.
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	fileID, err := uuid.Parse(chi.URLParam(r, "fileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file id", h.logger)
		return
	}

	comments, err := h.commentUseCase.ListComments(r.Context(), fileID)
	if err != nil {
		h.logger.Error("failed to list comments", "file_id", fileID, "error", err)
		respondWithError(w, statusFromError(err), "Server error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, comments, h.logger)
}

// addCommentRequest — тело запроса добавления комментария.
type addCommentRequest struct {
	UserID uuid.UUID `json:"userId"`
	Text   string    `json:"text"`
}

// AddComment — добавляет комментарий к файлу.
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	fileID, err := uuid.Parse(chi.URLParam(r, "fileId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file id", h.logger)
		return
	}

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	comment, err := h.commentUseCase.AddComment(r.Context(), fileID, req.UserID, req.Text)
	if err != nil {
		code := statusFromError(err)
		switch code {
		case http.StatusBadRequest:
			respondWithError(w, code, "User ID and comment text are required.", h.logger)
		case http.StatusNotFound:
			respondWithError(w, code, "File not found.", h.logger)
		default:
			h.logger.Error("failed to add comment", "file_id", fileID, "error", err)
			respondWithError(w, code, "Server error", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, comment, h.logger)
}
