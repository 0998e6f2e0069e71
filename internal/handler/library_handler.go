package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/GoArmGo/MediaLibrary/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// LibraryHandler — обработчик HTTP-запросов для работы с библиотеками.
type LibraryHandler struct {
	libraryUseCase usecase.LibraryUseCase
	logger         *slog.Logger
}

// NewLibraryHandler создаёт новый экземпляр LibraryHandler.
func NewLibraryHandler(uc usecase.LibraryUseCase, logger *slog.Logger) *LibraryHandler {
	return &LibraryHandler{libraryUseCase: uc, logger: logger}
}

// createLibraryRequest — тело запроса создания библиотеки.
type createLibraryRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsPublic    *bool      `json:"isPublic"`
	OwnerID     *uuid.UUID `json:"ownerId"`
}

// CreateLibrary — создаёт новую библиотеку.
func (h *LibraryHandler) CreateLibrary(w http.ResponseWriter, r *http.Request) {
	var req createLibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	library := &domain.Library{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    true,
		OwnerID:     req.OwnerID,
	}
	if req.IsPublic != nil {
		library.IsPublic = *req.IsPublic
	}

	created, err := h.libraryUseCase.CreateLibrary(r.Context(), library)
	if err != nil {
		code := statusFromError(err)
		switch code {
		case http.StatusBadRequest:
			respondWithError(w, code, "Library name is required", h.logger)
		case http.StatusConflict:
			respondWithError(w, code, "A library with this name already exists.", h.logger)
		default:
			h.logger.Error("failed to create library", "name", req.Name, "error", err)
			respondWithError(w, code, "Server error", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, created, h.logger)
}

// ListLibraries — все библиотеки для админа, публичные для остальных.
func (h *LibraryHandler) ListLibraries(w http.ResponseWriter, r *http.Request) {
	isAdmin := r.URL.Query().Get("isAdmin") == "true"

	libraries, err := h.libraryUseCase.ListLibraries(r.Context(), isAdmin)
	if err != nil {
		h.logger.Error("failed to list libraries", "error", err)
		respondWithError(w, statusFromError(err), "Server error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, libraries, h.logger)
}

// GetLibraryByID — отдаёт библиотеку по ID.
func (h *LibraryHandler) GetLibraryByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid library id", h.logger)
		return
	}

	library, err := h.libraryUseCase.GetLibraryByID(r.Context(), id)
	if err != nil {
		code := statusFromError(err)
		if code == http.StatusNotFound {
			respondWithError(w, code, "Library not found", h.logger)
			return
		}
		h.logger.Error("failed to get library", "library_id", id, "error", err)
		respondWithError(w, code, "Server error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, library, h.logger)
}

// GetLibraryByName — ищет библиотеку по имени без учёта регистра.
func (h *LibraryHandler) GetLibraryByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	library, err := h.libraryUseCase.GetLibraryByName(r.Context(), name)
	if err != nil {
		code := statusFromError(err)
		if code == http.StatusNotFound {
			respondWithError(w, code, "Library not found", h.logger)
			return
		}
		h.logger.Error("failed to get library by name", "name", name, "error", err)
		respondWithError(w, code, "Server error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, library, h.logger)
}

// DeleteLibrary — каскадно удаляет библиотеку вместе с файлами и их объектами.
func (h *LibraryHandler) DeleteLibrary(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid library id", h.logger)
		return
	}

	if err := h.libraryUseCase.DeleteLibrary(r.Context(), id); err != nil {
		code := statusFromError(err)
		switch code {
		case http.StatusNotFound:
			respondWithError(w, code, "Library not found", h.logger)
		case http.StatusBadGateway:
			// Каскад прерван на освобождении объектов: бд не тронута, повтор уже в очереди
			h.logger.Error("library cascade delete failed upstream", "library_id", id, "error", err)
			respondWithError(w, code, "Failed to release library assets, deletion will be retried", h.logger)
		default:
			h.logger.Error("failed to delete library", "library_id", id, "error", err)
			respondWithError(w, code, "Server error during deletion", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Library and all its files deleted successfully"}, h.logger)
}
