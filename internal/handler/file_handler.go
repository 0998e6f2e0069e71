package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/GoArmGo/MediaLibrary/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadMemory = 32 << 20 // 32 MiB в памяти, остальное во временных файлах

// FileHandler — обработчик HTTP-запросов для работы с файлами.
type FileHandler struct {
	fileUseCase   usecase.FileUseCase
	uploadLimiter chan struct{}
	logger        *slog.Logger
}

// NewFileHandler создаёт новый экземпляр FileHandler.
func NewFileHandler(uc usecase.FileUseCase, limiter chan struct{}, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileUseCase:   uc,
		uploadLimiter: limiter,
		logger:        logger,
	}
}

// UploadFile — принимает multipart-загрузку файла в библиотеку.
// Число одновременных загрузок ограничено лимитером.
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	select {
	case h.uploadLimiter <- struct{}{}:
		defer func() { <-h.uploadLimiter }()
	case <-r.Context().Done():
		respondWithError(w, http.StatusServiceUnavailable, "Upload capacity exhausted, try again later", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form", h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "No file uploaded", h.logger)
		return
	}
	defer file.Close()

	libraryID, err := uuid.Parse(r.FormValue("libraryId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Library ID is required", h.logger)
		return
	}
	userID, err := uuid.Parse(r.FormValue("userId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "User ID is required", h.logger)
		return
	}

	input := usecase.UploadFileInput{
		LibraryID:    libraryID,
		UserID:       userID,
		OriginalName: header.Filename,
		Description:  r.FormValue("description"),
		Mimetype:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      file,
	}

	saved, err := h.fileUseCase.UploadFile(r.Context(), input)
	if err != nil {
		h.logger.Error("failed to upload file", "library_id", libraryID, "error", err)
		code := statusFromError(err)
		switch code {
		case http.StatusBadRequest:
			respondWithError(w, code, "Invalid file type. Only JPG, JPEG, and PNG are allowed.", h.logger)
		case http.StatusNotFound:
			respondWithError(w, code, "Associated library not found", h.logger)
		default:
			respondWithError(w, code, "Server error during upload", h.logger)
		}
		return
	}

	h.logger.Info("file uploaded", "file_id", saved.ID, "library_id", libraryID)
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "File uploaded successfully",
		"file":    saved,
	}, h.logger)
}

// ListFiles — отдаёт файлы библиотеки в порядке, заданном параметром sort.
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	libraryName := r.URL.Query().Get("libraryName")
	if libraryName == "" {
		respondWithError(w, http.StatusBadRequest, "Library name is required", h.logger)
		return
	}
	sort := r.URL.Query().Get("sort")

	files, err := h.fileUseCase.ListFilesByLibrary(r.Context(), libraryName, sort)
	if err != nil {
		h.logger.Error("failed to list files", "library_name", libraryName, "sort", sort, "error", err)
		code := statusFromError(err)
		switch {
		case code == http.StatusNotFound:
			respondWithError(w, code, "Library '"+libraryName+"' not found", h.logger)
		case errors.Is(err, domain.ErrInvalidArgument):
			respondWithError(w, code, "Unrecognized sort value", h.logger)
		default:
			respondWithError(w, code, "Server error", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, files, h.logger)
}

// GetFile — отдаёт один файл с автором и списками событий.
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file id", h.logger)
		return
	}

	file, err := h.fileUseCase.GetFile(r.Context(), id)
	if err != nil {
		code := statusFromError(err)
		if code == http.StatusNotFound {
			respondWithError(w, code, "File not found", h.logger)
			return
		}
		h.logger.Error("failed to get file", "file_id", id, "error", err)
		respondWithError(w, code, "Server error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, file, h.logger)
}

// reactionRequest — тело запроса переключения реакции.
type reactionRequest struct {
	UserID uuid.UUID `json:"userId"`
	Action string    `json:"action"`
}

// ToggleReaction — переключает лайк/дизлайк и возвращает обновлённый файл.
func (h *FileHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file id", h.logger)
		return
	}

	var req reactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	file, err := h.fileUseCase.ToggleReaction(r.Context(), id, req.UserID, req.Action)
	if err != nil {
		code := statusFromError(err)
		switch code {
		case http.StatusBadRequest:
			respondWithError(w, code, "Action must be 'like' or 'dislike'", h.logger)
		case http.StatusNotFound:
			respondWithError(w, code, "File not found", h.logger)
		default:
			h.logger.Error("failed to toggle reaction", "file_id", id, "error", err)
			respondWithError(w, code, "Server error", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, file, h.logger)
}

// viewRequest — тело запроса записи просмотра.
type viewRequest struct {
	UserID uuid.UUID `json:"userId"`
}

// RecordView — фиксирует просмотр файла (идемпотентно).
func (h *FileHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file id", h.logger)
		return
	}

	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := h.fileUseCase.RecordView(r.Context(), id, req.UserID); err != nil {
		code := statusFromError(err)
		switch code {
		case http.StatusBadRequest:
			respondWithError(w, code, "User ID is required", h.logger)
		case http.StatusNotFound:
			respondWithError(w, code, "File not found", h.logger)
		default:
			h.logger.Error("failed to record view", "file_id", id, "error", err)
			respondWithError(w, code, "Server error", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "View recorded"}, h.logger)
}

// DeleteFile — освобождает объект в хранилище и удаляет запись файла.
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file id", h.logger)
		return
	}

	if err := h.fileUseCase.DeleteFile(r.Context(), id); err != nil {
		code := statusFromError(err)
		switch code {
		case http.StatusNotFound:
			respondWithError(w, code, "File not found", h.logger)
		default:
			h.logger.Error("failed to delete file", "file_id", id, "error", err)
			respondWithError(w, code, "Server error during deletion", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"}, h.logger)
}
