package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/MediaLibrary/internal/usecase"
	"github.com/google/uuid"
)

// UserHandler — обработчик HTTP-запросов входа/регистрации.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(uc usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUseCase: uc, logger: logger}
}

// authRequest — тело запроса входа/регистрации.
type authRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// authResponse — ответ входа/регистрации.
type authResponse struct {
	ID      uuid.UUID `json:"_id"`
	Name    string    `json:"name"`
	IsAdmin bool      `json:"isAdmin"`
	Message string    `json:"message"`
}

// Auth — одна точка для входа и регистрации:
// существующее имя с верным паролем — вход, новое имя — регистрация.
func (h *UserHandler) Auth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Please provide a name and password", h.logger)
		return
	}

	user, created, err := h.userUseCase.LoginOrRegister(r.Context(), req.Name, req.Password)
	if err != nil {
		code := statusFromError(err)
		switch code {
		case http.StatusBadRequest:
			respondWithError(w, code, "Please provide a name and password", h.logger)
		case http.StatusUnauthorized:
			respondWithError(w, code, "User already exists / Password does not match", h.logger)
		case http.StatusConflict:
			// Параллельная регистрация успела занять имя между проверкой и вставкой
			respondWithError(w, code, "This name is already taken, please sign in instead", h.logger)
		default:
			h.logger.Error("auth failed", "name", req.Name, "error", err)
			respondWithError(w, code, "Server error", h.logger)
		}
		return
	}

	resp := authResponse{ID: user.ID, Name: user.Name, IsAdmin: user.IsAdmin}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
		resp.Message = fmt.Sprintf("User %s created successfully!", user.Name)
	} else {
		resp.Message = fmt.Sprintf("Welcome back, %s!", user.Name)
	}

	respondWithJSON(w, status, resp, h.logger)
}
