package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/GoArmGo/MediaLibrary/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockFileUseCase struct{ mock.Mock }

func (m *mockFileUseCase) UploadFile(ctx context.Context, input usecase.UploadFileInput) (*domain.File, error) {
	args := m.Called(ctx, input)
	if f, ok := args.Get(0).(*domain.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileUseCase) GetFile(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*domain.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileUseCase) ListFilesByLibrary(ctx context.Context, libraryName, sort string) ([]domain.File, error) {
	args := m.Called(ctx, libraryName, sort)
	if f, ok := args.Get(0).([]domain.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileUseCase) ToggleReaction(ctx context.Context, fileID, userID uuid.UUID, action string) (*domain.File, error) {
	args := m.Called(ctx, fileID, userID, action)
	if f, ok := args.Get(0).(*domain.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileUseCase) RecordView(ctx context.Context, fileID, userID uuid.UUID) error {
	return m.Called(ctx, fileID, userID).Error(0)
}

func (m *mockFileUseCase) DeleteFile(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

var _ usecase.FileUseCase = (*mockFileUseCase)(nil)

// newFileRouter собирает маршруты файлов так же, как их монтирует сервер
func newFileRouter(uc usecase.FileUseCase) http.Handler {
	h := NewFileHandler(uc, make(chan struct{}, 1), testLogger())

	r := chi.NewRouter()
	r.Route("/api/files", func(r chi.Router) {
		r.Post("/upload", h.UploadFile)
		r.Get("/", h.ListFiles)
		r.Get("/{id}", h.GetFile)
		r.Delete("/{id}", h.DeleteFile)
		r.Put("/{id}/like", h.ToggleReaction)
		r.Post("/{id}/view", h.RecordView)
	})
	return r
}

func TestToggleReaction_ResponseShape(t *testing.T) {
	uc := new(mockFileUseCase)
	router := newFileRouter(uc)

	fileID := uuid.New()
	userID := uuid.New()
	uc.On("ToggleReaction", mock.Anything, fileID, userID, "like").Return(&domain.File{
		ID:       fileID,
		Likes:    []domain.ActionEvent{{UserID: userID, Date: time.Now()}},
		Dislikes: []domain.ActionEvent{},
		Views:    []domain.ActionEvent{},
	}, nil)

	body := `{"userId":"` + userID.String() + `","action":"like"}`
	req := httptest.NewRequest(http.MethodPut, "/api/files/"+fileID.String()+"/like", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.JSONEq(t, `"`+fileID.String()+`"`, string(resp["_id"]))

	var likes []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp["likes"], &likes))
	require.Len(t, likes, 1)
	assert.Equal(t, userID.String(), likes[0]["user"])

	// пустые списки сериализуются как [], не null
	assert.Equal(t, "[]", string(resp["dislikes"]))
	assert.Equal(t, "[]", string(resp["views"]))
}

func TestToggleReaction_InvalidActionRejected(t *testing.T) {
	uc := new(mockFileUseCase)
	router := newFileRouter(uc)

	fileID := uuid.New()
	uc.On("ToggleReaction", mock.Anything, fileID, mock.Anything, "love").
		Return(nil, domain.ErrInvalidArgument)

	body := `{"userId":"` + uuid.New().String() + `","action":"love"}`
	req := httptest.NewRequest(http.MethodPut, "/api/files/"+fileID.String()+"/like", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Action must be 'like' or 'dislike'"}`, rec.Body.String())
}

func TestRecordView_Ack(t *testing.T) {
	uc := new(mockFileUseCase)
	router := newFileRouter(uc)

	fileID := uuid.New()
	userID := uuid.New()
	uc.On("RecordView", mock.Anything, fileID, userID).Return(nil)

	body := `{"userId":"` + userID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/files/"+fileID.String()+"/view", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"View recorded"}`, rec.Body.String())
}

func TestGetFile_NotFound(t *testing.T) {
	uc := new(mockFileUseCase)
	router := newFileRouter(uc)

	fileID := uuid.New()
	uc.On("GetFile", mock.Anything, fileID).Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/files/"+fileID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"File not found"}`, rec.Body.String())
}

func TestListFiles_RequiresLibraryName(t *testing.T) {
	router := newFileRouter(new(mockFileUseCase))

	req := httptest.NewRequest(http.MethodGet, "/api/files/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Library name is required"}`, rec.Body.String())
}

func TestListFiles_PassesSort(t *testing.T) {
	uc := new(mockFileUseCase)
	router := newFileRouter(uc)

	uc.On("ListFilesByLibrary", mock.Anything, "Trip", "most-liked-this-week").
		Return([]domain.File{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/files/?libraryName=Trip&sort=most-liked-this-week", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestDeleteFile_OK(t *testing.T) {
	uc := new(mockFileUseCase)
	router := newFileRouter(uc)

	fileID := uuid.New()
	uc.On("DeleteFile", mock.Anything, fileID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/files/"+fileID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"File deleted successfully"}`, rec.Body.String())
}
