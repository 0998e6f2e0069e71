package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/GoArmGo/MediaLibrary/internal/messaging/payloads"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateLibrary(t *testing.T) {
	ls := new(mockLibraryStorage)
	uc := NewLibraryUseCase(ls, new(mockFileStorage), new(mockAssetStorage), nil, testLogger())

	ls.On("SaveLibrary", mock.Anything, mock.MatchedBy(func(l *domain.Library) bool {
		return l.Name == "My Trip"
	})).Return(nil)

	got, err := uc.CreateLibrary(context.Background(), &domain.Library{Name: "  My Trip  "})
	require.NoError(t, err)
	assert.Equal(t, "My Trip", got.Name)
}

func TestCreateLibrary_EmptyName(t *testing.T) {
	ls := new(mockLibraryStorage)
	uc := NewLibraryUseCase(ls, new(mockFileStorage), new(mockAssetStorage), nil, testLogger())

	_, err := uc.CreateLibrary(context.Background(), &domain.Library{Name: "   "})
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	ls.AssertNotCalled(t, "SaveLibrary", mock.Anything, mock.Anything)
}

func TestDeleteLibrary_CascadeOrder(t *testing.T) {
	ls := new(mockLibraryStorage)
	fs := new(mockFileStorage)
	as := new(mockAssetStorage)
	uc := NewLibraryUseCase(ls, fs, as, nil, testLogger())

	libID := uuid.New()
	assetIDs := []string{"libraries/trip/a", "libraries/trip/b"}

	// порядок каскада: объекты -> записи файлов -> библиотека
	var steps []string
	ls.On("GetLibraryByID", mock.Anything, libID).Return(&domain.Library{ID: libID, Name: "Trip"}, nil)
	fs.On("ListAssetIDsByLibrary", mock.Anything, libID).Return(assetIDs, nil)
	as.On("DeleteAssets", mock.Anything, assetIDs).Run(func(mock.Arguments) {
		steps = append(steps, "assets")
	}).Return(nil)
	fs.On("DeleteFilesByLibrary", mock.Anything, libID).Run(func(mock.Arguments) {
		steps = append(steps, "files")
	}).Return(nil)
	ls.On("DeleteLibrary", mock.Anything, libID).Run(func(mock.Arguments) {
		steps = append(steps, "library")
	}).Return(nil)

	require.NoError(t, uc.DeleteLibrary(context.Background(), libID))
	assert.Equal(t, []string{"assets", "files", "library"}, steps)
}

func TestDeleteLibrary_UpstreamFailureEnqueuesRetry(t *testing.T) {
	ls := new(mockLibraryStorage)
	fs := new(mockFileStorage)
	as := new(mockAssetStorage)
	pub := new(mockCleanupPublisher)
	uc := NewLibraryUseCase(ls, fs, as, pub, testLogger())

	libID := uuid.New()
	ls.On("GetLibraryByID", mock.Anything, libID).Return(&domain.Library{ID: libID}, nil)
	fs.On("ListAssetIDsByLibrary", mock.Anything, libID).Return([]string{"k1"}, nil)
	as.On("DeleteAssets", mock.Anything, []string{"k1"}).Return(errors.New("minio down"))
	pub.On("PublishLibraryCleanup", mock.Anything, mock.MatchedBy(func(p payloads.LibraryCleanupPayload) bool {
		return p.LibraryID == libID
	})).Return(nil)

	err := uc.DeleteLibrary(context.Background(), libID)
	assert.True(t, errors.Is(err, domain.ErrUpstream))

	// бд нетронута, повтор сможет пройти тот же путь
	fs.AssertNotCalled(t, "DeleteFilesByLibrary", mock.Anything, mock.Anything)
	ls.AssertNotCalled(t, "DeleteLibrary", mock.Anything, mock.Anything)
	pub.AssertExpectations(t)
}

func TestDeleteLibrary_EmptyLibrarySkipsRelease(t *testing.T) {
	ls := new(mockLibraryStorage)
	fs := new(mockFileStorage)
	as := new(mockAssetStorage)
	uc := NewLibraryUseCase(ls, fs, as, nil, testLogger())

	libID := uuid.New()
	ls.On("GetLibraryByID", mock.Anything, libID).Return(&domain.Library{ID: libID}, nil)
	fs.On("ListAssetIDsByLibrary", mock.Anything, libID).Return([]string{}, nil)
	fs.On("DeleteFilesByLibrary", mock.Anything, libID).Return(nil)
	ls.On("DeleteLibrary", mock.Anything, libID).Return(nil)

	require.NoError(t, uc.DeleteLibrary(context.Background(), libID))
	as.AssertNotCalled(t, "DeleteAssets", mock.Anything, mock.Anything)
}

func TestDeleteLibrary_ConcurrentRetryTolerated(t *testing.T) {
	ls := new(mockLibraryStorage)
	fs := new(mockFileStorage)
	uc := NewLibraryUseCase(ls, fs, new(mockAssetStorage), nil, testLogger())

	libID := uuid.New()
	ls.On("GetLibraryByID", mock.Anything, libID).Return(&domain.Library{ID: libID}, nil)
	fs.On("ListAssetIDsByLibrary", mock.Anything, libID).Return([]string{}, nil)
	fs.On("DeleteFilesByLibrary", mock.Anything, libID).Return(nil)
	// параллельный повтор успел удалить библиотеку первым
	ls.On("DeleteLibrary", mock.Anything, libID).Return(domain.ErrNotFound)

	assert.NoError(t, uc.DeleteLibrary(context.Background(), libID))
}

func TestDeleteLibrary_NotFound(t *testing.T) {
	ls := new(mockLibraryStorage)
	uc := NewLibraryUseCase(ls, new(mockFileStorage), new(mockAssetStorage), nil, testLogger())

	libID := uuid.New()
	ls.On("GetLibraryByID", mock.Anything, libID).Return(nil, domain.ErrNotFound)

	err := uc.DeleteLibrary(context.Background(), libID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
