package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые мы переводим в классы доменных ошибок
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FileStorage — sqlx-реализация хранилища файлов и событий (лайки/дизлайки/просмотры).
// Все изменяющие операции — одиночные атомарные запросы: никакого read-modify-write.
type FileStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewFileStorage(db *sqlx.DB, logger *slog.Logger) *FileStorage {
	return &FileStorage{db: db, logger: logger}
}

// fileRow — строка выборки файла вместе с именем автора и счётчиками рейтинга
type fileRow struct {
	domain.File
	UploaderName string `db:"uploader_name"`
	MetricCount  int64  `db:"metric_count"`
	TotalLikes   int64  `db:"total_likes"`
}

// eventRow — строка события из file_reactions/file_views
type eventRow struct {
	FileID    uuid.UUID `db:"file_id"`
	UserID    uuid.UUID `db:"user_id"`
	Kind      string    `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
}

// SaveFile сохраняет метаданные файла в базе данных
func (s *FileStorage) SaveFile(ctx context.Context, file *domain.File) error {
	start := time.Now()

	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}

	query := `
	INSERT INTO files (id, library_id, uploaded_by, filename, original_name, description, mimetype, size, url, asset_id, uploaded_at)
	VALUES (:id, :library_id, :uploaded_by, :filename, :original_name, :description, :mimetype, :size, :url, :asset_id, :uploaded_at)
	`

	if _, err := s.db.NamedExecContext(ctx, query, file); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			return fmt.Errorf("%w: library or user does not exist", domain.ErrNotFound)
		}
		s.logger.Error("failed to save file", "file_id", file.ID, "error", err)
		return fmt.Errorf("ошибка при сохранении файла: %w", err)
	}

	s.logger.Info("file saved successfully",
		"file_id", file.ID,
		"library_id", file.LibraryID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetFileByID получает файл по ID вместе с автором и списками событий
func (s *FileStorage) GetFileByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	var row fileRow
	query := `
	SELECT f.*, u.name AS uploader_name
	FROM files f
	JOIN users u ON u.id = f.uploaded_by
	WHERE f.id = $1
	`

	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: file %s", domain.ErrNotFound, id)
		}
		s.logger.Error("failed to get file by id", "file_id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении файла по ID: %w", err)
	}

	file := row.File
	file.UploadedBy = &domain.UserRef{ID: file.UploadedByID, Name: row.UploaderName}

	files := []*domain.File{&file}
	if err := s.loadEvents(ctx, files); err != nil {
		return nil, err
	}
	return &file, nil
}

// ToggleReaction атомарно переключает реакцию пользователя одним запросом.
// Семантика: та же реакция снимается; противоположная замещается; иначе добавляется.
// Первичный ключ (file_id, user_id) исключает наличие лайка и дизлайка одновременно.
func (s *FileStorage) ToggleReaction(ctx context.Context, fileID, userID uuid.UUID, kind domain.ReactionKind) error {
	start := time.Now()

	if !kind.Valid() {
		return fmt.Errorf("%w: unknown reaction kind %q", domain.ErrInvalidArgument, kind)
	}

	query := `
	WITH removed AS (
		DELETE FROM file_reactions
		WHERE file_id = $1 AND user_id = $2 AND kind = $3
		RETURNING 1
	)
	INSERT INTO file_reactions (file_id, user_id, kind, created_at)
	SELECT $1, $2, $3, now()
	WHERE NOT EXISTS (SELECT 1 FROM removed)
	ON CONFLICT (file_id, user_id)
		DO UPDATE SET kind = EXCLUDED.kind, created_at = EXCLUDED.created_at
	`

	if _, err := s.db.ExecContext(ctx, query, fileID, userID, string(kind)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			return fmt.Errorf("%w: file or user does not exist", domain.ErrNotFound)
		}
		s.logger.Error("failed to toggle reaction",
			"file_id", fileID,
			"user_id", userID,
			"kind", kind,
			"error", err,
		)
		return fmt.Errorf("ошибка при переключении реакции: %w", err)
	}

	s.logger.Info("reaction toggled",
		"file_id", fileID,
		"user_id", userID,
		"kind", kind,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// RecordView фиксирует просмотр файла пользователем.
// Повторный просмотр — no-op: условная вставка по первичному ключу (file_id, user_id).
func (s *FileStorage) RecordView(ctx context.Context, fileID, userID uuid.UUID) error {
	query := `
	INSERT INTO file_views (file_id, user_id, created_at)
	VALUES ($1, $2, now())
	ON CONFLICT (file_id, user_id) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, fileID, userID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			return fmt.Errorf("%w: file or user does not exist", domain.ErrNotFound)
		}
		s.logger.Error("failed to record view", "file_id", fileID, "user_id", userID, "error", err)
		return fmt.Errorf("ошибка при записи просмотра: %w", err)
	}
	return nil
}

// ListFilesByLibrary возвращает файлы библиотеки в заданном порядке.
// Рейтинг считается базой: счётчик событий в окне, затем общее число лайков,
// затем дата загрузки — всё по убыванию. Чтение не меняет состояние.
func (s *FileStorage) ListFilesByLibrary(ctx context.Context, libraryID uuid.UUID, sort domain.Sort) ([]domain.File, error) {
	start := time.Now()

	var (
		rows []fileRow
		err  error
	)

	if sort.MostRecent {
		query := `
		SELECT f.*, u.name AS uploader_name
		FROM files f
		JOIN users u ON u.id = f.uploaded_by
		WHERE f.library_id = $1
		ORDER BY f.uploaded_at DESC
		`
		err = s.db.SelectContext(ctx, &rows, query, libraryID)
	} else {
		metricSQL := metricCountSQL(sort)
		query := fmt.Sprintf(`
		SELECT f.*, u.name AS uploader_name,
			%s AS metric_count,
			(SELECT COUNT(*) FROM file_reactions r WHERE r.file_id = f.id AND r.kind = 'like') AS total_likes
		FROM files f
		JOIN users u ON u.id = f.uploaded_by
		WHERE f.library_id = $1
		ORDER BY metric_count DESC, total_likes DESC, f.uploaded_at DESC
		`, metricSQL)

		if sort.Window > 0 {
			since := time.Now().Add(-sort.Window)
			err = s.db.SelectContext(ctx, &rows, query, libraryID, since)
		} else {
			err = s.db.SelectContext(ctx, &rows, query, libraryID)
		}
	}

	if err != nil {
		s.logger.Error("failed to list files by library", "library_id", libraryID, "error", err)
		return nil, fmt.Errorf("ошибка при получении файлов библиотеки: %w", err)
	}

	files := make([]domain.File, len(rows))
	refs := make([]*domain.File, len(rows))
	for i := range rows {
		files[i] = rows[i].File
		files[i].UploadedBy = &domain.UserRef{ID: files[i].UploadedByID, Name: rows[i].UploaderName}
		refs[i] = &files[i]
	}
	if err := s.loadEvents(ctx, refs); err != nil {
		return nil, err
	}

	s.logger.Info("files listed",
		"library_id", libraryID,
		"count", len(files),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return files, nil
}

// metricCountSQL строит подзапрос счётчика для выбранной метрики и окна.
// Значения метрики заданы перечислением, в SQL не попадает пользовательский ввод.
func metricCountSQL(sort domain.Sort) string {
	var cond string
	if sort.Metric == domain.MetricViews {
		cond = `SELECT COUNT(*) FROM file_views e WHERE e.file_id = f.id`
	} else {
		cond = `SELECT COUNT(*) FROM file_reactions e WHERE e.file_id = f.id AND e.kind = 'like'`
	}
	if sort.Window > 0 {
		cond += ` AND e.created_at >= $2`
	}
	return "(" + cond + ")"
}

// loadEvents подгружает списки likes/dislikes/views для набора файлов двумя запросами
func (s *FileStorage) loadEvents(ctx context.Context, files []*domain.File) error {
	byID := make(map[uuid.UUID]*domain.File, len(files))
	ids := make([]uuid.UUID, 0, len(files))
	for _, f := range files {
		f.Likes = make([]domain.ActionEvent, 0)
		f.Dislikes = make([]domain.ActionEvent, 0)
		f.Views = make([]domain.ActionEvent, 0)
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`
		SELECT file_id, user_id, kind, created_at
		FROM file_reactions
		WHERE file_id IN (?)
		ORDER BY created_at`, ids)
	if err != nil {
		return fmt.Errorf("ошибка построения запроса реакций: %w", err)
	}
	var reactions []eventRow
	if err := s.db.SelectContext(ctx, &reactions, s.db.Rebind(query), args...); err != nil {
		s.logger.Error("failed to load reactions", "error", err)
		return fmt.Errorf("ошибка при получении реакций: %w", err)
	}
	for _, e := range reactions {
		f := byID[e.FileID]
		ev := domain.ActionEvent{UserID: e.UserID, Date: e.CreatedAt}
		if e.Kind == string(domain.ReactionLike) {
			f.Likes = append(f.Likes, ev)
		} else {
			f.Dislikes = append(f.Dislikes, ev)
		}
	}

	query, args, err = sqlx.In(`
		SELECT file_id, user_id, created_at
		FROM file_views
		WHERE file_id IN (?)
		ORDER BY created_at`, ids)
	if err != nil {
		return fmt.Errorf("ошибка построения запроса просмотров: %w", err)
	}
	var views []eventRow
	if err := s.db.SelectContext(ctx, &views, s.db.Rebind(query), args...); err != nil {
		s.logger.Error("failed to load views", "error", err)
		return fmt.Errorf("ошибка при получении просмотров: %w", err)
	}
	for _, e := range views {
		f := byID[e.FileID]
		f.Views = append(f.Views, domain.ActionEvent{UserID: e.UserID, Date: e.CreatedAt})
	}

	return nil
}

// ListAssetIDsByLibrary возвращает ключи объектов хранилища для всех файлов библиотеки
func (s *FileStorage) ListAssetIDsByLibrary(ctx context.Context, libraryID uuid.UUID) ([]string, error) {
	var assetIDs []string
	query := `SELECT asset_id FROM files WHERE library_id = $1`

	if err := s.db.SelectContext(ctx, &assetIDs, query, libraryID); err != nil {
		s.logger.Error("failed to list asset ids", "library_id", libraryID, "error", err)
		return nil, fmt.Errorf("ошибка при получении ключей объектов библиотеки: %w", err)
	}
	return assetIDs, nil
}

// DeleteFilesByLibrary удаляет все записи файлов библиотеки (события удаляются каскадом бд)
func (s *FileStorage) DeleteFilesByLibrary(ctx context.Context, libraryID uuid.UUID) error {
	query := `DELETE FROM files WHERE library_id = $1`

	res, err := s.db.ExecContext(ctx, query, libraryID)
	if err != nil {
		s.logger.Error("failed to delete files by library", "library_id", libraryID, "error", err)
		return fmt.Errorf("ошибка при удалении файлов библиотеки: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil {
		s.logger.Info("library files deleted", "library_id", libraryID, "count", n)
	}
	return nil
}

// DeleteFile удаляет запись файла (события удаляются каскадом бд)
func (s *FileStorage) DeleteFile(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete file", "file_id", id, "error", err)
		return fmt.Errorf("ошибка при удалении файла: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		s.logger.Error("failed to read affected rows", "file_id", id, "error", err)
		return fmt.Errorf("ошибка при удалении файла: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: file %s", domain.ErrNotFound, id)
	}

	s.logger.Info("file deleted", "file_id", id)
	return nil
}
