package di

import (
	"github.com/GoArmGo/MediaLibrary/internal/adapter/storage/minio"
	"github.com/GoArmGo/MediaLibrary/internal/app"
	"github.com/GoArmGo/MediaLibrary/internal/config"
	"github.com/GoArmGo/MediaLibrary/internal/database/client"
	"github.com/GoArmGo/MediaLibrary/internal/database/storage"
	"github.com/GoArmGo/MediaLibrary/internal/logger"
	"github.com/GoArmGo/MediaLibrary/internal/rabbitmq"
	"github.com/GoArmGo/MediaLibrary/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "medialibrary",
	})

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx + GORM поверх одного пула)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	fileStorage := storage.NewFileStorage(dbClient.DB, slogger)
	libraryStorage := storage.NewLibraryStorage(dbClient.Gorm, slogger)
	userStorage := storage.NewUserStorage(dbClient.Gorm, slogger)
	commentStorage := storage.NewCommentStorage(dbClient.Gorm, slogger)

	// 4. Инициализация клиента файлового хранилища (S3 / MinIO)
	assetStorage, err := minio.NewMinioClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 5. Инициализация RabbitMQ клиента (publisher и consumer — один клиент)
	queueClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 6. Инициализация бизнес-логики (usecases)
	fileUseCase := usecase.NewFileUseCase(fileStorage, libraryStorage, userStorage, assetStorage, slogger)
	libraryUseCase := usecase.NewLibraryUseCase(libraryStorage, fileStorage, assetStorage, queueClient, slogger)
	// Вариант для воркера: без publisher, чтобы ретрай не плодил задачи —
	// повтор при сбое делает сама очередь через nack
	cleanupUseCase := usecase.NewLibraryUseCase(libraryStorage, fileStorage, assetStorage, nil, slogger)
	userUseCase := usecase.NewUserUseCase(userStorage, slogger)
	commentUseCase := usecase.NewCommentUseCase(commentStorage, fileStorage, userStorage, slogger)

	// 7. Лимитер параллельных загрузок файлов
	uploadLimiter := make(chan struct{}, cfg.UploadConcurrency)

	// 8. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		queueClient,
		fileUseCase,
		libraryUseCase,
		cleanupUseCase,
		userUseCase,
		commentUseCase,
		queueClient,
		uploadLimiter,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
