package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	authorhandler "library-backend/internal/domains/author/handler"
	authorrepo "library-backend/internal/domains/author/repository"
	authorservice "library-backend/internal/domains/author/service"
	bookhandler "library-backend/internal/domains/book/handler"
	bookrepo "library-backend/internal/domains/book/repository"
	bookservice "library-backend/internal/domains/book/service"
	bookauthorhandler "library-backend/internal/domains/bookauthor/handler"
	bookauthorrepo "library-backend/internal/domains/bookauthor/repository"
	bookauthorservice "library-backend/internal/domains/bookauthor/service"
	bookgradelevelhandler "library-backend/internal/domains/bookgradelevel/handler"
	bookgradelevelrepo "library-backend/internal/domains/bookgradelevel/repository"
	bookgradelevelservice "library-backend/internal/domains/bookgradelevel/service"
	gradelevelhandler "library-backend/internal/domains/gradelevel/handler"
	gradelevelrepo "library-backend/internal/domains/gradelevel/repository"
	gradelevelservice "library-backend/internal/domains/gradelevel/service"
	imagehandler "library-backend/internal/domains/image/handler"
	imagerepo "library-backend/internal/domains/image/repository"
	imageservice "library-backend/internal/domains/image/service"
	locationhandler "library-backend/internal/domains/location/handler"
	locationrepo "library-backend/internal/domains/location/repository"
	locationservice "library-backend/internal/domains/location/service"
	publisherhandler "library-backend/internal/domains/publisher/handler"
	publisherrepo "library-backend/internal/domains/publisher/repository"
	publisherservice "library-backend/internal/domains/publisher/service"
	readerhandler "library-backend/internal/domains/reader/handler"
	readerrepo "library-backend/internal/domains/reader/repository"
	readerservice "library-backend/internal/domains/reader/service"
	readertypehandler "library-backend/internal/domains/readertype/handler"
	readertyperepo "library-backend/internal/domains/readertype/repository"
	readertypeservice "library-backend/internal/domains/readertype/service"
	reservationhandler "library-backend/internal/domains/reservation/handler"
	reservationrepo "library-backend/internal/domains/reservation/repository"
	reservationservice "library-backend/internal/domains/reservation/service"
	userhandler "library-backend/internal/domains/user/handler"
	userrepo "library-backend/internal/domains/user/repository"
	userservice "library-backend/internal/domains/user/service"
	"library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/queue"
	"library-backend/internal/infrastructure/storage"
	"library-backend/pkg/jwt"
)

// application gom toàn bộ wired dependencies của API process.
// Wiring là explicit construction: đọc từ trên xuống thấy rõ từng dependency.
type application struct {
	cfg   *config.Config
	db    *database.PostgresDB
	redis *cache.RedisClient

	jwtManager *jwt.Manager

	authorHandler         *authorhandler.AuthorHandler
	publisherHandler      *publisherhandler.PublisherHandler
	gradeLevelHandler     *gradelevelhandler.GradeLevelHandler
	locationHandler       *locationhandler.LocationHandler
	readerTypeHandler     *readertypehandler.ReaderTypeHandler
	readerHandler         *readerhandler.ReaderHandler
	bookHandler           *bookhandler.BookHandler
	bookAuthorHandler     *bookauthorhandler.BookAuthorHandler
	bookGradeLevelHandler *bookgradelevelhandler.BookGradeLevelHandler
	imageHandler          *imagehandler.ImageHandler
	reservationHandler    *reservationhandler.ReservationHandler
	userHandler           *userhandler.UserHandler
}

func buildApplication(ctx context.Context) (*application, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, nil, err
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, nil, err
	}

	redis := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redis.Ping(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		redis.Close()
		db.Close()
		return nil, nil, err
	}

	notifier := queue.NewAsynqNotifier(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	pool := db.Pool

	// Repositories
	authorRepo := authorrepo.NewPostgresRepository(pool, redis)
	publisherRepo := publisherrepo.NewPostgresRepository(pool)
	gradeLevelRepo := gradelevelrepo.NewPostgresRepository(pool)
	locationRepo := locationrepo.NewPostgresRepository(pool)
	readerTypeRepo := readertyperepo.NewPostgresRepository(pool)
	readerRepo := readerrepo.NewPostgresRepository(pool)
	bookRepo := bookrepo.NewPostgresRepository(pool, redis)
	bookAuthorRepo := bookauthorrepo.NewPostgresRepository(pool)
	bookGradeLevelRepo := bookgradelevelrepo.NewPostgresRepository(pool)
	imageRepo := imagerepo.NewPostgresRepository(pool)
	reservationRepo := reservationrepo.NewPostgresRepository(pool)
	userRepo := userrepo.NewPostgresRepository(pool)

	// Services
	authorService := authorservice.NewAuthorService(authorRepo)
	publisherService := publisherservice.NewPublisherService(publisherRepo)
	gradeLevelService := gradelevelservice.NewGradeLevelService(gradeLevelRepo)
	locationService := locationservice.NewLocationService(locationRepo)
	readerTypeService := readertypeservice.NewReaderTypeService(readerTypeRepo)
	readerService := readerservice.NewReaderService(readerRepo, readerTypeRepo)
	bookService := bookservice.NewBookService(bookRepo, publisherRepo, locationRepo)
	bookAuthorService := bookauthorservice.NewBookAuthorService(bookAuthorRepo, bookRepo, authorRepo)
	bookGradeLevelService := bookgradelevelservice.NewBookGradeLevelService(bookGradeLevelRepo, bookRepo, gradeLevelRepo)
	imageService := imageservice.NewImageService(imageRepo, minioStorage, storage.NewImageProcessor())
	reservationService := reservationservice.NewReservationService(reservationRepo, readerRepo, bookRepo, notifier)
	userService := userservice.NewUserService(userRepo, jwtManager)

	app := &application{
		cfg:        cfg,
		db:         db,
		redis:      redis,
		jwtManager: jwtManager,

		authorHandler:         authorhandler.NewAuthorHandler(authorService),
		publisherHandler:      publisherhandler.NewPublisherHandler(publisherService),
		gradeLevelHandler:     gradelevelhandler.NewGradeLevelHandler(gradeLevelService),
		locationHandler:       locationhandler.NewLocationHandler(locationService),
		readerTypeHandler:     readertypehandler.NewReaderTypeHandler(readerTypeService),
		readerHandler:         readerhandler.NewReaderHandler(readerService),
		bookHandler:           bookhandler.NewBookHandler(bookService),
		bookAuthorHandler:     bookauthorhandler.NewBookAuthorHandler(bookAuthorService),
		bookGradeLevelHandler: bookgradelevelhandler.NewBookGradeLevelHandler(bookGradeLevelService),
		imageHandler:          imagehandler.NewImageHandler(imageService),
		reservationHandler:    reservationhandler.NewReservationHandler(reservationService),
		userHandler:           userhandler.NewUserHandler(userService),
	}

	cleanup := func() {
		if err := notifier.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close asynq client")
		}
		if err := redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
		db.Close()
	}

	return app, cleanup, nil
}

func Serve() {
	ctx := context.Background()

	app, cleanup, err := buildApplication(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application")
	}
	defer cleanup()

	router := SetupRouter(app)

	port := app.cfg.App.Port
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", port),
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info().Str("port", port).Str("environment", app.cfg.App.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited gracefully")
}

// healthCheckHandler kiểm tra database và Redis connectivity.
func healthCheckHandler(app *application) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{"database": "ok", "redis": "ok"}

		if err := app.db.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		}
		if err := app.redis.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks["redis"] = err.Error()
		}

		c.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"version": app.cfg.App.Version,
			"checks":  checks,
		})
	}
}
