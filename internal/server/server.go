package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/edutrack/apiserver/config"
	"github.com/edutrack/apiserver/internal/auth"
	"github.com/edutrack/apiserver/internal/db"
	"github.com/edutrack/apiserver/internal/handlers"
	"github.com/edutrack/apiserver/internal/mq"
	"github.com/edutrack/apiserver/internal/notify"
	"github.com/edutrack/apiserver/internal/services"
	"github.com/edutrack/apiserver/internal/storage"
	"github.com/edutrack/apiserver/internal/store"
)

// Server wraps the HTTP server and its long-lived dependencies.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	queue      *mq.MQ
}

// New constructs a Server with all dependencies wired. Configuration is read
// once here and passed into constructors; nothing below this point touches
// the environment.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	log := NewLogger()

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueBackend, err := NewQueueBackend(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	queue := mq.New(queueBackend)

	archive, err := newObjectStorage(ctx, cfg.Storage)
	if err != nil {
		_ = queue.Close()
		_ = dbConn.Close()
		return nil, err
	}

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	notifier := notify.NewNotifier(queue, log)

	userRepo := store.NewUserRepository(dbConn)
	instituteRepo := store.NewInstituteRepository(dbConn)

	authService := services.NewAuthService(userRepo, hasher, codec, notifier, cfg.Auth.ResetTokenTTL, log)
	userService := services.NewUserService(userRepo, notifier)
	instituteService := services.NewInstituteService(instituteRepo)
	importService := services.NewImportService(userRepo, hasher, notifier, archive, log)

	authMiddleware := handlers.RequireAuth(codec, log)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authService, log)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, hasher, authMiddleware, log)
	})
	router.Route("/institutes", func(r chi.Router) {
		handlers.InstituteRouter(r, instituteService, authMiddleware, log)
	})
	router.Route("/import", func(r chi.Router) {
		handlers.ImportRouter(r, importService, authMiddleware, log)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		queue:      queue,
	}, nil
}

// NewLogger builds the structured logger shared by server components.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	return log
}

// NewQueueBackend builds the configured notification broker.
func NewQueueBackend(ctx context.Context, cfg config.MQConfig) (mq.Backend, error) {
	switch cfg.Backend {
	case "rabbitmq":
		return mq.NewRabbitMQClient(cfg.RabbitMQ)
	case "pubsub":
		return mq.NewPubSubClient(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.Backend)
	}
}

func newObjectStorage(ctx context.Context, cfg config.StorageConfig) (*storage.Storage, error) {
	switch cfg.Backend {
	case "none":
		// Import uploads are simply not archived.
		return nil, nil
	case "minio":
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		return storage.NewStorage(client), nil
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return storage.NewStorage(client), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
