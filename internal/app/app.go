package app

import (
	"context"
	"fmt"

	"passreset/internal/config"
	"passreset/internal/db"
	"passreset/internal/handlers"
	"passreset/internal/identity"
	"passreset/internal/logger"
	"passreset/internal/mailer"
	"passreset/internal/repository"
	"passreset/internal/routes"
	"passreset/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type userStore interface {
	services.UserStore
	Ping(ctx context.Context) error
}

// InitApp собирает зависимости и маршруты. cleanup дожидается почтовых
// воркеров и закрывает пул БД; вызывать после остановки HTTP-сервера.
func InitApp(ctx context.Context, cfg *config.Config) (*mux.Router, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// Хранилище
	var store userStore
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Log.Warn("Используется хранилище users в памяти")
		store = repository.NewMemoryUserRepository()
	default:
		conn, err := db.NewPostgresConnection(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres %s: %w", cfg.GetDSNSafe(), err)
		}
		closers = append(closers, conn.Close)

		if cfg.DbMigrate {
			if err := db.RunMigrations(ctx, conn); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("migrations: %w", err)
			}
			logger.Log.Info("Миграции применены")
		}
		store = repository.NewUserRepository(conn)
	}

	// Внешний Auth
	var idp services.IdentityProvider = identity.Disabled{}
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		idp = identity.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.IdentityTimeout)
	}

	// Почта
	transport, err := newMailer(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	queue := mailer.NewQueue(transport, cfg.MailWorkers, cfg.MailQueueSize)
	closers = append(closers, queue.Close)
	logger.Log.Info("Почтовые воркеры запущены",
		zap.String("transport", cfg.MailTransport),
		zap.Int("workers", cfg.MailWorkers),
	)

	// Сервисы
	passwordSvc := services.NewPasswordService(store, idp, queue, cfg.FrontendURL)

	// Хендлеры
	passwordH := handlers.NewPasswordHandler(passwordSvc)
	healthH := handlers.NewHealthHandler(store)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, passwordH, healthH)

	return router, cleanup, nil
}

func newMailer(ctx context.Context, cfg *config.Config) (mailer.Mailer, error) {
	switch cfg.MailTransport {
	case config.TransportSES:
		m, err := mailer.NewSESMailer(ctx, cfg.AWSRegion, cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.SESSender)
		if err != nil {
			return nil, fmt.Errorf("ses mailer: %w", err)
		}
		return m, nil
	default:
		return mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom), nil
	}
}
