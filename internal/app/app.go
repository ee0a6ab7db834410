package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fsdevblog/shortlink/internal/cache"
	"github.com/fsdevblog/shortlink/internal/config"
	"github.com/fsdevblog/shortlink/internal/controllers"
	"github.com/fsdevblog/shortlink/internal/db"
	"github.com/fsdevblog/shortlink/internal/logs"
	sqlrepo "github.com/fsdevblog/shortlink/internal/repositories/sql"
	"github.com/fsdevblog/shortlink/internal/services"
	"github.com/fsdevblog/shortlink/internal/sessions"
	"github.com/fsdevblog/shortlink/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// App корневой объект приложения: владеет подключениями, сервисным слоем
// и фоновым воркером счетчика переходов.
type App struct {
	config     config.Config
	dbServices *services.Services
	sessions   controllers.SessionStore
	counter    *worker.AccessCountWorker
	Logger     *zap.Logger
}

func New(conf config.Config) (*App, error) {
	logger := logs.MustNew()

	ctx := context.Background()

	conn, connErr := db.NewConnectionFactory(db.FactoryConfig{
		StorageType: db.StorageType(conf.DBType),
		PostgresDSN: conf.DatabaseDSN,
		SQLitePath:  conf.SQLitePath,
	})
	if connErr != nil {
		return nil, fmt.Errorf("init storage: %w", connErr)
	}

	linkRepo := sqlrepo.NewLinkRepo(conn, logger)
	userRepo := sqlrepo.NewUserRepo(conn, logger)

	var resolutionCache cache.Cache
	var sessionStore controllers.SessionStore

	if conf.RedisURL != "" {
		redisClient, redisErr := db.NewRedisClient(ctx, conf.RedisURL)
		if redisErr != nil {
			return nil, fmt.Errorf("init redis: %w", redisErr)
		}
		resolutionCache = cache.NewRedis(redisClient)
		sessionStore = sessions.NewStore(redisClient, conf.SessionTTL)
	} else {
		// без redis кеш и сессии живут в памяти процесса
		logger.Warn("redis is not configured, using in-process cache and sessions")
		resolutionCache = cache.NewMemory()
		sessionStore = sessions.NewMemoryStore(conf.SessionTTL)
	}

	counter := worker.NewAccessCountWorker(logger, linkRepo)

	dbServices := services.New(services.Params{
		DB:       conn,
		LinkRepo: linkRepo,
		UserRepo: userRepo,
		Cache:    resolutionCache,
		Counter:  counter,
		CacheTTL: conf.CacheTTL,
		Logger:   logger,
	})

	return &App{
		config:     conf,
		dbServices: dbServices,
		sessions:   sessionStore,
		counter:    counter,
		Logger:     logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Run запускает web сервер и воркер счетчика переходов.
// Блокирует до SIGINT/SIGTERM, после чего корректно останавливает сервер
// и дожидается финального сброса счетчиков.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		a.counter.Run(ctx)
	}()

	router := controllers.SetupRouter(controllers.RouterParams{
		RedirectService: a.dbServices.RedirectService,
		LinkService:     a.dbServices.LinkService,
		UserService:     a.dbServices.UserService,
		PingService:     a.dbServices.PingService,
		Sessions:        a.sessions,
		BaseURL:         a.config.BaseURL,
		Logger:          a.Logger,
	})

	server := &http.Server{
		Addr:    a.config.ServerAddress,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.Error("server error", zap.Error(serverErr))
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		a.Logger.Error("server shutdown error", zap.Error(shutdownErr))
	}

	// ждем пока воркер сбросит накопленные инкременты
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		a.Logger.Warn("access count worker did not stop in time")
	}

	return serverErr
}
