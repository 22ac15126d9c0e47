// Package server initializes and runs the taskboard web application.
// It opens the store, applies migrations, wires the services and handles
// graceful shutdown of the HTTP server.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/memory"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
	"github.com/dmitrijs2005/taskboard/internal/server/web"
	"github.com/gin-gonic/gin"
)

// Storage is an opened store: a transaction runner and the repositories
// that run on it.
type Storage struct {
	Runner  dbx.Runner
	Manager repomanager.RepositoryManager
	db      *sql.DB
}

// openDB and the manager constructor are seams for tests.
var (
	openDB                 = repomanager.OpenDB
	newPostgresRepoManager = repomanager.NewPostgresRepositoryManager
)

// OpenStorage connects to dsn and migrates the schema. memory.DSN selects
// the in-process store.
func OpenStorage(ctx context.Context, dsn string) (*Storage, error) {
	if dsn == memory.DSN {
		store := memory.NewStore()
		return &Storage{Runner: store.Runner(), Manager: store.Manager()}, nil
	}

	db, err := openDB(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := newPostgresRepoManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return &Storage{Runner: dbx.NewSQLRunner(db, nil), Manager: m, db: db}, nil
}

// Close releases the database pool, if any.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	storage *Storage
	handler http.Handler
}

// NewApp wires the application for cfg. The caller owns the returned App
// and must Close it.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	gin.SetMode(cfg.GinMode)

	storage, err := OpenStorage(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	codec := auth.NewCodec([]byte(cfg.SecretKey))
	accounts, err := services.NewAccountService(storage.Runner, storage.Manager, auth.NewHasher(cfg.BcryptCost), codec, cfg)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	tasks := services.NewTaskService(storage.Runner, storage.Manager)
	gate := auth.NewGate(auth.NewResolver(codec, accounts, logger))

	h := web.NewHandler(accounts, tasks, gate, cfg.AccessTokenValidityDuration, cfg.SecureCookies, logger)

	return &App{
		config:  cfg,
		logger:  logger,
		storage: storage,
		handler: web.NewRouter(h, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	s := web.NewServer(app.config.EndpointAddrHTTP, app.handler, app.logger)
	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("http server error: %w", err)
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) Close() error {
	return app.storage.Close()
}
