// Package server initializes and runs the zorgkaart server: database and
// migrations, the snapshot mirror and change watcher, the geocoder and the
// HTTP endpoint, with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"zorgkaart/internal/geo"
	"zorgkaart/internal/logging"
	"zorgkaart/internal/server/auth"
	"zorgkaart/internal/server/config"
	"zorgkaart/internal/server/httpapi"
	"zorgkaart/internal/server/providers"
	"zorgkaart/internal/server/repositories/repomanager"
	"zorgkaart/internal/server/store"
)

// geocodeCacheTTL is how long resolved coordinates stay cached. Addresses
// move rarely; a long TTL keeps Nominatim traffic low.
const geocodeCacheTTL = 30 * 24 * time.Hour

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	mirror  *store.Mirror
	watcher *store.Watcher
	server  *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	zl, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewZapLogger(zl)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	mirror := store.NewMirror()
	watcher := store.NewWatcher(cfg.DatabaseDSN, rm.Providers(db), mirror, cfg.NotifyQuiet, logger)

	service := providers.NewService(db, rm, logger)

	nominatim := geo.NewClient(geo.Config{
		BaseURL: cfg.NominatimBaseURL,
		Region:  cfg.NominatimRegion,
	})
	var geocoder geo.Geocoder = nominatim
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		geocoder = geo.NewCachedGeocoder(nominatim, rdb, geocodeCacheTTL, logger)
	}

	gate := auth.NewGate(cfg.PasswordDigest)
	secret := []byte(cfg.SecretKey)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Secret:          secret,
		AuthHandler:     httpapi.NewAuthHandler(logger, gate, secret, cfg.SessionValidity),
		ProviderHandler: httpapi.NewProviderHandler(logger, mirror, service),
		ViewHandler:     httpapi.NewViewHandler(logger, mirror, geocoder),
		PlaceHandler:    httpapi.NewPlaceHandler(logger, nominatim),
		StreamHandler:   httpapi.NewStreamHandler(logger, mirror),
	})

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		mirror:  mirror,
		watcher: watcher,
		server:  httpapi.NewServer(cfg.EndpointAddrHTTP, router, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.watcher.Run(ctx); err != nil && ctx.Err() == nil {
			app.logger.Error(ctx, "watcher stopped", "error", err)
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, "http server stopped", "error", err)
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "app stopped")
}
