package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/auth"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/config"
	apphttp "github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/identity"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/metrics"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/templates"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openSessionDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect to session database: %v", err)
	}

	idp := identity.NewClient(identity.Config{
		APIKey:   cfg.FirebaseAPIKey,
		AuthURL:  cfg.FirebaseAuthURL,
		TokenURL: cfg.FirebaseTokenURL,
		Timeout:  10 * time.Second,
	})
	sessions := auth.NewStore(db, idp, cfg.SessionTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sessions.Migrate(ctx); err != nil {
		log.Fatalf("migrate sessions: %v", err)
	}

	m := metrics.New()
	api, err := kameroapi.NewClient(cfg.APIURL,
		kameroapi.WithTimeout(cfg.APITimeout),
		kameroapi.WithLogger(logger),
		kameroapi.WithObserver(m),
	)
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}

	tpl, err := templates.Parse()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:    logger,
		Config:    cfg,
		DB:        db,
		Sessions:  sessions,
		Identity:  idp,
		API:       api,
		Metrics:   m,
		Limiter:   auth.NewLoginLimiter(12*time.Second, 5),
		Putter:    upload.NewHTTPPutter(5 * time.Minute),
		Templates: tpl,
	})

	go purgeSessions(ctx, sessions, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("http_listen", slog.String("addr", srv.Addr), slog.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_listen_failed", slog.Any("err", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", slog.Any("err", err))
	}
	logger.Info("http_stopped")
}

func openSessionDB(cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if cfg.SessionDBDriver == "mysql" {
		return gorm.Open(mysql.Open(cfg.SessionDBDSN), gcfg)
	}
	return gorm.Open(sqlite.Open(cfg.SessionDBDSN), gcfg)
}

func purgeSessions(ctx context.Context, s *auth.Store, l *slog.Logger) {
	t := time.NewTicker(30 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				l.Warn("session_purge_failed", slog.Any("err", err))
				continue
			}
			if n > 0 {
				l.Info("session_purge", slog.Int64("removed", n))
			}
		}
	}
}
