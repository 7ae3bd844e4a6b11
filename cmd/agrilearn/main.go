package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/agrilearn-network/internal/cache"
	"github.com/pribylovaa/agrilearn-network/internal/config"
	apphttp "github.com/pribylovaa/agrilearn-network/internal/http"
	"github.com/pribylovaa/agrilearn-network/internal/http/middleware"
	"github.com/pribylovaa/agrilearn-network/internal/http/session"
	logx "github.com/pribylovaa/agrilearn-network/internal/pkg/log"
	"github.com/pribylovaa/agrilearn-network/internal/service"
	"github.com/pribylovaa/agrilearn-network/internal/storage/minio"
	"github.com/pribylovaa/agrilearn-network/internal/storage/postgres"
	"github.com/pribylovaa/agrilearn-network/internal/tokens"
	"github.com/pribylovaa/agrilearn-network/internal/weather"
)

// Параллельных запросов к провайдеру погоды при фоновом обновлении.
const weatherConcurrency = 4

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := logx.New(cfg.Env, os.Stdout)
	slog.SetDefault(log)
	log.Info("starting agrilearn", "env", cfg.Env)

	// Корневой контекст по сигналам.
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	// Подключение к БД c таймаутом.
	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	str, err := postgres.New(dbCtx, cfg.Postgres.URL,
		postgres.WithMaxConns(cfg.Postgres.MaxConns),
		postgres.WithMaxConnIdleTime(cfg.Postgres.MaxConnIdleTime),
	)
	dbCancel()
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer str.Close()
	log.Info("postgres_connected")

	tm := tokens.New(tokens.Config{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL(),
		RefreshTTL:    cfg.Auth.RefreshTTL(),
	})
	if tm.UsesFallbackSecrets() && cfg.IsProduction() {
		log.Warn("jwt_fallback_secret_in_use",
			slog.String("hint", "set JWT_ACCESS_SECRET and JWT_REFRESH_SECRET"),
		)
	}

	srvc := service.New(str, tm)

	// Кэш погоды (необязателен).
	var weatherCache cache.WeatherCache
	if cfg.Redis.Enabled() {
		rctx, rcancel := context.WithTimeout(rootCtx, 5*time.Second)
		weatherCache, err = cache.NewRedisCache(rctx, cfg.Redis.URL, "")
		rcancel()
		if err != nil {
			log.Error("redis_connect_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := weatherCache.Close(); cerr != nil {
				log.Warn("redis_close_failed", slog.String("err", cerr.Error()))
			}
		}()
		log.Info("redis_connected")
	} else {
		log.Info("weather_cache_disabled")
	}

	// Провайдер погоды (необязателен).
	if cfg.Weather.Enabled() {
		client := weather.New(&http.Client{Timeout: cfg.Weather.RequestTimeout},
			cfg.Weather.BaseURL, cfg.Weather.APIKey, weatherConcurrency)
		srvc.SetWeather(client, weatherCache, cfg.Weather)

		if weatherCache != nil {
			go func() {
				if err := srvc.StartWeatherRefresh(rootCtx); err != nil {
					log.Warn("weather_refresh_not_started", slog.String("err", err.Error()))
				}
			}()
		}
	} else {
		log.Info("weather_disabled")
	}

	// Хранилище фото (необязательно).
	if cfg.S3.Enabled() {
		sctx, scancel := context.WithTimeout(rootCtx, 10*time.Second)
		photos, err := minio.New(sctx, cfg.S3, cfg.Photos)
		scancel()
		if err != nil {
			log.Error("minio_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		srvc.SetPhotos(photos)
		log.Info("minio_connected", slog.String("bucket", cfg.S3.Bucket))
	} else {
		log.Info("photo_storage_disabled")
	}

	log.Info("service_initialized")

	handler := apphttp.NewRouter(srvc, apphttp.Options{
		Logger:            log,
		Timeout:           cfg.Timeouts.Service,
		StaticDir:         cfg.HTTP.StaticDir,
		LoginPath:         cfg.Guard.LoginPath,
		ProtectedPrefixes: cfg.Guard.ProtectedPrefixes,
		Cookies: session.Cookies{
			Secure:     cfg.IsProduction(),
			AccessTTL:  cfg.Auth.AccessTTL(),
			RefreshTTL: cfg.Auth.RefreshTTL(),
		},
		Metrics: middleware.NewMetrics(prometheus.DefaultRegisterer),
	})

	var ready int32 // 0 — not ready; 1 — ready

	// Служебный HTTP: пробы и метрики.
	ops := http.NewServeMux()
	ops.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ops.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := srvc.Ready(ctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ops.Handle("/metrics", promhttp.Handler())

	opsSrv := &http.Server{
		Addr:              cfg.Metrics.Addr(),
		Handler:           ops,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("ops_listen_start", slog.String("addr", opsSrv.Addr))
		if err := opsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("ops_serve_failed", slog.String("err", err.Error()))
		}
	}()

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("agrilearn_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)
	rootCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	_ = opsSrv.Shutdown(shutdownCtx)

	log.Info("service_stopped")
}
