package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindpulsebackend/internal/config"
	"mindpulsebackend/internal/logger"
	"mindpulsebackend/internal/pulse"
	"mindpulsebackend/internal/trace"
	transporthttp "mindpulsebackend/internal/transport/http"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if err := trace.Init(); err != nil {
		logger.Get().Warnw("tracing disabled", "error", err)
	}

	catalog := pulse.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = pulse.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			logger.Get().Fatalw("load catalog", "path", cfg.CatalogPath, "error", err)
		}
		logger.Get().Infow("catalog loaded", "path", cfg.CatalogPath,
			"topics", len(catalog.Topics), "emotions", len(catalog.Emotions))
	}

	genOpts := []func(*pulse.Generator){
		pulse.WithCatalog(catalog),
		pulse.WithSimulatedLatency(cfg.SimulatedLatency),
	}
	if cfg.Seed != 0 {
		genOpts = append(genOpts, pulse.WithRand(rand.New(rand.NewSource(cfg.Seed))))
		logger.Get().Infow("deterministic generation enabled", "seed", cfg.Seed)
	}
	generator := pulse.NewGenerator(genOpts...)

	var source pulse.SnapshotSource = generator
	if cfg.RemoteURL != "" {
		remote, err := pulse.NewRemoteSource("remote", cfg.RemoteURL)
		if err != nil {
			logger.Get().Fatalw("init remote source", "error", err)
		}
		source, err = pulse.NewFallback(remote, generator)
		if err != nil {
			logger.Get().Fatalw("init source fallback", "error", err)
		}
		logger.Get().Infow("remote source enabled with mock fallback", "url", cfg.RemoteURL)
	}

	store := pulse.NewSnapshotStore()
	refresher, err := pulse.NewRefresher(source, store)
	if err != nil {
		logger.Get().Fatalw("init refresher", "error", err)
	}

	server := transporthttp.NewServer(refresher, store, cfg)

	// добавляем CORS и логирование
	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      withLogging(withCORS(server.Routes())),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Get().Infow("PULSE API listening", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Get().Fatalw("listen", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Get().Infow("signal received, shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Get().Errorw("graceful shutdown failed", "error", err)
	}
	if err := trace.Shutdown(ctx); err != nil {
		logger.Get().Errorw("tracer shutdown failed", "error", err)
	}
}

// Middleware: логирование запросов
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)

		// Отдельно подсвечиваем preflight (OPTIONS)
		if r.Method == http.MethodOptions {
			logger.Get().Debugw("CORS preflight", "method", r.Method, "path", r.URL.Path, "took", duration)
		} else {
			logger.Get().Infow("request", "method", r.Method, "path", r.URL.Path, "took", duration)
		}
	})
}

// Middleware: разрешаем CORS
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем фронт получать ответы
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		// Если это preflight-запрос, сразу отвечаем
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
