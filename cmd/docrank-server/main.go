package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"docrank/internal/app"
	"docrank/internal/config"
	"docrank/internal/httpapi"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, addr string
	flag.StringVar(&cfgPath, "config", os.Getenv("DOCRANK_CONFIG"), "Path to YAML config file (optional; uses ~/.config/docrank/config.yaml if not provided)")
	flag.StringVar(&addr, "addr", "", "Listen address, overrides server.addr and "+config.EnvAddr)
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger := app.NewLogger(os.Stderr, os.Getenv("DOCRANK_LOG_LEVEL"))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer a.Close()

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(a.Service, httpapi.Options{
		RateLimitRPS: cfg.Server.RateLimitRPS,
		RateBurst:    cfg.Server.RateBurst,
		MaxBodyBytes: int64(cfg.Server.MaxUploadKB) * 1024,
		Logger:       logger,
	})
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
