package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"fieldplot/config"
	"fieldplot/database"
	"fieldplot/pkg/auth"
	"fieldplot/pkg/logger"
	"fieldplot/router"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()
	zap.ReplaceGlobals(log)
	log.Info("config loaded", cfg.Fields()...)
	if loc, err := time.LoadLocation(cfg.Timezone); err != nil {
		log.Warn("unknown timezone; keeping system default", zap.String("tz", cfg.Timezone), zap.Error(err))
	} else {
		time.Local = loc
	}

	// 2) DB (sqlite) + automigrate
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}

	// 3) Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// 4) Echo + routes
	if cfg.EnableDevLogin {
		log.Warn("dev login enabled: any uid can obtain a token")
	}
	e := router.NewApp(db, router.AppOptions{
		Issuer:   auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		DevLogin: cfg.EnableDevLogin,
		Logger:   log,
		Registry: reg,
	})

	// 5) Start + graceful shutdown
	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
