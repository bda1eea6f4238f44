package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JMURv/taskboard/internal/auth/cookies"
	"github.com/JMURv/taskboard/internal/auth/jwt"
	"github.com/JMURv/taskboard/internal/cache/redis"
	"github.com/JMURv/taskboard/internal/config"
	"github.com/JMURv/taskboard/internal/ctrl"
	hdl "github.com/JMURv/taskboard/internal/hdl/http"
	"github.com/JMURv/taskboard/internal/observability/metrics/prometheus"
	"github.com/JMURv/taskboard/internal/observability/tracing/jaeger"
	"github.com/JMURv/taskboard/internal/repo/db"
	"github.com/JMURv/taskboard/internal/repo/s3"
	"github.com/JMURv/taskboard/internal/smtp"
	"go.uber.org/zap"
)

func mustRegisterLogger(mode string) {
	switch mode {
	case "prod":
		zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
	default:
		zap.ReplaceGlobals(zap.Must(zap.NewDevelopment()))
	}
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			zap.L().Panic("panic occurred", zap.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := config.MustLoad()
	mustRegisterLogger(conf.Server.Mode)

	go prometheus.New(conf.Server.Port + 5).Start(ctx)
	go jaeger.Start(ctx, conf.ServiceName, conf.Jaeger)

	au := jwt.New(conf)
	ck := cookies.New(conf)
	cache := redis.New(conf.Redis)
	repo := db.New(conf)
	files := s3.New(conf)

	var email ctrl.EmailService
	if conf.Email.Enabled {
		email = smtp.New(conf)
	}

	svc := ctrl.New(au, repo, cache, email, files)
	h := hdl.New(au, ck, svc)

	zap.L().Info(
		fmt.Sprintf(
			"Starting server on %v://%v:%v",
			conf.Server.Scheme,
			conf.Server.Domain,
			conf.Server.Port,
		),
	)
	go h.Start(conf.Server.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-c

	zap.L().Info("Shutting down gracefully...")

	sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer scancel()

	if err := h.Close(sctx); err != nil {
		zap.L().Warn("Error closing handler", zap.Error(err))
	}

	if err := cache.Close(); err != nil {
		zap.L().Warn("Failed to close connection to Redis: ", zap.Error(err))
	}

	if err := repo.Close(sctx); err != nil {
		zap.L().Warn("Error closing repository", zap.Error(err))
	}

	os.Exit(0)
}
