package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"newsgenie/internal/api"
	"newsgenie/internal/app"
	"newsgenie/internal/config"
	"newsgenie/internal/logger"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP server instead of printing a digest")
	category := flag.String("category", "", "category filter for the digest")
	limit := flag.Int("limit", 10, "number of articles in the digest")
	ask := flag.String("ask", "", "ask a question instead of printing a digest")
	flag.Parse()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("init service", "err", err)
		os.Exit(1)
	}
	defer svc.Close()

	if *serve {
		runServer(ctx, cfg, svc)
		return
	}

	if *ask != "" {
		answer, err := svc.Chat(ctx, *ask)
		if err != nil {
			logger.Error("chat failed", "err", err)
			os.Exit(1)
		}
		fmt.Println(answer)
		return
	}

	digest, err := svc.Digest(ctx, *category, *limit)
	if err != nil {
		logger.Error("digest failed", "err", err)
		os.Exit(1)
	}
	fmt.Print(digest)
}

func runServer(ctx context.Context, cfg *config.Config, svc *app.Service) {
	if cfg.RefreshSchedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.RefreshSchedule, svc.Refresh); err != nil {
			logger.Error("invalid refresh schedule", "schedule", cfg.RefreshSchedule, "err", err)
			os.Exit(1)
		}
		c.Start()
		defer c.Stop()
		logger.Info("scheduled cache refresh", "schedule", cfg.RefreshSchedule)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	api.NewServer(svc).RegisterRoutes(r)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "addr", cfg.ListenAddr)
		errCh <- r.Run(cfg.ListenAddr)
	}()

	select {
	case err := <-errCh:
		logger.Error("server exit", "err", err)
		os.Exit(1)
	case <-ctx.Done():
		logger.Info("shutting down")
	}
}
