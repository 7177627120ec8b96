package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"GuardVision/agent"
	"GuardVision/client"
	"GuardVision/config"
	"GuardVision/logger"
	"GuardVision/monitor"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}
	if err := logger.InitProduction(); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	if cfg.MetricsPort > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			monitor.StartMon(cfg.MetricsPort, ctx)
		}()
	}

	c := client.New(cfg.APIURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetRetry(cfg.RetryCount)

	if cfg.WaitReadySeconds > 0 {
		waitCtx, waitCancel := context.WithTimeout(ctx, time.Duration(cfg.WaitReadySeconds)*time.Second)
		err := c.WaitReady(waitCtx, cfg.HealthURL, time.Second)
		waitCancel()
		if err != nil {
			logger.Log().Error("inference service not ready", zap.Error(err))
			cancel()
			wg.Wait()
			os.Exit(1)
		}
	}

	logger.Log().Info("agent starting",
		zap.String("watchDir", cfg.WatchDir),
		zap.String("apiURL", cfg.APIURL),
		zap.Float64("threshold", cfg.Threshold))

	a := agent.New(c, agent.Config{
		WatchDir:   cfg.WatchDir,
		ResultsDir: cfg.ResultsDir,
		ReviewDir:  cfg.ReviewDir,
		Threshold:  cfg.Threshold,
	})
	runErr := a.Run(ctx, cfg.ScanOnly)

	cancel()
	wg.Wait()
	if runErr != nil {
		logger.Log().Error("agent stopped with error", zap.Error(runErr))
		os.Exit(1)
	}
	logger.Log().Info("agent stopped")
}
