package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"GuardVision/client"
	"GuardVision/config"
	"GuardVision/logger"
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

	c := client.New(cfg.APIURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	ctx := context.Background()
	if cfg.WaitReadySeconds > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.WaitReadySeconds)*time.Second)
		err := c.WaitReady(waitCtx, cfg.HealthURL, time.Second)
		cancel()
		if err != nil {
			logger.Log().Error("inference service not ready", zap.Error(err))
			os.Exit(1)
		}
	}

	doc, err := c.Predict(ctx, cfg.ImagePath)
	if err != nil {
		logger.Log().Error("prediction failed", zap.String("image", cfg.ImagePath), zap.Error(err))
		os.Exit(1)
	}
	if err := doc.WriteFile(cfg.OutputPath); err != nil {
		logger.Log().Error("failed to write result", zap.String("path", cfg.OutputPath), zap.Error(err))
		os.Exit(1)
	}
	out, err := doc.Indent()
	if err != nil {
		logger.Log().Error("failed to render result", zap.Error(err))
		os.Exit(1)
	}
	fmt.Println("Prediction saved to", cfg.OutputPath)
	fmt.Println(string(out))
}
