package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"GuardVision/client"
	"GuardVision/logger"
	"GuardVision/monitor"
	"GuardVision/result"
)

// Config holds the directories and the confidence threshold the agent
// works with. Output directories are created on demand.
type Config struct {
	WatchDir   string
	ResultsDir string
	ReviewDir  string
	Threshold  float64
}

// Agent feeds images from a watch directory to the inference service,
// one at a time, and files the results. Results whose best confidence
// falls below the threshold get an extra copy in the review directory.
type Agent struct {
	client *client.Client
	cfg    Config
}

func New(c *client.Client, cfg Config) *Agent {
	return &Agent{client: c, cfg: cfg}
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
}

// IsImageFile reports whether path looks like an image, by extension
// only. Content is never inspected; the service sees the raw bytes.
func IsImageFile(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Run does one pass over the images already present, then watches for
// new ones until ctx is cancelled. With scanOnly it returns after the
// initial pass.
func (a *Agent) Run(ctx context.Context, scanOnly bool) error {
	a.ScanExisting(ctx)
	if scanOnly {
		logger.Log().Info("scan-only set, exiting after initial pass")
		return nil
	}
	return a.Watch(ctx)
}

// ScanExisting processes every image file already in the watch
// directory, in name order. Individual failures are logged and do not
// stop the pass.
func (a *Agent) ScanExisting(ctx context.Context) {
	entries, err := os.ReadDir(a.cfg.WatchDir)
	if err != nil {
		logger.Log().Warn("cannot read watch directory", zap.String("dir", a.cfg.WatchDir), zap.Error(err))
		return
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(a.cfg.WatchDir, entry.Name())
		if !IsImageFile(path) {
			continue
		}
		if err := a.Process(ctx, path); err != nil {
			logger.Log().Error("failed to process image", zap.String("image", path), zap.Error(err))
		}
	}
}

// Watch blocks handling newly created images until ctx is cancelled.
func (a *Agent) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(a.cfg.WatchDir); err != nil {
		return fmt.Errorf("watch %s: %w", a.cfg.WatchDir, err)
	}
	logger.Log().Info("watching for new images", zap.String("dir", a.cfg.WatchDir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) || !IsImageFile(ev.Name) {
				continue
			}
			if err := a.Process(ctx, ev.Name); err != nil {
				logger.Log().Error("failed to process image", zap.String("image", ev.Name), zap.Error(err))
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log().Error("watcher error", zap.Error(werr))
		}
	}
}

// Process sends one image and writes its result document. The envelope
// keeps the source image path next to the untouched service response.
func (a *Agent) Process(ctx context.Context, imagePath string) error {
	jobID := uuid.NewString()
	logger.Log().Info("processing image", zap.String("job", jobID), zap.String("image", imagePath))

	doc, err := a.client.Predict(ctx, imagePath)
	if err != nil {
		monitor.PredictionFailures.Inc()
		return fmt.Errorf("send image: %w", err)
	}
	monitor.PredictionsTotal.Inc()

	stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	envelope := map[string]any{
		"image":    imagePath,
		"response": doc.Body(),
	}
	outPath := filepath.Join(a.cfg.ResultsDir, stem+".json")
	if err := writeEnvelope(a.cfg.ResultsDir, outPath, envelope); err != nil {
		return err
	}

	maxConf := result.MaxConfidence(doc.Body())
	logger.Log().Info("image processed",
		zap.String("job", jobID),
		zap.String("image", imagePath),
		zap.Float64("maxConfidence", maxConf))

	if maxConf < a.cfg.Threshold {
		monitor.LowConfidenceTotal.Inc()
		envelope["max_confidence"] = maxConf
		reviewPath := filepath.Join(a.cfg.ReviewDir, stem+".json")
		if err := writeEnvelope(a.cfg.ReviewDir, reviewPath, envelope); err != nil {
			return err
		}
		logger.Log().Info("saved low-confidence result for review",
			zap.String("job", jobID),
			zap.String("path", reviewPath))
	}
	return nil
}

func writeEnvelope(dir, path string, envelope map[string]any) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}
