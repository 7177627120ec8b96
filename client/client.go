package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"GuardVision/result"
)

const (
	DefaultURL     = "http://localhost:8000/predict"
	DefaultTimeout = 30 * time.Second

	retryWaitMin = 1 * time.Second
	retryWaitMax = 10 * time.Second
)

// Client sends single images to an inference service and hands back the
// decoded response untouched. One request is in flight at a time.
type Client struct {
	url     string
	http    *resty.Client
	retries int
	waitMin time.Duration
	waitMax time.Duration
}

func New(url string) *Client {
	return &Client{
		url:     url,
		http:    resty.New().SetTimeout(DefaultTimeout),
		waitMin: retryWaitMin,
		waitMax: retryWaitMax,
	}
}

func (c *Client) SetTimeout(d time.Duration) *Client {
	c.http.SetTimeout(d)
	return c
}

// SetRetry allows count extra attempts after a failed one, with
// exponential backoff between attempts. The image file is reopened for
// every attempt, so a retried request always carries a full body.
func (c *Client) SetRetry(count int) *Client {
	c.retries = count
	return c
}

// SetRetryWait overrides the backoff bounds. Tests use this to keep
// retry runs fast.
func (c *Client) SetRetryWait(min, max time.Duration) *Client {
	c.waitMin = min
	c.waitMax = max
	return c
}

// Predict posts one image as multipart form data and returns the decoded
// JSON body. A missing or unreadable image fails before any network
// traffic happens.
func (c *Client) Predict(ctx context.Context, imagePath string) (*result.Document, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return nil, fmt.Errorf("image not found: %w", err)
	}

	var lastErr error
	wait := c.waitMin
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			wait *= 2
			if wait > c.waitMax {
				wait = c.waitMax
			}
		}
		doc, err := c.predictOnce(ctx, imagePath)
		if err == nil {
			return doc, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) predictOnce(ctx context.Context, imagePath string) (*result.Document, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	name := filepath.Base(imagePath)
	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField("file", name, contentTypeFor(name), f).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("predict request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("predict request: server returned %s", resp.Status())
	}
	return result.Decode(resp.Body())
}

// WaitReady polls healthURL until the service answers with a success
// status or ctx ends. It replaces the fixed post-start sleep the
// surrounding orchestration used to rely on.
func (c *Client) WaitReady(ctx context.Context, healthURL string, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		resp, err := c.http.R().SetContext(ctx).Get(healthURL)
		if err == nil && !resp.IsError() {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("service not ready: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".bmp":
		return "image/bmp"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
