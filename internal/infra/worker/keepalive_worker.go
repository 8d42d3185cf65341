package worker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// KeepAliveWorker pings the bot's own public URL so free hosting
// plans do not put the instance to sleep.
type KeepAliveWorker struct {
	client       *http.Client
	url          string
	tickInterval time.Duration
	logger       *zap.Logger
}

func NewKeepAliveWorker(url string, interval time.Duration, logger *zap.Logger) *KeepAliveWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KeepAliveWorker{
		client:       &http.Client{Timeout: 10 * time.Second},
		url:          url,
		tickInterval: interval,
		logger:       logger,
	}
}

func (w *KeepAliveWorker) Start(ctx context.Context) {
	w.logger.Info("🕒 keep-alive worker started",
		zap.String("url", w.url), zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("keep-alive worker stopped")
			return
		case <-ticker.C:
			if err := w.ping(ctx); err != nil {
				w.logger.Warn("keep-alive ping failed", zap.Error(err))
			}
		}
	}
}

func (w *KeepAliveWorker) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url, nil)
	if err != nil {
		return err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("keep-alive %s: status %d", w.url, resp.StatusCode)
	}
	return nil
}
