package service

import (
	"context"
	"time"

	"video-edit-service/pkg/logger"
)

// FontSyncTask keeps the local font cache aligned with the fonts/
// storage prefix on an interval.
type FontSyncTask struct {
	resolver *FontResolver
	interval time.Duration
	done     chan struct{}
}

// NewFontSyncTask 创建字体同步后台任务
func NewFontSyncTask(resolver *FontResolver, interval time.Duration) *FontSyncTask {
	return &FontSyncTask{resolver: resolver, interval: interval}
}

func (t *FontSyncTask) Name() string {
	return "font-sync"
}

// Start performs one synchronous sync so fonts are available before
// the first request, then refreshes in the background.
func (t *FontSyncTask) Start(ctx context.Context) error {
	if err := t.resolver.Sync(ctx); err != nil {
		return err
	}

	t.done = make(chan struct{})
	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := t.resolver.Sync(ctx); err != nil {
					logger.Warnf("Font sync failed: %v", err)
				}
			}
		}
	}()
	return nil
}

func (t *FontSyncTask) Stop() error {
	if t.done != nil {
		<-t.done
	}
	return nil
}
