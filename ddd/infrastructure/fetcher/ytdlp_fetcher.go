package fetcher

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"video-edit-service/ddd/domain/gateway"
	"video-edit-service/pkg/config"
	"video-edit-service/pkg/errno"
	"video-edit-service/pkg/logger"
)

// YtdlpFetcher pulls audio from remote URLs through the yt-dlp binary.
// Each fetch extracts into its own directory so concurrent fetches of
// the same source cannot collide.
type YtdlpFetcher struct {
	cfg config.FetcherConfig
}

var _ gateway.AudioFetcher = (*YtdlpFetcher)(nil)

func NewYtdlpFetcher(cfg config.FetcherConfig) *YtdlpFetcher {
	return &YtdlpFetcher{cfg: cfg}
}

// Fetch 下载远程音频；调用方通过 Cleanup 释放暂存目录
func (f *YtdlpFetcher) Fetch(ctx context.Context, sourceURL string) (*gateway.FetchedAudio, error) {
	dir := filepath.Join(f.cfg.DownloadDir, "fetch-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errno.ErrFetchFailed.Wrapf("create download dir: %v", err)
	}

	args := []string{
		"--no-playlist",
		"-x",
		"--audio-format", f.cfg.AudioFormat,
		"-o", filepath.Join(dir, "%(title)s.%(ext)s"),
		sourceURL,
	}
	cmd := exec.CommandContext(ctx, f.cfg.YtdlpPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Info("Fetching remote audio", map[string]interface{}{
		"source_url": sourceURL,
	})
	if err := cmd.Run(); err != nil {
		_ = os.RemoveAll(dir)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return nil, errno.ErrFetchFailed.Wrapf("%s: %v: %s", sourceURL, err, msg)
	}

	localPath, err := singleFile(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	title := strings.TrimSuffix(filepath.Base(localPath), filepath.Ext(localPath))

	var once sync.Once
	return &gateway.FetchedAudio{
		LocalPath: localPath,
		Title:     title,
		Cleanup: func() {
			once.Do(func() {
				if err := os.RemoveAll(dir); err != nil {
					logger.Warn("Fetch dir cleanup failed", map[string]interface{}{
						"dir":   dir,
						"error": err.Error(),
					})
				}
			})
		},
	}, nil
}

// singleFile returns the one regular file yt-dlp produced in dir.
func singleFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errno.ErrFetchFailed.Wrapf("read download dir: %v", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if len(files) != 1 {
		return "", errno.ErrFetchFailed.Wrapf("expected one extracted file, found %d", len(files))
	}
	return files[0], nil
}
