package config

import (
	"testing"
	"time"
)

func TestNormalizeDefaults(t *testing.T) {
	var cfg Config
	cfg.Normalize()

	if cfg.Engine.FFmpegPath != "ffmpeg" {
		t.Fatalf("unexpected ffmpeg path: %q", cfg.Engine.FFmpegPath)
	}
	if cfg.Engine.VideoCodec != "libx264" || cfg.Engine.AudioCodec != "aac" {
		t.Fatalf("unexpected codecs: %q/%q", cfg.Engine.VideoCodec, cfg.Engine.AudioCodec)
	}
	if cfg.Pipeline.TrimMode != "reencode" {
		t.Fatalf("trim mode should default to reencode, got %q", cfg.Pipeline.TrimMode)
	}
	if cfg.Subtitle.MissingFontPolicy != "fail" {
		t.Fatalf("missing font policy should fail closed, got %q", cfg.Subtitle.MissingFontPolicy)
	}
	if cfg.Storage.RetryTimes != 0 {
		t.Fatalf("storage retries should default to 0, got %d", cfg.Storage.RetryTimes)
	}
	if cfg.Storage.RetryBackoff != time.Second {
		t.Fatalf("unexpected retry backoff: %v", cfg.Storage.RetryBackoff)
	}
	if cfg.Fetcher.DownloadDir != cfg.Engine.TempDir {
		t.Fatalf("fetcher dir should fall back to engine temp dir")
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Pipeline: PipelineConfig{TrimMode: "copy", BgmGain: 0.5},
		Subtitle: SubtitleConfig{MissingFontPolicy: "fallback", DefaultFont: "NotoSans"},
		Storage:  StorageConfig{RetryTimes: 3},
	}
	cfg.Normalize()

	if cfg.Pipeline.TrimMode != "copy" {
		t.Fatalf("explicit trim mode overwritten: %q", cfg.Pipeline.TrimMode)
	}
	if cfg.Pipeline.BgmGain != 0.5 {
		t.Fatalf("explicit bgm gain overwritten: %v", cfg.Pipeline.BgmGain)
	}
	if cfg.Subtitle.MissingFontPolicy != "fallback" {
		t.Fatalf("explicit font policy overwritten: %q", cfg.Subtitle.MissingFontPolicy)
	}
	if cfg.Storage.RetryTimes != 3 {
		t.Fatalf("explicit retry times overwritten: %d", cfg.Storage.RetryTimes)
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     3306,
		Username: "edit",
		Password: "secret",
		Database: "video_edit",
	}
	want := "edit:secret@tcp(127.0.0.1:3306)/video_edit?charset=utf8mb4&parseTime=True&loc=Local"
	if got := db.GetDSN(); got != want {
		t.Fatalf("unexpected dsn:\n got %s\nwant %s", got, want)
	}
}
