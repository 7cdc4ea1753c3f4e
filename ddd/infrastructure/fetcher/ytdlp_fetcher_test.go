package fetcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"video-edit-service/pkg/config"
	"video-edit-service/pkg/errno"
)

// stubYtdlp writes a shell script that drops one extracted file into
// the directory of the -o output template, like yt-dlp does.
func stubYtdlp(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yt-dlp-stub")
	body := "#!/bin/sh\n" +
		"prev=\"\"\n" +
		"for a in \"$@\"; do\n" +
		"  if [ \"$prev\" = \"-o\" ]; then out=\"$a\"; fi\n" +
		"  prev=\"$a\"\n" +
		"done\n" +
		script + "\n"
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func testFetcherConfig(bin, downloadDir string) config.FetcherConfig {
	return config.FetcherConfig{
		YtdlpPath:   bin,
		AudioFormat: "m4a",
		DownloadDir: downloadDir,
	}
}

func entryCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read download dir: %v", err)
	}
	return len(entries)
}

func TestFetchExtractsAndCleanupRemovesDir(t *testing.T) {
	downloadDir := t.TempDir()
	bin := stubYtdlp(t, `printf audio > "$(dirname "$out")/Stub Song.m4a"`)
	f := NewYtdlpFetcher(testFetcherConfig(bin, downloadDir))

	fetched, err := f.Fetch(context.Background(), "https://example.com/watch?v=1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if fetched.Title != "Stub Song" {
		t.Fatalf("title = %q", fetched.Title)
	}
	if _, err := os.Stat(fetched.LocalPath); err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}

	fetched.Cleanup()
	fetched.Cleanup() // 重复调用安全
	if n := entryCount(t, downloadDir); n != 0 {
		t.Fatalf("staging dir left behind: %d entries in download dir", n)
	}
}

func TestFetchFailureRemovesDir(t *testing.T) {
	downloadDir := t.TempDir()
	bin := stubYtdlp(t, "echo boom >&2; exit 1")
	f := NewYtdlpFetcher(testFetcherConfig(bin, downloadDir))

	if _, err := f.Fetch(context.Background(), "https://example.com/x"); !errors.Is(err, errno.ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}
	if n := entryCount(t, downloadDir); n != 0 {
		t.Fatalf("staging dir left behind: %d entries in download dir", n)
	}
}

func TestFetchRejectsAmbiguousExtraction(t *testing.T) {
	downloadDir := t.TempDir()
	bin := stubYtdlp(t, `d="$(dirname "$out")"; printf a > "$d/a.m4a"; printf b > "$d/b.m4a"`)
	f := NewYtdlpFetcher(testFetcherConfig(bin, downloadDir))

	if _, err := f.Fetch(context.Background(), "https://example.com/x"); !errors.Is(err, errno.ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}
	if n := entryCount(t, downloadDir); n != 0 {
		t.Fatalf("staging dir left behind: %d entries in download dir", n)
	}
}
