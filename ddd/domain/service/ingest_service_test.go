package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"video-edit-service/ddd/domain/gateway"
	"video-edit-service/pkg/errno"
)

type fakeFetcher struct {
	audio *gateway.FetchedAudio
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (*gateway.FetchedAudio, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func stageFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIngestVideo(t *testing.T) {
	cfg := testConfig(t)
	engine := &fakeEngine{duration: 42.5}
	store := newMemStore()
	videos := newMemVideoRepo()

	svc := NewIngestService(engine, store, nil, videos, newMemBgmRepo(), cfg)
	local := stageFile(t, "holiday.mp4", "bytes")

	video, err := svc.IngestVideo(context.Background(), local, "holiday.mp4")
	if err != nil {
		t.Fatalf("IngestVideo: %v", err)
	}
	if video.Status().String() != "uploaded" {
		t.Fatalf("status = %s", video.Status())
	}
	if video.Duration() != 42.5 {
		t.Fatalf("duration = %v", video.Duration())
	}
	if !strings.HasPrefix(video.StorageKey(), gateway.KeyPrefixUploads) ||
		!strings.HasSuffix(video.StorageKey(), "_holiday.mp4") {
		t.Fatalf("storage key = %q", video.StorageKey())
	}
	if video.ThumbnailURL() == "" {
		t.Fatal("thumbnail URL not set")
	}
	if !strings.Contains(video.ThumbnailURL(), gateway.KeyPrefixThumbs) {
		t.Fatalf("thumbnail URL = %q", video.ThumbnailURL())
	}
	if _, err := videos.FindByID(context.Background(), video.ID()); err != nil {
		t.Fatalf("record not inserted: %v", err)
	}
	assertWorkspaceGone(t, cfg.Engine.TempDir)
}

func TestIngestVideoRejectsFilename(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIngestService(&fakeEngine{}, newMemStore(), nil, newMemVideoRepo(), newMemBgmRepo(), cfg)
	local := stageFile(t, "payload.mp4", "bytes")

	tests := []struct {
		name     string
		filename string
	}{
		{"empty", ""},
		{"dot", "."},
		{"extension", "report.pdf"},
		{"no extension", "clip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.IngestVideo(context.Background(), local, tt.filename)
			if !errors.Is(err, errno.ErrFileNameIllegal) {
				t.Fatalf("err = %v, want ErrFileNameIllegal", err)
			}
		})
	}
}

func TestIngestVideoStripsPathComponents(t *testing.T) {
	cfg := testConfig(t)
	store := newMemStore()
	svc := NewIngestService(&fakeEngine{duration: 1}, store, nil, newMemVideoRepo(), newMemBgmRepo(), cfg)
	local := stageFile(t, "clip.mp4", "bytes")

	video, err := svc.IngestVideo(context.Background(), local, "../../etc/clip.mp4")
	if err != nil {
		t.Fatalf("IngestVideo: %v", err)
	}
	if strings.Contains(video.StorageKey(), "..") {
		t.Fatalf("storage key carries traversal: %q", video.StorageKey())
	}
	if !strings.HasSuffix(video.StorageKey(), "_clip.mp4") {
		t.Fatalf("storage key = %q", video.StorageKey())
	}
}

func TestIngestVideoSurvivesThumbnailFailure(t *testing.T) {
	cfg := testConfig(t)
	engine := &thumbnailFailingEngine{fakeEngine: &fakeEngine{duration: 3}}
	store := newMemStore()
	svc := NewIngestService(engine, store, nil, newMemVideoRepo(), newMemBgmRepo(), cfg)
	local := stageFile(t, "clip.mp4", "bytes")

	video, err := svc.IngestVideo(context.Background(), local, "clip.mp4")
	if err != nil {
		t.Fatalf("IngestVideo: %v", err)
	}
	if video.ThumbnailURL() != "" {
		t.Fatalf("thumbnail URL = %q, want empty", video.ThumbnailURL())
	}
}

type thumbnailFailingEngine struct {
	*fakeEngine
}

func (e *thumbnailFailingEngine) Thumbnail(_ context.Context, _, _ string, _ float64) error {
	return errors.New("no frame")
}

func TestIngestBgm(t *testing.T) {
	cfg := testConfig(t)
	store := newMemStore()
	bgm := newMemBgmRepo()
	svc := NewIngestService(&fakeEngine{duration: 187}, store, nil, newMemVideoRepo(), bgm, cfg)
	local := stageFile(t, "song.mp3", "audio")

	track, err := svc.IngestBgm(context.Background(), local, "song.mp3", "")
	if err != nil {
		t.Fatalf("IngestBgm: %v", err)
	}
	if track.Title() != "song" {
		t.Fatalf("title = %q, want filename fallback", track.Title())
	}
	if !strings.HasPrefix(track.StorageKey(), gateway.KeyPrefixBgmAudios) {
		t.Fatalf("storage key = %q", track.StorageKey())
	}
	if track.Duration() != 187 {
		t.Fatalf("duration = %v", track.Duration())
	}
	if _, err := bgm.FindByID(context.Background(), track.ID()); err != nil {
		t.Fatalf("track not inserted: %v", err)
	}
}

// stageFetch lays out a fetched file inside its own staging dir, the
// way YtdlpFetcher does, with a Cleanup that removes the whole dir.
func stageFetch(t *testing.T, name string) (string, *gateway.FetchedAudio) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "fetch-1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir fetch dir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatalf("stage fetched file: %v", err)
	}
	return dir, &gateway.FetchedAudio{
		LocalPath: path,
		Title:     "Remote Song",
		Duration:  240,
		Cleanup:   func() { _ = os.RemoveAll(dir) },
	}
}

func TestFetchBgm(t *testing.T) {
	cfg := testConfig(t)
	store := newMemStore()
	bgm := newMemBgmRepo()
	fetchDir, audio := stageFetch(t, "fetched.m4a")
	fetcher := &fakeFetcher{audio: audio}

	svc := NewIngestService(&fakeEngine{}, store, fetcher, newMemVideoRepo(), bgm, cfg)

	track, err := svc.FetchBgm(context.Background(), "https://example.com/watch?v=1", "")
	if err != nil {
		t.Fatalf("FetchBgm: %v", err)
	}
	if track.Title() != "Remote Song" {
		t.Fatalf("title = %q", track.Title())
	}
	if track.SourceURL() != "https://example.com/watch?v=1" {
		t.Fatalf("source URL = %q", track.SourceURL())
	}
	if track.Duration() != 240 {
		t.Fatalf("duration = %v", track.Duration())
	}
	if _, err := os.Stat(fetchDir); !os.IsNotExist(err) {
		t.Fatalf("staging dir not removed after upload: %v", err)
	}
}

func TestFetchBgmCleansStagingDirOnIngestFailure(t *testing.T) {
	cfg := testConfig(t)
	fetchDir, audio := stageFetch(t, "page.html")
	fetcher := &fakeFetcher{audio: audio}

	svc := NewIngestService(&fakeEngine{}, newMemStore(), fetcher, newMemVideoRepo(), newMemBgmRepo(), cfg)

	if _, err := svc.FetchBgm(context.Background(), "https://example.com/x", ""); !errors.Is(err, errno.ErrFileNameIllegal) {
		t.Fatalf("err = %v, want ErrFileNameIllegal", err)
	}
	if _, err := os.Stat(fetchDir); !os.IsNotExist(err) {
		t.Fatalf("staging dir not removed after failed ingest: %v", err)
	}
}

func TestFetchBgmErrors(t *testing.T) {
	cfg := testConfig(t)
	svc := NewIngestService(&fakeEngine{}, newMemStore(), &fakeFetcher{err: errno.ErrFetchFailed.Wrapf("boom")}, newMemVideoRepo(), newMemBgmRepo(), cfg)

	if _, err := svc.FetchBgm(context.Background(), "", ""); !errors.Is(err, errno.ErrMissingParam) {
		t.Fatalf("empty url err = %v, want ErrMissingParam", err)
	}
	if _, err := svc.FetchBgm(context.Background(), "https://example.com/x", ""); !errors.Is(err, errno.ErrFetchFailed) {
		t.Fatalf("fetch err = %v, want ErrFetchFailed", err)
	}
}
