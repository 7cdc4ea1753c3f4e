package service

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"video-edit-service/ddd/domain/entity"
	"video-edit-service/ddd/domain/gateway"
	"video-edit-service/ddd/domain/repo"
	"video-edit-service/pkg/config"
	"video-edit-service/pkg/errno"
	"video-edit-service/pkg/logger"
)

var videoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
}

var audioExtensions = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".aac":  "audio/aac",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// IngestService admits new source material: uploaded videos, uploaded
// bgm tracks, and bgm pulled from a remote URL. It owns the uploads/,
// thumbnails/ and bgm_audios/ prefixes; edited artifacts are the
// pipeline's business.
type IngestService struct {
	engine  gateway.MediaEngine
	store   gateway.ArtifactStore
	fetcher gateway.AudioFetcher
	videos  repo.VideoRepository
	bgm     repo.BgmRepository
	cfg     *config.Config
}

// NewIngestService 创建素材接入服务
func NewIngestService(
	engine gateway.MediaEngine,
	store gateway.ArtifactStore,
	fetcher gateway.AudioFetcher,
	videos repo.VideoRepository,
	bgm repo.BgmRepository,
	cfg *config.Config,
) *IngestService {
	return &IngestService{
		engine:  engine,
		store:   store,
		fetcher: fetcher,
		videos:  videos,
		bgm:     bgm,
		cfg:     cfg,
	}
}

// IngestVideo uploads a locally staged video file, probes its duration,
// captures a thumbnail and inserts the registry record in uploaded
// state. The caller owns localPath and its removal.
func (s *IngestService) IngestVideo(ctx context.Context, localPath, originalFilename string) (*entity.Video, error) {
	name, contentType, err := checkFilename(originalFilename, videoExtensions)
	if err != nil {
		return nil, err
	}

	// Probe failure is tolerated; the duration column stays zero.
	duration, err := s.engine.ProbeDuration(ctx, localPath)
	if err != nil {
		logger.Warn("Duration probe failed on ingest", map[string]interface{}{
			"filename": name,
			"error":    err.Error(),
		})
		duration = 0
	}

	id := uuid.NewString()
	key := gateway.KeyPrefixUploads + id + "_" + name
	url, err := s.store.Upload(ctx, localPath, key, contentType)
	if err != nil {
		return nil, errno.ErrStorageFailed.Wrapf("upload %s: %v", key, err)
	}

	video := entity.NewVideo(name, key, url, duration)
	if thumbURL := s.captureThumbnail(ctx, localPath, id, name); thumbURL != "" {
		video.SetThumbnailURL(thumbURL)
	}

	if err := s.videos.Insert(ctx, video); err != nil {
		return nil, err
	}
	logger.Info("Video ingested", map[string]interface{}{
		"video_id": video.ID(),
		"key":      key,
		"duration": duration,
	})
	return video, nil
}

// captureThumbnail grabs one frame and uploads it under thumbnails/.
// Any failure is logged and swallowed; a record without a thumbnail is
// still serviceable.
func (s *IngestService) captureThumbnail(ctx context.Context, localPath, id, name string) string {
	ws, err := NewWorkspace(s.cfg.Engine.TempDir)
	if err != nil {
		logger.Warn("Thumbnail workspace failed", map[string]interface{}{"error": err.Error()})
		return ""
	}
	defer ws.Cleanup()

	thumbPath := ws.Path("thumb.jpg")
	if err := s.engine.Thumbnail(ctx, localPath, thumbPath, s.cfg.Pipeline.ThumbnailOffset); err != nil {
		logger.Warn("Thumbnail capture failed", map[string]interface{}{
			"filename": name,
			"error":    err.Error(),
		})
		return ""
	}

	ext := filepath.Ext(name)
	key := gateway.KeyPrefixThumbs + id + "_" + strings.TrimSuffix(name, ext) + ".jpg"
	url, err := s.store.Upload(ctx, thumbPath, key, "image/jpeg")
	if err != nil {
		logger.Warn("Thumbnail upload failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return ""
	}
	return url
}

// IngestBgm uploads a locally staged audio file as a reusable bgm track.
func (s *IngestService) IngestBgm(ctx context.Context, localPath, originalFilename, title string) (*entity.BgmTrack, error) {
	name, contentType, err := checkFilename(originalFilename, audioExtensions)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(name, filepath.Ext(name))
	}

	duration, err := s.engine.ProbeDuration(ctx, localPath)
	if err != nil {
		duration = 0
	}

	key := gateway.KeyPrefixBgmAudios + uuid.NewString() + "_" + name
	url, err := s.store.Upload(ctx, localPath, key, contentType)
	if err != nil {
		return nil, errno.ErrStorageFailed.Wrapf("upload %s: %v", key, err)
	}

	track := entity.NewBgmTrack(title, key, url, "", duration)
	if err := s.bgm.Insert(ctx, track); err != nil {
		return nil, err
	}
	return track, nil
}

// FetchBgm pulls audio from a remote URL through the configured
// fetcher, then ingests it like an uploaded track.
func (s *IngestService) FetchBgm(ctx context.Context, sourceURL, title string) (*entity.BgmTrack, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return nil, errno.ErrMissingParam.Wrapf("source_url is required")
	}

	fetched, err := s.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	defer fetched.Cleanup()

	if strings.TrimSpace(title) == "" {
		title = fetched.Title
	}
	name, contentType, err := checkFilename(filepath.Base(fetched.LocalPath), audioExtensions)
	if err != nil {
		return nil, err
	}

	duration := fetched.Duration
	if duration <= 0 {
		if probed, err := s.engine.ProbeDuration(ctx, fetched.LocalPath); err == nil {
			duration = probed
		}
	}

	key := gateway.KeyPrefixBgmAudios + uuid.NewString() + "_" + name
	url, err := s.store.Upload(ctx, fetched.LocalPath, key, contentType)
	if err != nil {
		return nil, errno.ErrStorageFailed.Wrapf("upload %s: %v", key, err)
	}

	track := entity.NewBgmTrack(title, key, url, sourceURL, duration)
	if err := s.bgm.Insert(ctx, track); err != nil {
		return nil, err
	}
	return track, nil
}

// checkFilename strips any path component, rejects empty or traversal
// names and returns the content type for the extension.
func checkFilename(filename string, allowed map[string]string) (string, string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", "", errno.ErrFileNameIllegal.Wrapf("filename %q", filename)
	}
	ext := strings.ToLower(filepath.Ext(name))
	contentType, ok := allowed[ext]
	if !ok {
		return "", "", errno.ErrFileNameIllegal.Wrapf("extension %q is not accepted", ext)
	}
	return name, contentType, nil
}
