package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"video-edit-service/ddd/domain/entity"
	"video-edit-service/ddd/domain/gateway"
	"video-edit-service/ddd/domain/repo"
	"video-edit-service/ddd/domain/vo"
	"video-edit-service/pkg/config"
	"video-edit-service/pkg/errno"
	"video-edit-service/pkg/logger"
)

// PipelineService composes the edit operators over a video record.
//
// Per run: stage the input locally, apply each requested operator to
// the previous operator's output, upload only the final artifact, then
// record the new status. Intermediate outputs never reach remote
// storage, and the workspace is removed whatever the outcome.
//
// There is no per-record locking; two concurrent runs against the same
// record race and must be serialized by the caller.
type PipelineService struct {
	engine gateway.MediaEngine
	store  gateway.ArtifactStore
	videos repo.VideoRepository
	bgm    repo.BgmRepository
	fonts  *FontResolver
	events gateway.EventPublisher
	cfg    *config.Config
}

// NewPipelineService 创建流水线服务
func NewPipelineService(
	engine gateway.MediaEngine,
	store gateway.ArtifactStore,
	videos repo.VideoRepository,
	bgm repo.BgmRepository,
	fonts *FontResolver,
	events gateway.EventPublisher,
	cfg *config.Config,
) *PipelineService {
	return &PipelineService{
		engine: engine,
		store:  store,
		videos: videos,
		bgm:    bgm,
		fonts:  fonts,
		events: events,
		cfg:    cfg,
	}
}

// BgmSelection 背景音乐混音请求
type BgmSelection struct {
	TrackID string
	Spec    vo.MixSpec
}

// ProcessRequest 组合处理请求；省略的阶段被跳过
type ProcessRequest struct {
	Trim      *vo.TrimSpec
	Bgm       *BgmSelection
	Subtitles *vo.SubtitleTrack
}

// stage is one operator application inside a run.
type stage struct {
	name   string
	status vo.VideoStatus
	apply  func(ctx context.Context, ws *Workspace, inputPath, outputPath string) error
}

// Trim 剪辑时间范围；制品上传到 trimmed/ 前缀
func (s *PipelineService) Trim(ctx context.Context, videoID string, spec vo.TrimSpec) (*entity.Video, error) {
	if spec.Mode == "" {
		spec.Mode = vo.TrimMode(s.cfg.Pipeline.TrimMode)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return s.run(ctx, videoID, []stage{s.trimStage(spec)}, gateway.KeyPrefixTrimmed)
}

// AddBgm 混入背景音乐；制品上传到 final_videos/ 前缀
func (s *PipelineService) AddBgm(ctx context.Context, videoID string, sel BgmSelection) (*entity.Video, error) {
	if err := sel.Spec.Validate(); err != nil {
		return nil, err
	}
	track, err := s.bgm.FindByID(ctx, sel.TrackID)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, videoID, []stage{s.bgmStage(track, sel.Spec)}, gateway.KeyPrefixFinal)
}

// OverlaySubtitles 烧录字幕；制品上传到 final_videos/ 前缀
func (s *PipelineService) OverlaySubtitles(ctx context.Context, videoID string, track vo.SubtitleTrack) (*entity.Video, error) {
	s.applyStyleDefaults(&track)
	if err := track.Validate(); err != nil {
		return nil, err
	}
	// Fonts resolve up front: an unresolved font is a validation
	// failure before any engine invocation is built.
	if err := s.fonts.ResolveTrack(&track); err != nil {
		return nil, err
	}
	return s.run(ctx, videoID, []stage{s.subtitleStage(track)}, gateway.KeyPrefixFinal)
}

// Process runs the requested subset of stages in the fixed order
// trim -> bgm -> subtitles against freshly staged input; only the last
// stage's output is uploaded and recorded.
func (s *PipelineService) Process(ctx context.Context, videoID string, req ProcessRequest) (*entity.Video, error) {
	stages := make([]stage, 0, 3)

	if req.Trim != nil {
		spec := *req.Trim
		if spec.Mode == "" {
			spec.Mode = vo.TrimMode(s.cfg.Pipeline.TrimMode)
		}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		stages = append(stages, s.trimStage(spec))
	}
	if req.Bgm != nil {
		if err := req.Bgm.Spec.Validate(); err != nil {
			return nil, err
		}
		track, err := s.bgm.FindByID(ctx, req.Bgm.TrackID)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s.bgmStage(track, req.Bgm.Spec))
	}
	if req.Subtitles != nil {
		track := *req.Subtitles
		s.applyStyleDefaults(&track)
		if err := track.Validate(); err != nil {
			return nil, err
		}
		if err := s.fonts.ResolveTrack(&track); err != nil {
			return nil, err
		}
		stages = append(stages, s.subtitleStage(track))
	}

	if len(stages) == 0 {
		return nil, errno.ErrMissingParam.Wrapf("no stages requested")
	}
	return s.run(ctx, videoID, stages, gateway.KeyPrefixFinal)
}

func (s *PipelineService) trimStage(spec vo.TrimSpec) stage {
	return stage{
		name:   "trim",
		status: vo.StatusTrimmed,
		apply: func(ctx context.Context, _ *Workspace, in, out string) error {
			return s.engine.Trim(ctx, in, out, spec)
		},
	}
}

func (s *PipelineService) bgmStage(track *entity.BgmTrack, spec vo.MixSpec) stage {
	return stage{
		name:   "bgm",
		status: vo.StatusBgmAdded,
		apply: func(ctx context.Context, ws *Workspace, in, out string) error {
			audioPath := ws.Path("bgm" + artifactExt(track.StorageKey()))
			if err := s.store.Download(ctx, track.StorageKey(), audioPath); err != nil {
				return errno.ErrStorageFailed.Wrapf("bgm track %s: %v", track.ID(), err)
			}
			return s.engine.MixAudio(ctx, in, audioPath, out, spec)
		},
	}
}

func (s *PipelineService) subtitleStage(track vo.SubtitleTrack) stage {
	return stage{
		name:   "subtitles",
		status: vo.StatusSubtitled,
		apply: func(ctx context.Context, _ *Workspace, in, out string) error {
			return s.engine.OverlaySubtitles(ctx, in, out, track)
		},
	}
}

func (s *PipelineService) run(ctx context.Context, videoID string, stages []stage, finalPrefix string) (*entity.Video, error) {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	finalStatus := stages[len(stages)-1].status
	if !video.Status().CanTransitionTo(finalStatus) {
		return nil, errno.ErrInvalidStatus.Wrapf("%s -> %s", video.Status(), finalStatus)
	}

	ws, err := NewWorkspace(s.cfg.Engine.TempDir)
	if err != nil {
		return nil, err
	}
	defer ws.Cleanup()

	current := ws.Path("source" + artifactExt(video.StorageKey()))
	if err := s.store.Download(ctx, video.StorageKey(), current); err != nil {
		return nil, s.fail(ctx, video, errno.ErrStorageFailed.Wrapf("stage input %s: %v", video.StorageKey(), err))
	}

	for i, st := range stages {
		out := ws.Path(fmt.Sprintf("%02d_%s.mp4", i+1, st.name))
		logger.Info("Running pipeline stage", map[string]interface{}{
			"video_id": video.ID(),
			"stage":    st.name,
		})
		if err := st.apply(ctx, ws, current, out); err != nil {
			return nil, s.fail(ctx, video, err)
		}
		current = out
	}

	// Probe failure is not fatal; the recorded duration is then kept.
	duration, err := s.engine.ProbeDuration(ctx, current)
	if err != nil {
		duration = 0
	}

	key := finalPrefix + uuid.NewString() + "_" + filepath.Base(video.OriginalFilename())
	url, err := s.store.Upload(ctx, current, key, "video/mp4")
	if err != nil {
		return nil, s.fail(ctx, video, errno.ErrStorageFailed.Wrapf("final artifact: %v", err))
	}

	// Write-then-record: the artifact is durable before the status/URL
	// change becomes visible to readers.
	if err := video.AdvanceStage(finalStatus, key, url, duration); err != nil {
		return nil, err
	}
	if err := s.videos.UpdateStatus(ctx, video); err != nil {
		return nil, err
	}

	s.publish(ctx, video)
	return video, nil
}

// fail moves the record to the terminal failed state without touching
// its artifact fields, then surfaces the original cause.
func (s *PipelineService) fail(ctx context.Context, video *entity.Video, cause error) error {
	if err := video.MarkFailed(); err == nil {
		if err := s.videos.UpdateStatus(ctx, video); err != nil {
			logger.Error("Failed to record failed status", map[string]interface{}{
				"video_id": video.ID(),
				"error":    err.Error(),
			})
		}
		s.publish(ctx, video)
	}
	return cause
}

func (s *PipelineService) publish(ctx context.Context, video *entity.Video) {
	if s.events == nil {
		return
	}
	event := gateway.StageEvent{
		VideoID:    video.ID(),
		Stage:      video.Status(),
		StorageKey: video.StorageKey(),
		StorageURL: video.StorageURL(),
		OccurredAt: time.Now(),
	}
	if err := s.events.PublishStageEvent(ctx, event); err != nil {
		logger.Warn("Stage event publish failed", map[string]interface{}{
			"video_id": video.ID(),
			"stage":    video.Status().String(),
			"error":    err.Error(),
		})
	}
}

func (s *PipelineService) applyStyleDefaults(track *vo.SubtitleTrack) {
	sub := s.cfg.Subtitle
	if track.Default.FontName == "" {
		track.Default.FontName = sub.DefaultFont
	}
	if track.Default.FontSize <= 0 {
		track.Default.FontSize = sub.DefaultFontSize
	}
	if track.Default.FontColor == "" {
		track.Default.FontColor = sub.DefaultFontColor
	}
	if track.Default.X == "" {
		track.Default.X = sub.DefaultX
	}
	if track.Default.Y == "" {
		track.Default.Y = sub.DefaultY
	}
}

func artifactExt(storageKey string) string {
	if ext := filepath.Ext(storageKey); ext != "" {
		return ext
	}
	return ".mp4"
}
