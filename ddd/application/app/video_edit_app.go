package app

import (
	"context"
	"encoding/json"

	"video-edit-service/ddd/application/cqe"
	"video-edit-service/ddd/application/dto"
	"video-edit-service/ddd/domain/repo"
	"video-edit-service/ddd/domain/service"
	"video-edit-service/ddd/infrastructure/cache"
	"video-edit-service/pkg/config"
	"video-edit-service/pkg/logger"
)

// VideoEditApp 视频编辑应用服务
type VideoEditApp interface {
	// UploadVideo 接收已暂存到本地的上传文件并登记记录
	UploadVideo(ctx context.Context, localPath, originalFilename string) (*dto.VideoDto, error)
	// GetVideo 查询单条记录
	GetVideo(ctx context.Context, id string) (*dto.VideoDto, error)
	// ListVideos 查询全部记录（带列表缓存）
	ListVideos(ctx context.Context) (*dto.VideoListDto, error)
	// Trim 剪辑
	Trim(ctx context.Context, videoID string, req *cqe.TrimReq) (*dto.VideoDto, error)
	// AddBgm 混入背景音乐
	AddBgm(ctx context.Context, videoID string, req *cqe.BgmMixReq) (*dto.VideoDto, error)
	// OverlaySubtitles 烧录字幕
	OverlaySubtitles(ctx context.Context, videoID string, req *cqe.SubtitleReq) (*dto.VideoDto, error)
	// Process 按固定顺序执行请求的阶段组合
	Process(ctx context.Context, videoID string, req *cqe.ProcessReq) (*dto.VideoDto, error)
	// UploadBgm 接收上传的背景音乐
	UploadBgm(ctx context.Context, localPath, originalFilename, title string) (*dto.BgmTrackDto, error)
	// FetchBgm 从远程URL拉取背景音乐
	FetchBgm(ctx context.Context, req *cqe.FetchBgmReq) (*dto.BgmTrackDto, error)
	// ListBgm 查询全部曲目
	ListBgm(ctx context.Context) (*dto.BgmTrackListDto, error)
	// ListFonts 列出可用字幕字体
	ListFonts() *dto.FontListDto
}

type videoEditAppImpl struct {
	ingest    *service.IngestService
	pipeline  *service.PipelineService
	videos    repo.VideoRepository
	bgm       repo.BgmRepository
	fonts     *service.FontResolver
	listCache *cache.VideoListCache
	cfg       *config.Config
}

// NewVideoEditApp 创建应用服务；listCache 可为 nil（禁用缓存）
func NewVideoEditApp(
	ingest *service.IngestService,
	pipeline *service.PipelineService,
	videos repo.VideoRepository,
	bgm repo.BgmRepository,
	fonts *service.FontResolver,
	listCache *cache.VideoListCache,
	cfg *config.Config,
) VideoEditApp {
	return &videoEditAppImpl{
		ingest:    ingest,
		pipeline:  pipeline,
		videos:    videos,
		bgm:       bgm,
		fonts:     fonts,
		listCache: listCache,
		cfg:       cfg,
	}
}

func (a *videoEditAppImpl) UploadVideo(ctx context.Context, localPath, originalFilename string) (*dto.VideoDto, error) {
	video, err := a.ingest.IngestVideo(ctx, localPath, originalFilename)
	if err != nil {
		return nil, err
	}
	a.invalidateList(ctx)
	return dto.NewVideoDto(video), nil
}

func (a *videoEditAppImpl) GetVideo(ctx context.Context, id string) (*dto.VideoDto, error) {
	video, err := a.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewVideoDto(video), nil
}

func (a *videoEditAppImpl) ListVideos(ctx context.Context) (*dto.VideoListDto, error) {
	if a.listCache != nil {
		if data, ok := a.listCache.GetList(ctx); ok {
			var list dto.VideoListDto
			if err := json.Unmarshal(data, &list); err == nil {
				return &list, nil
			}
			logger.Warn("Dropping unparsable video list cache entry", nil)
			a.listCache.Invalidate(ctx)
		}
	}

	videos, err := a.videos.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	list := dto.NewVideoListDto(videos)

	if a.listCache != nil {
		if data, err := json.Marshal(list); err == nil {
			a.listCache.SetList(ctx, data)
		}
	}
	return list, nil
}

func (a *videoEditAppImpl) Trim(ctx context.Context, videoID string, req *cqe.TrimReq) (*dto.VideoDto, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	video, err := a.pipeline.Trim(ctx, videoID, req.ToSpec())
	if err != nil {
		a.invalidateList(ctx)
		return nil, err
	}
	a.invalidateList(ctx)
	return dto.NewVideoDto(video), nil
}

func (a *videoEditAppImpl) AddBgm(ctx context.Context, videoID string, req *cqe.BgmMixReq) (*dto.VideoDto, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sel := req.ToSelection(a.cfg.Pipeline.PrimaryGain, a.cfg.Pipeline.BgmGain)
	video, err := a.pipeline.AddBgm(ctx, videoID, sel)
	if err != nil {
		a.invalidateList(ctx)
		return nil, err
	}
	a.invalidateList(ctx)
	return dto.NewVideoDto(video), nil
}

func (a *videoEditAppImpl) OverlaySubtitles(ctx context.Context, videoID string, req *cqe.SubtitleReq) (*dto.VideoDto, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	video, err := a.pipeline.OverlaySubtitles(ctx, videoID, req.ToTrack())
	if err != nil {
		a.invalidateList(ctx)
		return nil, err
	}
	a.invalidateList(ctx)
	return dto.NewVideoDto(video), nil
}

func (a *videoEditAppImpl) Process(ctx context.Context, videoID string, req *cqe.ProcessReq) (*dto.VideoDto, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var processReq service.ProcessRequest
	if req.Trim != nil {
		spec := req.Trim.ToSpec()
		processReq.Trim = &spec
	}
	if req.Bgm != nil {
		sel := req.Bgm.ToSelection(a.cfg.Pipeline.PrimaryGain, a.cfg.Pipeline.BgmGain)
		processReq.Bgm = &sel
	}
	if req.Subtitles != nil {
		track := req.Subtitles.ToTrack()
		processReq.Subtitles = &track
	}

	video, err := a.pipeline.Process(ctx, videoID, processReq)
	if err != nil {
		a.invalidateList(ctx)
		return nil, err
	}
	a.invalidateList(ctx)
	return dto.NewVideoDto(video), nil
}

func (a *videoEditAppImpl) UploadBgm(ctx context.Context, localPath, originalFilename, title string) (*dto.BgmTrackDto, error) {
	track, err := a.ingest.IngestBgm(ctx, localPath, originalFilename, title)
	if err != nil {
		return nil, err
	}
	return dto.NewBgmTrackDto(track), nil
}

func (a *videoEditAppImpl) FetchBgm(ctx context.Context, req *cqe.FetchBgmReq) (*dto.BgmTrackDto, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	track, err := a.ingest.FetchBgm(ctx, req.SourceURL, req.Title)
	if err != nil {
		return nil, err
	}
	return dto.NewBgmTrackDto(track), nil
}

func (a *videoEditAppImpl) ListBgm(ctx context.Context) (*dto.BgmTrackListDto, error) {
	tracks, err := a.bgm.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewBgmTrackListDto(tracks), nil
}

func (a *videoEditAppImpl) ListFonts() *dto.FontListDto {
	return &dto.FontListDto{Fonts: a.fonts.Names()}
}

// invalidateList drops the cached listing. Pipeline errors can still
// have moved the record to failed, so failures invalidate too.
func (a *videoEditAppImpl) invalidateList(ctx context.Context) {
	if a.listCache != nil {
		a.listCache.Invalidate(ctx)
	}
}
