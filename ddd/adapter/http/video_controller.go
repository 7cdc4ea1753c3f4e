package http

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"video-edit-service/ddd/application/app"
	"video-edit-service/ddd/application/cqe"
	"video-edit-service/pkg/errno"
	"video-edit-service/pkg/logger"
	"video-edit-service/pkg/restapi"
)

// VideoController 视频接口控制器
type VideoController struct {
	editApp app.VideoEditApp
	tempDir string
}

// NewVideoController 创建视频控制器
func NewVideoController(editApp app.VideoEditApp, tempDir string) *VideoController {
	return &VideoController{editApp: editApp, tempDir: tempDir}
}

// Upload 上传视频
func (c *VideoController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("video")
	if err != nil {
		restapi.Failed(ctx, errno.ErrMissingParam.Wrapf("video file is required"))
		return
	}

	localPath, cleanup, err := stageUpload(c.tempDir, file.Filename, func(dst string) error {
		return ctx.SaveUploadedFile(file, dst)
	})
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	defer cleanup()

	resp, err := c.editApp.UploadVideo(ctx.Request.Context(), localPath, file.Filename)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// List 获取视频列表
func (c *VideoController) List(ctx *gin.Context) {
	resp, err := c.editApp.ListVideos(ctx.Request.Context())
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// Get 获取视频详情
func (c *VideoController) Get(ctx *gin.Context) {
	resp, err := c.editApp.GetVideo(ctx.Request.Context(), ctx.Param("video_id"))
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// Trim 剪辑视频
func (c *VideoController) Trim(ctx *gin.Context) {
	var req cqe.TrimReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrInvalidParam.Wrapf("%v", err))
		return
	}

	resp, err := c.editApp.Trim(ctx.Request.Context(), ctx.Param("video_id"), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// AddBgm 混入背景音乐
func (c *VideoController) AddBgm(ctx *gin.Context) {
	var req cqe.BgmMixReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrInvalidParam.Wrapf("%v", err))
		return
	}

	resp, err := c.editApp.AddBgm(ctx.Request.Context(), ctx.Param("video_id"), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// OverlaySubtitles 烧录字幕
func (c *VideoController) OverlaySubtitles(ctx *gin.Context) {
	var req cqe.SubtitleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrInvalidParam.Wrapf("%v", err))
		return
	}

	resp, err := c.editApp.OverlaySubtitles(ctx.Request.Context(), ctx.Param("video_id"), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// Process 组合处理
func (c *VideoController) Process(ctx *gin.Context) {
	var req cqe.ProcessReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrInvalidParam.Wrapf("%v", err))
		return
	}

	resp, err := c.editApp.Process(ctx.Request.Context(), ctx.Param("video_id"), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// ListFonts 列出可用字幕字体
func (c *VideoController) ListFonts(ctx *gin.Context) {
	restapi.Success(ctx, c.editApp.ListFonts())
}

// stageUpload saves a multipart file into a private temp directory and
// returns its path plus the cleanup func.
func stageUpload(tempDir, filename string, save func(dst string) error) (string, func(), error) {
	dir := filepath.Join(tempDir, "upload-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, errno.ErrInternalServer.Wrapf("stage upload: %v", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn("Upload staging cleanup failed", map[string]interface{}{
				"dir":   dir,
				"error": err.Error(),
			})
		}
	}

	dst := filepath.Join(dir, filepath.Base(filename))
	if err := save(dst); err != nil {
		cleanup()
		return "", nil, errno.ErrInternalServer.Wrapf("save upload: %v", err)
	}
	return dst, cleanup, nil
}
