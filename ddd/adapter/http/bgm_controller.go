package http

import (
	"github.com/gin-gonic/gin"

	"video-edit-service/ddd/application/app"
	"video-edit-service/ddd/application/cqe"
	"video-edit-service/pkg/errno"
	"video-edit-service/pkg/restapi"
)

// BgmController 背景音乐接口控制器
type BgmController struct {
	editApp app.VideoEditApp
	tempDir string
}

// NewBgmController 创建背景音乐控制器
func NewBgmController(editApp app.VideoEditApp, tempDir string) *BgmController {
	return &BgmController{editApp: editApp, tempDir: tempDir}
}

// Upload 上传背景音乐
func (c *BgmController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("audio")
	if err != nil {
		restapi.Failed(ctx, errno.ErrMissingParam.Wrapf("audio file is required"))
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

	resp, err := c.editApp.UploadBgm(ctx.Request.Context(), localPath, file.Filename, ctx.PostForm("title"))
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// Fetch 从远程URL拉取背景音乐
func (c *BgmController) Fetch(ctx *gin.Context) {
	var req cqe.FetchBgmReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrInvalidParam.Wrapf("%v", err))
		return
	}

	resp, err := c.editApp.FetchBgm(ctx.Request.Context(), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}

// List 获取曲目列表
func (c *BgmController) List(ctx *gin.Context) {
	resp, err := c.editApp.ListBgm(ctx.Request.Context())
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, resp)
}
