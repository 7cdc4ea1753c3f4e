package http

import (
	"github.com/gin-gonic/gin"

	"video-edit-service/ddd/application/app"
	"video-edit-service/pkg/middleware"
)

// Router 路由配置
type Router struct {
	editApp app.VideoEditApp
	tempDir string
}

// NewRouter 创建路由配置
func NewRouter(editApp app.VideoEditApp, tempDir string) *Router {
	return &Router{editApp: editApp, tempDir: tempDir}
}

// SetupRoutes 设置路由
func (r *Router) SetupRoutes(engine *gin.Engine) {
	videoController := NewVideoController(r.editApp, r.tempDir)
	bgmController := NewBgmController(r.editApp, r.tempDir)

	v1 := engine.Group("/api/v1")
	{
		videos := v1.Group("/videos")
		{
			videos.POST("", videoController.Upload)                            // 上传视频
			videos.GET("", videoController.List)                               // 获取视频列表
			videos.GET("/:video_id", videoController.Get)                      // 获取视频详情
			videos.POST("/:video_id/trim", videoController.Trim)               // 剪辑
			videos.POST("/:video_id/bgm", videoController.AddBgm)              // 混入背景音乐
			videos.POST("/:video_id/subtitles", videoController.OverlaySubtitles) // 烧录字幕
			videos.POST("/:video_id/process", videoController.Process)         // 组合处理
		}

		bgm := v1.Group("/bgm")
		{
			bgm.POST("", bgmController.Upload)      // 上传背景音乐
			bgm.POST("/fetch", bgmController.Fetch) // 远程拉取背景音乐
			bgm.GET("", bgmController.List)         // 获取曲目列表
		}

		v1.GET("/fonts", videoController.ListFonts) // 可用字幕字体
	}

	// 健康检查路由
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "video-edit-service",
		})
	})
}

// SetupMiddleware 设置中间件
func (r *Router) SetupMiddleware(engine *gin.Engine) {
	engine.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	engine.Use(middleware.RequestContextMiddleware())
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())
}
