package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	adapterhttp "video-edit-service/ddd/adapter/http"
	applayer "video-edit-service/ddd/application/app"
	"video-edit-service/ddd/domain/gateway"
	"video-edit-service/ddd/domain/service"
	"video-edit-service/ddd/infrastructure/cache"
	"video-edit-service/ddd/infrastructure/database/persistence"
	"video-edit-service/ddd/infrastructure/database/po"
	"video-edit-service/ddd/infrastructure/engine"
	"video-edit-service/ddd/infrastructure/event"
	"video-edit-service/ddd/infrastructure/fetcher"
	"video-edit-service/ddd/infrastructure/storage"
	"video-edit-service/internal/resource"
	"video-edit-service/pkg/config"
	"video-edit-service/pkg/logger"
	"video-edit-service/pkg/observability"
	"video-edit-service/pkg/registry"
	"video-edit-service/pkg/task"
)

const serviceName = "video-edit-service"

func Run() {
	fmt.Println("[STARTUP] Starting video edit service...")

	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("[ERROR] Failed to load config (%s): %v\n", cfgPath, err)
		os.Exit(1)
	}
	fmt.Printf("[STARTUP] Config file loaded: %s\n", cfgPath)

	logService := logger.NewLogger(cfg)
	logger.SetGlobalLogger(logService)
	defer logService.Close()

	profiler := observability.StartProfiling(cfg.Profiling, serviceName)
	defer observability.StopProfiling(profiler)

	// 启动阶段检查外部二进制，缺少 ffmpeg 直接失败
	if _, err := exec.LookPath(cfg.Engine.FFmpegPath); err != nil {
		logger.Fatal(fmt.Sprintf("FFmpeg binary not found, please install or set engine.ffmpeg_path binary=%s error=%s", cfg.Engine.FFmpegPath, err.Error()))
	}
	if _, err := exec.LookPath(cfg.Engine.FFprobePath); err != nil {
		logger.Fatal(fmt.Sprintf("ffprobe binary not found, please install or set engine.ffprobe_path binary=%s error=%s", cfg.Engine.FFprobePath, err.Error()))
	}
	if _, err := exec.LookPath(cfg.Fetcher.YtdlpPath); err != nil {
		logger.Warnf("yt-dlp binary not found, remote bgm fetch will fail binary=%s", cfg.Fetcher.YtdlpPath)
	}

	ctx := context.Background()

	// 资源初始化
	mysqlRes, err := resource.NewMysqlResource(cfg.Database)
	if err != nil {
		logger.Fatal(fmt.Sprintf("Failed to initialize database error=%v", err))
	}
	defer mysqlRes.Close()

	if err := mysqlRes.MainDB().AutoMigrate(&po.Video{}, &po.BgmTrack{}); err != nil {
		logger.Fatal(fmt.Sprintf("Failed to migrate schema error=%v", err))
	}

	minioRes, err := resource.NewMinioResource(ctx, cfg.Minio)
	if err != nil {
		logger.Fatal(fmt.Sprintf("Failed to initialize minio error=%v", err))
	}
	defer minioRes.Close()

	// Redis 不可用时降级为无缓存运行
	var listCache *cache.VideoListCache
	redisRes, err := resource.NewRedisResource(ctx, cfg.Redis)
	if err != nil {
		logger.Warnf("Redis unavailable, running without list cache error=%v", err)
	} else {
		defer redisRes.Close()
		listCache = cache.NewVideoListCache(redisRes, cfg.Redis.ListCacheTTL)
	}

	var events gateway.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaRes := resource.NewKafkaResource(cfg.Kafka)
		defer kafkaRes.Close()
		events = event.NewKafkaPublisher(kafkaRes)
	}

	// 仓储与网关
	videoRepo := persistence.NewVideoRepository(mysqlRes.MainDB())
	bgmRepo := persistence.NewBgmRepository(mysqlRes.MainDB())
	artifactStore := storage.NewMinioStorage(minioRes, cfg.Storage, cfg.Public)
	mediaEngine := engine.NewFFmpegEngine(cfg.Engine)
	audioFetcher := fetcher.NewYtdlpFetcher(cfg.Fetcher)

	// 领域服务
	fonts := service.NewFontResolver(artifactStore, cfg.Subtitle)
	pipeline := service.NewPipelineService(mediaEngine, artifactStore, videoRepo, bgmRepo, fonts, events, cfg)
	ingest := service.NewIngestService(mediaEngine, artifactStore, audioFetcher, videoRepo, bgmRepo, cfg)

	editApp := applayer.NewVideoEditApp(ingest, pipeline, videoRepo, bgmRepo, fonts, listCache, cfg)

	// 后台任务
	tasks := task.NewManager()
	tasks.Register(service.NewFontSyncTask(fonts, cfg.Subtitle.SyncInterval))
	if err := tasks.StartAll(ctx); err != nil {
		logger.Warnf("Background task startup degraded error=%v", err)
	}
	defer tasks.StopAll()

	// HTTP 服务
	gin.SetMode(cfg.Server.Mode)
	ginEngine := gin.New()

	router := adapterhttp.NewRouter(editApp, cfg.Engine.TempDir)
	router.SetupMiddleware(ginEngine)
	router.SetupRoutes(ginEngine)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      ginEngine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("HTTP server started addr=%s service=%s", addr, serviceName)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(fmt.Sprintf("Failed to start HTTP server error=%v", err))
		}
	}()

	// 服务注册
	var serviceRegistry *registry.ServiceRegistry
	if cfg.ServiceRegistry.Enabled {
		serviceRegistry, err = registry.NewServiceRegistry(cfg.ServiceRegistry, addr)
		if err != nil {
			logger.Errorf("Service registry init failed error=%v", err)
		} else if err := serviceRegistry.Register(); err != nil {
			logger.Errorf("Service registration failed error=%v", err)
		}
	}

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Received shutdown signal, shutting down server...")

	if serviceRegistry != nil {
		serviceRegistry.Deregister()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to close error=%v", err)
	}

	logger.Infof("Server exited safely")
}

// resolveConfigPath 根据环境选择配置文件，支持CONFIG_PATH覆盖、CONFIG_ENV区分环境
func resolveConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	env := strings.ToLower(strings.TrimSpace(os.Getenv("CONFIG_ENV")))
	if env == "" {
		env = "dev"
	}

	switch env {
	case "prod", "production":
		return "configs/config_prod.yaml"
	case "dev", "development":
		return "configs/config.dev.yaml"
	default:
		return fmt.Sprintf("configs/config.%s.yaml", env)
	}
}
