package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server          ServerConfig          `mapstructure:"server"`
	Database        DatabaseConfig        `mapstructure:"database"`
	Redis           RedisConfig           `mapstructure:"redis"`
	Kafka           KafkaConfig           `mapstructure:"kafka"`
	Minio           MinioConfig           `mapstructure:"minio"`
	Storage         StorageConfig         `mapstructure:"storage"`
	Engine          EngineConfig          `mapstructure:"engine"`
	Pipeline        PipelineConfig        `mapstructure:"pipeline"`
	Subtitle        SubtitleConfig        `mapstructure:"subtitle"`
	Fetcher         FetcherConfig         `mapstructure:"fetcher"`
	ServiceRegistry ServiceRegistryConfig `mapstructure:"service_registry"`
	Profiling       ProfilingConfig       `mapstructure:"profiling"`
	Log             LogConfig             `mapstructure:"log"`
	Public          PublicConfig          `mapstructure:"public"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	Charset         string        `mapstructure:"charset"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	EnableTLS    bool          `mapstructure:"enable_tls"`
	ListCacheTTL time.Duration `mapstructure:"list_cache_ttl"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Enabled          bool              `mapstructure:"enabled"`
	BootstrapServers []string          `mapstructure:"bootstrap_servers"`
	ClientID         string            `mapstructure:"client_id"`
	Topics           KafkaTopicsConfig `mapstructure:"topics"`
}

type KafkaTopicsConfig struct {
	PipelineEvents string `mapstructure:"pipeline_events"`
}

// MinioConfig MinIO配置
type MinioConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKey       string `mapstructure:"access_key"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// StorageConfig 对象存储访问策略
type StorageConfig struct {
	// RetryTimes is the number of additional put/get attempts after the
	// first failure; 0 keeps the single-attempt behaviour.
	RetryTimes   int           `mapstructure:"retry_times"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// EngineConfig 媒体引擎(ffmpeg)配置
type EngineConfig struct {
	FFmpegPath  string `mapstructure:"ffmpeg_path"`
	FFprobePath string `mapstructure:"ffprobe_path"`
	TempDir     string `mapstructure:"temp_dir"`
	VideoCodec  string `mapstructure:"video_codec"`
	AudioCodec  string `mapstructure:"audio_codec"`
	AudioRate   string `mapstructure:"audio_rate"`
}

// PipelineConfig 处理流水线策略
type PipelineConfig struct {
	// TrimMode is "reencode" (frame accurate) or "copy" (stream copy,
	// cut snaps to the previous keyframe).
	TrimMode        string  `mapstructure:"trim_mode"`
	PrimaryGain     float64 `mapstructure:"primary_gain"`
	BgmGain         float64 `mapstructure:"bgm_gain"`
	ThumbnailOffset float64 `mapstructure:"thumbnail_offset"`
}

// SubtitleConfig 字幕叠加策略
type SubtitleConfig struct {
	FontCacheDir string        `mapstructure:"font_cache_dir"`
	SyncInterval time.Duration `mapstructure:"sync_interval"`
	// MissingFontPolicy is "fail" (reject the request) or "fallback"
	// (substitute DefaultFont).
	MissingFontPolicy string `mapstructure:"missing_font_policy"`
	DefaultFont       string `mapstructure:"default_font"`
	DefaultFontSize   int    `mapstructure:"default_font_size"`
	DefaultFontColor  string `mapstructure:"default_font_color"`
	DefaultX          string `mapstructure:"default_x"`
	DefaultY          string `mapstructure:"default_y"`
}

// FetcherConfig 远程音频拉取配置
type FetcherConfig struct {
	YtdlpPath   string `mapstructure:"ytdlp_path"`
	AudioFormat string `mapstructure:"audio_format"`
	DownloadDir string `mapstructure:"download_dir"`
}

// ServiceRegistryConfig registration configuration.
type ServiceRegistryConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoints       []string      `mapstructure:"endpoints"`
	ServiceName     string        `mapstructure:"service_name"`
	ServiceID       string        `mapstructure:"service_id"`
	RegisterHost    string        `mapstructure:"register_host"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	TTL             time.Duration `mapstructure:"ttl"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// ProfilingConfig pyroscope持续性能分析配置
type ProfilingConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	ServerAddress string `mapstructure:"server_address"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// PublicConfig 对外访问配置
type PublicConfig struct {
	StorageBase string `mapstructure:"storage_base"`
}

// Load 加载配置
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("service_registry.enabled", false)
	viper.SetDefault("kafka.enabled", false)
	viper.SetDefault("kafka.client_id", "video-edit-service")
	viper.SetDefault("kafka.bootstrap_servers", []string{"localhost:29092"})
	viper.SetDefault("kafka.topics.pipeline_events", "video.pipeline.events")

	viper.SetEnvPrefix("VIDEO_EDIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Normalize()

	return &config, nil
}

// Normalize 补全配置的默认值
func (c *Config) Normalize() {
	if c.Minio.AccessKeyID == "" {
		c.Minio.AccessKeyID = c.Minio.AccessKey
	}
	if c.Minio.SecretAccessKey == "" {
		c.Minio.SecretAccessKey = c.Minio.SecretKey
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8084
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}

	if c.Engine.FFmpegPath == "" {
		c.Engine.FFmpegPath = "ffmpeg"
	}
	if c.Engine.FFprobePath == "" {
		c.Engine.FFprobePath = "ffprobe"
	}
	if c.Engine.TempDir == "" {
		c.Engine.TempDir = "/tmp/video-edit"
	}
	if c.Engine.VideoCodec == "" {
		c.Engine.VideoCodec = "libx264"
	}
	if c.Engine.AudioCodec == "" {
		c.Engine.AudioCodec = "aac"
	}
	if c.Engine.AudioRate == "" {
		c.Engine.AudioRate = "192k"
	}

	if c.Pipeline.TrimMode == "" {
		c.Pipeline.TrimMode = "reencode"
	}
	if c.Pipeline.PrimaryGain <= 0 {
		c.Pipeline.PrimaryGain = 1.0
	}
	if c.Pipeline.BgmGain <= 0 {
		c.Pipeline.BgmGain = 0.3
	}
	if c.Pipeline.ThumbnailOffset <= 0 {
		c.Pipeline.ThumbnailOffset = 1.0
	}

	if c.Subtitle.FontCacheDir == "" {
		c.Subtitle.FontCacheDir = "/tmp/video-edit/fonts"
	}
	if c.Subtitle.SyncInterval <= 0 {
		c.Subtitle.SyncInterval = 10 * time.Minute
	}
	if c.Subtitle.MissingFontPolicy == "" {
		c.Subtitle.MissingFontPolicy = "fail"
	}
	if c.Subtitle.DefaultFontSize <= 0 {
		c.Subtitle.DefaultFontSize = 36
	}
	if c.Subtitle.DefaultFontColor == "" {
		c.Subtitle.DefaultFontColor = "white"
	}
	if c.Subtitle.DefaultX == "" {
		c.Subtitle.DefaultX = "(w-text_w)/2"
	}
	if c.Subtitle.DefaultY == "" {
		c.Subtitle.DefaultY = "h-text_h-40"
	}

	if c.Fetcher.YtdlpPath == "" {
		c.Fetcher.YtdlpPath = "yt-dlp"
	}
	if c.Fetcher.AudioFormat == "" {
		c.Fetcher.AudioFormat = "m4a"
	}
	if c.Fetcher.DownloadDir == "" {
		c.Fetcher.DownloadDir = c.Engine.TempDir
	}

	if c.Storage.RetryTimes < 0 {
		c.Storage.RetryTimes = 0
	}
	if c.Storage.RetryBackoff <= 0 {
		c.Storage.RetryBackoff = time.Second
	}

	if c.Redis.ListCacheTTL <= 0 {
		c.Redis.ListCacheTTL = 30 * time.Second
	}

	if len(c.Kafka.BootstrapServers) == 0 {
		c.Kafka.BootstrapServers = []string{"localhost:29092"}
	}
	if c.Kafka.ClientID == "" {
		c.Kafka.ClientID = "video-edit-service"
	}
	if c.Kafka.Topics.PipelineEvents == "" {
		c.Kafka.Topics.PipelineEvents = "video.pipeline.events"
	}

	if c.ServiceRegistry.ServiceName == "" {
		c.ServiceRegistry.ServiceName = "video-edit-service"
	}
	if c.ServiceRegistry.DialTimeout <= 0 {
		c.ServiceRegistry.DialTimeout = 5 * time.Second
	}
	if c.ServiceRegistry.TTL == 0 {
		c.ServiceRegistry.TTL = 30 * time.Second
	}
	if c.ServiceRegistry.RefreshInterval == 0 {
		c.ServiceRegistry.RefreshInterval = 10 * time.Second
	}
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, charset)
}

// GetRedisAddr 获取Redis地址
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
