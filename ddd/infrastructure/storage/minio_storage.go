package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"video-edit-service/ddd/domain/gateway"
	"video-edit-service/internal/resource"
	"video-edit-service/pkg/config"
	"video-edit-service/pkg/logger"
)

// MinioStorage MinIO存储实现
type MinioStorage struct {
	minioResource *resource.MinioResource
	retryTimes    int
	retryBackoff  time.Duration
	publicBase    string
}

var _ gateway.ArtifactStore = (*MinioStorage)(nil)

// NewMinioStorage 创建MinIO存储实例
func NewMinioStorage(minioResource *resource.MinioResource, storageCfg config.StorageConfig, publicCfg config.PublicConfig) *MinioStorage {
	return &MinioStorage{
		minioResource: minioResource,
		retryTimes:    storageCfg.RetryTimes,
		retryBackoff:  storageCfg.RetryBackoff,
		publicBase:    strings.TrimRight(strings.TrimSpace(publicCfg.StorageBase), "/"),
	}
}

// Upload 上传本地文件并返回公开访问URL
func (s *MinioStorage) Upload(ctx context.Context, localPath, objectKey, contentType string) (string, error) {
	if contentType == "" {
		contentType = contentTypeFromExtension(objectKey)
	}

	err := s.withRetry(ctx, "upload", objectKey, func() error {
		file, err := os.Open(localPath)
		if err != nil {
			return fmt.Errorf("open local file: %w", err)
		}
		defer file.Close()

		fileInfo, err := file.Stat()
		if err != nil {
			return fmt.Errorf("stat local file: %w", err)
		}

		client := s.minioResource.GetClient()
		_, err = client.PutObject(ctx, s.minioResource.GetBucketName(), objectKey, file, fileInfo.Size(), minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return fmt.Errorf("put object: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to upload artifact", map[string]interface{}{
			"local_path": localPath,
			"object_key": objectKey,
			"error":      err.Error(),
		})
		return "", err
	}

	logger.Info("Artifact uploaded", map[string]interface{}{
		"object_key": objectKey,
	})
	return s.buildFileURL(objectKey), nil
}

// Download 下载对象到本地路径
func (s *MinioStorage) Download(ctx context.Context, objectKey, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("create local directory: %w", err)
	}

	err := s.withRetry(ctx, "download", objectKey, func() error {
		client := s.minioResource.GetClient()
		object, err := client.GetObject(ctx, s.minioResource.GetBucketName(), objectKey, minio.GetObjectOptions{})
		if err != nil {
			return fmt.Errorf("get object: %w", err)
		}
		defer object.Close()

		localFile, err := os.Create(localPath)
		if err != nil {
			return fmt.Errorf("create local file: %w", err)
		}
		defer localFile.Close()

		if _, err := localFile.ReadFrom(object); err != nil {
			return fmt.Errorf("read object body: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to download object", map[string]interface{}{
			"object_key": objectKey,
			"local_path": localPath,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}

// List 列出前缀下的对象键
func (s *MinioStorage) List(ctx context.Context, prefix string) ([]string, error) {
	client := s.minioResource.GetClient()
	objects := client.ListObjects(ctx, s.minioResource.GetBucketName(), minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var keys []string
	for object := range objects {
		if object.Err != nil {
			return nil, fmt.Errorf("list objects under %s: %w", prefix, object.Err)
		}
		keys = append(keys, object.Key)
	}
	return keys, nil
}

// withRetry reruns op up to the configured extra attempts. A cancelled
// context stops the loop immediately.
func (s *MinioStorage) withRetry(ctx context.Context, op, objectKey string, fn func() error) error {
	var err error
	for attempt := 0; attempt <= s.retryTimes; attempt++ {
		if attempt > 0 {
			logger.Warn("Retrying storage operation", map[string]interface{}{
				"op":         op,
				"object_key": objectKey,
				"attempt":    attempt,
			})
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retryBackoff):
			}
		}
		if err = fn(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}

// buildFileURL 构造对象的公开访问URL
func (s *MinioStorage) buildFileURL(objectKey string) string {
	key := strings.TrimLeft(objectKey, "/")
	if s.publicBase != "" {
		base := s.publicBase
		if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
			base = "https://" + base
		}
		return base + "/" + key
	}

	endpoint := s.minioResource.GetClient().EndpointURL()
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(endpoint.String(), "/"), s.minioResource.GetBucketName(), key)
}

// contentTypeFromExtension 根据文件扩展名获取内容类型
func contentTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".mkv":
		return "video/x-matroska"
	case ".avi":
		return "video/x-msvideo"
	case ".webm":
		return "video/webm"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".wav":
		return "audio/wav"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".ttf":
		return "font/ttf"
	case ".otf":
		return "font/otf"
	default:
		return "application/octet-stream"
	}
}
