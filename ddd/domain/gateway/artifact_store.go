package gateway

import "context"

// 对象存储键前缀
const (
	KeyPrefixUploads   = "uploads/"
	KeyPrefixTrimmed   = "trimmed/"
	KeyPrefixBgmAudios = "bgm_audios/"
	KeyPrefixFinal     = "final_videos/"
	KeyPrefixThumbs    = "thumbnails/"
	KeyPrefixFonts     = "fonts/"
)

// ArtifactStore 远程对象存储网关
type ArtifactStore interface {
	// Upload puts a local file under objectKey and returns its public URL.
	Upload(ctx context.Context, localPath, objectKey, contentType string) (string, error)

	// Download fetches objectKey into localPath, creating parent directories.
	Download(ctx context.Context, objectKey, localPath string) error

	// List returns the object keys under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
