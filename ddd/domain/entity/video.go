package entity

import (
	"time"

	"github.com/google/uuid"

	"video-edit-service/ddd/domain/vo"
	"video-edit-service/pkg/errno"
)

// Video 视频记录实体
type Video struct {
	id               string
	originalFilename string
	storageKey       string
	storageURL       string
	thumbnailURL     string
	duration         float64
	status           vo.VideoStatus
	createdAt        time.Time
	updatedAt        time.Time
}

// NewVideo 创建新上传的视频记录
func NewVideo(originalFilename, storageKey, storageURL string, duration float64) *Video {
	now := time.Now()
	return &Video{
		id:               uuid.NewString(),
		originalFilename: originalFilename,
		storageKey:       storageKey,
		storageURL:       storageURL,
		duration:         duration,
		status:           vo.StatusUploaded,
		createdAt:        now,
		updatedAt:        now,
	}
}

// RestoreVideo 从持久化数据还原视频记录
func RestoreVideo(
	id, originalFilename, storageKey, storageURL, thumbnailURL string,
	duration float64, status vo.VideoStatus, createdAt, updatedAt time.Time,
) *Video {
	return &Video{
		id:               id,
		originalFilename: originalFilename,
		storageKey:       storageKey,
		storageURL:       storageURL,
		thumbnailURL:     thumbnailURL,
		duration:         duration,
		status:           status,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// ID 获取视频ID
func (v *Video) ID() string {
	return v.id
}

// OriginalFilename 获取原始文件名
func (v *Video) OriginalFilename() string {
	return v.originalFilename
}

// StorageKey 获取当前制品的对象存储键
func (v *Video) StorageKey() string {
	return v.storageKey
}

// StorageURL 获取当前制品的访问URL
func (v *Video) StorageURL() string {
	return v.storageURL
}

// ThumbnailURL 获取缩略图URL
func (v *Video) ThumbnailURL() string {
	return v.thumbnailURL
}

// SetThumbnailURL 设置缩略图URL
func (v *Video) SetThumbnailURL(url string) {
	v.thumbnailURL = url
	v.updatedAt = time.Now()
}

// Duration 获取时长（秒）
func (v *Video) Duration() float64 {
	return v.duration
}

// Status 获取处理状态
func (v *Video) Status() vo.VideoStatus {
	return v.status
}

// CreatedAt 获取创建时间
func (v *Video) CreatedAt() time.Time {
	return v.createdAt
}

// UpdatedAt 获取更新时间
func (v *Video) UpdatedAt() time.Time {
	return v.updatedAt
}

// AdvanceStage records a successfully stored stage artifact. Callers
// must persist the artifact before invoking this; the entity only
// guards the transition itself.
func (v *Video) AdvanceStage(status vo.VideoStatus, storageKey, storageURL string, duration float64) error {
	if !v.status.CanTransitionTo(status) {
		return errno.ErrInvalidStatus.Wrapf("%s -> %s", v.status, status)
	}
	v.status = status
	v.storageKey = storageKey
	v.storageURL = storageURL
	if duration > 0 {
		v.duration = duration
	}
	v.updatedAt = time.Now()
	return nil
}

// MarkFailed transitions the record to the terminal failed state while
// keeping the key/URL of the last durably stored artifact.
func (v *Video) MarkFailed() error {
	if !v.status.CanTransitionTo(vo.StatusFailed) {
		return errno.ErrInvalidStatus.Wrapf("%s -> %s", v.status, vo.StatusFailed)
	}
	v.status = vo.StatusFailed
	v.updatedAt = time.Now()
	return nil
}
