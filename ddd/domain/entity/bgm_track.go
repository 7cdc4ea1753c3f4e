package entity

import (
	"time"

	"github.com/google/uuid"
)

// BgmTrack 背景音乐曲目实体；创建后不可变
type BgmTrack struct {
	id         string
	title      string
	storageKey string
	storageURL string
	sourceURL  string
	duration   float64
	createdAt  time.Time
}

// NewBgmTrack 创建背景音乐曲目
func NewBgmTrack(title, storageKey, storageURL, sourceURL string, duration float64) *BgmTrack {
	return &BgmTrack{
		id:         uuid.NewString(),
		title:      title,
		storageKey: storageKey,
		storageURL: storageURL,
		sourceURL:  sourceURL,
		duration:   duration,
		createdAt:  time.Now(),
	}
}

// RestoreBgmTrack 从持久化数据还原曲目
func RestoreBgmTrack(id, title, storageKey, storageURL, sourceURL string, duration float64, createdAt time.Time) *BgmTrack {
	return &BgmTrack{
		id:         id,
		title:      title,
		storageKey: storageKey,
		storageURL: storageURL,
		sourceURL:  sourceURL,
		duration:   duration,
		createdAt:  createdAt,
	}
}

// ID 获取曲目ID
func (b *BgmTrack) ID() string {
	return b.id
}

// Title 获取标题
func (b *BgmTrack) Title() string {
	return b.title
}

// StorageKey 获取对象存储键
func (b *BgmTrack) StorageKey() string {
	return b.storageKey
}

// StorageURL 获取访问URL
func (b *BgmTrack) StorageURL() string {
	return b.storageURL
}

// SourceURL 获取来源URL（远程拉取时记录）
func (b *BgmTrack) SourceURL() string {
	return b.sourceURL
}

// Duration 获取时长（秒）
func (b *BgmTrack) Duration() float64 {
	return b.duration
}

// CreatedAt 获取创建时间
func (b *BgmTrack) CreatedAt() time.Time {
	return b.createdAt
}
