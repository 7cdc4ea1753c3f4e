package dao

import (
	"context"

	"gorm.io/gorm"

	"video-edit-service/ddd/infrastructure/database/po"
)

// VideoDao 视频记录数据访问对象
type VideoDao struct {
	db *gorm.DB
}

// NewVideoDao 创建视频DAO实例
func NewVideoDao(db *gorm.DB) *VideoDao {
	return &VideoDao{db: db}
}

// Create 插入视频记录
func (d *VideoDao) Create(ctx context.Context, videoPo *po.Video) error {
	return d.db.WithContext(ctx).Create(videoPo).Error
}

// FindByID 根据ID查询
func (d *VideoDao) FindByID(ctx context.Context, id string) (*po.Video, error) {
	var video po.Video
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// FetchAll 按创建时间倒序查询全部记录
func (d *VideoDao) FetchAll(ctx context.Context) ([]*po.Video, error) {
	var videos []*po.Video
	if err := d.db.WithContext(ctx).Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// UpdateStatus updates the mutable columns of one record in a single
// statement.
func (d *VideoDao) UpdateStatus(ctx context.Context, videoPo *po.Video) error {
	return d.db.WithContext(ctx).Model(&po.Video{}).
		Where("id = ?", videoPo.ID).
		Updates(map[string]interface{}{
			"status":        videoPo.Status,
			"storage_key":   videoPo.StorageKey,
			"storage_url":   videoPo.StorageURL,
			"thumbnail_url": videoPo.ThumbnailURL,
			"duration":      videoPo.Duration,
		}).Error
}
