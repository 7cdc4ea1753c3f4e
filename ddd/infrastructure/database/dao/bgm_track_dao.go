package dao

import (
	"context"

	"gorm.io/gorm"

	"video-edit-service/ddd/infrastructure/database/po"
)

// BgmTrackDao 背景音乐曲目数据访问对象
type BgmTrackDao struct {
	db *gorm.DB
}

// NewBgmTrackDao 创建曲目DAO实例
func NewBgmTrackDao(db *gorm.DB) *BgmTrackDao {
	return &BgmTrackDao{db: db}
}

// Create 插入曲目
func (d *BgmTrackDao) Create(ctx context.Context, trackPo *po.BgmTrack) error {
	return d.db.WithContext(ctx).Create(trackPo).Error
}

// FindByID 根据ID查询
func (d *BgmTrackDao) FindByID(ctx context.Context, id string) (*po.BgmTrack, error) {
	var track po.BgmTrack
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&track).Error; err != nil {
		return nil, err
	}
	return &track, nil
}

// FetchAll 按创建时间倒序查询全部曲目
func (d *BgmTrackDao) FetchAll(ctx context.Context) ([]*po.BgmTrack, error) {
	var tracks []*po.BgmTrack
	if err := d.db.WithContext(ctx).Order("created_at DESC").Find(&tracks).Error; err != nil {
		return nil, err
	}
	return tracks, nil
}
