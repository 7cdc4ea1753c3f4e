package convertor

import (
	"video-edit-service/ddd/domain/entity"
	"video-edit-service/ddd/infrastructure/database/po"
)

// BgmTrackConvertor 背景音乐曲目转换器
type BgmTrackConvertor struct{}

// NewBgmTrackConvertor 创建曲目转换器
func NewBgmTrackConvertor() *BgmTrackConvertor {
	return &BgmTrackConvertor{}
}

// ToEntity 将PO转换为Entity
func (c *BgmTrackConvertor) ToEntity(trackPo *po.BgmTrack) *entity.BgmTrack {
	return entity.RestoreBgmTrack(
		trackPo.ID,
		trackPo.Title,
		trackPo.StorageKey,
		trackPo.StorageURL,
		trackPo.SourceURL,
		trackPo.Duration,
		trackPo.CreatedAt,
	)
}

// ToPO 将Entity转换为PO
func (c *BgmTrackConvertor) ToPO(track *entity.BgmTrack) *po.BgmTrack {
	return &po.BgmTrack{
		BaseModel: po.BaseModel{
			CreatedAt: track.CreatedAt(),
		},
		ID:         track.ID(),
		Title:      track.Title(),
		StorageKey: track.StorageKey(),
		StorageURL: track.StorageURL(),
		SourceURL:  track.SourceURL(),
		Duration:   track.Duration(),
	}
}

// ToEntityList 将PO列表转换为Entity列表
func (c *BgmTrackConvertor) ToEntityList(pos []*po.BgmTrack) []*entity.BgmTrack {
	entities := make([]*entity.BgmTrack, 0, len(pos))
	for _, trackPo := range pos {
		entities = append(entities, c.ToEntity(trackPo))
	}
	return entities
}
