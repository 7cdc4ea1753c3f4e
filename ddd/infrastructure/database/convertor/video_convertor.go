package convertor

import (
	"video-edit-service/ddd/domain/entity"
	"video-edit-service/ddd/domain/vo"
	"video-edit-service/ddd/infrastructure/database/po"
)

// VideoConvertor 视频记录转换器
type VideoConvertor struct{}

// NewVideoConvertor 创建视频转换器
func NewVideoConvertor() *VideoConvertor {
	return &VideoConvertor{}
}

// ToEntity 将PO转换为Entity
func (c *VideoConvertor) ToEntity(videoPo *po.Video) *entity.Video {
	return entity.RestoreVideo(
		videoPo.ID,
		videoPo.OriginalFilename,
		videoPo.StorageKey,
		videoPo.StorageURL,
		videoPo.ThumbnailURL,
		videoPo.Duration,
		vo.VideoStatus(videoPo.Status),
		videoPo.CreatedAt,
		videoPo.UpdatedAt,
	)
}

// ToPO 将Entity转换为PO
func (c *VideoConvertor) ToPO(video *entity.Video) *po.Video {
	return &po.Video{
		BaseModel: po.BaseModel{
			CreatedAt: video.CreatedAt(),
			UpdatedAt: video.UpdatedAt(),
		},
		ID:               video.ID(),
		OriginalFilename: video.OriginalFilename(),
		StorageKey:       video.StorageKey(),
		StorageURL:       video.StorageURL(),
		ThumbnailURL:     video.ThumbnailURL(),
		Duration:         video.Duration(),
		Status:           video.Status().String(),
	}
}

// ToEntityList 将PO列表转换为Entity列表
func (c *VideoConvertor) ToEntityList(pos []*po.Video) []*entity.Video {
	entities := make([]*entity.Video, 0, len(pos))
	for _, videoPo := range pos {
		entities = append(entities, c.ToEntity(videoPo))
	}
	return entities
}
