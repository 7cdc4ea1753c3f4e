package dto

import (
	"time"

	"video-edit-service/ddd/domain/entity"
)

// VideoDto 视频记录数据传输对象
type VideoDto struct {
	ID               string    `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	StorageKey       string    `json:"storage_key"`
	StorageURL       string    `json:"storage_url"`
	ThumbnailURL     string    `json:"thumbnail_url,omitempty"`
	Duration         float64   `json:"duration"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewVideoDto 从实体构造DTO
func NewVideoDto(video *entity.Video) *VideoDto {
	return &VideoDto{
		ID:               video.ID(),
		OriginalFilename: video.OriginalFilename(),
		StorageKey:       video.StorageKey(),
		StorageURL:       video.StorageURL(),
		ThumbnailURL:     video.ThumbnailURL(),
		Duration:         video.Duration(),
		Status:           video.Status().String(),
		CreatedAt:        video.CreatedAt(),
		UpdatedAt:        video.UpdatedAt(),
	}
}

// VideoListDto 视频列表数据传输对象
type VideoListDto struct {
	Videos []*VideoDto `json:"videos"`
	Total  int         `json:"total"`
}

// NewVideoListDto 从实体列表构造DTO
func NewVideoListDto(videos []*entity.Video) *VideoListDto {
	items := make([]*VideoDto, 0, len(videos))
	for _, video := range videos {
		items = append(items, NewVideoDto(video))
	}
	return &VideoListDto{Videos: items, Total: len(items)}
}
