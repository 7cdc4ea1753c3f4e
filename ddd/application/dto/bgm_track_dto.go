package dto

import (
	"time"

	"video-edit-service/ddd/domain/entity"
)

// BgmTrackDto 背景音乐曲目数据传输对象
type BgmTrackDto struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	StorageKey string    `json:"storage_key"`
	StorageURL string    `json:"storage_url"`
	SourceURL  string    `json:"source_url,omitempty"`
	Duration   float64   `json:"duration"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewBgmTrackDto 从实体构造DTO
func NewBgmTrackDto(track *entity.BgmTrack) *BgmTrackDto {
	return &BgmTrackDto{
		ID:         track.ID(),
		Title:      track.Title(),
		StorageKey: track.StorageKey(),
		StorageURL: track.StorageURL(),
		SourceURL:  track.SourceURL(),
		Duration:   track.Duration(),
		CreatedAt:  track.CreatedAt(),
	}
}

// BgmTrackListDto 曲目列表数据传输对象
type BgmTrackListDto struct {
	Tracks []*BgmTrackDto `json:"tracks"`
	Total  int            `json:"total"`
}

// NewBgmTrackListDto 从实体列表构造DTO
func NewBgmTrackListDto(tracks []*entity.BgmTrack) *BgmTrackListDto {
	items := make([]*BgmTrackDto, 0, len(tracks))
	for _, track := range tracks {
		items = append(items, NewBgmTrackDto(track))
	}
	return &BgmTrackListDto{Tracks: items, Total: len(items)}
}

// FontListDto 可用字体列表
type FontListDto struct {
	Fonts []string `json:"fonts"`
}
