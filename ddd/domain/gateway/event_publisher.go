package gateway

import (
	"context"
	"time"

	"video-edit-service/ddd/domain/vo"
)

// StageEvent 流水线阶段完成事件
type StageEvent struct {
	VideoID    string         `json:"video_id"`
	Stage      vo.VideoStatus `json:"stage"`
	StorageKey string         `json:"storage_key"`
	StorageURL string         `json:"storage_url"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// EventPublisher 阶段事件发布网关；发布失败不影响流水线结果
type EventPublisher interface {
	PublishStageEvent(ctx context.Context, event StageEvent) error
}
