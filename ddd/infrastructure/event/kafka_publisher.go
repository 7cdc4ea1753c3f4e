package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"video-edit-service/ddd/domain/gateway"
	"video-edit-service/internal/resource"
)

// KafkaPublisher publishes pipeline stage events. Messages are keyed
// by video id so all events of one record land in the same partition.
type KafkaPublisher struct {
	kafkaResource *resource.KafkaResource
}

var _ gateway.EventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(kafkaResource *resource.KafkaResource) *KafkaPublisher {
	return &KafkaPublisher{kafkaResource: kafkaResource}
}

// PublishStageEvent 发布阶段完成事件
func (p *KafkaPublisher) PublishStageEvent(ctx context.Context, event gateway.StageEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal stage event: %w", err)
	}
	return p.kafkaResource.Writer().WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.VideoID),
		Value: payload,
	})
}
