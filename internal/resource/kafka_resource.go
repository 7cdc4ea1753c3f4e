package resource

import (
	"time"

	"github.com/segmentio/kafka-go"

	"video-edit-service/pkg/config"
	"video-edit-service/pkg/logger"
)

// KafkaResource manages the producer for pipeline stage events.
type KafkaResource struct {
	writer *kafka.Writer
}

// NewKafkaResource builds the event writer. The connection is lazy;
// broker availability surfaces on the first publish.
func NewKafkaResource(cfg config.KafkaConfig) *KafkaResource {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.BootstrapServers...),
		Topic:        cfg.Topics.PipelineEvents,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
		Transport: &kafka.Transport{
			ClientID: cfg.ClientID,
		},
	}

	logger.Info("Kafka resource initialized", map[string]interface{}{
		"brokers": cfg.BootstrapServers,
		"topic":   cfg.Topics.PipelineEvents,
	})
	return &KafkaResource{writer: writer}
}

// Writer exposes the stage-event producer.
func (r *KafkaResource) Writer() *kafka.Writer {
	return r.writer
}

// Close flushes and closes the producer.
func (r *KafkaResource) Close() {
	_ = r.writer.Close()
}
