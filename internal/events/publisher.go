// Package events implements best-effort delta fan-out: after a webhook delta is applied to a
// collection mirror, publish a compact {entity, method, id} record to Kafka
// so out-of-process consumers can observe mirror churn without polling the
// store. Grounded on cuihairu-croupier/internal/analytics/mq/kafka_pub.go's
// kafkaQueue: a single *kafka.Writer, a best-effort write with a bounded
// context, and a Noop fallback when no brokers are configured.
package events

import (
	"context"
	"encoding/json"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sandpiper-dev/igdbmatch/internal/config"
)

// Publisher publishes mirror deltas. Satisfies mirror.EventPublisher and
// webhookingress.EventPublisher.
type Publisher interface {
	PublishDelta(ctx context.Context, entity, method string, id uint64) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

type noopPublisher struct{}

// New returns a kafkaPublisher when cfg.KafkaBrokers is non-empty, otherwise
// a no-op publisher — mirroring kafka_pub.go's NewKafka fallback to
// NewNoop() when len(brokers) == 0.
func New(cfg *config.Config, log *zap.Logger) Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return noopPublisher{}
	}
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaDeltaTopic,
			RequiredAcks: kafka.RequireOne,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
		},
		log: log,
	}
}

// delta is the compact record fanned out per mirror-applied webhook event.
type delta struct {
	Entity string `json:"entity"`
	Method string `json:"method"`
	ID     uint64 `json:"id"`
}

func (p *kafkaPublisher) PublishDelta(ctx context.Context, entity, method string, id uint64) error {
	b, err := json.Marshal(delta{Entity: entity, Method: method, ID: id})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.writer.WriteMessages(ctx, kafka.Message{Value: b})
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

func (noopPublisher) PublishDelta(context.Context, string, string, uint64) error { return nil }
func (noopPublisher) Close() error                                               { return nil }
