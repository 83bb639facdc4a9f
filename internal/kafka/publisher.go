package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"token-pulse-go/internal/config"
	marketengine "token-pulse-go/internal/market-engine"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

// PriceMessage is the value of one record on the tick topic.
type PriceMessage struct {
	Sequence uint64                   `json:"sequence"`
	At       int64                    `json:"at"`
	Update   marketengine.PriceUpdate `json:"update"`
}

// TickPublisher writes every committed tick to Kafka, one record per token
// keyed by token id so a token's updates stay on one partition.
type TickPublisher struct {
	writer messageWriter
	logger logrus.FieldLogger
}

func NewTickPublisher(cfg config.KafkaConfig, logger logrus.FieldLogger) *TickPublisher {
	return newTickPublisher(&kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(cfg.BrokerURL),
		Topic:                  cfg.Topic,
		Balancer:               &kafkaGo.Hash{},
		AllowAutoTopicCreation: true,
	}, logger)
}

func newTickPublisher(w messageWriter, logger logrus.FieldLogger) *TickPublisher {
	return &TickPublisher{writer: w, logger: logger}
}

func (p *TickPublisher) PublishTick(ctx context.Context, tick marketengine.Tick) error {
	msgs := make([]kafkaGo.Message, 0, len(tick.Updates))
	for _, update := range tick.Updates {
		value, err := json.Marshal(PriceMessage{
			Sequence: tick.Sequence,
			At:       tick.At.UnixMilli(),
			Update:   update,
		})
		if err != nil {
			return fmt.Errorf("encode update %s: %w", update.TokenID, err)
		}
		msgs = append(msgs, kafkaGo.Message{Key: []byte(update.TokenID), Value: value})
	}
	if len(msgs) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write tick %d: %w", tick.Sequence, err)
	}

	p.logger.WithFields(logrus.Fields{"sequence": tick.Sequence, "messages": len(msgs)}).
		Debug("[Kafka] Tick published")
	return nil
}

func (p *TickPublisher) Close() error {
	return p.writer.Close()
}
