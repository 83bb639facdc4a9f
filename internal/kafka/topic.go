package kafka

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"token-pulse-go/internal/config"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// EnsureTopic creates the tick topic through the cluster controller. An
// existing topic is not an error.
func EnsureTopic(cfg config.KafkaConfig, logger logrus.FieldLogger) error {
	conn, err := kafkaGo.Dial("tcp", cfg.BrokerURL)
	if err != nil {
		return fmt.Errorf("dial broker %s: %w", cfg.BrokerURL, err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("find controller: %w", err)
	}

	controllerConn, err := kafkaGo.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafkaGo.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil && !errors.Is(err, kafkaGo.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", cfg.Topic, err)
	}

	logger.WithField("topic", cfg.Topic).Info("[Kafka] Topic is ready")
	return nil
}
