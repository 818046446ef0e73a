package output

import (
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/chrisdamba/foodcart/internal/models"
	"go.uber.org/zap"
)

// KafkaOutput publishes events with a synchronous sarama producer. Events are
// keyed by cart id so every event of a cart lands on the same partition.
type KafkaOutput struct {
	producer sarama.SyncProducer
	topic    func(string) string
	logger   *zap.Logger
}

func newSaramaConfig(cfg models.KafkaConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required by SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	if cfg.SessionTimeoutMs > 0 {
		saramaConfig.Consumer.Group.Session.Timeout = time.Duration(cfg.SessionTimeoutMs) * time.Millisecond
	} else {
		saramaConfig.Consumer.Group.Session.Timeout = 45 * time.Second
	}
	return saramaConfig
}

func NewKafkaOutput(cfg *models.Config, logger *zap.Logger) (*KafkaOutput, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.BrokerList, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}
	logger.Info("kafka producer created", zap.Strings("brokers", cfg.Kafka.BrokerList))
	return newKafkaOutput(producer, cfg.Topic, logger), nil
}

func newKafkaOutput(producer sarama.SyncProducer, topic func(string) string, logger *zap.Logger) *KafkaOutput {
	return &KafkaOutput{producer: producer, topic: topic, logger: logger}
}

func (k *KafkaOutput) WriteMessage(topic string, msg []byte) error {
	if k.producer == nil {
		return fmt.Errorf("kafka producer is closed")
	}
	h, err := readHeader(msg)
	if err != nil {
		return err
	}

	message := &sarama.ProducerMessage{
		Topic: k.topic(topic),
		Value: sarama.ByteEncoder(msg),
	}
	if h.CartID != "" {
		message.Key = sarama.StringEncoder(h.CartID)
	}

	partition, offset, err := k.producer.SendMessage(message)
	if err != nil {
		k.logger.Error("failed to send message", zap.String("topic", message.Topic), zap.Error(err))
		return err
	}
	k.logger.Debug("message sent",
		zap.String("topic", message.Topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}

func (k *KafkaOutput) Close() error {
	if k.producer == nil {
		return nil
	}
	err := k.producer.Close()
	k.producer = nil
	return err
}
