package producers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/smartcitydata/trafficdatasim/internal/models"
)

// SaramaSink publishes batches to Kafka through a synchronous producer. One
// SendBatch call maps to one SendMessages call, so a batch is acknowledged or
// rejected as a unit.
type SaramaSink struct {
	producer sarama.SyncProducer
	logger   zerolog.Logger
}

func NewSaramaSink(cfg *models.Config, logger zerolog.Logger) (*SaramaSink, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	brokerList := strings.Split(cfg.KafkaBrokerList, ",")

	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	logger.Info().Strs("brokers", brokerList).Msg("Sarama producer created")
	return &SaramaSink{producer: producer, logger: logger}, nil
}

func (s *SaramaSink) SendBatch(_ context.Context, topic string, payloads [][]byte) error {
	if s.producer == nil {
		return fmt.Errorf("Sarama producer is not initialized")
	}

	messages := make([]*sarama.ProducerMessage, len(payloads))
	for i, payload := range payloads {
		messages[i] = &sarama.ProducerMessage{
			Topic: topic,
			Value: sarama.ByteEncoder(payload),
		}
	}

	if err := s.producer.SendMessages(messages); err != nil {
		s.logger.Error().Err(err).Str("topic", topic).Int("events", len(payloads)).Msg("failed to send batch")
		return err
	}
	return nil
}

func (s *SaramaSink) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}
