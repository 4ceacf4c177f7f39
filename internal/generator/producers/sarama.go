package producers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/chrisdamba/mealgen/internal/models"
	"github.com/rs/zerolog"
)

type SaramaProducer struct {
	producer sarama.SyncProducer
	log      zerolog.Logger
}

func NewSaramaProducer(config *models.Config, log zerolog.Logger) (*SaramaProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	brokerList := strings.Split(config.KafkaBrokerList, ",")

	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Info().Strs("brokers", brokerList).Msg("sarama producer created")
	return NewSaramaProducerFrom(producer, log), nil
}

// NewSaramaProducerFrom wraps an existing sync producer.
func NewSaramaProducerFrom(producer sarama.SyncProducer, log zerolog.Logger) *SaramaProducer {
	return &SaramaProducer{producer: producer, log: log}
}

// WriteMessage keys each message by run id and order number so the rows of one
// order land on the same partition in order.
func (s *SaramaProducer) WriteMessage(topic string, msg []byte) error {
	if s.producer == nil {
		return errors.New("sarama producer is not initialized")
	}

	var key struct {
		RunID       string `json:"runId"`
		OrderNumber int    `json:"orderNumber"`
	}
	pm := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	}
	if err := json.Unmarshal(msg, &key); err == nil && key.RunID != "" {
		pm.Key = sarama.StringEncoder(fmt.Sprintf("%s/%d", key.RunID, key.OrderNumber))
	}

	partition, offset, err := s.producer.SendMessage(pm)
	if err != nil {
		s.log.Error().Err(err).Str("topic", topic).Msg("failed to send message")
		return err
	}
	s.log.Debug().Str("topic", topic).Int32("partition", partition).Int64("offset", offset).Msg("message sent")
	return nil
}

func (s *SaramaProducer) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}
