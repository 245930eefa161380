package announcements

import (
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// Producer publishes announcements to Kafka.
type Producer interface {
	Publish(announcement *Announcement) error
	Close() error
}

// KafkaProducerConfig contains configuration for the announcement producer
type KafkaProducerConfig struct {
	Brokers   []string
	Topic     string
	RetryMax  int
	TimeoutMs int
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaProducer creates a sync producer for the announcements topic.
func NewKafkaProducer(config *KafkaProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaProducer{producer: producer, config: config}, nil
}

func (kp *kafkaProducer) Publish(announcement *Announcement) error {
	messageBytes, err := announcement.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal announcement: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kp.config.Topic,
		Key:       sarama.StringEncoder(announcement.PartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: announcement.CreatedAt,
	}

	if _, _, err := kp.producer.SendMessage(message); err != nil {
		return fmt.Errorf("failed to send announcement to Kafka: %w", err)
	}
	return nil
}

func (kp *kafkaProducer) Close() error {
	return kp.producer.Close()
}
