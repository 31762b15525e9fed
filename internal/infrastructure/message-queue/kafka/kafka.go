package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/storehub/commerce-service/config"
)

func CreateKafkaReader(config *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:          []string{config.KafkaConfig.BrokerAddress},
		Topic:            config.KafkaConfig.BrokerTopic,
		Partition:        config.KafkaConfig.BrokerPartition,
		MinBytes:         1e3, // 1KB
		MaxBytes:         1e6, // 1MB
		MaxWait:          100 * time.Millisecond,
		ReadLagInterval:  -1,
		StartOffset:      kafka.LastOffset,
		GroupID:          "commerce-service",
		QueueCapacity:    1000,
		ReadBatchTimeout: 10 * time.Millisecond,
	})
}

func CreateKafkaProducer(config *config.Config) (*kafka.Conn, error) {
	return kafka.DialLeader(context.Background(), "tcp", config.KafkaConfig.BrokerAddress, config.KafkaConfig.BrokerTopic, config.KafkaConfig.BrokerPartition)
}

// Producer adapts a leader connection to the service layer's publisher
// contract.
type Producer struct {
	conn *kafka.Conn
}

func CreateNewProducer(conn *kafka.Conn) *Producer {
	return &Producer{conn: conn}
}

func (p *Producer) Publish(msg []byte) error {
	_, err := p.conn.WriteMessages(
		kafka.Message{
			Value: msg,
		},
	)
	return err
}
