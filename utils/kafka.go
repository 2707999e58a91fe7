package utils

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	kafkaWriter *kafka.Writer
	kafkaTopic  string
)

// InitializeKafka sets up the async notification writer. Kafka being down
// must never block an API request, so publish failures only log.
func InitializeKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, notification fan-out disabled")
		return
	}

	kafkaTopic = os.Getenv("KAFKA_NOTIFICATIONS_TOPIC")
	if kafkaTopic == "" {
		kafkaTopic = "wayfarer.notifications"
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        kafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	log.Printf("✅ Kafka writer ready (topic %s)", kafkaTopic)
}

// PublishNotification pushes a serialized notification onto the topic.
func PublishNotification(key string, payload []byte) {
	if kafkaWriter == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		log.Printf("⚠️ Kafka publish failed: %v", err)
	}
}

// NewNotificationReader builds a consumer for the notifications topic.
// Returns nil when Kafka is not configured.
func NewNotificationReader() *kafka.Reader {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}
	topic := os.Getenv("KAFKA_NOTIFICATIONS_TOPIC")
	if topic == "" {
		topic = "wayfarer.notifications"
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(brokers, ","),
		GroupID: "wayfarer-notifications",
		Topic:   topic,
	})
}
