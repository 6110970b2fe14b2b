// Package events publishes marketplace domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	SpecialistCreated   EventType = "specialist.created"
	SpecialistPublished EventType = "specialist.published"
	SpecialistDeleted   EventType = "specialist.deleted"
	OrderCreated        EventType = "order.created"
	OrderStatusChanged  EventType = "order.status_changed"
	CompanyRegistered   EventType = "company.registered"
)

// Event is the envelope written as the Kafka message value.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Publisher accepts events without blocking the caller.
type Publisher interface {
	Produce(eventType EventType, key string, payload interface{})
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
	done      chan struct{}
}

// dialTimeout bounds the whole topic bootstrap, retries included.
const dialTimeout = 30 * time.Second

// NewProducer ensures the topic exists and starts the delivery loop.
func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}

	var conn *kafka.Conn
	dial := func() error {
		var err error
		conn, err = kafka.Dial("tcp", brokers[0])
		return err
	}
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = dialTimeout
	if err := backoff.Retry(dial, policy); err != nil {
		return nil, fmt.Errorf("dial kafka: %w", err)
	}
	defer conn.Close()

	err := conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.Hash{},
		Topic:    topic,
	}
	return newProducer(writer, logger), nil
}

func newProducer(writer KafkaWriter, logger *zap.Logger) *Producer {
	p := &Producer{
		writer:    writer,
		events:    make(chan Event, 1000),
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
	go p.eventLoop()
	return p
}

// Produce enqueues the event. When the queue is full the event is dropped and
// a warning is logged.
func (p *Producer) Produce(eventType EventType, key string, payload interface{}) {
	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	select {
	case p.events <- event:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.String("key", key),
		)
	}
}

func (p *Producer) eventLoop() {
	defer close(p.done)
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			// flush what is already queued
			for {
				select {
				case event := <-p.events:
					p.sendEvent(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("key", event.Key),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("key", event.Key),
		)
	}
}

// Close flushes queued events and closes the writer. Produce must not be
// called after Close.
func (p *Producer) Close() {
	close(p.closeChan)
	<-p.done
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}

// NopPublisher discards events. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Produce(EventType, string, interface{}) {}
