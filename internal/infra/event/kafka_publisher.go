package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shopapi/internal/config"
	"shopapi/internal/usecase"

	"github.com/segmentio/kafka-go"
)

// kafka.Writerのうち使う部分だけ
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// 注文イベントをKafkaへ送る
type KafkaOrderPublisher struct {
	w messageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
}

func NewKafkaOrderPublisher(w messageWriter) *KafkaOrderPublisher {
	return &KafkaOrderPublisher{w: w}
}

// キーは注文IDにして同じ注文のイベント順を保つ
func (p *KafkaOrderPublisher) Publish(ctx context.Context, ev usecase.OrderEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%d", ev.OrderID)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

func (p *KafkaOrderPublisher) Close() error {
	return p.w.Close()
}

// Publisher + 終了処理
type OrderEventPublisher interface {
	usecase.OrderEventPublisher
	Close() error
}

type nopPublisher struct {
	usecase.NopOrderEventPublisher
}

func (nopPublisher) Close() error { return nil }

// ブローカー未設定ならイベントは送らない
func NewOrderEventPublisher(cfg config.Kafka) OrderEventPublisher {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, b := range cfg.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nopPublisher{}
	}
	return NewKafkaOrderPublisher(NewKafkaWriter(brokers, cfg.OrderTopic))
}
