package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderEventType string

const (
	OrderEventCreated OrderEventType = "order.created"
	OrderEventPaid    OrderEventType = "order.paid"
)

// 注文の状態変化を外部に通知するメッセージ
type OrderEvent struct {
	Type       OrderEventType  `json:"type"`
	OrderID    int64           `json:"orderId"`
	UserID     int64           `json:"userId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	OccurredAt time.Time       `json:"occurredAt"`
}

type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// 送信先が無いときに使う
type NopOrderEventPublisher struct{}

func (NopOrderEventPublisher) Publish(ctx context.Context, event OrderEvent) error {
	return nil
}
