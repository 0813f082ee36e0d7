package repository

import (
	"context"
	"time"

	"shopapi/internal/domain/model"
)

type OrderRepository interface {
	// 明細・注文者込みで取得
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	//管理者用の注文一覧
	ListAll(ctx context.Context) ([]model.Order, error)
	// 明細も一緒に保存する
	Create(ctx context.Context, order *model.Order) error
	// 未払いの注文だけを更新（支払い済みはErrAlreadyPaid）
	MarkPaid(ctx context.Context, orderID int64, paidAt time.Time, result model.PaymentResult) error
}
