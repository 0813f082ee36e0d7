package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文時点の商品情報を保存する（後から商品が変わっても影響しない）
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   int64           `gorm:"not null;index" json:"-"`
	ProductID int64           `gorm:"not null;index" json:"product"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Image     string          `gorm:"type:varchar(255)" json:"image"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Qty       int64           `gorm:"not null" json:"qty"`
	CreatedAt time.Time       `json:"-"`
}
