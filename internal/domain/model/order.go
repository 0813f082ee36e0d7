package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// 配送先（注文にそのまま埋め込む）
type ShippingAddress struct {
	Address    string `gorm:"type:varchar(255)" json:"address"`
	City       string `gorm:"type:varchar(255)" json:"city"`
	PostalCode string `gorm:"type:varchar(20)" json:"postalCode"`
	Country    string `gorm:"type:varchar(100)" json:"country"`
}

// 決済ゲートウェイから返ってきた結果のスナップショット
type PaymentResult struct {
	GatewayID    string `gorm:"type:varchar(255)" json:"id"`
	Status       string `gorm:"type:varchar(50)" json:"status"`
	UpdateTime   string `gorm:"type:varchar(50)" json:"update_time"`
	EmailAddress string `gorm:"type:varchar(255)" json:"email_address"`
}

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"-"`
	User            *User           `gorm:"foreignKey:UserID" json:"-"`
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID" json:"orderItems"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"type:varchar(50);not null" json:"paymentMethod"`
	PaymentResult   PaymentResult   `gorm:"embedded;embeddedPrefix:payment_" json:"paymentResult"`
	ItemsPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"itemsPrice"`
	TaxPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"taxPrice"`
	ShippingPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shippingPrice"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalPrice"`
	IsPaid          bool            `gorm:"not null;default:false" json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt"`
	IsDelivered     bool            `gorm:"not null;default:false" json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

var (
	freeShippingOver = decimal.NewFromInt(100)
	shippingFee      = decimal.NewFromInt(10)
	taxRate          = decimal.RequireFromString("0.15")
)

// 明細のスナップショットから金額を計算する
// 送料：小計100超で無料、それ以外は10 / 税：小計の15%
func (o *Order) CalcPrices() {
	items := decimal.Zero
	for _, it := range o.OrderItems {
		items = items.Add(it.Price.Mul(decimal.NewFromInt(it.Qty)))
	}

	shipping := shippingFee
	if items.GreaterThan(freeShippingOver) {
		shipping = decimal.Zero
	}
	tax := items.Mul(taxRate).Round(2)

	o.ItemsPrice = items.Round(2)
	o.ShippingPrice = shipping
	o.TaxPrice = tax
	o.TotalPrice = items.Add(shipping).Add(tax).Round(2)
}

// 注文者は最小限だけ返す（一覧はid/name、詳細はemailも）
type orderUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	out := struct {
		alias
		User *orderUser `json:"user,omitempty"`
	}{alias: alias(o)}

	if o.User != nil {
		out.User = &orderUser{ID: o.User.ID, Name: o.User.Name, Email: o.User.Email}
	}
	return json.Marshal(out)
}
