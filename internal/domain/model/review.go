package model

import "time"

// 商品レビュー。1商品につき1ユーザー1件
type Review struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_review_product_user" json:"-"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_review_product_user" json:"user"`
	//投稿時点の表示名
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
