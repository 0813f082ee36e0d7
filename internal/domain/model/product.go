package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	//金額はJSONで数値として返す
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64           `gorm:"not null;index" json:"user"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Image        string          `gorm:"type:varchar(255)" json:"image"`
	Brand        string          `gorm:"type:varchar(255)" json:"brand"`
	Category     string          `gorm:"type:varchar(255)" json:"category"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CountInStock int64           `gorm:"not null;default:0" json:"countInStock"`
	Rating       float64         `gorm:"not null;default:0;index" json:"rating"`
	NumReviews   int             `gorm:"not null;default:0" json:"numReviews"`
	Reviews      []Review        `gorm:"foreignKey:ProductID" json:"reviews"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// レビュー一覧から件数と平均評価を計算し直す
func (p *Product) RecalculateRating() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0
		return
	}

	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = float64(sum) / float64(p.NumReviews)
}

// userIDのレビューが既にあるか
func (p *Product) ReviewedBy(userID int64) bool {
	for _, r := range p.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}
