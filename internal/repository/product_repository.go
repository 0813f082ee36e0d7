package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Page    int
	Limit   int
	Keyword string
}

// 商品とレビューの永続化だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	ListTopRated(ctx context.Context, limit int) ([]model.Product, error)
	// レビュー込みで取得
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	//レビューを追加（同一ユーザーの二回目はErrDuplicate）
	AddReview(ctx context.Context, r model.Review) error
	//件数と平均評価だけを更新
	UpdateRating(ctx context.Context, productID int64, numReviews int, rating float64) error
}
