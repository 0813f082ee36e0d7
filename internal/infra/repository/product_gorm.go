package repository

import (
	"context"
	"strings"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func preloadReviews(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}

// キーワード（name部分一致・大文字小文字無視）とページングで返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(kw)) + "%"
		tx = tx.Where(`LOWER(name) LIKE ? ESCAPE '\'`, like)
	}

	//total（件数）
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	err := tx.Session(&gorm.Session{}).
		Preload("Reviews", preloadReviews).
		Order("id asc").
		Offset(offset).
		Limit(q.Limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// 評価の高い順
func (r *ProductGormRepository) ListTopRated(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Reviews", preloadReviews).
		Order("rating desc").
		Order("id asc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Reviews", preloadReviews).First(&p, id).Error
	if err != nil {
		return model.Product{}, translate(err)
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Omit("Reviews").Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新（レビュー集計は触らない）
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":           p.Name,
		"price":          p.Price,
		"description":    p.Description,
		"image":          p.Image,
		"brand":          p.Brand,
		"category":       p.Category,
		"count_in_stock": p.CountInStock,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) AddReview(ctx context.Context, review model.Review) error {
	return translate(r.db.WithContext(ctx).Create(&review).Error)
}

func (r *ProductGormRepository) UpdateRating(ctx context.Context, productID int64, numReviews int, rating float64) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
		"num_reviews": numReviews,
		"rating":      rating,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
