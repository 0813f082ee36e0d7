package repository

import (
	"context"
	"time"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems", preloadItems).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Where("id = ?", orderID).
		First(&o).Error
	if err != nil {
		return model.Order{}, translate(err)
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems", preloadItems).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems", preloadItems).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

// 注文と明細をまとめて保存（Userは保存しない）
func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Omit("User").Create(order).Error
}

// is_paid=falseを条件に更新するので、同時に支払っても最初のpaidAtが残る
func (r *OrderGormRepository) MarkPaid(ctx context.Context, orderID int64, paidAt time.Time, result model.PaymentResult) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND is_paid = ?", orderID, false).
		Updates(map[string]interface{}{
			"is_paid":               true,
			"paid_at":               paidAt,
			"payment_gateway_id":    result.GatewayID,
			"payment_status":        result.Status,
			"payment_update_time":   result.UpdateTime,
			"payment_email_address": result.EmailAddress,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", orderID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return repo.ErrNotFound
		}
		return repo.ErrAlreadyPaid
	}
	return nil
}
