package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
	auth "shopapi/internal/usecase/auth_usecase"

	"github.com/rs/zerolog"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	publisher OrderEventPublisher
	clock     auth.Clock
	log       zerolog.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	publisher OrderEventPublisher,
	clock auth.Clock,
	log zerolog.Logger,
) *OrderUsecase {
	if publisher == nil {
		publisher = NopOrderEventPublisher{}
	}
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		publisher: publisher,
		clock:     clock,
		log:       log.With().Str("component", "order_usecase").Logger(),
	}
}

type OrderItemInput struct {
	ProductID int64
	Qty       int64
}

type CreateOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress model.ShippingAddress
	PaymentMethod   string
}

type PayOrderInput struct {
	GatewayID    string
	Status       string
	UpdateTime   string
	EmailAddress string
}

func validateShipping(a model.ShippingAddress) error {
	if strings.TrimSpace(a.Address) == "" ||
		strings.TrimSpace(a.City) == "" ||
		strings.TrimSpace(a.PostalCode) == "" ||
		strings.TrimSpace(a.Country) == "" {
		return NewHTTPError(http.StatusBadRequest, "shipping address required")
	}
	return nil
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}
	if len(in.Items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "No order items")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid product")
		}
		if it.Qty < 1 {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "qty must be >= 1")
		}
	}
	if err := validateShipping(in.ShippingAddress); err != nil {
		return model.Order{}, err
	}
	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "payment method required")
	}

	order := model.Order{
		UserID:          userID,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   method,
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items := make([]model.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Product not found")
			}
			if err != nil {
				return dbError(err)
			}

			// 注文時点の商品情報をスナップショット
			items = append(items, model.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Image:     p.Image,
				Price:     p.Price,
				Qty:       it.Qty,
			})
		}
		order.OrderItems = items
		order.CalcPrices()

		if err := r.Orders().Create(ctx, &order); err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return model.Order{}, passOrDBError(err)
	}

	u.publish(ctx, OrderEvent{
		Type:       OrderEventCreated,
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		OccurredAt: u.clock.Now(),
	})
	return order, nil
}

func (u *OrderUsecase) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Order{}, dbError(err)
	}
	return withItems(orders), nil
}

// 本人か管理者だけが見られる（それ以外は存在を隠して404）
func (u *OrderUsecase) GetOrder(ctx context.Context, viewer model.User, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return model.Order{}, dbError(err)
	}
	if o.UserID != viewer.ID && !viewer.IsAdmin {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if o.OrderItems == nil {
		o.OrderItems = []model.OrderItem{}
	}
	return o, nil
}

// 支払い済みは一方向（最初のpaidAtを保持）
func (u *OrderUsecase) PayOrder(ctx context.Context, viewer model.User, orderID int64, in PayOrderInput) (model.Order, error) {
	o, err := u.GetOrder(ctx, viewer, orderID)
	if err != nil {
		return model.Order{}, err
	}
	if o.IsPaid {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Order already paid")
	}

	result := model.PaymentResult{
		GatewayID:    strings.TrimSpace(in.GatewayID),
		Status:       strings.TrimSpace(in.Status),
		UpdateTime:   strings.TrimSpace(in.UpdateTime),
		EmailAddress: strings.TrimSpace(in.EmailAddress),
	}
	paidAt := u.clock.Now()

	err = u.orders.MarkPaid(ctx, o.ID, paidAt, result)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	// 確認後に別のリクエストが先に支払った
	if errors.Is(err, repo.ErrAlreadyPaid) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Order already paid")
	}
	if err != nil {
		return model.Order{}, dbError(err)
	}

	paid, err := u.GetOrder(ctx, viewer, o.ID)
	if err != nil {
		return model.Order{}, err
	}

	u.publish(ctx, OrderEvent{
		Type:       OrderEventPaid,
		OrderID:    paid.ID,
		UserID:     paid.UserID,
		TotalPrice: paid.TotalPrice,
		OccurredAt: paidAt,
	})
	return paid, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return []model.Order{}, dbError(err)
	}
	return withItems(orders), nil
}

// 通知の失敗で注文自体は失敗させない
func (u *OrderUsecase) publish(ctx context.Context, ev OrderEvent) {
	if err := u.publisher.Publish(ctx, ev); err != nil {
		u.log.Warn().Err(err).
			Str("type", string(ev.Type)).
			Int64("order_id", ev.OrderID).
			Msg("order event publish failed")
	}
}

func withItems(orders []model.Order) []model.Order {
	if orders == nil {
		return []model.Order{}
	}
	for i := range orders {
		if orders[i].OrderItems == nil {
			orders[i].OrderItems = []model.OrderItem{}
		}
	}
	return orders
}
