package usecase_test

import (
	"context"
	"time"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
	"shopapi/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// WithinTxの中で渡すreposを固定する
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders   repo.OrderRepository
	products repo.ProductRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository     { return r.orders }
func (r *TxReposMock) Products() repo.ProductRepository { return r.products }

// =====================
// Repository mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) ListTopRated(ctx context.Context, limit int) ([]model.Product, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepoMock) AddReview(ctx context.Context, r model.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *ProductRepoMock) UpdateRating(ctx context.Context, productID int64, numReviews int, rating float64) error {
	return m.Called(ctx, productID, numReviews, rating).Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepoMock) MarkPaid(ctx context.Context, orderID int64, paidAt time.Time, result model.PaymentResult) error {
	return m.Called(ctx, orderID, paidAt, result).Error(0)
}

// =====================
// misc
// =====================

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, ev usecase.OrderEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type IssuerMock struct{ mock.Mock }

func (m *IssuerMock) Issue(userID int64, tokenVersion int, now time.Time) (string, time.Time, error) {
	args := m.Called(userID, tokenVersion, now)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var (
	_ repo.UserRepository     = (*UserRepoMock)(nil)
	_ repo.ProductRepository  = (*ProductRepoMock)(nil)
	_ repo.OrderRepository    = (*OrderRepoMock)(nil)
	_ repo.TransactionManager = (*TxManagerMock)(nil)
)

// HTTPErrorのステータスを取り出す
func statusOf(err error) int {
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		return 0
	}
	return he.Status
}
