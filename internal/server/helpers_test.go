package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shopapi/internal/config"
	"shopapi/internal/domain/model"
	"shopapi/internal/handler"
	"shopapi/internal/infra/db"
	infraRepo "shopapi/internal/infra/repository"
	"shopapi/internal/server"
	"shopapi/internal/usecase"
	auth "shopapi/internal/usecase/auth_usecase"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// =====================
// test app
// =====================

type testApp struct {
	URL string
	DB  *gorm.DB
}

func testConfig(goEnv string) config.Config {
	return config.Config{
		Port:            "0",
		JWTSecret:       "test-secret",
		GoEnv:           goEnv,
		PaginationLimit: 2,
		LoginRateLimit:  1000,
		Log:             config.Log{Level: "error", Format: "json"},
	}
}

// SQLite（メモリ）で本物の配線を組み立てる
func newTestApp(t *testing.T, goEnv string) *testApp {
	t.Helper()

	cfg := testConfig(goEnv)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), db.Options(testConfig("production"), zerolog.Nop()))
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))

	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	clock := auth.SystemClock{}
	tokens := auth.NewJWTService(cfg.JWTSecret)
	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	verifier := auth.NewBcryptPasswordVerifier()

	userUC := usecase.NewUserUsecase(userRepo, hasher, tokens, clock)
	productUC := usecase.NewProductUsecase(productRepo, txm, cfg.PaginationLimit)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, usecase.NopOrderEventPublisher{}, clock, zerolog.Nop())

	srv := server.New(cfg, zerolog.Nop(), server.Deps{
		Tokens: tokens,
		Users:  userRepo,
		Handlers: server.Handlers{
			Auth: handler.NewAuthHandler(
				auth.NewRegisterUserUsecase(userRepo, hasher, tokens, clock),
				auth.NewLoginUsecase(userRepo, verifier, tokens, clock),
				false,
			),
			User:         handler.NewUserHandler(userUC, false),
			AdminUser:    handler.NewAdminUserHandler(userUC),
			Product:      handler.NewProductHandler(productUC),
			AdminProduct: handler.NewAdminProductHandler(productUC),
			Order:        handler.NewOrderHandler(orderUC),
			AdminOrder:   handler.NewAdminOrderHandler(orderUC),
		},
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testApp{URL: ts.URL, DB: gormDB}
}

// =====================
// client
// =====================

// cookieを保持するクライアント（ユーザーごとに1つ）
type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func (a *testApp) NewClient(t *testing.T) *TestClient {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &TestClient{
		BaseURL: a.URL,
		HTTP: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}
}

type Response struct {
	Status  int
	Body    []byte
	Cookies []*http.Cookie
}

func (c *TestClient) Do(t *testing.T, method string, path string, body any) Response {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTP.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return Response{Status: res.StatusCode, Body: raw, Cookies: res.Cookies()}
}

func decode[T any](t *testing.T, res Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(res.Body, &v), string(res.Body))
	return v
}

func (r Response) cookie(name string) *http.Cookie {
	for _, ck := range r.Cookies {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

// =====================
// DTO
// =====================

type ErrorDTO struct {
	Message string  `json:"message"`
	Stack   *string `json:"stack"`
}

type MessageDTO struct {
	Message string `json:"message"`
}

type UserDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type ReviewDTO struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	User    int64  `json:"user"`
}

type ProductDTO struct {
	ID           int64       `json:"id"`
	User         int64       `json:"user"`
	Name         string      `json:"name"`
	Image        string      `json:"image"`
	Brand        string      `json:"brand"`
	Category     string      `json:"category"`
	Description  string      `json:"description"`
	Price        float64     `json:"price"`
	CountInStock int64       `json:"countInStock"`
	Rating       float64     `json:"rating"`
	NumReviews   int         `json:"numReviews"`
	Reviews      []ReviewDTO `json:"reviews"`
}

type ProductListDTO struct {
	Products []ProductDTO `json:"products"`
	Page     int          `json:"page"`
	Pages    int          `json:"pages"`
	Total    int64        `json:"total"`
}

type OrderItemDTO struct {
	Product int64   `json:"product"`
	Name    string  `json:"name"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"`
	Qty     int64   `json:"qty"`
}

type OrderDTO struct {
	ID         int64          `json:"id"`
	OrderItems []OrderItemDTO `json:"orderItems"`
	User       *struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
	PaymentResult   struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		EmailAddress string `json:"email_address"`
	} `json:"paymentResult"`
	ItemsPrice    float64    `json:"itemsPrice"`
	TaxPrice      float64    `json:"taxPrice"`
	ShippingPrice float64    `json:"shippingPrice"`
	TotalPrice    float64    `json:"totalPrice"`
	IsPaid        bool       `json:"isPaid"`
	PaidAt        *time.Time `json:"paidAt"`
	IsDelivered   bool       `json:"isDelivered"`
}

// =====================
// flows
// =====================

func (c *TestClient) register(t *testing.T, name, email, password string) UserDTO {
	t.Helper()
	res := c.Do(t, http.MethodPost, "/api/users", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Body))
	return decode[UserDTO](t, res)
}

// 登録してからDBで管理者にする
func (a *testApp) adminClient(t *testing.T) (*TestClient, UserDTO) {
	t.Helper()
	c := a.NewClient(t)
	u := c.register(t, "Admin", "admin@example.com", "password123")
	require.NoError(t, a.DB.Model(&model.User{}).Where("id = ?", u.ID).Update("is_admin", true).Error)
	u.IsAdmin = true
	return c, u
}

// サンプル作成 → 編集で商品を1件作る
func (c *TestClient) createProduct(t *testing.T, name string, price float64) ProductDTO {
	t.Helper()
	res := c.Do(t, http.MethodPost, "/api/products", nil)
	require.Equal(t, http.StatusCreated, res.Status, string(res.Body))
	p := decode[ProductDTO](t, res)

	res = c.Do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), map[string]any{
		"name":         name,
		"price":        price,
		"description":  name + " description",
		"image":        "/images/" + strings.ToLower(name) + ".jpg",
		"brand":        "Brand",
		"category":     "Electronics",
		"countInStock": 10,
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Body))
	return decode[ProductDTO](t, res)
}
