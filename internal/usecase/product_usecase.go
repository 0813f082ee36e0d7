package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
	"shopapi/internal/validator"

	"github.com/shopspring/decimal"
)

const (
	// トップ商品の件数
	topProductsLimit = 3
	// offset計算が溢れないページの上限
	maxListPage = 100000
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	tx          repo.TransactionManager
	pageSize    int
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	tx repo.TransactionManager,
	pageSize int,
) *ProductUsecase {
	if pageSize < 1 {
		pageSize = 10
	}
	return &ProductUsecase{
		productRepo: productRepo,
		tx:          tx,
		pageSize:    pageSize,
	}
}

// GET /api/productsの入力DTO
type ListProductsInput struct {
	Keyword string
	Page    int
}

type ProductListOutput struct {
	Items []model.Product `json:"products"`
	Page  int             `json:"page"`
	Pages int             `json:"pages"`
	Total int64           `json:"total"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	// 不正なページは1ページ目
	page := in.Page
	if page < 1 {
		page = 1
	}
	if page > maxListPage {
		page = maxListPage
	}
	keyword := strings.TrimSpace(in.Keyword)
	if len(keyword) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "keyword too long")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:    page,
		Limit:   u.pageSize,
		Keyword: keyword,
	})
	if err != nil {
		return ProductListOutput{}, dbError(err)
	}

	return ProductListOutput{
		Items: withReviews(items),
		Page:  page,
		Pages: int((total + int64(u.pageSize) - 1) / int64(u.pageSize)),
		Total: total,
	}, nil
}

func (u *ProductUsecase) ListTopProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListTopRated(ctx, topProductsLimit)
	if err != nil {
		return []model.Product{}, dbError(err)
	}
	return withReviews(items), nil
}

func (u *ProductUsecase) findProduct(ctx context.Context, r repo.ProductRepository, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}

	p, err := r.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, dbError(err)
	}
	return p, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.findProduct(ctx, u.productRepo, productID)
	if err != nil {
		return model.Product{}, err
	}
	if p.Reviews == nil {
		p.Reviews = []model.Review{}
	}
	return p, nil
}

// 管理画面で編集する前提のサンプル商品を作る
func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, adminUserID int64) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		UserID:       adminUserID,
		Name:         "Sample name",
		Price:        decimal.Zero,
		Image:        "/images/sample.jpg",
		Brand:        "Sample brand",
		Category:     "Sample category",
		CountInStock: 0,
		NumReviews:   0,
		Description:  "Sample description",
	})
	if err != nil {
		return model.Product{}, dbError(err)
	}
	p.Reviews = []model.Review{}
	return p, nil
}

type AdminUpdateProductInput struct {
	Name         string
	Price        decimal.Decimal
	Description  string
	Image        string
	Brand        string
	Category     string
	CountInStock int64
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, productID int64, in AdminUpdateProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.CountInStock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "countInStock must be >= 0")
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:           productID,
		Name:         strings.TrimSpace(in.Name),
		Price:        in.Price.Round(2),
		Description:  in.Description,
		Image:        in.Image,
		Brand:        in.Brand,
		Category:     in.Category,
		CountInStock: in.CountInStock,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, dbError(err)
	}

	return u.GetProductDetail(ctx, productID)
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return dbError(err)
	}
	return nil
}

type CreateReviewInput struct {
	Rating  int
	Comment string
}

// レビュー追加と件数・平均評価の再計算を同じTxで行う
func (u *ProductUsecase) CreateReview(ctx context.Context, author model.User, productID int64, in CreateReviewInput) error {
	if err := validator.ValidateRating(in.Rating); err != nil {
		return NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := u.findProduct(ctx, r.Products(), productID)
		if err != nil {
			return err
		}

		// 1商品につき1ユーザー1件
		if p.ReviewedBy(author.ID) {
			return NewHTTPError(http.StatusBadRequest, "Product already reviewed")
		}

		review := model.Review{
			ProductID: p.ID,
			UserID:    author.ID,
			Name:      author.Name,
			Rating:    in.Rating,
			Comment:   strings.TrimSpace(in.Comment),
		}
		if err := r.Products().AddReview(ctx, review); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return NewHTTPError(http.StatusBadRequest, "Product already reviewed")
			}
			return dbError(err)
		}

		p.Reviews = append(p.Reviews, review)
		p.RecalculateRating()

		if err := r.Products().UpdateRating(ctx, p.ID, p.NumReviews, p.Rating); err != nil {
			return dbError(err)
		}
		return nil
	})

	return passOrDBError(err)
}

// reviewsはnullでなく[]で返す
func withReviews(items []model.Product) []model.Product {
	for i := range items {
		if items[i].Reviews == nil {
			items[i].Reviews = []model.Review{}
		}
	}
	return items
}
