package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"rocketcart/internal/domain/model"
	repo "rocketcart/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 在庫APIの業務ロジック
type ProductUsecase struct {
	productRepo repo.ProductRepository
	tx          repo.TransactionManager // nil なら Seed は1件ずつ書く
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// WithTx は Seed を1トランザクションにまとめる。
func (u *ProductUsecase) WithTx(tx repo.TransactionManager) *ProductUsecase {
	u.tx = tx
	return u
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page  int
	Limit int
	Q     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid q")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     strings.TrimSpace(in.Q),
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if items == nil {
		items = []model.Product{}
	}

	return ProductListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

// GET /products/:id
func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.find(ctx, productID)
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// GET /stock/:id
func (u *ProductUsecase) GetStock(ctx context.Context, productID int64) (model.Stock, error) {
	p, err := u.find(ctx, productID)
	if err != nil {
		return model.Stock{}, err
	}
	return p.StockOf(), nil
}

// Seed は起動時に商品を投入する（同じIDは上書き）。
// 1件でも不正なら何も書かない。
func (u *ProductUsecase) Seed(ctx context.Context, products []model.Product) error {
	for _, p := range products {
		if p.ID <= 0 || strings.TrimSpace(p.Title) == "" || p.Price < 0 || p.Stock < 0 {
			return fmt.Errorf("seed: invalid product %d", p.ID)
		}
	}

	if u.tx == nil {
		return upsertAll(ctx, u.productRepo, products)
	}
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return upsertAll(ctx, r.Products(), products)
	})
}

func upsertAll(ctx context.Context, products repo.ProductRepository, items []model.Product) error {
	for _, p := range items {
		if err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("seed product %d: %w", p.ID, err)
		}
	}
	return nil
}

func (u *ProductUsecase) find(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}
