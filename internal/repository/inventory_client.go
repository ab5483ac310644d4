package repository

import (
	"context"
	"errors"

	"rocketcart/internal/domain/model"
)

// 在庫サービスの応答が壊れている
var ErrMalformedResponse = errors.New("malformed inventory response")

// 在庫サービスへの問い合わせを約束。
// 見つからない場合は ErrNotFound を返す。
type InventoryClient interface {
	GetStock(ctx context.Context, productID int64) (model.Stock, error)
	GetProduct(ctx context.Context, productID int64) (model.Product, error)
}
