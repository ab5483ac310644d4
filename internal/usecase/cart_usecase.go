package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"rocketcart/internal/domain/model"
	repo "rocketcart/internal/repository"
)

// 保存先のキー
const CartStorageKey = "@RocketShoes:cart"

// ユーザーに出す通知
const (
	MsgStockExceeded = "insufficient stock"
	MsgAddFailed     = "add failed"
	MsgRemoveFailed  = "remove failed"
	MsgUpdateFailed  = "update-quantity failed"
)

var (
	// 在庫不足
	ErrStockExceeded = errors.New("stock exceeded")
	// カートに無い商品
	ErrEntryNotFound = errors.New("cart entry not found")
	// 在庫サービス or 保存先の失敗
	ErrCollaboratorFailure = errors.New("collaborator failure")
	// 保存済みカートが読めない
	ErrMalformedCart = errors.New("malformed cart data")
)

// ユーザーへのエラー通知（投げっぱなし）
type Notifier interface {
	NotifyError(ctx context.Context, message string)
}

type UpdateProductAmountInput struct {
	ProductID int64
	Amount    int64
}

// CartUsecase はセッション中のカートを持つ。
// 各操作は在庫を確認してから保存し、失敗は通知にして呼び出し元へは返さない。
// mu はスナップショットの読み書きだけを守る。操作同士は直列化しない。
type CartUsecase struct {
	inventory repo.InventoryClient
	storage   repo.CartStorage
	notifier  Notifier
	log       *slog.Logger

	mu   sync.RWMutex
	cart model.Cart
}

// DI
func NewCartUsecase(
	inventory repo.InventoryClient,
	storage repo.CartStorage,
	notifier Notifier,
	log *slog.Logger,
) *CartUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &CartUsecase{
		inventory: inventory,
		storage:   storage,
		notifier:  notifier,
		log:       log,
		cart:      model.Cart{},
	}
}

// Load は保存先からカートを復元する（無ければ空）。
func (u *CartUsecase) Load(ctx context.Context) error {
	raw, ok, err := u.storage.Get(ctx, CartStorageKey)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	cart := model.Cart{}
	if ok && raw != "" {
		cart, err = DecodeCart(raw)
		if err != nil {
			return err
		}
	}

	u.mu.Lock()
	u.cart = cart
	u.mu.Unlock()

	u.log.DebugContext(ctx, "cart loaded", slog.Int("entries", len(cart)))
	return nil
}

// Cart は現在のカートのコピーを返す。
func (u *CartUsecase) Cart() model.Cart {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.cart.Clone()
}

// AddProduct は商品を1つ追加する（既にあれば数量+1）。
func (u *CartUsecase) AddProduct(ctx context.Context, productID int64) {
	if err := u.addProduct(ctx, productID); err != nil {
		u.reject(ctx, "add", productID, err, MsgAddFailed)
	}
}

func (u *CartUsecase) addProduct(ctx context.Context, productID int64) error {
	updated := u.Cart()
	currentAmount := updated.AmountOf(productID)

	stock, err := u.fetchStock(ctx, productID)
	if err != nil {
		return err
	}

	amount := currentAmount + 1
	if amount > stock.Amount {
		return fmt.Errorf("%w: product %d wants %d, stock %d", ErrStockExceeded, productID, amount, stock.Amount)
	}

	if i := updated.Find(productID); i >= 0 {
		updated[i].Amount = amount
	} else {
		// 新しい商品は詳細を取ってから1個で追加
		p, err := u.fetchProduct(ctx, productID)
		if err != nil {
			return err
		}
		updated = append(updated, model.NewCartEntry(p, 1))
	}

	return u.commit(ctx, updated)
}

// RemoveProduct はカートから商品を消す。
func (u *CartUsecase) RemoveProduct(ctx context.Context, productID int64) {
	if err := u.removeProduct(ctx, productID); err != nil {
		u.reject(ctx, "remove", productID, err, MsgRemoveFailed)
	}
}

func (u *CartUsecase) removeProduct(ctx context.Context, productID int64) error {
	updated := u.Cart()

	i := updated.Find(productID)
	if i < 0 {
		return fmt.Errorf("%w: product %d", ErrEntryNotFound, productID)
	}
	updated = append(updated[:i], updated[i+1:]...)

	return u.commit(ctx, updated)
}

// UpdateProductAmount は数量を指定値にする。
// 0以下は何もしない。カートに無い商品は追加しない。
func (u *CartUsecase) UpdateProductAmount(ctx context.Context, in UpdateProductAmountInput) {
	if in.Amount <= 0 {
		return
	}
	if err := u.updateProductAmount(ctx, in); err != nil {
		u.reject(ctx, "update-quantity", in.ProductID, err, MsgUpdateFailed)
	}
}

func (u *CartUsecase) updateProductAmount(ctx context.Context, in UpdateProductAmountInput) error {
	stock, err := u.fetchStock(ctx, in.ProductID)
	if err != nil {
		return err
	}
	if in.Amount > stock.Amount {
		return fmt.Errorf("%w: product %d wants %d, stock %d", ErrStockExceeded, in.ProductID, in.Amount, stock.Amount)
	}

	updated := u.Cart()
	i := updated.Find(in.ProductID)
	if i < 0 {
		return fmt.Errorf("%w: product %d", ErrEntryNotFound, in.ProductID)
	}
	updated[i].Amount = in.Amount

	return u.commit(ctx, updated)
}

// 在庫を取得して形をチェック
func (u *CartUsecase) fetchStock(ctx context.Context, productID int64) (model.Stock, error) {
	s, err := u.inventory.GetStock(ctx, productID)
	if err != nil {
		return model.Stock{}, fmt.Errorf("%w: get stock %d: %w", ErrCollaboratorFailure, productID, err)
	}
	if (s.ID != 0 && s.ID != productID) || s.Amount < 0 {
		return model.Stock{}, fmt.Errorf("%w: get stock %d: %w", ErrCollaboratorFailure, productID, repo.ErrMalformedResponse)
	}
	return s, nil
}

// 商品詳細を取得して形をチェック
func (u *CartUsecase) fetchProduct(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.inventory.GetProduct(ctx, productID)
	if err != nil {
		return model.Product{}, fmt.Errorf("%w: get product %d: %w", ErrCollaboratorFailure, productID, err)
	}
	if p.ID != productID || p.Title == "" || p.Price < 0 {
		return model.Product{}, fmt.Errorf("%w: get product %d: %w", ErrCollaboratorFailure, productID, repo.ErrMalformedResponse)
	}
	return p, nil
}

// 保存してからメモリを差し替える（保存失敗なら何も変えない）
func (u *CartUsecase) commit(ctx context.Context, updated model.Cart) error {
	raw, err := EncodeCart(updated)
	if err != nil {
		return err
	}
	if err := u.storage.Set(ctx, CartStorageKey, raw); err != nil {
		return fmt.Errorf("%w: save cart: %w", ErrCollaboratorFailure, err)
	}

	u.mu.Lock()
	u.cart = updated
	u.mu.Unlock()

	u.log.InfoContext(ctx, "cart updated", slog.Int("entries", len(updated)))
	return nil
}

// 失敗を1件の通知にまとめる
func (u *CartUsecase) reject(ctx context.Context, op string, productID int64, err error, generic string) {
	msg := generic
	if errors.Is(err, ErrStockExceeded) {
		msg = MsgStockExceeded
	}

	u.log.WarnContext(ctx, "cart operation rejected",
		slog.String("op", op),
		slog.Int64("product_id", productID),
		slog.Any("err", err),
	)
	u.notifier.NotifyError(ctx, msg)
}

// EncodeCart はカートを保存用のJSON配列にする。
func EncodeCart(cart model.Cart) (string, error) {
	if cart == nil {
		cart = model.Cart{}
	}
	b, err := json.Marshal(cart)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// DecodeCart は保存済みJSONを読む。数量0以下や重複IDは壊れたデータ扱い。
func DecodeCart(raw string) (model.Cart, error) {
	cart := model.Cart{}
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCart, err)
	}
	if cart == nil {
		// "null"
		cart = model.Cart{}
	}

	seen := make(map[int64]struct{}, len(cart))
	for _, e := range cart {
		if e.Amount <= 0 {
			return nil, fmt.Errorf("%w: product %d has amount %d", ErrMalformedCart, e.ID, e.Amount)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product %d", ErrMalformedCart, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return cart, nil
}
