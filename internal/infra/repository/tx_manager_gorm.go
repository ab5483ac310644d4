package repository

import (
	"context"

	repo "rocketcart/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	products repo.ProductRepository
}

func (r *txReposGorm) Products() repo.ProductRepository { return r.products }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		return fn(&txReposGorm{products: NewProductGormRepository(tx)})
	})
}
