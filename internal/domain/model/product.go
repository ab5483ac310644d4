package model

import (
	"time"

	"gorm.io/gorm"
)

// 在庫サービスが持つ商品
// stock は /stock/:id でだけ返す。
type Product struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Price     float64        `gorm:"not null" json:"price"`
	Image     string         `gorm:"type:text" json:"image"`
	Stock     int64          `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// StockOf は商品の在庫スナップショットを返す。
func (p Product) StockOf() Stock {
	return Stock{ID: p.ID, Amount: p.Stock}
}
