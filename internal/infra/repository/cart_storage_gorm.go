package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cart_kv の1行（key -> 文字列）
type CartKV struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CartKV) TableName() string {
	return "cart_kv"
}

// postgres に置くカート保存先
type CartStorageGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartStorageGormRepository(db *gorm.DB) *CartStorageGormRepository {
	return &CartStorageGormRepository{db: db}
}

// テーブル作成
func (r *CartStorageGormRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&CartKV{})
}

func (r *CartStorageGormRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var row CartKV
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

// 同じkeyは上書き
func (r *CartStorageGormRepository) Set(ctx context.Context, key string, value string) error {
	row := CartKV{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}
