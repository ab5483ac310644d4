package repository

import "context"

// カートの保存先（key -> 文字列）。
// 値が無いときは ok=false, err=nil。
type CartStorage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
}
