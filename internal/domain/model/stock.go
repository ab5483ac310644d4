package model

// 在庫数（読み取り専用のスナップショット）
type Stock struct {
	ID     int64 `json:"id"`
	Amount int64 `json:"amount"`
}
