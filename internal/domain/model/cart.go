package model

// カートの1行（商品のコピー + 数量）
type CartEntry struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int64   `json:"amount"`
}

// 商品情報をコピーして amount 個の行を作る
func NewCartEntry(p Product, amount int64) CartEntry {
	return CartEntry{
		ID:     p.ID,
		Title:  p.Title,
		Price:  p.Price,
		Image:  p.Image,
		Amount: amount,
	}
}

// 小計
func (e CartEntry) Subtotal() float64 {
	return e.Price * float64(e.Amount)
}

// Cart は追加順。同じIDは1行だけ。
type Cart []CartEntry

// Find は行の位置を返す（無ければ -1）
func (c Cart) Find(id int64) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// 無ければ0
func (c Cart) AmountOf(id int64) int64 {
	if i := c.Find(id); i >= 0 {
		return c[i].Amount
	}
	return 0
}

// Clone は元と共有しないコピー。nil でも空スライスを返す。
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Size は商品の種類数（数量の合計ではない）
func (c Cart) Size() int {
	return len(c)
}

// 合計金額
func (c Cart) Total() float64 {
	var total float64
	for _, e := range c {
		total += e.Subtotal()
	}
	return total
}
