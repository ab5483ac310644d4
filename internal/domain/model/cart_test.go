package model_test

import (
	"testing"

	"rocketcart/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestCart_FindAndAmountOf(t *testing.T) {
	c := model.Cart{
		{ID: 3, Amount: 2},
		{ID: 1, Amount: 5},
	}

	assert.Equal(t, 1, c.Find(1))
	assert.Equal(t, -1, c.Find(42))
	assert.Equal(t, int64(5), c.AmountOf(1))
	assert.Equal(t, int64(0), c.AmountOf(42))
}

func TestCart_Clone(t *testing.T) {
	c := model.Cart{{ID: 1, Amount: 1}}
	cp := c.Clone()
	cp[0].Amount = 9

	assert.Equal(t, int64(1), c[0].Amount)
	assert.NotNil(t, model.Cart(nil).Clone())
}

func TestCart_SizeAndTotal(t *testing.T) {
	c := model.Cart{
		{ID: 1, Price: 139.9, Amount: 2},
		{ID: 2, Price: 10, Amount: 1},
	}

	assert.Equal(t, 2, c.Size())
	assert.InDelta(t, 289.8, c.Total(), 1e-9)
	assert.InDelta(t, 279.8, c[0].Subtotal(), 1e-9)
}

func TestNewCartEntry(t *testing.T) {
	p := model.Product{ID: 7, Title: "Tênis", Price: 99.5, Image: "a.jpg", Stock: 30}

	e := model.NewCartEntry(p, 1)

	assert.Equal(t, model.CartEntry{ID: 7, Title: "Tênis", Price: 99.5, Image: "a.jpg", Amount: 1}, e)
	assert.Equal(t, model.Stock{ID: 7, Amount: 30}, p.StockOf())
}
