package main

import (
	"encoding/json"
	"fmt"
	"os"

	"rocketcart/internal/domain/model"
)

// seed ファイル（json-server の server.json と同じ形）
type seedFile struct {
	Products []seedProduct `json:"products"`
	Stock    []model.Stock `json:"stock"`
}

type seedProduct struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Stock *int64  `json:"stock"`
}

// products と stock を商品ごとにまとめる。stock が無い商品は0。
func loadSeedFile(path string) ([]model.Product, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f seedFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	stockByID := make(map[int64]int64, len(f.Stock))
	for _, s := range f.Stock {
		stockByID[s.ID] = s.Amount
	}

	products := make([]model.Product, 0, len(f.Products))
	for _, sp := range f.Products {
		stock := stockByID[sp.ID]
		if sp.Stock != nil {
			stock = *sp.Stock
		}
		products = append(products, model.Product{
			ID:    sp.ID,
			Title: sp.Title,
			Price: sp.Price,
			Image: sp.Image,
			Stock: stock,
		})
	}
	return products, nil
}
