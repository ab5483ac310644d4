package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rocketcart/internal/domain/model"
	repo "rocketcart/internal/repository"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPClient は在庫API（/stock/:id, /products/:id）を呼ぶ。
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// DI
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// レスポンスの形。欠けたフィールドは0ではなく壊れた応答として扱う。
type stockBody struct {
	ID     int64  `json:"id"`
	Amount *int64 `json:"amount"`
}

type productBody struct {
	ID    int64    `json:"id"`
	Title *string  `json:"title"`
	Price *float64 `json:"price"`
	Image string   `json:"image"`
}

func (c *HTTPClient) GetStock(ctx context.Context, productID int64) (model.Stock, error) {
	path := "/stock/" + strconv.FormatInt(productID, 10)

	var b stockBody
	if err := c.getJSON(ctx, path, &b); err != nil {
		return model.Stock{}, err
	}
	if b.Amount == nil {
		return model.Stock{}, fmt.Errorf("GET %s: %w: missing amount", path, repo.ErrMalformedResponse)
	}
	return model.Stock{ID: b.ID, Amount: *b.Amount}, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	path := "/products/" + strconv.FormatInt(productID, 10)

	var b productBody
	if err := c.getJSON(ctx, path, &b); err != nil {
		return model.Product{}, err
	}
	if b.Title == nil || b.Price == nil {
		return model.Product{}, fmt.Errorf("GET %s: %w: missing title or price", path, repo.ErrMalformedResponse)
	}
	return model.Product{ID: b.ID, Title: *b.Title, Price: *b.Price, Image: b.Image}, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("GET %s: %w", path, repo.ErrNotFound)
	case res.StatusCode != http.StatusOK:
		io.Copy(io.Discard, res.Body) //nolint:errcheck
		return fmt.Errorf("GET %s: unexpected status %d", path, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: %w: %v", path, repo.ErrMalformedResponse, err)
	}
	return nil
}
