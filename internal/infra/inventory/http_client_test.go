package inventory_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rocketcart/internal/domain/model"
	"rocketcart/internal/infra/inventory"
	repo "rocketcart/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/stock/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"amount":3}`)) //nolint:errcheck
	})
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"title":"Tênis de Caminhada","price":179.9,"image":"a.jpg"}`)) //nolint:errcheck
	})
	mux.HandleFunc("/stock/2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`)) //nolint:errcheck
	})
	mux.HandleFunc("/stock/3", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_GetStock(t *testing.T) {
	srv := newServer(t)
	c := inventory.NewHTTPClient(srv.URL+"/", time.Second)

	s, err := c.GetStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.Stock{ID: 1, Amount: 3}, s)
}

func TestHTTPClient_GetProduct(t *testing.T) {
	srv := newServer(t)
	c := inventory.NewHTTPClient(srv.URL, time.Second)

	p, err := c.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Tênis de Caminhada", p.Title)
	assert.Equal(t, 179.9, p.Price)
	assert.Equal(t, "a.jpg", p.Image)
}

func TestHTTPClient_Errors(t *testing.T) {
	srv := newServer(t)
	c := inventory.NewHTTPClient(srv.URL, time.Second)
	ctx := context.Background()

	_, err := c.GetProduct(ctx, 99)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = c.GetStock(ctx, 2)
	assert.ErrorIs(t, err, repo.ErrMalformedResponse)

	_, err = c.GetStock(ctx, 3)
	require.Error(t, err)
	assert.False(t, errors.Is(err, repo.ErrNotFound))
}

func TestHTTPClient_IncompleteBodies(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"stock without amount", "/stock/1", `{"id":1}`},
		{"empty stock object", "/stock/1", `{}`},
		{"null stock", "/stock/1", `null`},
		{"stock with other field", "/stock/1", `{"qty":9}`},
		{"product without title", "/products/1", `{"id":1,"price":10}`},
		{"product without price", "/products/1", `{"id":1,"title":"A"}`},
		{"null product", "/products/1", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body)) //nolint:errcheck
			}))
			defer srv.Close()

			c := inventory.NewHTTPClient(srv.URL, time.Second)
			var err error
			if strings.HasPrefix(tt.path, "/stock/") {
				_, err = c.GetStock(context.Background(), 1)
			} else {
				_, err = c.GetProduct(context.Background(), 1)
			}
			assert.ErrorIs(t, err, repo.ErrMalformedResponse)
		})
	}
}

func TestHTTPClient_ZeroStockIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"amount":0}`)) //nolint:errcheck
	}))
	defer srv.Close()

	s, err := inventory.NewHTTPClient(srv.URL, time.Second).GetStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.Stock{ID: 1, Amount: 0}, s)
}

func TestHTTPClient_Unreachable(t *testing.T) {
	srv := newServer(t)
	url := srv.URL
	srv.Close()

	c := inventory.NewHTTPClient(url, time.Second)
	_, err := c.GetStock(context.Background(), 1)
	assert.Error(t, err)
}

func TestRepositoryClient(t *testing.T) {
	products := stubProducts{1: {ID: 1, Title: "A", Price: 1, Stock: 4}}
	c := inventory.NewRepositoryClient(products)

	s, err := c.GetStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.Stock{ID: 1, Amount: 4}, s)

	_, err = c.GetProduct(context.Background(), 2)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

type stubProducts map[int64]model.Product

func (s stubProducts) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	return nil, 0, nil
}

func (s stubProducts) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := s[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (s stubProducts) Upsert(ctx context.Context, p model.Product) error {
	return nil
}
