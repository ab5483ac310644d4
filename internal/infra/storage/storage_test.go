package storage_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rocketcart/internal/infra/storage"
	repo "rocketcart/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// どの実装も同じ約束を満たす
func testCartStorage(t *testing.T, s repo.CartStorage) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "@RocketShoes:cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "@RocketShoes:cart", `[{"id":1,"amount":1}]`))
	require.NoError(t, s.Set(ctx, "other", "x"))
	require.NoError(t, s.Set(ctx, "@RocketShoes:cart", `[{"id":1,"amount":2}]`))

	v, ok, err := s.Get(ctx, "@RocketShoes:cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1,"amount":2}]`, v)

	v, ok, err = s.Get(ctx, "other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestMemoryStorage(t *testing.T) {
	testCartStorage(t, storage.NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cart.json")
	testCartStorage(t, storage.NewFileStorage(path))

	// 別インスタンス（次のセッション）からも読める
	v, ok, err := storage.NewFileStorage(path).Get(context.Background(), "other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestFileStorage_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, ok, err := storage.NewFileStorage(path).Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStorage_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	s := storage.NewFileStorage(path)
	_, _, err := s.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, s.Set(context.Background(), "k", "v"))
}

// REDIS_ADDR があるときだけ
func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	r := storage.NewRedisStorage(addr, nil)
	t.Cleanup(func() { _ = r.Close() })
	require.NoError(t, r.Initialize(context.Background(), 3))

	ctx := context.Background()
	key := fmt.Sprintf("rocketcart-test:%d", time.Now().UnixNano())
	_, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, key, "[]"))
	v, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

// 最後の失敗の後は待たずに返す
func TestRedisStorage_InitializeGivesUpWithoutFinalWait(t *testing.T) {
	r := storage.NewRedisStorage("127.0.0.1:1", nil)
	t.Cleanup(func() { _ = r.Close() })

	// 待ちに入れば ctx.Err() が返るはず
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Initialize(ctx, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.Canceled)
	assert.ErrorContains(t, err, "not reachable after 1 attempts")
}
