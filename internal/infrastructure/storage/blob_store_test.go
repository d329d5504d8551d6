package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"mediconnect/internal/domain/entity"
	domainRepo "mediconnect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// runBlobStoreContract exercises the behaviour every BlobStore must share.
func runBlobStoreContract(t *testing.T, store domainRepo.BlobStore) {
	t.Helper()
	ctx := context.Background()
	key := "contract-" + uuid.NewString()

	_, _, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, domainRepo.ErrBlobNotFound)

	v1, err := store.CompareAndSwap(ctx, key, []byte(`{"n":1}`), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1)

	_, err = store.CompareAndSwap(ctx, key, []byte(`{"n":99}`), 0)
	assert.ErrorIs(t, err, domainRepo.ErrVersionConflict, "creating an existing key must conflict")

	v2, err := store.CompareAndSwap(ctx, key, []byte(`{"n":2}`), v1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2)

	_, err = store.CompareAndSwap(ctx, key, []byte(`{"n":3}`), v1)
	assert.ErrorIs(t, err, domainRepo.ErrVersionConflict, "stale version must conflict")

	value, version, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2}`, string(value))
	assert.Equal(t, v2, version)

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key), "deleting an absent key is a no-op")

	_, _, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, domainRepo.ErrBlobNotFound)
}

func TestMemoryBlobStore(t *testing.T) {
	runBlobStoreContract(t, NewMemoryBlobStore())
}

func TestMemoryBlobStore_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewMemoryBlobStore().Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileBlobStore(t *testing.T) {
	store, err := NewFileBlobStore(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	runBlobStoreContract(t, store)
}

func TestFileBlobStore_SanitizesKeysAndSurvivesReopen(t *testing.T) {
	fs := afero.NewMemMapFs()
	ctx := context.Background()

	store, err := NewFileBlobStore(fs, "/data")
	require.NoError(t, err)
	_, err = store.CompareAndSwap(ctx, "../escape/me", []byte(`[1,2]`), 0)
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "/data/.._escape_me.json")
	require.NoError(t, err)
	assert.True(t, exists)

	reopened, err := NewFileBlobStore(fs, "/data")
	require.NoError(t, err)
	value, version, err := reopened.Get(ctx, "../escape/me")
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(value))
	assert.Equal(t, int64(1), version)
}

func TestRedisBlobStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())

	runBlobStoreContract(t, NewRedisBlobStore(client, fmt.Sprintf("test-%d", time.Now().UnixNano())))
}

func TestPostgresBlobStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	store, err := NewPostgresBlobStore(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Where("key LIKE ?", "contract-%").Delete(&entity.StoredBlob{})
	})

	runBlobStoreContract(t, store)
}
