package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	domainRepo "mediconnect/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	N int `json:"n"`
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDocument_LoadFallsBackWhenAbsent(t *testing.T) {
	doc := NewDocument(NewMemoryBlobStore(), "counter", func() counter { return counter{N: 7} }, quietLogger())

	value, version, err := doc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, value.N)
	assert.Equal(t, int64(0), version)
}

func TestDocument_LoadFallsBackWhenUnparsable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBlobStore()
	_, err := store.CompareAndSwap(ctx, "counter", []byte("{not json"), 0)
	require.NoError(t, err)

	doc := NewDocument(store, "counter", func() counter { return counter{N: -1} }, quietLogger())
	value, version, err := doc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, -1, value.N)
	assert.Equal(t, int64(1), version, "the damaged version is kept so the next save replaces it")

	_, err = doc.Save(ctx, counter{N: 1}, version)
	require.NoError(t, err)
}

// racingStore lets another writer slip in before the first CompareAndSwap.
type racingStore struct {
	*MemoryBlobStore
	raced bool
}

func (s *racingStore) CompareAndSwap(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	if !s.raced {
		s.raced = true
		if _, err := s.MemoryBlobStore.CompareAndSwap(ctx, key, []byte(`{"n":100}`), expected); err != nil {
			return 0, err
		}
	}
	return s.MemoryBlobStore.CompareAndSwap(ctx, key, value, expected)
}

func TestDocument_UpdateRetriesOnConflict(t *testing.T) {
	store := &racingStore{MemoryBlobStore: NewMemoryBlobStore()}
	doc := NewDocument[counter](store, "counter", func() counter { return counter{} }, quietLogger())

	calls := 0
	result, err := doc.Update(context.Background(), func(c counter) (counter, error) {
		calls++
		c.N++
		return c, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 101, result.N, "the retry must build on the concurrent writer's value")
}

type alwaysConflictingStore struct {
	*MemoryBlobStore
}

func (s alwaysConflictingStore) CompareAndSwap(context.Context, string, []byte, int64) (int64, error) {
	return 0, domainRepo.ErrVersionConflict
}

func TestDocument_UpdateGivesUpAfterBoundedAttempts(t *testing.T) {
	doc := NewDocument[counter](alwaysConflictingStore{NewMemoryBlobStore()}, "counter", func() counter { return counter{} }, quietLogger())

	calls := 0
	_, err := doc.Update(context.Background(), func(c counter) (counter, error) {
		calls++
		return c, nil
	})
	assert.ErrorIs(t, err, domainRepo.ErrVersionConflict)
	assert.Equal(t, maxUpdateAttempts, calls)
}

func TestDocument_UpdateStopsOnCallbackError(t *testing.T) {
	doc := NewDocument[counter](NewMemoryBlobStore(), "counter", func() counter { return counter{} }, quietLogger())
	boom := errors.New("boom")

	_, err := doc.Update(context.Background(), func(counter) (counter, error) { return counter{}, boom })
	assert.ErrorIs(t, err, boom)

	_, version, err := doc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), version, "nothing may be written when the callback fails")
}
