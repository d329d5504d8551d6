package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domainRepo "mediconnect/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// maxUpdateAttempts bounds the optimistic retry loop in Document.Update.
const maxUpdateAttempts = 5

// Document is a typed JSON value stored under one BlobStore key.
// Missing or unparsable data loads as the fallback value instead of failing.
type Document[T any] struct {
	store    domainRepo.BlobStore
	key      string
	fallback func() T
	log      *logrus.Logger
}

func NewDocument[T any](store domainRepo.BlobStore, key string, fallback func() T, log *logrus.Logger) *Document[T] {
	return &Document[T]{
		store:    store,
		key:      key,
		fallback: fallback,
		log:      log,
	}
}

func (d *Document[T]) Key() string {
	return d.key
}

// Load returns the stored value and its version.
func (d *Document[T]) Load(ctx context.Context) (T, int64, error) {
	raw, version, err := d.store.Get(ctx, d.key)
	if err != nil {
		if errors.Is(err, domainRepo.ErrBlobNotFound) {
			return d.fallback(), 0, nil
		}
		var zero T
		return zero, 0, err
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		d.log.WithField("key", d.key).Warnf("Discarding unparsable document: %+v", err)
		return d.fallback(), version, nil
	}
	return value, version, nil
}

// Save writes value if the stored version still equals version.
func (d *Document[T]) Save(ctx context.Context, value T, version int64) (int64, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("encode document %s: %w", d.key, err)
	}
	return d.store.CompareAndSwap(ctx, d.key, raw, version)
}

// Update runs a read-modify-write cycle, retrying when another writer got in
// between. fn may be called more than once and must not keep references to
// its argument across calls.
func (d *Document[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	var zero T
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		current, version, err := d.Load(ctx)
		if err != nil {
			return zero, err
		}

		next, err := fn(current)
		if err != nil {
			return zero, err
		}

		if _, err := d.Save(ctx, next, version); err != nil {
			if errors.Is(err, domainRepo.ErrVersionConflict) {
				d.log.WithField("key", d.key).Debugf("Version conflict on attempt %d, retrying", attempt)
				continue
			}
			return zero, err
		}
		return next, nil
	}
	return zero, fmt.Errorf("update document %s: %w", d.key, domainRepo.ErrVersionConflict)
}

// Clear removes the stored value; the next Load yields the fallback.
func (d *Document[T]) Clear(ctx context.Context) error {
	return d.store.Delete(ctx, d.key)
}
