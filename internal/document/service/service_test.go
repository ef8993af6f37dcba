package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/docstore/document-service/internal/cache"
	"github.com/docstore/document-service/internal/storage"
)

// flakyBackend wraps the memory backend so tests can force failures.
type flakyBackend struct {
	*storage.MemoryBackend
	failPut bool
	failGet bool
}

var errBackendDown = errors.New("backend down")

func (f *flakyBackend) Put(ctx context.Context, id, content string) error {
	if f.failPut {
		return errBackendDown
	}
	return f.MemoryBackend.Put(ctx, id, content)
}

func (f *flakyBackend) Get(ctx context.Context, id string) (string, error) {
	if f.failGet {
		return "", errBackendDown
	}
	return f.MemoryBackend.Get(ctx, id)
}

func newTestService(t *testing.T) (*Service, *flakyBackend, *mr.Miniredis) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	c := cache.NewRedisCacheFromClient(client, time.Hour)
	b := &flakyBackend{MemoryBackend: storage.NewMemoryBackend()}
	return NewService(b, c, false), b, m
}

func TestPutThenGet(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	size, err := svc.Put(ctx, "doc1", "hello")
	require.NoError(t, err)
	require.Equal(t, 5, size)

	d, err := svc.Get(ctx, "doc1")
	require.NoError(t, err)
	require.Equal(t, "doc1", d.ID)
	require.Equal(t, "hello", d.Content)
	require.False(t, d.CreatedAt.IsZero())
}

func TestGetServesFromCacheAfterMiss(t *testing.T) {
	svc, b, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Put(ctx, "doc1", "hello")
	require.NoError(t, err)

	// first read populates the cache
	_, err = svc.Get(ctx, "doc1")
	require.NoError(t, err)

	// second read must not touch storage at all
	b.failGet = true
	d, err := svc.Get(ctx, "doc1")
	require.NoError(t, err)
	require.Equal(t, "hello", d.Content)
}

func TestInvalidateThenRepopulate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Put(ctx, "doc1", "first")
	require.NoError(t, err)

	d, err := svc.Get(ctx, "doc1")
	require.NoError(t, err)
	require.Equal(t, "first", d.Content)

	// overwrite invalidates the cached copy, so the next read must come
	// back with the new content, never the stale one
	_, err = svc.Put(ctx, "doc1", "second")
	require.NoError(t, err)

	d, err = svc.Get(ctx, "doc1")
	require.NoError(t, err)
	require.Equal(t, "second", d.Content)
}

func TestCacheUnavailabilityTransparency(t *testing.T) {
	svc, _, m := newTestService(t)
	ctx := context.Background()

	m.Close()

	_, err := svc.Put(ctx, "doc1", "hello")
	require.NoError(t, err)

	d, err := svc.Get(ctx, "doc1")
	require.NoError(t, err)
	require.Equal(t, "hello", d.Content)

	_, err = svc.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSizeBoundary(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Put(ctx, "doc1", "")
	require.ErrorIs(t, err, ErrContentEmpty)

	atLimit := strings.Repeat("a", 102400)
	size, err := svc.Put(ctx, "doc1", atLimit)
	require.NoError(t, err)
	require.Equal(t, 102400, size)

	_, err = svc.Put(ctx, "doc1", atLimit+"a")
	require.ErrorIs(t, err, ErrContentTooLarge)
}

func TestValidationHappensBeforeStorage(t *testing.T) {
	svc, b, _ := newTestService(t)
	b.failPut = true

	// an oversized write is rejected without any storage call
	_, err := svc.Put(context.Background(), "doc1", strings.Repeat("a", 102401))
	require.ErrorIs(t, err, ErrContentTooLarge)
	require.NotErrorIs(t, err, errBackendDown)
}

func TestNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "never-written")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorageFailureDoesNotTouchCache(t *testing.T) {
	svc, b, m := newTestService(t)
	ctx := context.Background()

	_, err := svc.Put(ctx, "doc1", "first")
	require.NoError(t, err)
	_, err = svc.Get(ctx, "doc1") // populate
	require.NoError(t, err)

	b.failPut = true
	_, err = svc.Put(ctx, "doc1", "second")
	require.Error(t, err)

	// the failed write must not have invalidated the cached entry
	v, err := m.Get("document:doc1")
	require.NoError(t, err)
	require.Equal(t, "first", v)
}

func TestStorageFailureOnRead(t *testing.T) {
	svc, b, _ := newTestService(t)
	b.failGet = true

	_, err := svc.Get(context.Background(), "doc1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestWriteThroughPopulatesCache(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	c := cache.NewRedisCacheFromClient(client, time.Hour)
	svc := NewService(storage.NewMemoryBackend(), c, true)

	_, err = svc.Put(context.Background(), "doc1", "hello")
	require.NoError(t, err)

	v, err := m.Get("document:doc1")
	require.NoError(t, err)
	require.Equal(t, "hello", v)
}

func TestDisabledCachePassthrough(t *testing.T) {
	svc := NewService(storage.NewMemoryBackend(), cache.NewDisabled(), false)
	ctx := context.Background()

	_, err := svc.Put(ctx, "doc1", "hello")
	require.NoError(t, err)

	d, err := svc.Get(ctx, "doc1")
	require.NoError(t, err)
	require.Equal(t, "hello", d.Content)
}
