package database

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStatsRecord(t *testing.T) {
	ctx := context.Background()
	m := NewMemStats()

	counts, err := m.Counts(ctx)
	require.NoError(t, err)
	for _, b := range Buckets {
		assert.Zero(t, counts[b])
	}

	require.NoError(t, m.Record(ctx, BucketWord))
	require.NoError(t, m.Record(ctx, BucketWord))
	require.NoError(t, m.Record(ctx, BucketError))
	require.NoError(t, m.Record(ctx, "custom"))

	counts, err = m.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[BucketWord])
	assert.Equal(t, int64(1), counts[BucketError])
	assert.Equal(t, int64(1), counts["custom"])
	assert.Equal(t, int64(4), Total(counts))
}

func TestMemStatsConcurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemStats()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = m.Record(ctx, BucketSentence)
			}
		}()
	}
	wg.Wait()

	counts, err := m.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(800), counts[BucketSentence])
}

func TestMemStatsClosed(t *testing.T) {
	ctx := context.Background()
	m := NewMemStats()
	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.Record(ctx, BucketWord), ErrClosed)
	_, err := m.Counts(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}
