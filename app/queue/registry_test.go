package queue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_StartReplacesExisting(t *testing.T) {
	r := NewRegistry()
	var firstCanceled, secondCanceled atomic.Bool

	r.Start(context.Background(), "q1", func(ctx context.Context) {
		<-ctx.Done()
		firstCanceled.Store(true)
	})
	r.Start(context.Background(), "q1", func(ctx context.Context) {
		<-ctx.Done()
		secondCanceled.Store(true)
	})

	require.Eventually(t, firstCanceled.Load, time.Second, time.Millisecond)
	assert.False(t, secondCanceled.Load())
	assert.Equal(t, []string{"q1"}, r.IDs())

	assert.True(t, r.Cancel("q1"))
	assert.False(t, r.Cancel("q1"), "second cancel is a no-op")
	require.Eventually(t, secondCanceled.Load, time.Second, time.Millisecond)
	assert.False(t, r.Has("q1"))
}

func TestRegistry_CancelAll(t *testing.T) {
	r := NewRegistry()
	var canceled atomic.Int32
	for _, id := range []string{"b", "a", "c"} {
		r.Start(context.Background(), id, func(ctx context.Context) {
			<-ctx.Done()
			canceled.Add(1)
		})
	}
	assert.Equal(t, []string{"a", "b", "c"}, r.IDs())

	done := r.anyDone()
	require.NotNil(t, done)
	r.CancelAll()
	r.CancelAll()
	<-done
	require.Eventually(t, func() bool { return canceled.Load() == 3 }, time.Second, time.Millisecond)
	assert.Empty(t, r.IDs())
	assert.Nil(t, r.anyDone())
}
