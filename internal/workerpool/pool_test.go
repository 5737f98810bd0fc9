package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_RunsEveryTask(t *testing.T) {
	p := New(context.Background(), 3)

	var done atomic.Int64
	for i := 0; i < 50; i++ {
		ok := p.Submit(func(ctx context.Context) error {
			done.Add(1)
			return nil
		})
		assert.True(t, ok)
	}

	assert.NoError(t, p.Wait())
	assert.Equal(t, int64(50), done.Load())
}

func TestPool_FirstErrorCancels(t *testing.T) {
	p := New(context.Background(), 1)
	boom := errors.New("boom")

	var after atomic.Int64
	p.Submit(func(ctx context.Context) error { return boom })
	for i := 0; i < 5; i++ {
		p.Submit(func(ctx context.Context) error {
			after.Add(1)
			return nil
		})
	}

	assert.ErrorIs(t, p.Wait(), boom)
	assert.Zero(t, after.Load())
	assert.False(t, p.Submit(func(ctx context.Context) error { return nil }))
}

func TestPool_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := New(ctx, 2)
	cancel()

	assert.False(t, p.Submit(func(ctx context.Context) error { return nil }))
	assert.ErrorIs(t, p.Wait(), context.Canceled)
}

func TestPool_WorkersBelowOne(t *testing.T) {
	p := New(context.Background(), 0)

	var ran atomic.Bool
	p.Submit(func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	assert.NoError(t, p.Wait())
	assert.True(t, ran.Load())
}
