// Package workerpool runs context-aware tasks on a fixed number of goroutines.
package workerpool

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Task is one unit of work. It should return promptly once ctx is done.
type Task func(ctx context.Context) error

// Pool executes submitted tasks on a fixed set of workers. The first task
// error cancels the pool; tasks still queued at that point are skipped.
type Pool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	errOnce   sync.Once
	err       error
	closeOnce sync.Once
}

// New starts a pool of workers bound to ctx. workers below 1 is treated as 1.
func New(ctx context.Context, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	poolCtx, cancel := context.WithCancel(ctx)
	p := &Pool{
		tasks:  make(chan Task, workers*2),
		ctx:    poolCtx,
		cancel: cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

// Submit queues task. It blocks while the queue is full and returns false
// once the pool has been cancelled.
func (p *Pool) Submit(task Task) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.tasks <- task:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// Wait stops accepting tasks, waits for the workers to drain the queue and
// returns the first task error, or the parent context's error if it was
// cancelled first. Wait must not be called concurrently with Submit.
func (p *Pool) Wait() error {
	p.closeOnce.Do(func() { close(p.tasks) })
	p.wg.Wait()

	err := p.err
	if err == nil {
		err = context.Cause(p.ctx)
	}
	p.cancel()
	return err
}

func (p *Pool) fail(err error) {
	p.errOnce.Do(func() {
		p.err = err
		p.cancel()
	})
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for task := range p.tasks {
		if p.ctx.Err() != nil {
			continue
		}
		if err := task(p.ctx); err != nil {
			zap.L().Warn("worker task failed", zap.Int("worker", id), zap.Error(err))
			p.fail(err)
		}
	}
}
