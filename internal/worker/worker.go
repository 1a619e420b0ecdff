package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrStopped is returned by Submit after Stop was called.
var ErrStopped = errors.New("worker pool stopped")

// Task represents a unit of work executed by the pool.
type Task func()

// Pool defines a simple worker pool.
type Pool interface {
	Submit(ctx context.Context, t Task) error
	Stop()
}

// PanicHandler receives whatever a task panicked with. A panicking task is an
// asynchronous fault; the default handler re-panics so the process dies.
type PanicHandler func(recovered any)

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int, onPanic PanicHandler) Pool {
	if n <= 0 {
		n = 1
	}
	if onPanic == nil {
		onPanic = func(r any) { panic(fmt.Sprintf("worker task panicked: %v", r)) }
	}
	p := &pool{
		jobs:    make(chan Task),
		done:    make(chan struct{}),
		onPanic: onPanic,
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.run(job)
			}
		}()
	}
	return p
}

type pool struct {
	jobs    chan Task
	done    chan struct{}
	once    sync.Once
	mu      sync.RWMutex
	wg      sync.WaitGroup
	onPanic PanicHandler
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.onPanic(r)
		}
	}()
	job()
}

// Submit blocks until a worker takes t, ctx is done, or the pool stops.
func (p *pool) Submit(ctx context.Context, t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	select {
	case <-p.done:
		return ErrStopped
	default:
	}

	select {
	case p.jobs <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		return ErrStopped
	}
}

func (p *pool) Stop() {
	p.once.Do(func() {
		close(p.done)
		// wait for in-flight Submit calls before closing jobs
		p.mu.Lock()
		close(p.jobs)
		p.mu.Unlock()
	})
	p.wg.Wait()
}
