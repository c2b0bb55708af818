package worker

import (
	"sync"

	"go.uber.org/zap"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Pool defines a simple worker pool.
type Pool interface {
	Submit(Task) bool
	Stop()
}

// queueFactor sizes the job buffer per worker so request handlers rarely block on Submit.
const queueFactor = 16

// NewPool creates a pool with n workers. n<=0 defaults to 1. A panicking task is logged and
// does not take its worker down.
func NewPool(n int, log *zap.Logger) Pool {
	if n <= 0 {
		n = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &pool{jobs: make(chan Task, n*queueFactor), log: log}
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
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
	log     *zap.Logger
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("worker task panicked", zap.Any("panic", r))
		}
	}()
	job()
}

// Submit queues t and reports whether it was accepted; tasks submitted after Stop are dropped.
func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		p.log.Warn("worker pool stopped, task dropped")
		return false
	}
	p.jobs <- t
	return true
}

// Stop drains queued tasks and waits for the workers to exit.
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
