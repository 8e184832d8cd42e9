package task

import (
	"context"
	"log/slog"
	"sync"
)

// Task is a named unit of background work.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pool runs a fixed number of goroutines that execute submitted tasks.
// Submitters hold no reference to a running task; failures are logged
// centrally here. Tasks are never cancelled individually — once started they
// run until they finish or the pool's context is cancelled at shutdown.
type Pool struct {
	workers int
	tasks   chan Task
}

// NewPool creates a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, 64),
	}
}

// Submit queues a task for execution. It blocks only when the backlog is
// full.
func (p *Pool) Submit(t Task) {
	p.tasks <- t
}

// Run starts worker goroutines and blocks until ctx is cancelled and all
// workers have drained.
func (p *Pool) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := range p.workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.loop(ctx, id)
		}(i)
	}
	wg.Wait()
}

func (p *Pool) loop(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-p.tasks:
			slog.Info("worker: running task", "worker", id, "task", t.Name)
			if err := t.Run(ctx); err != nil {
				slog.Error("worker: task failed", "worker", id, "task", t.Name, "error", err)
			}
		}
	}
}
