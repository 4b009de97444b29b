// Package worker runs jobs concurrently and paces outbound requests.
package worker

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// PanicResult is emitted in place of a job's result when the job panics
type PanicResult struct {
	Value any
	Stack []byte
}

// GetError reports the recovered panic
func (r *PanicResult) GetError() error {
	return fmt.Errorf("job panicked: %v", r.Value)
}

// Pool manages a pool of workers that execute jobs concurrently
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// PoolOption configures a Pool
type PoolOption func(*poolOptions)

type poolOptions struct {
	queueSize int
	parent    context.Context
}

// WithQueueSize buffers n jobs and n results. Size it to the number of jobs
// submitted before Wait, otherwise Submit blocks once both buffers fill.
func WithQueueSize(n int) PoolOption {
	return func(o *poolOptions) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithContext derives the pool's context from ctx, so cancelling ctx stops
// the workers and is visible to running jobs.
func WithContext(ctx context.Context) PoolOption {
	return func(o *poolOptions) {
		if ctx != nil {
			o.parent = ctx
		}
	}
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int, opts ...PoolOption) *Pool {
	if workers <= 0 {
		workers = 1
	}

	o := poolOptions{queueSize: workers * 2, parent: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(o.parent)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, o.queueSize),
		results:    make(chan Result, o.queueSize),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := p.run(job)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// run executes one job, turning a panic into a PanicResult so one bad job
// cannot take the other workers down.
func (p *Pool) run(job Job) (result Result) {
	defer func() {
		if v := recover(); v != nil {
			result = &PanicResult{Value: v, Stack: debug.Stack()}
		}
	}()
	return job.Execute(p.ctx)
}

// Submit submits a job to the pool for execution
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Wait waits for all jobs to complete and returns the results in
// completion order.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown shuts down the worker pool immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
		p.cancelFunc()
	})
}
