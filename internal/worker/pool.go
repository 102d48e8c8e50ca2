// Package worker runs batch analyses concurrently: a small job pool, a
// per-domain rate limiter for URL sources, and the batch processor that ties
// them to the pipeline.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	GetError() error
}

// Pool executes jobs on a fixed number of workers. Both channels are
// bounded, so a Collector must drain results concurrently with submission;
// submitting everything before reading results fills the buffers and blocks
// workers and submitter alike.
type Pool struct {
	workers   int
	jobQueue  chan Job
	results   chan Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given worker count (minimum 1). The
// context bounds all work: cancellation stops submission and reaches every
// job.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2),
		results:  make(chan Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the workers.
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
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Submissions after Shutdown or context cancellation
// are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobQueue <- job:
	}
}

// Close stops accepting jobs, waits for the workers to drain the queue, and
// closes the results channel. Call after the last Submit; a Collector
// started before submission receives everything.
func (p *Pool) Close() {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
}

// Shutdown cancels outstanding work and stops the workers.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

// Collector drains pool results on its own goroutine so submission never
// waits on a full results buffer.
type Collector struct {
	results []Result
	done    chan struct{}
}

// Collect starts draining the pool's results. Start it before submitting.
func Collect(p *Pool) *Collector {
	c := &Collector{done: make(chan struct{})}
	go func() {
		defer close(c.done)
		for result := range p.results {
			c.results = append(c.results, result)
		}
	}()
	return c
}

// Results blocks until the pool is closed and returns everything collected.
func (c *Collector) Results() []Result {
	<-c.done
	return c.results
}
