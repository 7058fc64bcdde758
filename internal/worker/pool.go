// Package worker provides bounded-concurrency helpers: a simple job
// pool for batch verification and a per-host rate limiter shared with
// the enrichment fetcher.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job produces
type Result interface {
	GetError() error
}

// Pool runs submitted jobs on a fixed number of workers. The canonical
// usage submits from one goroutine and drains from another: channel
// buffers are small, so producing results and collecting them must
// overlap or both sides stall once the buffers fill.
//
//	pool := NewPool(ctx, workers)
//	pool.Start()
//	go func() {
//		for _, job := range jobs {
//			pool.Submit(job)
//		}
//		pool.Finish()
//	}()
//	results := pool.Results()
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
	finishOnce sync.Once
}

// NewPool creates a pool with the given worker count. Cancelling ctx
// aborts in-flight jobs and unblocks pending Submits.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
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

// Submit queues a job for execution. Returns immediately when the
// pool's context is cancelled.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobQueue <- job:
	}
}

// Finish signals that no more jobs will be submitted. The results
// channel closes once the workers drain the queue.
func (p *Pool) Finish() {
	p.finishOnce.Do(func() {
		close(p.jobQueue)
		go func() {
			p.wg.Wait()
			p.closeOnce.Do(func() { close(p.results) })
		}()
	})
}

// Results collects every result until the pool finishes. It must run
// concurrently with submission; see the Pool doc.
func (p *Pool) Results() []Result {
	var results []Result
	for result := range p.results {
		results = append(results, result)
	}
	return results
}

// Shutdown aborts the pool immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeOnce.Do(func() { close(p.results) })
}
