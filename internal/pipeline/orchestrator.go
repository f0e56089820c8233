package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/cutedoc/internal/config"
	"github.com/dgallion1/cutedoc/internal/enhance"
)

// Orchestrator runs page build jobs on a pool of workers.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	enhancer *enhance.Enhancer
	log      *slog.Logger
	cfg      config.Config

	onDone func(JobSnapshot)

	mu     sync.RWMutex
	closed bool

	cancel  context.CancelFunc
	workers sync.WaitGroup
	wg      sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, enh *enhance.Enhancer, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		enhancer: enh,
		log:      log,
		cfg:      cfg,
	}
}

// OnDone registers a callback run after every job, from the worker
// goroutine. Must be called before Start.
func (o *Orchestrator) OnDone(fn func(JobSnapshot)) {
	o.onDone = fn
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.workers.Add(1)
		go func() {
			defer o.workers.Done()
			w := NewWorker(o.cfg.DocsDir, o.cfg.OutputDir, o.enhancer, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
					if o.onDone != nil {
						o.onDone(job.Snapshot())
					}
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Close stops accepting jobs and waits for the queue to drain.
func (o *Orchestrator) Close() {
	o.closeQueue()
	o.workers.Wait()
	o.Stop()
}

// Stop cancels in-flight work and waits for all goroutines.
func (o *Orchestrator) Stop() {
	o.closeQueue()
	if o.cancel != nil {
		o.cancel()
	}
	o.workers.Wait()
	o.wg.Wait()
}

func (o *Orchestrator) closeQueue() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.closed {
		o.closed = true
		close(o.queue)
	}
}

// Submit queues a job without blocking.
func (o *Orchestrator) Submit(job *Job) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		return fmt.Errorf("pipeline is closed")
	}
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// SubmitWait queues a job, waiting for room in the queue.
func (o *Orchestrator) SubmitWait(ctx context.Context, job *Job) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		return fmt.Errorf("pipeline is closed")
	}
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	case <-ctx.Done():
		job.SetStatus(StatusFailed, "cancelled")
		return ctx.Err()
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// JobCount returns the number of tracked jobs.
func (o *Orchestrator) JobCount() int {
	return o.jobs.Len()
}

// Config returns the configuration the pipeline was built with.
func (o *Orchestrator) Config() config.Config {
	return o.cfg
}
