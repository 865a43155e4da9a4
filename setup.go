package grin

import (
	"context"
	"log/slog"
	"sync"
)

// SetupScheduler runs background setup work for every show of a Runtime on
// one worker goroutine. Features ask for work with Schedule; the worker
// calls DoSomeSetup on them one at a time, in queue order. While a frame is
// in progress (between FrameBegin and FrameEnd) the worker does not start
// new work, so setup never competes with advancing and painting.
type SetupScheduler struct {
	mu          sync.Mutex
	cond        sync.Cond
	queue       *setupQueue
	frameActive bool
	busy        bool
	stopped     bool

	logger  *slog.Logger
	metrics *Metrics
}

// NewSetupScheduler creates a scheduler whose queue starts with room for
// capacity features.
func NewSetupScheduler(capacity int, logger *slog.Logger, metrics *Metrics) *SetupScheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &SetupScheduler{
		queue:   newSetupQueue(capacity),
		logger:  logger,
		metrics: metrics,
	}
	s.cond.L = &s.mu
	return s
}

// Schedule queues f for a unit of setup work. It is safe to call from any
// goroutine, including from within DoSomeSetup.
func (s *SetupScheduler) Schedule(f Feature) {
	s.mu.Lock()
	s.queue.push(f)
	s.metrics.setupQueued(s.queue.len())
	s.cond.Broadcast()
	s.mu.Unlock()
}

// FrameBegin holds back setup work until FrameEnd.
func (s *SetupScheduler) FrameBegin() {
	s.mu.Lock()
	s.frameActive = true
	s.mu.Unlock()
}

// FrameEnd releases setup work held back by FrameBegin.
func (s *SetupScheduler) FrameEnd() {
	s.mu.Lock()
	s.frameActive = false
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Run executes queued work until ctx is done. It returns nil on
// cancellation.
func (s *SetupScheduler) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.stopped = true
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	defer stop()
	s.logger.Debug("setup worker started")
	for {
		f, ok := s.next()
		if !ok {
			s.logger.Debug("setup worker stopped")
			return nil
		}
		s.work(f)
	}
}

func (s *SetupScheduler) next() (Feature, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.stopped && (s.queue.len() == 0 || s.frameActive) {
		s.cond.Wait()
	}
	if s.stopped {
		return nil, false
	}
	f, _ := s.queue.pop()
	s.busy = true
	return f, true
}

func (s *SetupScheduler) work(f Feature) {
	f.DoSomeSetup()
	s.mu.Lock()
	s.busy = false
	s.metrics.setupWork(s.queue.len())
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Drain performs all queued work, including work queued while draining, on
// the calling goroutine. It ignores the frame gate and is meant for
// headless playback and tests.
func (s *SetupScheduler) Drain() int {
	n := 0
	for {
		s.mu.Lock()
		f, ok := s.queue.pop()
		if ok {
			s.busy = true
		}
		s.mu.Unlock()
		if !ok {
			return n
		}
		s.work(f)
		n++
	}
}

// Pending returns the number of queued entries, counting repeats.
func (s *SetupScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.len()
}

// Idle reports whether nothing is queued or running.
func (s *SetupScheduler) Idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.len() == 0 && !s.busy
}

// WaitIdle blocks until the scheduler is idle or ctx is done.
func (s *SetupScheduler) WaitIdle(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	defer stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.queue.len() > 0 || s.busy {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.cond.Wait()
	}
	return nil
}
