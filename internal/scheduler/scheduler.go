// Package scheduler implements the cache's timed eviction worker: a priority
// queue of (deadline, key) pairs serviced by a single background goroutine
// that always wakes at the earliest outstanding deadline.
//
// The natural expression of "wait until the earliest deadline, or until a
// new earlier deadline shows up" is a condition variable with a timed wait,
// but sync.Cond has no timeout parameter. This package uses the idiomatic Go
// substitute already established elsewhere in this codebase's background
// loops (the compaction daemon's ticker/select run loop): a channel-driven
// select against a *time.Timer* reset to the current minimum deadline, plus
// a "wake up and recheck" channel for when a new, earlier deadline is
// pushed.
package scheduler

import (
	"container/heap"
	"sync"
	"time"
)

// item is one scheduled removal.
type item[K comparable] struct {
	key      K
	deadline time.Time
}

// pqueue is a container/heap min-heap ordered by deadline.
type pqueue[K comparable] []item[K]

func (q pqueue[K]) Len() int            { return len(q) }
func (q pqueue[K]) Less(i, j int) bool  { return q[i].deadline.Before(q[j].deadline) }
func (q pqueue[K]) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *pqueue[K]) Push(x interface{}) { *q = append(*q, x.(item[K])) }
func (q *pqueue[K]) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// Scheduler runs a single worker goroutine that removes keys from a store
// once their scheduled deadline has elapsed. Removal is idempotent on the
// callback's side, so a key that was already removed by some other path
// (explicit Remove, LRU eviction, Reset) is a harmless no-op wakeup.
type Scheduler[K comparable] struct {
	mu       sync.Mutex
	queue    pqueue[K]
	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	onExpire func(K)
}

// New creates a scheduler that calls onExpire for every key whose deadline
// elapses, and starts its worker goroutine.
func New[K comparable](onExpire func(K)) *Scheduler[K] {
	s := &Scheduler[K]{
		queue:    pqueue[K]{},
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		onExpire: onExpire,
	}
	heap.Init(&s.queue)
	s.wg.Add(1)
	go s.run()
	return s
}

// Schedule arranges for key to expire at deadline. A key may be scheduled
// more than once; every scheduled occurrence fires independently — callers
// that want to reschedule should track their own latest-wins logic, since
// the scheduler has no notion of "replace the existing entry for this key".
func (s *Scheduler[K]) Schedule(key K, deadline time.Time) {
	s.mu.Lock()
	heap.Push(&s.queue, item[K]{key: key, deadline: deadline})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Stop halts the worker goroutine and waits for it to exit. Safe to call
// more than once.
func (s *Scheduler[K]) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
}

// run is the worker loop. It always sleeps until the current minimum
// deadline, re-peeking the heap after every wakeup since a new, earlier
// deadline may have been pushed while it slept.
func (s *Scheduler[K]) run() {
	defer s.wg.Done()

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	timerArmed := false

	for {
		s.mu.Lock()
		var next time.Time
		hasNext := s.queue.Len() > 0
		if hasNext {
			next = s.queue[0].deadline
		}
		s.mu.Unlock()

		if timerArmed {
			timer.Stop()
			timerArmed = false
		}

		var timerC <-chan time.Time
		if hasNext {
			d := time.Until(next)
			if d <= 0 {
				s.fireExpired()
				continue
			}
			timer.Reset(d)
			timerArmed = true
			timerC = timer.C
		}

		select {
		case <-s.stop:
			return
		case <-s.wake:
			continue
		case <-timerC:
			s.fireExpired()
		}
	}
}

// fireExpired pops and fires every item whose deadline has elapsed.
func (s *Scheduler[K]) fireExpired() {
	for {
		s.mu.Lock()
		if s.queue.Len() == 0 || s.queue[0].deadline.After(time.Now()) {
			s.mu.Unlock()
			return
		}
		it := heap.Pop(&s.queue).(item[K])
		s.mu.Unlock()

		s.onExpire(it.key)
	}
}
