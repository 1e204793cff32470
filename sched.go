// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"runtime"
	"sync"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// runQueueCapacity is the bounded capacity of each worker's run queue.
// 256 keeps the ring small while making router stalls (all rings full)
// rare under bursty wakeups.
const runQueueCapacity = 256

// scheduler executes runnable actors on a fixed worker pool. Wakeups
// enter through a multi-producer inbox; a single router goroutine moves
// them onto per-worker bounded rings. The router being the only
// producer and each worker the only consumer of its ring preserves the
// SPSC discipline lfq requires.
type scheduler struct {
	inboxLk spinLock
	inbox   []*actor
	workers []*schedWorker
	cursor  int // round-robin placement, router-owned
}

type schedWorker struct {
	runq lfq.SPSC[*actor]
}

var (
	schedOnce sync.Once
	sched     *scheduler
)

// submit marks a as runnable. Safe from any goroutine.
func submit(a *actor) {
	schedOnce.Do(startScheduler)
	sched.inboxLk.lock()
	sched.inbox = append(sched.inbox, a)
	sched.inboxLk.unlock()
}

func startScheduler() {
	n := runtime.GOMAXPROCS(0)
	s := &scheduler{workers: make([]*schedWorker, n)}
	for i := range s.workers {
		w := &schedWorker{}
		w.runq.Init(runQueueCapacity)
		s.workers[i] = w
		go w.loop()
	}
	go s.route()
	sched = s
}

// route drains the inbox and places runnable actors on worker rings.
// Actors that do not fit (all rings full) are held locally and retried
// after backoff; the router never blocks on a single ring.
func (s *scheduler) route() {
	var bo iox.Backoff
	var held []*actor
	for {
		s.inboxLk.lock()
		batch := s.inbox
		s.inbox = nil
		s.inboxLk.unlock()
		held = append(held, batch...)
		if len(held) == 0 {
			bo.Wait()
			continue
		}
		kept := held[:0]
		progress := false
		for _, a := range held {
			if s.place(a) {
				progress = true
			} else {
				kept = append(kept, a)
			}
		}
		held = kept
		if progress {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
}

// place enqueues a on the next worker ring with space.
// Returns false when every ring is full (iox.ErrWouldBlock).
func (s *scheduler) place(a *actor) bool {
	for range s.workers {
		w := s.workers[s.cursor]
		s.cursor++
		if s.cursor == len(s.workers) {
			s.cursor = 0
		}
		slot := a
		if w.runq.Enqueue(&slot) == nil {
			return true
		}
	}
	return false
}

// loop dequeues runnable actors and runs one batch each, waiting with
// adaptive backoff when the ring is empty.
func (w *schedWorker) loop() {
	var bo iox.Backoff
	for {
		a, err := w.runq.Dequeue()
		if err != nil {
			bo.Wait()
			continue
		}
		bo.Reset()
		a.step()
	}
}
