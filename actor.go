// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Actor run states. An actor is on at most one worker at a time:
// deliver moves idle→queued (and submits), a worker moves queued→running,
// and the worker alone moves running→idle.
const (
	actorIdle uint32 = iota
	actorQueued
	actorRunning
)

// actorBatch bounds messages per actor turn. An actor with a backlog is
// requeued at the scheduler tail after a full batch so one busy actor
// cannot starve its worker's peers.
const actorBatch = 128

// actor is one serialized execution context: an unbounded mailbox plus
// a run-state word coordinating with the worker pool.
type actor struct {
	pid   PID
	mb    mailbox
	state atomix.Uint32 // actorIdle / actorQueued / actorRunning
	dead  atomix.Uint32 // terminate requested
	done  atomix.Uint32 // mailbox drained, actor unregistered
}

// Spawn creates a new actor and returns its PID.
// The actor runs until Terminate.
func Spawn() PID {
	a := &actor{pid: nextPID()}
	register(a)
	return a.pid
}

// Terminate requests asynchronous termination of pid.
// Pending and subsequently delivered messages are dropped.
// Terminating an unknown PID is a no-op.
func Terminate(pid PID) {
	a, ok := lookup(pid)
	if !ok {
		return
	}
	a.dead.Store(1)
	if a.state.CompareAndSwap(actorIdle, actorQueued) {
		submit(a)
	}
}

// Wait blocks until pid has fully terminated.
// Returns immediately for an unknown PID.
func Wait(pid PID) {
	a, ok := lookup(pid)
	if !ok {
		return
	}
	var bo iox.Backoff
	for a.done.Load() == 0 {
		bo.Wait()
	}
}

// deliver enqueues f and wakes the actor if it was idle.
// Messages to a dead actor are dropped.
func (a *actor) deliver(f func()) {
	if a.dead.Load() != 0 {
		return
	}
	a.mb.push(f)
	if a.state.CompareAndSwap(actorIdle, actorQueued) {
		submit(a)
	}
}

// step runs one batch of messages on the calling worker.
// The store-idle-then-recheck order pairs with deliver's push-then-CAS
// (and Terminate's store-then-CAS) so a wakeup cannot be lost: at least
// one side observes the other under sequentially consistent atomics.
func (a *actor) step() {
	a.state.Store(actorRunning)
	for n := 0; n < actorBatch; n++ {
		if a.dead.Load() != 0 {
			a.shutdown()
			return
		}
		f, ok := a.mb.pop()
		if !ok {
			break
		}
		f()
	}
	if a.dead.Load() != 0 {
		a.shutdown()
		return
	}
	a.state.Store(actorIdle)
	if a.mb.len() > 0 || a.dead.Load() != 0 {
		if a.state.CompareAndSwap(actorIdle, actorQueued) {
			submit(a)
		}
	}
}

// shutdown drops the remaining mailbox and publishes termination.
// The run state stays actorRunning so no further CAS can requeue.
func (a *actor) shutdown() {
	a.mb.clear()
	unregister(a.pid)
	a.done.Store(1)
}
