// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"errors"
	"fmt"
)

// loopState carries one live loop. It is shared between the caller
// (holding the outer future) and every continuation queued on pid;
// future and condition are read and written only from executions on
// pid, so the actor's serialization is the only synchronization.
type loopState[T any] struct {
	pid       PID
	iterate   func() *Future[T]
	body      func(T) *Future[bool]
	promise   *Promise[struct{}]
	future    *Future[T]
	condition *Future[bool]
}

// Loop runs body over the values produced by iterate, on pid, until
// body settles false. Semantically:
//
//	condition := true
//	for condition {
//		condition = body(iterate())
//	}
//
// The returned future settles ready when body settles false, failed
// with the same reason when any intermediate future fails, and
// discarded when any intermediate future settles discarded or a discard
// request on it is honored. pid must stay live until settlement.
//
// Consecutive already-settled iterations drain in a plain for-loop with
// O(1) stack; the driver re-enters through pid's mailbox only when an
// intermediate future is pending. A single root hook forwards discard
// requests to the in-flight iterate/body future, so the subscription
// count on the returned future stays O(1) regardless of iterations.
func Loop[T any](pid PID, iterate func() *Future[T], body func(T) *Future[bool]) *Future[struct{}] {
	l := &loopState[T]{
		pid:     pid,
		iterate: iterate,
		body:    body,
		promise: NewPromise[struct{}](),
	}

	// Start the loop using pid as the execution context.
	Dispatch(pid, func() {
		l.future = callIterate(l.iterate)
		if l.promise.Future().HasDiscard() {
			l.future.Discard()
		}
		l.run()
	})

	// Propagate discarding through a single root hook. One OnDiscard per
	// iteration would grow memory with the iteration count; instead this
	// hook re-reads the current slots at fire time. The deferred read is
	// serialized on pid with the driver's writes.
	l.promise.Future().OnDiscard(Defer(pid, func() {
		if l.future != nil {
			l.future.Discard()
		}
		if l.condition != nil {
			l.condition.Discard()
		}
	}))

	return l.promise.Future()
}

// run advances the loop for as long as the intermediate futures are
// already settled, then subscribes a one-shot deferred re-entry and
// returns. Invoked only on l.pid.
func (l *loopState[T]) run() {
	outer := l.promise.Future()
	for l.future.IsReady() {
		v, _ := l.future.Get()
		l.condition = callBody(l.body, v)
		if outer.HasDiscard() {
			l.condition.Discard()
		}
		if l.condition.IsReady() {
			if c, _ := l.condition.Get(); c {
				l.future = callIterate(l.iterate)
				if outer.HasDiscard() {
					l.future.Discard()
				}
				continue
			}
			l.promise.Set(struct{}{})
			return
		}
		l.condition.OnAny(Defer(l.pid, func() {
			switch {
			case l.condition.IsReady():
				if c, _ := l.condition.Get(); c {
					l.future = callIterate(l.iterate)
					if outer.HasDiscard() {
						l.future.Discard()
					}
					l.run()
				} else {
					l.promise.Set(struct{}{})
				}
			case l.condition.IsFailed():
				l.promise.Fail(l.condition.Failure())
			default:
				l.promise.Discard()
			}
		}))
		return
	}

	l.future.OnAny(Defer(l.pid, func() {
		switch {
		case l.future.IsReady():
			l.run()
		case l.future.IsFailed():
			l.promise.Fail(l.future.Failure())
		default:
			l.promise.Discard()
		}
	}))
}

// SpawnLoop hosts a loop on a fresh anonymous actor for callers without
// a natural execution context. The actor is terminated and reaped once
// the loop settles.
func SpawnLoop[T any](iterate func() *Future[T], body func(T) *Future[bool]) *Future[struct{}] {
	pid := Spawn()
	f := Loop(pid, iterate, body)
	f.OnAny(func() {
		// Settlement is observed from an execution on pid; joining pid
		// there would deadlock. Tear down off-actor instead.
		go func() {
			Terminate(pid)
			Wait(pid)
		}()
	})
	return f
}

// User callables are total from the driver's point of view: a panic or
// a nil result becomes a failed future instead of corrupting the state
// machine.

func panicFailure(stage string, r any) error {
	return fmt.Errorf("proc: %s panicked: %v", stage, r)
}

func nilFutureFailure(stage string) error {
	return errors.New("proc: " + stage + " returned a nil future")
}

func callIterate[T any](iterate func() *Future[T]) (f *Future[T]) {
	defer func() {
		if r := recover(); r != nil {
			f = Failed[T](panicFailure("iterate", r))
		}
	}()
	f = iterate()
	if f == nil {
		f = Failed[T](nilFutureFailure("iterate"))
	}
	return f
}

func callBody[T any](body func(T) *Future[bool], v T) (f *Future[bool]) {
	defer func() {
		if r := recover(); r != nil {
			f = Failed[bool](panicFailure("body", r))
		}
	}()
	f = body(v)
	if f == nil {
		f = Failed[bool](nilFutureFailure("body"))
	}
	return f
}
