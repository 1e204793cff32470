// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package proc provides an actor-plus-future runtime with a stack-safe
// asynchronous loop primitive.
//
// # Architecture
//
//   - Futures: [Future] is a one-shot asynchronous cell with terminal states
//     ready, failed, and discarded. [Promise] is its write side. Terminal
//     continuations registered with [Future.OnAny] fire exactly once; the
//     one-shot discipline is enforced with [code.hybscloud.com/kont.Affine].
//   - Actors: [Spawn] creates a serialized execution context addressed by a
//     [PID]. Everything posted to a PID via [Dispatch] or [Defer] runs one
//     message at a time, in FIFO order. Actors are executed by a shared worker
//     pool whose per-worker run queues are bounded lock-free SPSC rings from
//     [code.hybscloud.com/lfq]; idle workers wait with adaptive backoff
//     ([code.hybscloud.com/iox.Backoff]).
//   - Loop: [Loop] expresses a do-while over asynchronously produced values
//     without growing the stack per iteration. Consecutive already-settled
//     iterations drain in a plain for-loop on the loop's PID; suspension falls
//     back to a deferred re-entry through the PID's mailbox.
//
// # Loop
//
// Loop takes a PID as the execution context and two callables: iterate
// produces the next value, body consumes it and reports whether to continue.
// Synchronously this is:
//
//	condition := true
//	for condition {
//		condition = body(iterate())
//	}
//
// The naive asynchronous rendition chains a continuation per iteration, which
// grows a stack frame per recursive step when the compiler cannot eliminate
// tail calls. Loop instead materializes the iteration state once and re-enters
// its driver through the PID's mailbox only when it must wait.
//
// Cancellation is cooperative: a discard request on the returned future is
// forwarded to the in-flight iterate/body future by a single root hook. No
// per-iteration discard subscription is ever created.
//
// # Discard
//
// [Future.Discard] records a request; it does not transition state. The
// producer honors the request by settling its [Promise] with
// [Promise.Discard]. A discarded future is an ordinary terminal state, not an
// error.
//
// # Example
//
//	pid := proc.Spawn()
//	var q proc.Queue[int]
//	done := proc.Loop(pid,
//		func() *proc.Future[int] { return q.Get() },
//		func(v int) *proc.Future[bool] { return proc.Ready(v != 0) },
//	)
//	q.Put(1)
//	q.Put(0)
//	done.Await()
package proc
