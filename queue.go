// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

// Queue is an unbounded FIFO whose consumers receive values through
// futures. Get before Put returns a pending future settled by a later
// Put; values and waiters pair in strict FIFO order. The zero Queue is
// ready to use.
type Queue[T any] struct {
	lk      spinLock
	values  []T
	waiters []*Promise[T]
}

// Put appends v, settling the oldest waiter if one is pending.
// The waiter's continuations run on the calling goroutine.
func (q *Queue[T]) Put(v T) {
	q.lk.lock()
	if len(q.waiters) > 0 {
		p := q.waiters[0]
		q.waiters[0] = nil
		q.waiters = q.waiters[1:]
		q.lk.unlock()
		p.Set(v)
		return
	}
	q.values = append(q.values, v)
	q.lk.unlock()
}

// Get returns a future for the next value: already ready if a value is
// buffered, pending until the pairing Put otherwise.
func (q *Queue[T]) Get() *Future[T] {
	q.lk.lock()
	if len(q.values) > 0 {
		v := q.values[0]
		var zero T
		q.values[0] = zero
		q.values = q.values[1:]
		q.lk.unlock()
		return Ready(v)
	}
	p := NewPromise[T]()
	q.waiters = append(q.waiters, p)
	q.lk.unlock()
	return p.Future()
}
