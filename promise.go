// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

// Promise is the write side of a Future. It settles at most once;
// later calls are no-ops returning false.
type Promise[T any] struct {
	f Future[T]
}

// NewPromise creates a pending promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{}
}

// Future returns the read side. Every call returns the same future.
func (p *Promise[T]) Future() *Future[T] {
	return &p.f
}

// Set settles the future ready with v.
func (p *Promise[T]) Set(v T) bool {
	return p.f.settle(stateReady, v, nil)
}

// Fail settles the future failed with err.
func (p *Promise[T]) Fail(err error) bool {
	var zero T
	return p.f.settle(stateFailed, zero, err)
}

// Discard settles the future discarded, honoring a discard request.
func (p *Promise[T]) Discard() bool {
	var zero T
	return p.f.settle(stateDiscarded, zero, nil)
}

// Ready returns a future already settled with v.
func Ready[T any](v T) *Future[T] {
	p := NewPromise[T]()
	p.Set(v)
	return p.Future()
}

// Failed returns a future already failed with err.
func Failed[T any](err error) *Future[T] {
	p := NewPromise[T]()
	p.Fail(err)
	return p.Future()
}

// Discarded returns a future already settled discarded.
func Discarded[T any]() *Future[T] {
	p := NewPromise[T]()
	p.Discard()
	return p.Future()
}
