// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"errors"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// ErrDiscarded is returned by Await when the future settled discarded.
var ErrDiscarded = errors.New("proc: future discarded")

// Future states. A future transitions at most once,
// statePending → {stateReady, stateFailed, stateDiscarded}.
const (
	statePending uint32 = iota
	stateReady
	stateFailed
	stateDiscarded
)

// Future is a one-shot asynchronous cell of type T.
//
// A discard request (Discard) is distinct from the discarded terminal
// state: the request only records intent and notifies OnDiscard
// subscribers; the producer decides whether to honor it by settling the
// promise with Promise.Discard.
type Future[T any] struct {
	lk        spinLock
	state     atomix.Uint32
	discard   atomix.Uint32 // discard requested; persists across settlement
	value     T
	err       error
	onAny     []*kont.Affine[struct{}, struct{}]
	onDiscard []*kont.Affine[struct{}, struct{}]
}

// once wraps a callback as an affine continuation. Subscribers are
// resumed via TryResume, so a continuation can never run twice even if
// it reaches two fire paths.
func once(f func()) *kont.Affine[struct{}, struct{}] {
	return kont.Once(func(struct{}) struct{} {
		f()
		return struct{}{}
	})
}

func fire(ks []*kont.Affine[struct{}, struct{}]) {
	for _, k := range ks {
		k.TryResume(struct{}{})
	}
}

// IsPending reports whether the future has not settled.
func (f *Future[T]) IsPending() bool { return f.state.Load() == statePending }

// IsReady reports whether the future settled with a value.
func (f *Future[T]) IsReady() bool { return f.state.Load() == stateReady }

// IsFailed reports whether the future settled with a failure.
func (f *Future[T]) IsFailed() bool { return f.state.Load() == stateFailed }

// IsDiscarded reports whether the future settled discarded.
func (f *Future[T]) IsDiscarded() bool { return f.state.Load() == stateDiscarded }

// Get returns the value and true if the future is ready.
func (f *Future[T]) Get() (T, bool) {
	if f.state.Load() != stateReady {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Failure returns the failure reason, or nil if the future has not failed.
func (f *Future[T]) Failure() error {
	if f.state.Load() != stateFailed {
		return nil
	}
	return f.err
}

// HasDiscard reports whether a discard request has been recorded.
// The flag persists even after the future settles by another path.
func (f *Future[T]) HasDiscard() bool { return f.discard.Load() != 0 }

// Discard records a cooperative discard request and fires OnDiscard
// subscribers. It does not transition the future's state; a no-op after
// settlement or a previous request.
func (f *Future[T]) Discard() {
	f.lk.lock()
	if f.state.Load() != statePending || f.discard.Load() != 0 {
		f.lk.unlock()
		return
	}
	f.discard.Store(1)
	subs := f.onDiscard
	f.onDiscard = nil
	f.lk.unlock()
	fire(subs)
}

// OnAny subscribes k to the terminal transition. k fires exactly once,
// on the settling goroutine, or immediately if already terminal.
func (f *Future[T]) OnAny(k func()) {
	a := once(k)
	f.lk.lock()
	if f.state.Load() != statePending {
		f.lk.unlock()
		a.TryResume(struct{}{})
		return
	}
	f.onAny = append(f.onAny, a)
	f.lk.unlock()
}

// OnDiscard subscribes k to the discard request. k fires at most once,
// on the requesting goroutine, or immediately if a request was already
// recorded. It never fires after settlement without a request.
func (f *Future[T]) OnDiscard(k func()) {
	a := once(k)
	f.lk.lock()
	if f.discard.Load() != 0 {
		f.lk.unlock()
		a.TryResume(struct{}{})
		return
	}
	if f.state.Load() != statePending {
		f.lk.unlock()
		return
	}
	f.onDiscard = append(f.onDiscard, a)
	f.lk.unlock()
}

// OnReady subscribes k to a ready settlement with the value.
func (f *Future[T]) OnReady(k func(T)) {
	f.OnAny(func() {
		if v, ok := f.Get(); ok {
			k(v)
		}
	})
}

// OnFailed subscribes k to a failed settlement with the reason.
func (f *Future[T]) OnFailed(k func(error)) {
	f.OnAny(func() {
		if err := f.Failure(); err != nil {
			k(err)
		}
	})
}

// OnDiscarded subscribes k to a discarded settlement.
func (f *Future[T]) OnDiscarded(k func()) {
	f.OnAny(func() {
		if f.IsDiscarded() {
			k()
		}
	})
}

// Await blocks until the future settles, using adaptive backoff on the
// calling goroutine. Returns the value, the failure reason, or
// ErrDiscarded.
func (f *Future[T]) Await() (T, error) {
	var bo iox.Backoff
	for f.state.Load() == statePending {
		bo.Wait()
	}
	switch f.state.Load() {
	case stateReady:
		return f.value, nil
	case stateFailed:
		var zero T
		return zero, f.err
	default:
		var zero T
		return zero, ErrDiscarded
	}
}

// settle performs the single state transition and fires OnAny
// subscribers outside the lock. Returns false if already settled.
func (f *Future[T]) settle(state uint32, v T, err error) bool {
	f.lk.lock()
	if f.state.Load() != statePending {
		f.lk.unlock()
		return false
	}
	f.value = v
	f.err = err
	f.state.Store(state)
	subs := f.onAny
	f.onAny = nil
	f.onDiscard = nil
	f.lk.unlock()
	fire(subs)
	return true
}
