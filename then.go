// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

// Then composes fn over f's value, running fn on pid. The returned
// future tracks the chain: fn's result settles it, a failure or discard
// of either stage propagates, and a discard request on it is forwarded
// to f (and to fn's result once the chain reaches it).
func Then[T, U any](pid PID, f *Future[T], fn func(T) *Future[U]) *Future[U] {
	p := NewPromise[U]()
	f.OnAny(Defer(pid, func() {
		switch {
		case f.IsReady():
			v, _ := f.Get()
			u := callStage(fn, v)
			p.Future().OnDiscard(func() { u.Discard() })
			u.OnAny(func() {
				switch {
				case u.IsReady():
					uv, _ := u.Get()
					p.Set(uv)
				case u.IsFailed():
					p.Fail(u.Failure())
				default:
					p.Discard()
				}
			})
		case f.IsFailed():
			p.Fail(f.Failure())
		default:
			p.Discard()
		}
	}))
	p.Future().OnDiscard(func() {
		f.Discard()
	})
	return p.Future()
}

// callStage invokes a continuation stage, converting a panic or a nil
// result into a failed future.
func callStage[T, U any](fn func(T) *Future[U], v T) (f *Future[U]) {
	defer func() {
		if r := recover(); r != nil {
			f = Failed[U](panicFailure("continuation", r))
		}
	}()
	f = fn(v)
	if f == nil {
		f = Failed[U](nilFutureFailure("continuation"))
	}
	return f
}
