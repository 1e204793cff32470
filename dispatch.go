// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

// Dispatch enqueues f for execution on pid's serialized context.
// Delivery is FIFO per PID. Dispatching to a terminated or unknown PID
// drops f.
func Dispatch(pid PID, f func()) {
	if a, ok := lookup(pid); ok {
		a.deliver(f)
	}
}

// Defer returns a continuation that, when invoked, posts f to pid.
// The continuation may be invoked from any goroutine, including
// future-settlement paths, and may be invoked more than once.
func Defer(pid PID, f func()) func() {
	return func() {
		Dispatch(pid, f)
	}
}
