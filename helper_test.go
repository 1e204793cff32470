// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc_test

import (
	"testing"
	"time"

	"code.hybscloud.com/proc"
)

// awaitTerminal blocks until f settles, failing the test after a
// generous deadline so a wedged loop cannot hang the suite.
func awaitTerminal[T any](tb testing.TB, f *proc.Future[T]) {
	tb.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for f.IsPending() {
		if time.Now().After(deadline) {
			tb.Fatal("future still pending after 10s")
		}
		time.Sleep(time.Millisecond)
	}
}

// awaitCount polls until n() reaches want, failing after a deadline.
func awaitCount(tb testing.TB, n func() int32, want int32) {
	tb.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for n() != want {
		if time.Now().After(deadline) {
			tb.Fatalf("count stuck at %d, want %d", n(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

// settleOnDiscard wires p to honor discard requests on its future —
// the cooperative-cancellation contract user callables opt into.
func settleOnDiscard[T any](p *proc.Promise[T]) *proc.Future[T] {
	f := p.Future()
	f.OnDiscard(func() { p.Discard() })
	return f
}
