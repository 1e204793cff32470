// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// spinLock is a test-and-set lock with adaptive backoff.
// Critical sections guarded by it are O(1) and never block,
// so contention resolves within a few backoff rounds.
type spinLock struct {
	word atomix.Uint32
}

func (l *spinLock) lock() {
	var bo iox.Backoff
	for !l.word.CompareAndSwap(0, 1) {
		bo.Wait()
	}
}

func (l *spinLock) unlock() {
	l.word.Store(0)
}
