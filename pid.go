// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

import "code.hybscloud.com/atomix"

// PID is an opaque handle addressing one actor's serialized execution
// context. Each spawned actor receives the next monotonically increasing
// value.
type PID uint32

// counter is the global monotonic counter for actor PIDs.
var counter atomix.Uint32

// nextPID returns the next monotonically increasing PID.
func nextPID() PID {
	return PID(counter.Add(1))
}

// Actor registry. Lookup on the dispatch hot path takes the spinlock
// for an O(1) map read.
var (
	registryLk spinLock
	registry   = make(map[PID]*actor)
)

func register(a *actor) {
	registryLk.lock()
	registry[a.pid] = a
	registryLk.unlock()
}

func unregister(pid PID) {
	registryLk.lock()
	delete(registry, pid)
	registryLk.unlock()
}

func lookup(pid PID) (*actor, bool) {
	registryLk.lock()
	a, ok := registry[pid]
	registryLk.unlock()
	return a, ok
}
