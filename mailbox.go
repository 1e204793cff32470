// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc

// mailbox is an unbounded multi-producer FIFO of pending messages.
// Producers are arbitrary goroutines; the consumer is whichever pool
// worker currently runs the owning actor (at most one at a time).
// A head index avoids shifting; the backing slice is recycled once
// fully drained.
type mailbox struct {
	lk   spinLock
	buf  []func()
	head int
}

func (m *mailbox) push(f func()) {
	m.lk.lock()
	m.buf = append(m.buf, f)
	m.lk.unlock()
}

func (m *mailbox) pop() (func(), bool) {
	m.lk.lock()
	if m.head == len(m.buf) {
		m.lk.unlock()
		return nil, false
	}
	f := m.buf[m.head]
	m.buf[m.head] = nil
	m.head++
	if m.head == len(m.buf) {
		m.buf = m.buf[:0]
		m.head = 0
	}
	m.lk.unlock()
	return f, true
}

func (m *mailbox) len() int {
	m.lk.lock()
	n := len(m.buf) - m.head
	m.lk.unlock()
	return n
}

func (m *mailbox) clear() {
	m.lk.lock()
	m.buf = nil
	m.head = 0
	m.lk.unlock()
}
