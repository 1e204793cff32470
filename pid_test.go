// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package proc_test

import (
	"testing"

	"code.hybscloud.com/proc"
)

func TestSpawnPIDsMonotonic(t *testing.T) {
	p1 := proc.Spawn()
	p2 := proc.Spawn()
	p3 := proc.Spawn()
	defer func() {
		proc.Terminate(p1)
		proc.Terminate(p2)
		proc.Terminate(p3)
	}()

	if p1 >= p2 {
		t.Fatalf("pids not increasing: %d >= %d", p1, p2)
	}
	if p2 >= p3 {
		t.Fatalf("pids not increasing: %d >= %d", p2, p3)
	}
}
