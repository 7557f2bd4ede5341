// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parallel provides bounded fork-join helpers for data-parallel
// passes over index ranges. Each call fans work out across goroutines in
// fixed-size chunks and returns only after every chunk has finished, so a
// call acts as its own join barrier. Callers must ensure that iteration i
// only reads and writes state owned by index i.
package parallel

import "sync"

// Run calls fn(i) for every i in [0, n), in parallel chunks of grain
// indexes. The grain is a scheduling knob only; any positive value is
// correct. When n <= grain everything runs inline on the calling goroutine.
func Run(n, grain int, fn func(i int)) {
	RunBlocked(n, grain, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(i)
		}
	})
}

// RunBlocked calls fn(lo, hi) for consecutive half-open blocks covering
// [0, n), each block at most grain wide, and waits for all of them.
func RunBlocked(n, grain int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if grain <= 0 {
		grain = 1
	}
	if n <= grain {
		fn(0, n)
		return
	}
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += grain {
		hi := min(lo+grain, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
