// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	const n = 1000
	hits := make([]int32, n)
	Run(n, 32, func(i int) {
		atomic.AddInt32(&hits[i], 1)
	})
	for i, h := range hits {
		assert.Equal(t, int32(1), h, "index %d", i)
	}
}

func TestRunInline(t *testing.T) {
	sum := 0 // safe: n <= grain runs on the calling goroutine
	Run(5, 10, func(i int) {
		sum += i
	})
	assert.Equal(t, 10, sum)
}

func TestRunBlocked(t *testing.T) {
	const n = 101
	hits := make([]int32, n)
	var calls atomic.Int32
	RunBlocked(n, 32, func(lo, hi int) {
		calls.Add(1)
		assert.LessOrEqual(t, hi-lo, 32)
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})
	assert.Equal(t, int32(4), calls.Load())
	for i, h := range hits {
		assert.Equal(t, int32(1), h, "index %d", i)
	}
}

func TestRunEmpty(t *testing.T) {
	Run(0, 10, func(i int) {
		t.Error("fn called for empty range")
	})
	Run(-3, 10, func(i int) {
		t.Error("fn called for negative range")
	})
}

func TestRunBadGrain(t *testing.T) {
	var count atomic.Int32
	Run(10, 0, func(i int) {
		count.Add(1)
	})
	assert.Equal(t, int32(10), count.Load())
}
