// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ccd

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// Strategy wraps Kernel with the two extra guarantees IPC requires:
// conservative rescaling of the minimum separation, and a zero-TOI
// retry that re-runs the kernel with min_distance=0 and no_zero_toi=true
// when the first call reports an almost-zero impact.
func Strategy(kind PairKind, p0, p1 [][]float64, tmax, tolerance float64, maxIterations int, conservativeRescaling float64) (impacting bool, toi float64) {
	d0 := math.Sqrt(feature(kind, p0).Dist2())
	if d0 == 0 {
		io.PfRed("ccd: initial distance is zero; returning toi=0 (unrecoverable prior-step violation)\n")
		return true, 0
	}

	effectiveMinDistance := (1 - conservativeRescaling) * d0
	impacting, toi = Kernel(kind, p0, p1, effectiveMinDistance, tolerance, tmax, maxIterations, false)
	if !impacting {
		return false, 0
	}

	if toi < 1e-6 {
		// zero-TOI retry: the retry's outcome, not the original call's,
		// is what gets returned.
		retryImpacting, retryTOI := Kernel(kind, p0, p1, 0, tolerance, tmax, maxIterations, true)
		if !retryImpacting {
			return false, 0
		}
		return true, retryTOI * conservativeRescaling
	}

	return true, toi
}
