// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package toi implements the earliest-time-of-impact reduction: a
// parallel min-TOI scan over broad-phase candidates that feeds the
// running minimum back into each candidate's kernel call as its tmax,
// pruning work that can no longer improve on what has already been
// found.
package toi

import (
	"runtime"
	"sync"

	"github.com/cpmech/ccdbarrier/ccd"
	"github.com/cpmech/ccdbarrier/constraint"
	"github.com/cpmech/ccdbarrier/mesh"
)

// Params bundles the strategy-level knobs every candidate is tested
// with. There is no separate configured minimum-separation floor here:
// the conservative-rescaling strategy derives its effective minimum
// separation from each candidate's own t=0 distance.
type Params struct {
	Tolerance             float64
	MaxIterations         int
	ConservativeRescaling float64
}

// shared is the mutex-guarded running minimum, updated by every worker as
// candidates resolve. A stale read under races is safe (it only costs
// extra work), so contention is limited to the improvement check.
type shared struct {
	mu    sync.Mutex
	tmax  float64
}

func (o *shared) Load() float64 {
	o.mu.Lock()
	t := o.tmax
	o.mu.Unlock()
	return t
}

func (o *shared) Improve(t float64) {
	o.mu.Lock()
	if t < o.tmax {
		o.tmax = t
	}
	o.mu.Unlock()
}

// Reduce returns the earliest TOI across candidates, in [0,1], using the
// candidates' positions at t=0 (v0) and t=1 (v1). It returns tmax0
// unchanged (1 for a full step) if no candidate reports impact before
// tmax0.
//
// The reduction is order-independent up to floating-point rounding:
// candidates are partitioned into at most 4*NumCPU chunks, each chunk
// scanned by one worker goroutine against the shared running minimum,
// with a final serial merge that is a no-op beyond what Improve already
// did.
func Reduce(m *mesh.Mesh, candidates []constraint.Candidate, v0, v1 [][]float64, p Params, tmax0 float64) float64 {
	sh := &shared{tmax: tmax0}
	if len(candidates) == 0 {
		return sh.Load()
	}

	nWorkers := runtime.NumCPU()
	if nWorkers < 1 {
		nWorkers = 1
	}
	chunkSize := (len(candidates) + 4*nWorkers - 1) / (4 * nWorkers)
	if chunkSize < 1 {
		chunkSize = 1
	}

	var wg sync.WaitGroup
	for start := 0; start < len(candidates); start += chunkSize {
		end := start + chunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			scanChunk(m, candidates[lo:hi], v0, v1, p, sh)
		}(start, end)
	}
	wg.Wait()

	return sh.Load()
}

// scanChunk runs one worker's slice of candidates serially, consulting
// and updating the shared running minimum after every kernel call.
func scanChunk(m *mesh.Mesh, chunk []constraint.Candidate, v0, v1 [][]float64, p Params, sh *shared) {
	for _, c := range chunk {
		tmax := sh.Load()
		if tmax <= 0 {
			return // nothing left to improve; stop scanning this chunk
		}
		kind := ccd.PairKind(c.Kind)
		ids := c.VertIDs(m)
		p0 := gather(v0, ids)
		p1 := gather(v1, ids)
		impacting, localTOI := ccd.Strategy(kind, p0, p1, tmax, p.Tolerance, p.MaxIterations, p.ConservativeRescaling)
		if impacting {
			sh.Improve(localTOI)
		}
	}
}

func gather(v [][]float64, ids []int) [][]float64 {
	pts := make([][]float64, len(ids))
	for k, id := range ids {
		pts[k] = v[id]
	}
	return pts
}
