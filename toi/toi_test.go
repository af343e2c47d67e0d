// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toi

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ccdbarrier/constraint"
	"github.com/cpmech/ccdbarrier/mesh"
)

// buildScenario6 sets up two independent vertex-vertex candidates whose
// kernels resolve to TOI 0.3 and 0.9 respectively. Each moving vertex is
// fired straight through its fixed partner's
// position at the target t, so the first conservative-advancement step
// lands exactly on it (no iterative convergence error to budget for).
func buildScenario6() (*mesh.Mesh, []constraint.Candidate, [][]float64, [][]float64) {
	v0 := [][]float64{
		{0, 0, 0},          // vertex 0: fixed, pair A anchor
		{1, 0, 0},          // vertex 1: pair A mover, crosses vertex 0 at t=0.3
		{0, 0, 0},          // vertex 2: fixed, pair B anchor
		{1, 0, 0},          // vertex 3: pair B mover, crosses vertex 2 at t=0.9
	}
	v1 := [][]float64{
		{0, 0, 0},
		{-7.0 / 3.0, 0, 0},
		{0, 0, 0},
		{-1.0 / 9.0, 0, 0},
	}
	m := mesh.New(v0, nil, nil)
	candidates := []constraint.Candidate{
		constraint.VV(0, 1),
		constraint.VV(2, 3),
	}
	return m, candidates, v0, v1
}

func Test_toi_monotonic_pruning_forward(tst *testing.T) {
	chk.PrintTitle("toi_monotonic_pruning_forward. min over two independent candidates")
	m, candidates, v0, v1 := buildScenario6()
	p := Params{Tolerance: 1e-6, MaxIterations: 1000000, ConservativeRescaling: 1}
	got := Reduce(m, candidates, v0, v1, p, 1)
	chk.Float64(tst, "toi", 1e-6, got, 0.3)
}

func Test_toi_monotonic_pruning_reversed(tst *testing.T) {
	chk.PrintTitle("toi_monotonic_pruning_reversed. order independence")
	m, candidates, v0, v1 := buildScenario6()
	reversed := []constraint.Candidate{candidates[1], candidates[0]}
	p := Params{Tolerance: 1e-6, MaxIterations: 1000000, ConservativeRescaling: 1}
	got := Reduce(m, reversed, v0, v1, p, 1)
	chk.Float64(tst, "toi", 1e-6, got, 0.3)
}

func Test_toi_empty_candidates(tst *testing.T) {
	chk.PrintTitle("toi_empty_candidates. no candidates leaves tmax0 untouched")
	m := mesh.New([][]float64{{0, 0, 0}}, nil, nil)
	got := Reduce(m, nil, nil, nil, Params{Tolerance: 1e-6, MaxIterations: 100}, 1)
	chk.Float64(tst, "toi", 1e-15, got, 1)
}
