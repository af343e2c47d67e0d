// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package barrier implements the constraint-set reduction: the parallel
// sum of per-pair barrier potential, gradient and Hessian contributions,
// scattered into global dof space through the assembly package. Every
// reduction here follows the same shape: split the constraint slice into
// blocked ranges, let each worker build a private accumulator, then merge
// the accumulators serially.
package barrier

import (
	"runtime"
	"sync"

	"github.com/cpmech/gosl/la"

	"github.com/cpmech/ccdbarrier/assembly"
	"github.com/cpmech/ccdbarrier/constraint"
	"github.com/cpmech/ccdbarrier/mesh"
)

func chunkRanges(n int) [][2]int {
	if n == 0 {
		return nil
	}
	nWorkers := runtime.NumCPU()
	if nWorkers < 1 {
		nWorkers = 1
	}
	chunkSize := (n + 4*nWorkers - 1) / (4 * nWorkers)
	if chunkSize < 1 {
		chunkSize = 1
	}
	var ranges [][2]int
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}

// Potential returns Σᵢ φᵢ(V), the barrier potential over the constraint
// set. Empty input returns 0.
func Potential(m *mesh.Mesh, constraints []*constraint.Constraint, v [][]float64, dhat float64) float64 {
	ranges := chunkRanges(len(constraints))
	partials := make([]float64, len(ranges))
	var wg sync.WaitGroup
	for w, rg := range ranges {
		wg.Add(1)
		go func(w int, lo, hi int) {
			defer wg.Done()
			var sum float64
			for _, c := range constraints[lo:hi] {
				sum += c.LocalPotential(m, v, dhat)
			}
			partials[w] = sum
		}(w, rg[0], rg[1])
	}
	wg.Wait()
	var total float64
	for _, p := range partials {
		total += p
	}
	return total
}

// Gradient returns g(V) = Σᵢ Sᵢᵀ∇φᵢ(V), a dense vector of length
// m.NumDofs(). Empty input returns the zero vector.
func Gradient(m *mesh.Mesh, constraints []*constraint.Constraint, v [][]float64, dhat float64) []float64 {
	nDofs := m.NumDofs()
	ranges := chunkRanges(len(constraints))
	partials := make([][]float64, len(ranges))
	var wg sync.WaitGroup
	for w, rg := range ranges {
		wg.Add(1)
		go func(w int, lo, hi int) {
			defer wg.Done()
			local := make([]float64, nDofs)
			for _, c := range constraints[lo:hi] {
				ids := c.VertIDs(m)
				dofmap := assembly.DofMap(ids, m.Dim)
				g := c.LocalGradient(m, v, dhat)
				assembly.ScatterVector(local, dofmap, g)
			}
			partials[w] = local
		}(w, rg[0], rg[1])
	}
	wg.Wait()
	g := make([]float64, nDofs)
	for _, local := range partials {
		for i, val := range local {
			g[i] += val
		}
	}
	return g
}

// Hessian returns H(V) = Σᵢ Sᵢᵀ Hᵢ(V) Sᵢ as a sparse triplet of size
// m.NumDofs() x m.NumDofs(). When projectToPSD is set, each local Hᵢ is
// eigenvalue-clamped before scatter; the assembled global matrix is then
// PSD as a sum of PSD blocks. Empty input returns an empty (zero-entry)
// triplet.
func Hessian(m *mesh.Mesh, constraints []*constraint.Constraint, v [][]float64, dhat float64, projectToPSD bool) *la.Triplet {
	return hessian(m, constraints, v, dhat, projectToPSD, 0)
}

// hessian is Hessian with room for extraNNZ further entries in the
// returned triplet.
func hessian(m *mesh.Mesh, constraints []*constraint.Constraint, v [][]float64, dhat float64, projectToPSD bool, extraNNZ int) *la.Triplet {
	nDofs := m.NumDofs()
	maxNNZ := extraNNZ
	for _, c := range constraints {
		nVerts := len(c.VertIDs(m))
		maxNNZ += nVerts * nVerts * m.Dim * m.Dim
	}
	if maxNNZ < 1 {
		maxNNZ = 1
	}
	kb := assembly.NewTriplet(nDofs, maxNNZ)

	ranges := chunkRanges(len(constraints))
	type localEntry struct {
		dofmap []int
		h      [][]float64
	}
	partials := make([][]localEntry, len(ranges))
	var wg sync.WaitGroup
	for w, rg := range ranges {
		wg.Add(1)
		go func(w int, lo, hi int) {
			defer wg.Done()
			var entries []localEntry
			for _, c := range constraints[lo:hi] {
				ids := c.VertIDs(m)
				dofmap := assembly.DofMap(ids, m.Dim)
				h := c.LocalHessian(m, v, dhat, projectToPSD)
				entries = append(entries, localEntry{dofmap: dofmap, h: h})
			}
			partials[w] = entries
		}(w, rg[0], rg[1])
	}
	wg.Wait()

	for _, entries := range partials {
		for _, e := range entries {
			assembly.ScatterTriplet(kb, e.dofmap, e.h)
		}
	}
	return kb
}

// ShapeDerivative returns H(V) with project_to_psd=false plus the rank-1
// weight-sensitivity update Σᵢ (Sᵢᵀ∇φᵢ/wᵢ)·(∂wᵢ/∂V)ᵀ.
// Empty input returns an empty triplet.
func ShapeDerivative(m *mesh.Mesh, constraints []*constraint.Constraint, v [][]float64, dhat float64) *la.Triplet {
	extraNNZ := 0
	for _, c := range constraints {
		extraNNZ += len(c.VertIDs(m)) * m.Dim * len(c.WeightGradient)
	}
	kb := hessian(m, constraints, v, dhat, false, extraNNZ)
	for _, c := range constraints {
		ids := c.VertIDs(m)
		dofmap := assembly.DofMap(ids, m.Dim)
		g := c.LocalGradient(m, v, dhat)
		for i, row := range dofmap {
			scaled := g[i] / c.Weight
			for _, we := range c.WeightGradient {
				kb.Put(row, we.Index, scaled*we.Value)
			}
		}
	}
	return kb
}
