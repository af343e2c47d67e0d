// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

import "github.com/cpmech/gosl/la"

// DofMap returns, for ℓ vertex ids and dimension dim, the ℓ*dim global dof
// indices in the order the scatter requires: local row r = k*dim+j maps to
// global row ids[k]*dim+j.
func DofMap(ids []int, dim int) []int {
	m := make([]int, len(ids)*dim)
	for k, id := range ids {
		for j := 0; j < dim; j++ {
			m[k*dim+j] = id*dim + j
		}
	}
	return m
}

// ScatterVector adds the local vector u into the global dense vector g at
// the rows given by dofmap, following the Umap accumulation pattern of
// ele/solid/beam.go's AddToRhs (for i, I := range o.Umap { fb[I] += ... }).
func ScatterVector(g []float64, dofmap []int, u []float64) {
	for i, gi := range dofmap {
		g[gi] += u[i]
	}
}

// ScatterTriplet adds the local matrix h into the sparse triplet Kb at the
// rows/cols given by dofmap, following ele/solid/beam.go's AddToKb
// (for i, I := range o.Umap { for j, J := range o.Umap { Kb.Put(I, J, ...) } }).
func ScatterTriplet(kb *la.Triplet, dofmap []int, h [][]float64) {
	for i, gi := range dofmap {
		for j, gj := range dofmap {
			kb.Put(gi, gj, h[i][j])
		}
	}
}

// NewTriplet allocates a Triplet sized for nDofs rows/cols and at most
// maxNNZ non-zero entries, mirroring fem/domain.go's
// `o.Kb = new(la.Triplet); o.Kb.Init(o.Nyb, o.Nyb, o.NnzKb+2*o.NnzA)`.
func NewTriplet(nDofs, maxNNZ int) *la.Triplet {
	var kb la.Triplet
	kb.Init(nDofs, nDofs, maxNNZ)
	return &kb
}
