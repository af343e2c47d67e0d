// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ccdbarrier/assembly"
	"github.com/cpmech/ccdbarrier/mesh"
)

// SparseEntry is one (global dof index, value) pair of a sparse vector.
type SparseEntry struct {
	Index int
	Value float64
}

// Constraint is a Candidate augmented with a quadrature weight and the
// weight's derivative with respect to the full vertex-position vector,
// needed for the barrier shape derivative.
type Constraint struct {
	Candidate
	Weight         float64       // quadrature weight, != 0
	WeightGradient []SparseEntry // sparse d(weight)/dV, already in global dof indices
}

// New builds a Constraint, validating the non-zero weight invariant.
func New(c Candidate, weight float64, weightGrad []SparseEntry) *Constraint {
	if weight == 0 {
		chk.Panic("constraint: weight must be non-zero")
	}
	return &Constraint{Candidate: c, Weight: weight, WeightGradient: weightGrad}
}

// barrier evaluates the IPC log-barrier and its first two derivatives with
// respect to the squared distance d, given the squared activation distance
// dhat2 = dhat*dhat. b(d) = -(d-dhat2)^2 * ln(d/dhat2) for 0<d<dhat2, else 0
// (the standard IPC barrier of Li et al. 2020, expressed over squared
// distance so no derivative singularity arises at d=0 from a sqrt).
func barrier(d, dhat2 float64) (b, db, d2b float64) {
	if d <= 0 || d >= dhat2 {
		return 0, 0, 0
	}
	diff := d - dhat2
	logr := math.Log(d / dhat2)
	b = -diff * diff * logr
	db = -2*diff*logr - diff*diff/d
	d2b = -2*logr - 4*diff/d + diff*diff/(d*d)
	return
}

// LocalPotential returns this constraint's contribution to the barrier
// potential, folding in its quadrature weight.
func (o *Constraint) LocalPotential(m *mesh.Mesh, v [][]float64, dhat float64) float64 {
	d := o.Dist2(m, v)
	b, _, _ := barrier(d, dhat*dhat)
	return o.Weight * b
}

// LocalGradient returns this constraint's local gradient (length 2d..4d)
// with respect to its own vertex positions, already scaled by Weight.
func (o *Constraint) LocalGradient(m *mesh.Mesh, v [][]float64, dhat float64) []float64 {
	f := o.Feature(m, v)
	d := f.Dist2()
	_, db, _ := barrier(d, dhat*dhat)
	u := f.Grad()
	g := make([]float64, len(u))
	for i := range u {
		g[i] = o.Weight * db * u[i]
	}
	return g
}

// LocalHessian returns this constraint's local Hessian with respect to its
// own vertex positions, already scaled by Weight. If projectToPSD is set,
// the symmetric matrix is eigenvalue-clamped to the PSD cone first.
func (o *Constraint) LocalHessian(m *mesh.Mesh, v [][]float64, dhat float64, projectToPSD bool) [][]float64 {
	f := o.Feature(m, v)
	d := f.Dist2()
	_, db, d2b := barrier(d, dhat*dhat)
	u := f.Grad()
	M := f.Hessian()
	n := len(u)
	h := make([][]float64, n)
	for i := 0; i < n; i++ {
		h[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			h[i][j] = o.Weight * (d2b*u[i]*u[j] + db*M[i][j])
		}
	}
	if projectToPSD {
		assembly.ProjectToPSD(h)
	}
	return h
}
