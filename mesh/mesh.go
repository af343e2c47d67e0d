// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh holds the read-only vertex/edge/face tables the CCD and
// barrier-potential core operates on.
package mesh

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Mesh bundles a vertex-position table with its surface topology.
//
// V holds n points of dimension Dim (2 or 3); E holds ordered vertex-index
// pairs identifying surface edges; F holds ordered vertex-index triples
// identifying surface triangles (empty in 2D problems). V, E and F are
// read-only once a Mesh is built; no core operation mutates them.
type Mesh struct {
	V   [][]float64 // n x Dim vertex positions
	E   [][2]int    // edges, indices into V
	F   [][3]int    // faces (triangles), indices into V; empty in 2D
	Dim int         // 2 or 3
}

// New builds a Mesh and validates its invariants.
func New(v [][]float64, e [][2]int, f [][3]int) *Mesh {
	m := &Mesh{V: v, E: e, F: f}
	if len(v) > 0 {
		m.Dim = len(v[0])
	}
	m.mustBeValid()
	return m
}

// mustBeValid panics on precondition violations; these are caller bugs,
// not runtime conditions.
func (o *Mesh) mustBeValid() {
	if o.Dim != 2 && o.Dim != 3 {
		chk.Panic("mesh: dim must be 2 or 3; got dim=%d", o.Dim)
	}
	for _, row := range o.V {
		if len(row) != o.Dim {
			chk.Panic("mesh: all vertex rows must have dim=%d; got %d", o.Dim, len(row))
		}
	}
	for _, e := range o.E {
		if e[0] == e[1] {
			chk.Panic("mesh: edge has duplicate vertex index %d", e[0])
		}
		o.mustReference(e[0])
		o.mustReference(e[1])
	}
	for _, f := range o.F {
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			chk.Panic("mesh: face has duplicate vertex indices (%d,%d,%d)", f[0], f[1], f[2])
		}
		o.mustReference(f[0])
		o.mustReference(f[1])
		o.mustReference(f[2])
	}
}

func (o *Mesh) mustReference(i int) {
	if i < 0 || i >= len(o.V) {
		chk.Panic("mesh: index %d out of range for %d vertices", i, len(o.V))
	}
}

// NumVerts returns the number of rows in V.
func (o *Mesh) NumVerts() int { return len(o.V) }

// NumDofs returns n*Dim, the size of the global dof vector.
func (o *Mesh) NumDofs() int { return len(o.V) * o.Dim }

// BBoxDiagonal returns the diagonal length of the axis-aligned bounding box
// of the given vertex table (which need not be o.V; callers pass V0 or V1).
func BBoxDiagonal(v [][]float64) float64 {
	if len(v) == 0 {
		return 0
	}
	dim := len(v[0])
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	copy(lo, v[0])
	copy(hi, v[0])
	for _, p := range v[1:] {
		for j := 0; j < dim; j++ {
			lo[j] = math.Min(lo[j], p[j])
			hi[j] = math.Max(hi[j], p[j])
		}
	}
	var sum2 float64
	for j := 0; j < dim; j++ {
		d := hi[j] - lo[j]
		sum2 += d * d
	}
	return math.Sqrt(sum2)
}

// MustMatch panics unless v0 and v1 both have the mesh's vertex count and
// dimension: the vertex counts of V0 and V1 must match the mesh.
func (o *Mesh) MustMatch(v0, v1 [][]float64) {
	if len(v0) != o.NumVerts() || len(v1) != o.NumVerts() {
		chk.Panic("mesh: V0/V1 vertex counts must match mesh (%d); got %d and %d", o.NumVerts(), len(v0), len(v1))
	}
	for i := range v0 {
		if len(v0[i]) != o.Dim || len(v1[i]) != o.Dim {
			chk.Panic("mesh: V0/V1 rows must have dim=%d; row %d has %d and %d", o.Dim, i, len(v0[i]), len(v1[i]))
		}
	}
}
