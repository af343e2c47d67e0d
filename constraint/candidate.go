// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint holds the Candidate/Constraint data model: tagged
// primitive pairs produced by a broad phase and, once augmented with a
// quadrature weight, consumed by the barrier-potential reduction.
package constraint

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ccdbarrier/geo"
	"github.com/cpmech/ccdbarrier/mesh"
)

// PairKind discriminates the four primitive-pair variants. A closed tagged
// struct (Kind + kind-specific indices) is used instead of an interface
// hierarchy so dispatch stays branch-predictable and allocation-free per
// pair.
type PairKind int

const (
	VertexVertex PairKind = iota
	VertexEdge
	EdgeEdge
	VertexFace
)

func (k PairKind) String() string {
	switch k {
	case VertexVertex:
		return "vertex-vertex"
	case VertexEdge:
		return "vertex-edge"
	case EdgeEdge:
		return "edge-edge"
	case VertexFace:
		return "vertex-face"
	}
	return "unknown"
}

// Candidate identifies a primitive pair to test; ephemeral, produced by the
// broad phase, consumed once by CCD or narrow-phase intersection, never
// mutated.
type Candidate struct {
	Kind PairKind
	I, J int // VertexVertex(i,j); VertexEdge(i,e=J); EdgeEdge(e1=I,e2=J)
	F    int // VertexFace(i=I,f=F)
}

// VV builds a VertexVertex candidate.
func VV(i, j int) Candidate { return Candidate{Kind: VertexVertex, I: i, J: j} }

// VE builds a VertexEdge candidate (vertex i against edge e).
func VE(i, e int) Candidate { return Candidate{Kind: VertexEdge, I: i, J: e} }

// EE builds an EdgeEdge candidate.
func EE(e1, e2 int) Candidate { return Candidate{Kind: EdgeEdge, I: e1, J: e2} }

// VF builds a VertexFace candidate (vertex i against face f).
func VF(i, f int) Candidate { return Candidate{Kind: VertexFace, I: i, F: f} }

// VertIDs returns the ordered global vertex indices this candidate
// references against the given mesh topology, length in {2,3,4}.
func (o Candidate) VertIDs(m *mesh.Mesh) []int {
	switch o.Kind {
	case VertexVertex:
		return []int{o.I, o.J}
	case VertexEdge:
		e := m.E[o.J]
		return []int{o.I, e[0], e[1]}
	case EdgeEdge:
		e1, e2 := m.E[o.I], m.E[o.J]
		return []int{e1[0], e1[1], e2[0], e2[1]}
	case VertexFace:
		f := m.F[o.F]
		return []int{o.I, f[0], f[1], f[2]}
	}
	chk.Panic("constraint: unknown candidate kind %v", o.Kind)
	return nil
}

// Points returns the ordered point positions this candidate references,
// reading from the given vertex table v (e.g. V, V0, or V1).
func (o Candidate) Points(m *mesh.Mesh, v [][]float64) [][]float64 {
	ids := o.VertIDs(m)
	pts := make([][]float64, len(ids))
	for k, id := range ids {
		pts[k] = v[id]
	}
	return pts
}

// Feature resolves the closest-feature squared-distance decomposition
// (geo.Feature) for this candidate's primitive pair against vertex table v.
func (o Candidate) Feature(m *mesh.Mesh, v [][]float64) *geo.Feature {
	pts := o.Points(m, v)
	switch o.Kind {
	case VertexVertex:
		return geo.PointPoint(pts[0], pts[1])
	case VertexEdge:
		return geo.PointEdge(pts[0], pts[1], pts[2])
	case EdgeEdge:
		return geo.EdgeEdge(pts[0], pts[1], pts[2], pts[3])
	case VertexFace:
		return geo.PointTriangle(pts[0], pts[1], pts[2], pts[3])
	}
	chk.Panic("constraint: unknown candidate kind %v", o.Kind)
	return nil
}

// Dist2 returns the squared distance between this candidate's primitives
// under vertex table v.
func (o Candidate) Dist2(m *mesh.Mesh, v [][]float64) float64 {
	return o.Feature(m, v).Dist2()
}
