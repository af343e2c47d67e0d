// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

// Feature is the result of a closest-feature decomposition: a squared
// distance expressed as |Σ weights[k]*verts[k]|^2 for a fixed set of
// weights. All four distance kernels (point-point, point-edge,
// point-triangle, edge-edge) reduce to this shape once the closest-point
// parameters (t, barycentric u/v, or segment parameters s/t) are resolved
// and clamped to their valid ranges.
//
// Gradient and Hessian below hold the weights fixed at their resolved
// values (a Gauss-Newton approximation of the true Hessian, which would
// otherwise need the sensitivity of the closest-point parameters to the
// vertex positions). The approximation is exact for the gradient (by the
// envelope theorem, since the weights are chosen to be stationary) and is
// always symmetric positive semi-definite before any PSD projection is
// even applied, which keeps the barrier Hessian numerically well-behaved.
type Feature struct {
	R       []float64   // residual vector r = Σ weights[k]*verts[k], length dim
	Weights []float64   // one weight per vertex
	Verts   [][]float64 // the vertex positions the weights apply to
	Dim     int
}

// newFeature builds a Feature from vertex positions and their weights.
func newFeature(verts [][]float64, weights []float64) *Feature {
	dim := mustSameDim(verts...)
	r := make([]float64, dim)
	for k, w := range weights {
		for j := 0; j < dim; j++ {
			r[j] += w * verts[k][j]
		}
	}
	return &Feature{R: r, Weights: weights, Verts: verts, Dim: dim}
}

// Dist2 returns |R|^2, the squared distance of this feature.
func (o *Feature) Dist2() float64 {
	return dot(o.R, o.R)
}

// Grad returns d(|R|^2)/d(verts), a slice of len(verts)*dim values ordered
// vertex-major (matching the vertex order passed to newFeature).
func (o *Feature) Grad() []float64 {
	g := make([]float64, len(o.Verts)*o.Dim)
	for k, w := range o.Weights {
		for j := 0; j < o.Dim; j++ {
			g[k*o.Dim+j] = 2 * w * o.R[j]
		}
	}
	return g
}

// Hessian returns the (len(verts)*dim)^2 local Hessian, block (k,l) equal to
// 2*weights[k]*weights[l]*I_dim.
func (o *Feature) Hessian() [][]float64 {
	n := len(o.Verts) * o.Dim
	h := make([][]float64, n)
	for i := range h {
		h[i] = make([]float64, n)
	}
	for k, wk := range o.Weights {
		for l, wl := range o.Weights {
			coef := 2 * wk * wl
			for j := 0; j < o.Dim; j++ {
				h[k*o.Dim+j][l*o.Dim+j] = coef
			}
		}
	}
	return h
}
