// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ccdbarrier is the public, function-style surface over the CCD
// and barrier-potential core: earliest time of impact,
// barrier potential/gradient/Hessian/shape-derivative, minimum distance
// and self-intersection queries. No core operation keeps state across
// calls; every function here is a pure function of its arguments.
package ccdbarrier

import (
	"fmt"

	"github.com/cpmech/gosl/la"

	"github.com/cpmech/ccdbarrier/barrier"
	"github.com/cpmech/ccdbarrier/broadphase"
	"github.com/cpmech/ccdbarrier/ccd"
	"github.com/cpmech/ccdbarrier/constraint"
	"github.com/cpmech/ccdbarrier/mesh"
	"github.com/cpmech/ccdbarrier/proximity"
	"github.com/cpmech/ccdbarrier/toi"
)

// recoverErr is deferred at the public entry points whose signature
// returns an error, so that a precondition panic there (bad dim,
// mismatched vertex counts, invalid Params, ...) surfaces as a returned
// error instead of unwinding the
// caller's stack, the same single-site recover/convert shape as the
// gofem binary's own top-level `defer func() { if err := recover(); err !=
// nil { ... } }()` in main.go, just converting to an error return instead
// of logging and exiting.
func recoverErr(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = e
			return
		}
		*err = fmt.Errorf("%v", r)
	}
}

// Mesh re-exports mesh.Mesh so callers never need to import the mesh
// package directly for the common case.
type Mesh = mesh.Mesh

// NewMesh builds and validates a Mesh.
func NewMesh(v [][]float64, e [][2]int, f [][3]int) *Mesh {
	return mesh.New(v, e, f)
}

// Candidate and Constraint are re-exported for the same reason.
type (
	Candidate  = constraint.Candidate
	Constraint = constraint.Constraint
)

// BroadPhaseMethod is the enumerated broad-phase method tag.
type BroadPhaseMethod = broadphase.Method

const (
	BruteForce              = broadphase.BruteForce
	HashGrid                = broadphase.HashGrid
	SpatialHash             = broadphase.SpatialHash
	BVH                     = broadphase.BVH
	SweepAndPrune           = broadphase.SweepAndPrune
	SweepAndTiniestQueueGPU = broadphase.SweepAndTiniestQueueGPU
)

// candidatesForStep resolves candidates for the given broad-phase method
// over the swept box between v0 and v1. Only BruteForce has a concrete
// implementation in this module (HashGrid, SpatialHash, BVH,
// SweepAndPrune and SweepAndTiniestQueueGPU are named external
// collaborators with no shipped implementation here); every tag is
// accepted and served by the BruteForce reference scan, so that the
// method tag still carries its policy meaning (the GPU safety factor)
// even without a real GPU backend wired in.
func candidatesForStep(method BroadPhaseMethod, m *mesh.Mesh, v0, v1 [][]float64, margin float64) []constraint.Candidate {
	return broadphase.SweptCandidates(m, v0, v1, margin)
}

// CCD runs a single primitive-pair CCD query: the conservative-rescaling
// strategy wrapped around the requested kernel.
func CCD(kind ccd.PairKind, p0, p1 [][]float64, p Params) (impacting bool, toi float64) {
	p.mustBeValid()
	return ccd.Strategy(kind, p0, p1, p.Tmax, p.Tolerance, p.MaxIterations, p.ConservativeRescaling)
}

// ComputeCollisionFreeStepsize returns the earliest-TOI reduction over
// every candidate the requested broad-phase method produces between V0
// and V1, applying the GPU safety factor when the GPU pipeline is
// requested and reports a TOI strictly less than 1. A precondition
// violation (invalid Params, mismatched V0/V1) is recovered at this call
// boundary and returned as an error rather than left to panic.
func ComputeCollisionFreeStepsize(m *mesh.Mesh, v0, v1 [][]float64, method BroadPhaseMethod, p Params) (stepsize float64, err error) {
	defer recoverErr(&err)
	p.mustBeValid()
	m.MustMatch(v0, v1)
	margin := 0.01 * mesh.BBoxDiagonal(v0)
	cands := candidatesForStep(method, m, v0, v1, margin)
	tp := toi.Params{Tolerance: p.Tolerance, MaxIterations: p.MaxIterations, ConservativeRescaling: p.ConservativeRescaling}
	result := toi.Reduce(m, cands, v0, v1, tp, p.Tmax)
	if method == SweepAndTiniestQueueGPU && result < 1 {
		result *= p.GPUSafetyFactor
	}
	return result, nil
}

// IsStepCollisionFree reports whether ComputeCollisionFreeStepsize returns
// exactly 1 (no primitive pair comes within the minimum separation over
// the whole step).
func IsStepCollisionFree(m *mesh.Mesh, v0, v1 [][]float64, method BroadPhaseMethod, p Params) (bool, error) {
	step, err := ComputeCollisionFreeStepsize(m, v0, v1, method, p)
	if err != nil {
		return false, err
	}
	return step >= 1, nil
}

// ComputeBarrierPotential returns Σᵢ φᵢ(V) over constraints.
func ComputeBarrierPotential(m *mesh.Mesh, v [][]float64, constraints []*Constraint, dhat float64) (potential float64, err error) {
	defer recoverErr(&err)
	return barrier.Potential(m, constraints, v, dhat), nil
}

// ComputeBarrierPotentialGradient returns the dense gradient vector of
// length m.NumDofs().
func ComputeBarrierPotentialGradient(m *mesh.Mesh, v [][]float64, constraints []*Constraint, dhat float64) (gradient []float64, err error) {
	defer recoverErr(&err)
	return barrier.Gradient(m, constraints, v, dhat), nil
}

// ComputeBarrierPotentialHessian returns the assembled sparse Hessian;
// projectToPSD is an explicit argument with no default (Params.ProjectToPSD,
// true in DefaultParams, is not read here).
func ComputeBarrierPotentialHessian(m *mesh.Mesh, v [][]float64, constraints []*Constraint, dhat float64, projectToPSD bool) (hessian *la.Triplet, err error) {
	defer recoverErr(&err)
	return barrier.Hessian(m, constraints, v, dhat, projectToPSD), nil
}

// ComputeBarrierShapeDerivative returns the unprojected Hessian plus the
// weight-sensitivity rank-update term.
func ComputeBarrierShapeDerivative(m *mesh.Mesh, v [][]float64, constraints []*Constraint, dhat float64) (hessian *la.Triplet, err error) {
	defer recoverErr(&err)
	return barrier.ShapeDerivative(m, constraints, v, dhat), nil
}

// ComputeMinimumDistance returns the minimum *squared* distance over
// constraints, or +Inf for an empty set. The name is kept for continuity
// with the rest of the API, but the returned scalar is squared distance,
// not distance; callers needing actual distance must take its square
// root.
func ComputeMinimumDistance(m *mesh.Mesh, v [][]float64, constraints []*Constraint) float64 {
	return proximity.MinimumDistance(m, constraints, v)
}

// HasIntersections reports whether v contains any self-intersection.
// The broad-phase method parameter exists for interface symmetry with
// the other public entry points; HasIntersections always
// uses its own dedicated edge/face broad phase (proximity.HasIntersections),
// since none of the candidate broad-phase methods natively enumerate
// edge-face pairs.
func HasIntersections(m *mesh.Mesh, v [][]float64, method BroadPhaseMethod) bool {
	return proximity.HasIntersections(m, v)
}
