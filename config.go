// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ccdbarrier

import "github.com/cpmech/gosl/chk"

// Params bundles every tunable knob the public API's functions share,
// following inp.Data's flat JSON-tagged struct style.
type Params struct {
	DHat                  float64 `json:"dhat"`                  // activation distance of the log-barrier; dhat > 0
	Tolerance             float64 `json:"tolerance"`              // CCD kernel convergence tolerance; tolerance > 0
	MaxIterations         int     `json:"maxiterations"`          // CCD kernel iteration cap
	ConservativeRescaling float64 `json:"conservativerescaling"` // r in (0,1]; typical 0.8
	Tmax                  float64 `json:"tmax"`                  // upper bound of the step fraction; tmax in [0,1]
	ProjectToPSD          bool    `json:"projecttopsd"`          // eigenvalue-clamp preference; not read by ComputeBarrierPotentialHessian, which takes its own argument
	GPUSafetyFactor       float64 `json:"gpusafetyfactor"`       // multiplier applied to a GPU broad-phase TOI < 1
}

// DefaultParams returns the normative defaults: tmax=1, tolerance=1e-6,
// max_iterations=1e6, conservative_rescaling=0.8.
func DefaultParams() Params {
	return Params{
		DHat:                  1e-3,
		Tolerance:             1e-6,
		MaxIterations:         1000000,
		ConservativeRescaling: 0.8,
		Tmax:                  1,
		ProjectToPSD:          true,
		GPUSafetyFactor:       0.8,
	}
}

// Validate checks Params against the precondition list, returning an
// error on violation (these are caller bugs, not runtime conditions).
func (o Params) Validate() error {
	if o.DHat <= 0 {
		return chk.Err("ccdbarrier: dhat must be > 0; got %v", o.DHat)
	}
	if o.Tolerance <= 0 {
		return chk.Err("ccdbarrier: tolerance must be > 0; got %v", o.Tolerance)
	}
	if o.MaxIterations <= 0 {
		return chk.Err("ccdbarrier: max_iterations must be > 0; got %v", o.MaxIterations)
	}
	if o.ConservativeRescaling <= 0 || o.ConservativeRescaling > 1 {
		return chk.Err("ccdbarrier: conservative_rescaling must be in (0,1]; got %v", o.ConservativeRescaling)
	}
	if o.Tmax < 0 || o.Tmax > 1 {
		return chk.Err("ccdbarrier: tmax must be in [0,1]; got %v", o.Tmax)
	}
	return nil
}

// mustBeValid panics on a precondition violation; used at the public API
// entry points that take Params (CCD, ComputeCollisionFreeStepsize). Entry points whose signature carries an error recover this
// panic at their own call boundary and return it; CCD does not, and a
// violation there propagates as an actual panic.
func (o Params) mustBeValid() {
	if err := o.Validate(); err != nil {
		chk.Panic("%v", err)
	}
}
