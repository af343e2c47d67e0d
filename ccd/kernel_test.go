// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ccd

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_kernel_no_relative_motion(tst *testing.T) {
	chk.PrintTitle("kernel_no_relative_motion. static pair never reaches min_distance")
	p0 := [][]float64{{0, 0, 0}, {2, 0, 0}}
	p1 := [][]float64{{0, 0, 0}, {2, 0, 0}}
	impacting, _ := Kernel(VertexVertex, p0, p1, 0.5, 1e-6, 1, 1000, false)
	if impacting {
		tst.Fatal("static points separated beyond min_distance must not impact")
	}
}

func Test_kernel_already_inside_band(tst *testing.T) {
	chk.PrintTitle("kernel_already_inside_band. separation already within min_distance at t=0")
	p0 := [][]float64{{0, 0, 0}, {0.1, 0, 0}}
	p1 := [][]float64{{0, 0, 0}, {1, 0, 0}}
	impacting, toi := Kernel(VertexVertex, p0, p1, 0.5, 1e-6, 1, 1000, false)
	if !impacting {
		tst.Fatal("expected immediate impact")
	}
	chk.Float64(tst, "toi", 1e-15, toi, 0)
}

func Test_kernel_no_zero_toi_nudges_forward(tst *testing.T) {
	chk.PrintTitle("kernel_no_zero_toi_nudges_forward. t=0 gap rejected, search resumes past it")
	p0 := [][]float64{{0, 0, 0}, {0, 0, 0}}
	p1 := [][]float64{{0, 0, 0}, {1, 0, 0}}
	impacting, toi := Kernel(VertexVertex, p0, p1, 0, 1e-9, 1, 1000000, true)
	if !impacting {
		tst.Fatal("expected impact away from t=0")
	}
	if toi <= 0 {
		tst.Fatal("no_zero_toi must not report t=0")
	}
}

func Test_kernel_unknown_pair_kind_panics(tst *testing.T) {
	chk.PrintTitle("kernel_unknown_pair_kind_panics. invalid PairKind panics via chk.Panic")
	defer func() {
		if r := recover(); r == nil {
			tst.Fatal("expected a panic for an unknown PairKind")
		}
	}()
	feature(PairKind(99), [][]float64{{0, 0, 0}, {1, 0, 0}})
}
