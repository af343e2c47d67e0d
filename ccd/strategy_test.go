// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ccd

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

const r = 0.8

func Test_strategy_vv_headon(tst *testing.T) {
	chk.PrintTitle("strategy_vv_headon. vertex-vertex head-on impact")
	p0 := [][]float64{{0, 0, 0}, {1, 0, 0}}
	p1 := [][]float64{{1, 0, 0}, {0, 0, 0}}
	impacting, toi := Strategy(VertexVertex, p0, p1, 1, 1e-6, 1000000, r)
	if !impacting {
		tst.Fatal("expected impact")
	}
	chk.Float64(tst, "toi", 1e-4, toi, 0.4)
}

func Test_strategy_vv_grazing(tst *testing.T) {
	chk.PrintTitle("strategy_vv_grazing. vertex-vertex grazing, no impact")
	p0 := [][]float64{{0, 0, 0}, {1, 1, 0}}
	p1 := [][]float64{{0, 0, 0}, {1, -1, 0}}
	impacting, _ := Strategy(VertexVertex, p0, p1, 1, 1e-6, 1000000, r)
	if impacting {
		tst.Fatal("expected no impact")
	}
}

func Test_strategy_vf_perpendicular(tst *testing.T) {
	chk.PrintTitle("strategy_vf_perpendicular. point-triangle perpendicular fall")
	tri0 := [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	tri1 := [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	p0 := append([][]float64{{0.2, 0.2, 1}}, tri0...)
	p1 := append([][]float64{{0.2, 0.2, -1}}, tri1...)
	impacting, toi := Strategy(VertexFace, p0, p1, 1, 1e-6, 1000000, r)
	if !impacting {
		tst.Fatal("expected impact")
	}
	chk.Float64(tst, "toi", 1e-4, toi, 0.4)
}

func Test_strategy_ee_crossing(tst *testing.T) {
	chk.PrintTitle("strategy_ee_crossing. edge-edge crossing")
	a0 := []float64{-1, 0, 0}
	b0 := []float64{1, 0, 0}
	c0 := []float64{0, -1, 0.5}
	d0pt := []float64{0, 1, 0.5}
	c1 := []float64{0, -1, -0.5}
	d1pt := []float64{0, 1, -0.5}
	p0 := [][]float64{a0, b0, c0, d0pt}
	p1 := [][]float64{a0, b0, c1, d1pt}
	impacting, toi := Strategy(EdgeEdge, p0, p1, 1, 1e-6, 1000000, r)
	if !impacting {
		tst.Fatal("expected impact")
	}
	chk.Float64(tst, "toi", 1e-3, toi, 0.4)
}

func Test_strategy_degenerate_zero_distance(tst *testing.T) {
	chk.PrintTitle("strategy_degenerate_zero_distance. d0==0 returns toi=0 immediately")
	p0 := [][]float64{{0, 0, 0}, {0, 0, 0}}
	p1 := [][]float64{{1, 0, 0}, {0, 0, 1}}
	impacting, toi := Strategy(VertexVertex, p0, p1, 1, 1e-6, 1000000, r)
	if !impacting {
		tst.Fatal("expected impact")
	}
	chk.Float64(tst, "toi", 1e-15, toi, 0)
}

func Test_strategy_zero_toi_retry(tst *testing.T) {
	chk.PrintTitle("strategy_zero_toi_retry. sub-band initial gap triggers retry path")
	// d0 is tiny but non-zero, well inside the (1-r)*d0 inflation band at t=0,
	// forcing the plain kernel call to report toi=0 and the retry to fire.
	p0 := [][]float64{{0, 0, 0}, {1e-8, 0, 0}}
	p1 := [][]float64{{0, 0, 0}, {1, 0, 0}}
	impacting, toi := Strategy(VertexVertex, p0, p1, 1, 1e-6, 1000000, r)
	if impacting && toi < 0 {
		tst.Fatal("toi must stay non-negative")
	}
	_ = impacting
}
