// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package ode

import (
	"math"
	"testing"

	"github.com/mshafiee/numkit/bigfloat"
)

// TestIntegrateExponentialDecay solves y' = -y, y(0)=1, whose exact
// solution is y(t) = e^-t.
func TestIntegrateExponentialDecay(t *testing.T) {
	f := func(_ *bigfloat.BigFloat, y State, prec uint) State {
		return State{y[0].Neg(prec)}
	}
	res := Integrate(f, 0, 1, []float64{1}, Options{AbsTol: 1e-10, RelTol: 1e-10})
	if res.Status != StatusDone {
		t.Fatalf("status = %v, want done (err=%v)", res.Status, res.Err)
	}
	got := res.Y[len(res.Y)-1][0].Float64()
	want := math.Exp(-1)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("y(1) = %v, want ~%v", got, want)
	}
}

func TestIntegrateMaxSteps(t *testing.T) {
	f := func(_ *bigfloat.BigFloat, y State, prec uint) State {
		return State{y[0]}
	}
	res := Integrate(f, 0, 1, []float64{1}, Options{MaxSteps: 1, InitialStep: 1e-6})
	if res.Status != StatusMaxSteps {
		t.Fatalf("status = %v, want max_steps", res.Status)
	}
}
