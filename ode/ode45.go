// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

// Package ode implements the Dormand-Prince 5(4) adaptive-step Runge-
// Kutta integrator, the method behind MATLAB's ode45.
package ode

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mshafiee/numkit/bigfloat"
)

// ErrStepUnderflow is reported when the adaptive step size shrinks
// below the fixed minStep floor.
var ErrStepUnderflow = errors.New("ode: step size underflowed")

// State is the state vector of the system being integrated, one
// BigFloat per component, so the solver stays at full working
// precision end to end.
type State []*bigfloat.BigFloat

// Func evaluates dy/dt = f(t, y).
type Func func(t *bigfloat.BigFloat, y State, prec uint) State

// Status reports why Integrate stopped.
type Status int

const (
	StatusDone Status = iota
	StatusMaxSteps
	StatusTimeout
	StatusUnderflow
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusMaxSteps:
		return "max_steps"
	case StatusTimeout:
		return "timeout"
	case StatusUnderflow:
		return "underflow"
	default:
		return "unknown"
	}
}

// Options configures an Integrate call.
type Options struct {
	Precision   uint
	AbsTol      float64       // default 1e-6
	RelTol      float64       // default 1e-3
	InitialStep float64       // default: chosen automatically
	MaxStep     float64       // 0 means unbounded
	MaxSteps    int           // default 10000
	Timeout     time.Duration // 0 means unbounded
	// OnStep, when non-nil, is called after every accepted step; a
	// false return requests early termination, mirroring an event
	// function in a shooting-method solver.
	OnStep func(t *bigfloat.BigFloat, y State) bool
}

func (o Options) withDefaults() Options {
	if o.AbsTol == 0 {
		o.AbsTol = 1e-6
	}
	if o.RelTol == 0 {
		o.RelTol = 1e-3
	}
	if o.MaxSteps == 0 {
		o.MaxSteps = 10000
	}
	return o
}

// Result is the accepted trajectory and why integration stopped.
type Result struct {
	T      []*bigfloat.BigFloat
	Y      []State
	Status Status
	Steps  int
	Err    error
}

// Dormand-Prince 5(4) Butcher tableau.
var (
	dpC = [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1}
	dpA = [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}
	dpB5 = [7]float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0}
	dpB4 = [7]float64{5179.0 / 57600, 0, 7571.0 / 16695, 393.0 / 640, -92097.0 / 339200, 187.0 / 2100, 1.0 / 40}
)

// Integrate solves dy/dt = f(t,y) on [t0, tf] from y0, adapting the
// step size with the classic Dormand-Prince embedded 4th/5th order
// error estimate and FSAL reuse of the last stage.
func Integrate(f Func, t0, tf float64, y0 []float64, opts Options) Result {
	opts = opts.withDefaults()
	prec := opts.Precision
	if prec == 0 {
		prec = bigfloat.DefaultPrecision
	}

	t := bigfloat.NewFromFloat64(t0, prec)
	tEnd := bigfloat.NewFromFloat64(tf, prec)
	forward := tEnd.Gt(t)

	y := make(State, len(y0))
	for i, v := range y0 {
		y[i] = bigfloat.NewFromFloat64(v, prec)
	}

	h := opts.InitialStep
	if h == 0 {
		h = (tf - t0) / 100
		if h == 0 {
			h = 1e-3
		}
	}
	if opts.MaxStep != 0 && math.Abs(h) > opts.MaxStep {
		h = opts.MaxStep
		if !forward {
			h = -h
		}
	}

	res := Result{T: []*bigfloat.BigFloat{t}, Y: []State{cloneState(y)}}
	deadline := time.Time{}
	if opts.Timeout != 0 {
		deadline = time.Now().Add(opts.Timeout)
	}

	var fsal State // k1 of the next step, reused from k7 of the last (First Same As Last)
	for res.Steps < opts.MaxSteps {
		if !deadline.IsZero() && time.Now().After(deadline) {
			res.Status = StatusTimeout
			return res
		}
		if (forward && !t.Lt(tEnd)) || (!forward && !t.Gt(tEnd)) {
			res.Status = StatusDone
			return res
		}
		// Clamp the final step to land exactly on tEnd.
		hStep := h
		remaining := tEnd.Sub(t, prec).Float64()
		lastStep := false
		if forward && hStep > remaining {
			hStep = remaining
			lastStep = true
		} else if !forward && hStep < remaining {
			hStep = remaining
			lastStep = true
		}
		if math.Abs(hStep) < minStep(prec) {
			res.Status = StatusUnderflow
			res.Err = fmt.Errorf("%w at t=%s", ErrStepUnderflow, t.String())
			return res
		}

		y5, y4, stages, err := dpStep(f, t, y, hStep, prec, fsal)
		if err != nil {
			res.Err = err
			res.Status = StatusUnderflow
			return res
		}

		errNorm := estimateError(y5, y4, opts.AbsTol, opts.RelTol, prec)
		accepted := errNorm <= 1.0
		if accepted {
			tNext := t.Add(bigfloat.NewFromFloat64(hStep, prec), prec)
			if lastStep {
				// hStep is remaining rounded to float64; snap onto tEnd.
				tNext = tEnd.Clone()
			}
			t = tNext
			y = y5
			fsal = stages[6]
			res.Steps++
			res.T = append(res.T, t)
			res.Y = append(res.Y, cloneState(y))
			if opts.OnStep != nil && !opts.OnStep(t, y) {
				res.Status = StatusDone
				return res
			}
		} else {
			fsal = nil // a rejected step can't reuse FSAL
		}

		h = nextStepSize(hStep, errNorm, accepted, forward)
		if opts.MaxStep != 0 && math.Abs(h) > opts.MaxStep {
			if forward {
				h = opts.MaxStep
			} else {
				h = -opts.MaxStep
			}
		}
	}
	res.Status = StatusMaxSteps
	return res
}

// dpStep computes one Dormand-Prince 5(4) trial step, returning the
// 5th-order and 4th-order estimates plus all seven stage derivatives
// (stage 0 may be the prior step's k7 when fsal is supplied).
func dpStep(f Func, t *bigfloat.BigFloat, y State, h float64, prec uint, fsal State) (y5, y4 State, stages [7]State, err error) {
	hbf := bigfloat.NewFromFloat64(h, prec)
	if fsal != nil {
		stages[0] = fsal
	} else {
		stages[0] = f(t, y, prec)
	}
	for s := 1; s < 7; s++ {
		ti := t.Add(bigfloat.NewFromFloat64(dpC[s]*h, prec), prec)
		yi := cloneState(y)
		for j := 0; j < s; j++ {
			coeff := dpA[s][j]
			if coeff == 0 {
				continue
			}
			scale := hbf.Mul(bigfloat.NewFromFloat64(coeff, prec), prec)
			for d := range yi {
				yi[d] = yi[d].Add(scale.Mul(stages[j][d], prec), prec)
			}
		}
		stages[s] = f(ti, yi, prec)
	}

	y5 = cloneState(y)
	y4 = cloneState(y)
	for s := 0; s < 7; s++ {
		if dpB5[s] != 0 {
			scale := hbf.Mul(bigfloat.NewFromFloat64(dpB5[s], prec), prec)
			for d := range y5 {
				y5[d] = y5[d].Add(scale.Mul(stages[s][d], prec), prec)
			}
		}
		if dpB4[s] != 0 {
			scale := hbf.Mul(bigfloat.NewFromFloat64(dpB4[s], prec), prec)
			for d := range y4 {
				y4[d] = y4[d].Add(scale.Mul(stages[s][d], prec), prec)
			}
		}
	}
	return y5, y4, stages, nil
}

// estimateError returns the normalized componentwise-max error of the
// embedded pair against the absolute/relative tolerance mix, the
// quantity the step controller compares against 1.0 to accept or
// reject a step.
func estimateError(y5, y4 State, atol, rtol float64, prec uint) float64 {
	if len(y5) == 0 {
		return 0
	}
	var maxR float64
	for i := range y5 {
		diff := y5[i].Sub(y4[i], prec).Float64()
		scale := atol + rtol*math.Max(math.Abs(y5[i].Float64()), math.Abs(y4[i].Float64()))
		if scale == 0 {
			scale = atol
		}
		r := math.Abs(diff / scale)
		if r > maxR {
			maxR = r
		}
	}
	return maxR
}

// nextStepSize applies an elementary step controller driven by the
// current error only (0.9 * errNorm^-1/5): grow on a
// comfortable accept, shrink sharply on a reject. Accepted steps are
// clamped to [0.1, 5] of the prior step; rejected steps are forced down
// into [0.1, 0.8] so a reject always shrinks.
func nextStepSize(h, errNorm float64, accepted, forward bool) float64 {
	const safety = 0.9
	minFactor, maxFactor := 0.1, 5.0
	if !accepted {
		maxFactor = 0.8
	}
	var factor float64
	if errNorm == 0 {
		factor = maxFactor
	} else {
		factor = safety * math.Pow(1/errNorm, 0.2)
	}
	if factor < minFactor {
		factor = minFactor
	}
	if factor > maxFactor {
		factor = maxFactor
	}
	mag := math.Abs(h) * factor
	if forward {
		return mag
	}
	return -mag
}

func cloneState(y State) State {
	out := make(State, len(y))
	for i, v := range y {
		out[i] = v.Clone()
	}
	return out
}

func minStep(prec uint) float64 {
	// A fixed floor on |h|; it does not depend on prec.
	return 1e-15
}
