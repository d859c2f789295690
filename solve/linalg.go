// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

// Package solve implements the numerical-analysis algorithms built on
// top of bigfloat/bigcomplex/poly: Durand-Kerner polynomial roots,
// least-squares polyfit, and the fzero/fminbnd bracketing solvers.
// linalg.go provides an NxN partial-pivot Gaussian elimination solver,
// the one piece of linear algebra polyfit's normal equations need.
package solve

import (
	"errors"
	"fmt"

	"github.com/mshafiee/numkit/bigfloat"
)

// ErrSingular is returned when Gaussian elimination finds no usable
// pivot (a singular or near-singular normal-equations matrix).
var ErrSingular = errors.New("solve: singular matrix")

// SolveLinear solves A*x = b for a square NxN system via Gaussian
// elimination with partial pivoting, generalized to arbitrary N rather
// than a closed-form adjugate for a fixed small size.
func SolveLinear(a [][]*bigfloat.BigFloat, b []*bigfloat.BigFloat, prec uint) ([]*bigfloat.BigFloat, error) {
	n := len(a)
	if n == 0 || len(b) != n {
		return nil, fmt.Errorf("%w: mismatched dimensions", ErrSingular)
	}

	// Work on a cloned augmented matrix so the caller's input is left
	// untouched.
	m := make([][]*bigfloat.BigFloat, n)
	for i := range a {
		row := make([]*bigfloat.BigFloat, n+1)
		for j := 0; j < n; j++ {
			row[j] = a[i][j].Clone()
		}
		row[n] = b[i].Clone()
		m[i] = row
	}

	for col := 0; col < n; col++ {
		pivot := col
		pivotAbs := m[col][col].Abs(prec)
		for r := col + 1; r < n; r++ {
			candidate := m[r][col].Abs(prec)
			if candidate.Gt(pivotAbs) {
				pivot = r
				pivotAbs = candidate
			}
		}
		if m[pivot][col].IsAlmostZero() {
			return nil, fmt.Errorf("%w: no usable pivot in column %d", ErrSingular, col)
		}
		if pivot != col {
			m[col], m[pivot] = m[pivot], m[col]
		}

		pivotVal := m[col][col]
		for r := col + 1; r < n; r++ {
			factor := m[r][col].Div(pivotVal, prec)
			if factor.IsExactZero() {
				continue
			}
			for c := col; c <= n; c++ {
				m[r][c] = m[r][c].Sub(factor.Mul(m[col][c], prec), prec)
			}
		}
	}

	x := make([]*bigfloat.BigFloat, n)
	for i := n - 1; i >= 0; i-- {
		sum := m[i][n].Clone()
		for j := i + 1; j < n; j++ {
			sum = sum.Sub(m[i][j].Mul(x[j], prec), prec)
		}
		x[i] = sum.Div(m[i][i], prec)
	}
	return x, nil
}
