// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package solve

import (
	"fmt"

	"github.com/mshafiee/numkit/bigfloat"
)

// PolyfitResult holds the fitted coefficients (ascending by degree,
// c[0] + c[1]*x + ... + c[degree]*x^degree) and standard regression
// diagnostics.
type PolyfitResult struct {
	Coeffs []*bigfloat.BigFloat
	SSR    *bigfloat.BigFloat // sum of squared residuals
	RMSE   *bigfloat.BigFloat
	R2     *bigfloat.BigFloat
}

// Polyfit fits a degree-th order polynomial to (x[i], y[i]) points by
// least squares, via the normal equations (Vandermonde^T * Vandermonde)
// solved by SolveLinear.
func Polyfit(x, y []*bigfloat.BigFloat, degree int, prec uint) (PolyfitResult, error) {
	n := len(x)
	if n == 0 || len(y) != n {
		return PolyfitResult{}, fmt.Errorf("solve: polyfit needs matching, non-empty x/y")
	}
	if degree < 0 || degree+1 > n {
		return PolyfitResult{}, fmt.Errorf("solve: polyfit degree %d needs at least %d points", degree, degree+1)
	}

	m := degree + 1
	// Vandermonde columns: V[i][j] = x[i]^j.
	vand := make([][]*bigfloat.BigFloat, n)
	for i := 0; i < n; i++ {
		row := make([]*bigfloat.BigFloat, m)
		row[0] = bigfloat.One(prec)
		for j := 1; j < m; j++ {
			row[j] = row[j-1].Mul(x[i], prec)
		}
		vand[i] = row
	}

	// Normal equations: A = V^T V, b = V^T y.
	a := make([][]*bigfloat.BigFloat, m)
	for r := 0; r < m; r++ {
		a[r] = make([]*bigfloat.BigFloat, m)
		for c := 0; c < m; c++ {
			sum := bigfloat.Zero(prec)
			for i := 0; i < n; i++ {
				sum = sum.Add(vand[i][r].Mul(vand[i][c], prec), prec)
			}
			a[r][c] = sum
		}
	}
	bvec := make([]*bigfloat.BigFloat, m)
	for r := 0; r < m; r++ {
		sum := bigfloat.Zero(prec)
		for i := 0; i < n; i++ {
			sum = sum.Add(vand[i][r].Mul(y[i], prec), prec)
		}
		bvec[r] = sum
	}

	coeffs, err := SolveLinear(a, bvec, prec)
	if err != nil {
		return PolyfitResult{}, fmt.Errorf("solve: polyfit normal equations: %w", err)
	}

	ssr := bigfloat.Zero(prec)
	yMean := bigfloat.Zero(prec)
	for i := 0; i < n; i++ {
		yMean = yMean.Add(y[i], prec)
	}
	yMean = yMean.Div(bigfloat.NewFromFloat64(float64(n), prec), prec)

	sst := bigfloat.Zero(prec)
	for i := 0; i < n; i++ {
		pred := bigfloat.Zero(prec)
		pow := bigfloat.One(prec)
		for j := 0; j < m; j++ {
			pred = pred.Add(coeffs[j].Mul(pow, prec), prec)
			pow = pow.Mul(x[i], prec)
		}
		resid := y[i].Sub(pred, prec)
		ssr = ssr.Add(resid.Mul(resid, prec), prec)
		dev := y[i].Sub(yMean, prec)
		sst = sst.Add(dev.Mul(dev, prec), prec)
	}

	rmse := ssr.Div(bigfloat.NewFromFloat64(float64(n), prec), prec).Sqrt(prec)

	var r2 *bigfloat.BigFloat
	if sst.IsAlmostZero() {
		r2 = bigfloat.One(prec)
	} else {
		r2 = bigfloat.One(prec).Sub(ssr.Div(sst, prec), prec)
	}

	return PolyfitResult{Coeffs: coeffs, SSR: ssr, RMSE: rmse, R2: r2}, nil
}
