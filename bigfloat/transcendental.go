// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package bigfloat

import "math/big"

// Hand-rolled trigonometric transcendentals: ALTree/bigfloat covers
// exp/log/pow only, so sin/cos/atan/asin fall back to direct
// Taylor-series evaluation in arbitrary precision rather than reaching
// for a second external dependency.

// seriesSin computes sin(x) by the alternating Taylor series, reducing x
// modulo 2π first so the series converges in O(prec) terms.
func seriesSin(x *big.Float, prec uint) *big.Float {
	wp := prec + 32
	xr := reduceModTwoPi(x, wp)

	term := new(big.Float).SetPrec(wp).Set(xr)
	sum := new(big.Float).SetPrec(wp).Set(xr)
	x2 := new(big.Float).SetPrec(wp).Mul(xr, xr)
	x2.Neg(x2)

	eps := epsilonAt(wp)
	for k := int64(1); k < 100000; k++ {
		denom := big.NewFloat(float64(2*k) * float64(2*k+1))
		term.Mul(term, x2)
		term.Quo(term, denom)
		sum.Add(sum, term)
		if absLess(term, eps) {
			break
		}
	}
	return new(big.Float).SetPrec(prec).Set(sum)
}

// seriesCos computes cos(x) by the alternating Taylor series.
func seriesCos(x *big.Float, prec uint) *big.Float {
	wp := prec + 32
	xr := reduceModTwoPi(x, wp)

	term := new(big.Float).SetPrec(wp).SetInt64(1)
	sum := new(big.Float).SetPrec(wp).SetInt64(1)
	x2 := new(big.Float).SetPrec(wp).Mul(xr, xr)
	x2.Neg(x2)

	eps := epsilonAt(wp)
	for k := int64(1); k < 100000; k++ {
		denom := big.NewFloat(float64(2*k-1) * float64(2*k))
		term.Mul(term, x2)
		term.Quo(term, denom)
		sum.Add(sum, term)
		if absLess(term, eps) {
			break
		}
	}
	return new(big.Float).SetPrec(prec).Set(sum)
}

// seriesAtan computes atan(x), using atan(x) = pi/2 - atan(1/x) to fold
// |x|>1 into the convergent range.
func seriesAtan(x *big.Float, prec uint) *big.Float {
	wp := prec + 32
	ax := new(big.Float).SetPrec(wp).Abs(x)

	var r *big.Float
	if ax.Cmp(big.NewFloat(1)) <= 0 {
		r = atanSeriesDirect(x, wp)
	} else {
		inv := new(big.Float).SetPrec(wp).Quo(big.NewFloat(1), x)
		a := atanSeriesDirect(inv, wp)
		half := new(big.Float).SetPrec(wp).Quo(constPi(wp), big.NewFloat(2))
		if x.Sign() < 0 {
			half.Neg(half)
		}
		r = new(big.Float).SetPrec(wp).Sub(half, a)
	}
	return new(big.Float).SetPrec(prec).Set(r)
}

func atanSeriesDirect(x *big.Float, wp uint) *big.Float {
	term := new(big.Float).SetPrec(wp).Set(x)
	sum := new(big.Float).SetPrec(wp).Set(x)
	x2 := new(big.Float).SetPrec(wp).Mul(x, x)
	x2.Neg(x2)

	eps := epsilonAt(wp)
	for k := int64(1); k < 200000; k++ {
		term.Mul(term, x2)
		denom := big.NewFloat(float64(2*k + 1))
		t := new(big.Float).SetPrec(wp).Quo(term, denom)
		sum.Add(sum, t)
		if absLess(t, eps) {
			break
		}
	}
	return sum
}

// seriesAsin computes asin(x) = atan(x / sqrt(1-x^2)), valid on |x|<1;
// at |x|==1 it falls back to ±pi/2 directly.
func seriesAsin(x *big.Float, prec uint) *big.Float {
	wp := prec + 32
	if cmp := new(big.Float).SetPrec(wp).Abs(x).Cmp(big.NewFloat(1)); cmp == 0 {
		half := new(big.Float).SetPrec(prec).Quo(constPi(prec), big.NewFloat(2))
		if x.Sign() < 0 {
			half.Neg(half)
		}
		return half
	}
	x2 := new(big.Float).SetPrec(wp).Mul(x, x)
	one := big.NewFloat(1)
	diff := new(big.Float).SetPrec(wp).Sub(one, x2)
	root := new(big.Float).SetPrec(wp).Sqrt(diff)
	ratio := new(big.Float).SetPrec(wp).Quo(x, root)
	return seriesAtan(ratio, prec)
}

// atan2 implements the standard quadrant-aware two-argument arctangent.
func atan2(y, x *big.Float, prec uint) *big.Float {
	wp := prec + 32
	pi := constPi(wp)
	if x.Sign() > 0 {
		return seriesAtan(new(big.Float).SetPrec(wp).Quo(y, x), prec)
	}
	if x.Sign() < 0 {
		r := seriesAtan(new(big.Float).SetPrec(wp).Quo(y, x), wp)
		if y.Sign() >= 0 {
			r.Add(r, pi)
		} else {
			r.Sub(r, pi)
		}
		return new(big.Float).SetPrec(prec).Set(r)
	}
	// x == 0
	half := new(big.Float).SetPrec(prec).Quo(constPi(prec), big.NewFloat(2))
	if y.Sign() < 0 {
		half.Neg(half)
	}
	return half
}

// reduceModTwoPi reduces x into (-pi, pi] so the Taylor series above
// converge in a bounded number of terms regardless of the input magnitude.
func reduceModTwoPi(x *big.Float, wp uint) *big.Float {
	twoPi := new(big.Float).SetPrec(wp).Mul(constPi(wp), big.NewFloat(2))
	if new(big.Float).SetPrec(wp).Abs(x).Cmp(constPi(wp)) <= 0 {
		return new(big.Float).SetPrec(wp).Set(x)
	}
	q := new(big.Float).SetPrec(wp).Quo(x, twoPi)
	qi, _ := rint(q, wp, ToNearestEven)
	r := new(big.Float).SetPrec(wp)
	r.Mul(qi, twoPi)
	r.Sub(x, r)
	return r
}

func absLess(a, eps *big.Float) bool {
	abs := new(big.Float).SetPrec(a.Prec()).Abs(a)
	return abs.Cmp(eps) < 0
}

func epsilonAt(prec uint) *big.Float {
	e := new(big.Float).SetPrec(prec).SetInt64(1)
	e.SetMantExp(e, -int(prec))
	return e
}

// constPi computes pi to prec bits via the Chudnovsky binary-splitting
// algorithm, parameterized over an arbitrary target precision instead of
// a fixed constant.
func constPi(prec uint) *big.Float {
	workPrec := prec + 32
	numTerms := int(float64(prec)*0.022) + 2

	var bs func(a, b int64) (*big.Int, *big.Int, *big.Int)
	bs = func(a, b int64) (*big.Int, *big.Int, *big.Int) {
		if b-a == 1 {
			k := a
			if k == 0 {
				return big.NewInt(1), big.NewInt(1), big.NewInt(13591409)
			}
			P := big.NewInt(6*k - 5)
			P.Mul(P, big.NewInt(2*k-1))
			P.Mul(P, big.NewInt(6*k-1))
			P.Neg(P)

			Q := big.NewInt(k)
			Q.Exp(Q, big.NewInt(3), nil)
			Q.Mul(Q, big.NewInt(10939058860032000))

			T := big.NewInt(545140134)
			T.Mul(T, big.NewInt(k))
			T.Add(T, big.NewInt(13591409))
			T.Mul(T, P)
			return P, Q, T
		}
		m := (a + b) / 2
		Pam, Qam, Tam := bs(a, m)
		Pmb, Qmb, Tmb := bs(m, b)
		P := new(big.Int).Mul(Pam, Pmb)
		Q := new(big.Int).Mul(Qam, Qmb)
		T := new(big.Int).Mul(Qmb, Tam)
		tmp := new(big.Int).Mul(Pam, Tmb)
		T.Add(T, tmp)
		return P, Q, T
	}

	_, Q, T := bs(0, int64(numTerms))

	sqrt10005 := new(big.Float).SetPrec(workPrec).SetInt64(10005)
	sqrt10005.Sqrt(sqrt10005)

	constFactor := new(big.Float).SetPrec(workPrec).SetInt64(426880)

	num := new(big.Float).SetPrec(workPrec).SetInt(Q)
	num.Mul(num, constFactor)
	num.Mul(num, sqrt10005)

	den := new(big.Float).SetPrec(workPrec).SetInt(T)

	pi := new(big.Float).SetPrec(workPrec).Quo(num, den)
	return new(big.Float).SetPrec(prec).Set(pi)
}
