// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package poly

import "fmt"

// splitConstant separates p into its constant term c0 = p.Coeff(0) and
// the remainder u = p - c0, which necessarily has valuation >= 1.
// Every series transcendental here is built around composing an
// elementary Taylor series in u with a coefficient-level evaluation at
// c0, the standard "expand about the constant term" technique, which
// needs p to actually be a series: a Laurent series with negative
// valuation has no constant term to expand about, and an exact
// (non-constant) polynomial has no truncation order to decide how many
// Taylor terms are enough.
func (p *Poly) splitConstant() (c0 Coef, u *Poly, tc0 Transcendental, err error) {
	if p.Valuation() < 0 {
		return nil, nil, nil, fmt.Errorf("%w: series transcendental of a Laurent series with negative valuation", ErrDomain)
	}
	if p.order == MaxOrder && p.Degree() > 0 {
		return nil, nil, nil, fmt.Errorf("%w: series transcendental of an exact, non-constant polynomial needs a truncation order", ErrDomain)
	}
	c0 = p.Coeff(0)
	tc0, ok := c0.(Transcendental)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: coefficient ring has no transcendentals", ErrDomain)
	}
	u = p.Sub(NewExact(map[int]Coef{0: c0}, p.zero))
	return c0, u, tc0, nil
}

// seriesTermCount picks how many Taylor terms are needed to cover p's
// truncation order, given that u has valuation at least 1 (so u^k
// contributes no information below degree k). The p.order == MaxOrder
// branch is only reachable for a bare constant (splitConstant rejects
// any other exact polynomial), where u is identically zero and the
// term count is moot.
func (p *Poly) seriesTermCount() int {
	if p.order == MaxOrder {
		return 48
	}
	n := p.order
	if n < 1 {
		n = 1
	}
	return n
}

// Exp returns exp(p) = exp(c0) * exp(u), with exp(u) the usual power
// series sum_k u^k/k!.
func (p *Poly) Exp() (*Poly, error) {
	_, u, tc0, err := p.splitConstant()
	if err != nil {
		return nil, err
	}
	n := p.seriesTermCount()
	sum := NewExact(map[int]Coef{0: u.zero.FromInt64(1)}, u.zero)
	term := sum
	for k := 1; k <= n; k++ {
		term = term.Mul(u)
		kFact := u.zero.FromInt64(int64(k))
		term, err = term.scaleDiv(kFact)
		if err != nil {
			return nil, err
		}
		sum = sum.Add(term)
	}
	expC0 := tc0.Exp()
	return sum.Scale(expC0), nil
}

// scaleDiv divides every coefficient of p by c.
func (p *Poly) scaleDiv(c Coef) (*Poly, error) {
	out := map[int]Coef{}
	for _, t := range p.terms {
		d, err := t.coef.Div(c)
		if err != nil {
			return nil, err
		}
		out[t.deg] = d
	}
	return newPoly(out, p.order, p.zero), nil
}

// Log returns log(p) = log(c0) + log(1+w), w = u/c0, via the
// alternating series sum_k (-1)^(k+1) w^k/k. Requires a
// nonzero constant term.
func (p *Poly) Log() (*Poly, error) {
	c0, u, tc0, err := p.splitConstant()
	if err != nil {
		return nil, err
	}
	if c0.IsZero() {
		return nil, fmt.Errorf("%w: log of a series with zero constant term", ErrDomain)
	}
	w, err := u.scaleDiv(c0)
	if err != nil {
		return nil, err
	}
	n := p.seriesTermCount()
	sum := zeroPoly(p.order, p.zero)
	term := NewExact(map[int]Coef{0: u.zero.FromInt64(1)}, u.zero)
	for k := 1; k <= n; k++ {
		term = term.Mul(w)
		scaled, err := term.scaleDiv(u.zero.FromInt64(int64(k)))
		if err != nil {
			return nil, err
		}
		if k%2 == 0 {
			sum = sum.Sub(scaled)
		} else {
			sum = sum.Add(scaled)
		}
	}
	logC0, err := tc0.Log()
	if err != nil {
		return nil, err
	}
	return sum.Add(NewExact(map[int]Coef{0: logC0}, p.zero)), nil
}

// sinCosSeries returns (sin(u), cos(u)) for a series u with u(0)=0, via
// the standard Taylor sums.
func (p *Poly) sinCosSeries(u *Poly, n int) (sinU, cosU *Poly, err error) {
	sinU = zeroPoly(u.order, u.zero)
	cosU = NewExact(map[int]Coef{0: u.zero.FromInt64(1)}, u.zero)
	power := NewExact(map[int]Coef{0: u.zero.FromInt64(1)}, u.zero)
	for k := 1; k <= 2*n+1; k++ {
		power = power.Mul(u)
		// power carries u^k/k!, divided by k each round so no factorial
		// has to fit in an int64.
		power, err = power.scaleDiv(u.zero.FromInt64(int64(k)))
		if err != nil {
			return nil, nil, err
		}
		scaled := power
		if k%2 == 1 {
			m := (k - 1) / 2
			if m%2 == 0 {
				sinU = sinU.Add(scaled)
			} else {
				sinU = sinU.Sub(scaled)
			}
		} else {
			m := k / 2
			if m%2 == 0 {
				cosU = cosU.Add(scaled)
			} else {
				cosU = cosU.Sub(scaled)
			}
		}
	}
	return sinU, cosU, nil
}

// Sin returns sin(p) = sin(c0)cos(u) + cos(c0)sin(u).
func (p *Poly) Sin() (*Poly, error) {
	_, u, tc0, err := p.splitConstant()
	if err != nil {
		return nil, err
	}
	sinU, cosU, err := p.sinCosSeries(u, p.seriesTermCount())
	if err != nil {
		return nil, err
	}
	return cosU.Scale(tc0.Sin()).Add(sinU.Scale(tc0.Cos())), nil
}

// Cos returns cos(p) = cos(c0)cos(u) - sin(c0)sin(u).
func (p *Poly) Cos() (*Poly, error) {
	_, u, tc0, err := p.splitConstant()
	if err != nil {
		return nil, err
	}
	sinU, cosU, err := p.sinCosSeries(u, p.seriesTermCount())
	if err != nil {
		return nil, err
	}
	return cosU.Scale(tc0.Cos()).Sub(sinU.Scale(tc0.Sin())), nil
}

// Tan returns sin(p)/cos(p).
func (p *Poly) Tan() (*Poly, error) {
	s, err := p.Sin()
	if err != nil {
		return nil, err
	}
	c, err := p.Cos()
	if err != nil {
		return nil, err
	}
	return s.Div(c)
}

// composeViaDerivative builds g = g(c0) + integral(gPrime) where gPrime
// is supplied as a series with the constant term of its antiderivative
// forced to zero — the technique the Asin/Acos/Atan inverse
// trigonometric functions use, since they have no clean direct Taylor
// recurrence the way exp/log/sin/cos do, but their derivatives are
// simple algebraic functions of p that this package already knows how
// to build from the field ops it has.
func composeViaDerivative(gc0 Coef, gPrime *Poly, zero Coef) *Poly {
	integral := gPrime.Integrate()
	return integral.Add(NewExact(map[int]Coef{0: gc0}, zero))
}

// Asin returns asin(p) via g' = p'/sqrt(1-p^2).
func (p *Poly) Asin() (*Poly, error) {
	_, _, tc0, err := p.splitConstant()
	if err != nil {
		return nil, err
	}
	one := NewExact(map[int]Coef{0: p.zero.FromInt64(1)}, p.zero)
	radicand := one.Sub(p.Mul(p))
	root, err := radicand.PowSeriesRat(1, 2)
	if err != nil {
		return nil, err
	}
	gPrime, err := p.Derivative().Div(root)
	if err != nil {
		return nil, err
	}
	return composeViaDerivative(tc0.Asin(), gPrime, p.zero), nil
}

// Acos returns acos(p) = pi/2 - asin(p), sharing asin's derivative.
func (p *Poly) Acos() (*Poly, error) {
	_, _, tc0, err := p.splitConstant()
	if err != nil {
		return nil, err
	}
	asinP, err := p.Asin()
	if err != nil {
		return nil, err
	}
	return asinP.Neg().Add(NewExact(map[int]Coef{0: tc0.Acos().Add(tc0.Asin())}, p.zero)), nil
}

// Atan returns atan(p) via g' = p'/(1+p^2).
func (p *Poly) Atan() (*Poly, error) {
	_, _, tc0, err := p.splitConstant()
	if err != nil {
		return nil, err
	}
	one := NewExact(map[int]Coef{0: p.zero.FromInt64(1)}, p.zero)
	denom := one.Add(p.Mul(p))
	gPrime, err := p.Derivative().Div(denom)
	if err != nil {
		return nil, err
	}
	return composeViaDerivative(tc0.Atan(), gPrime, p.zero), nil
}
