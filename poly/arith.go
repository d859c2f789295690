// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package poly

import "fmt"

// Add returns p + q. The sum's truncation order is the tighter
// (smaller) of the two operands' orders: nothing beyond that can be
// trusted.
func (p *Poly) Add(q *Poly) *Poly {
	order := minOrder(p.order, q.order)
	out := map[int]Coef{}
	for _, t := range p.terms {
		if t.deg >= order {
			continue
		}
		out[t.deg] = t.coef
	}
	for _, t := range q.terms {
		if t.deg >= order {
			continue
		}
		if existing, ok := out[t.deg]; ok {
			out[t.deg] = existing.Add(t.coef)
		} else {
			out[t.deg] = t.coef
		}
	}
	return newPoly(out, order, p.zero)
}

// Sub returns p - q, with the same order-propagation rule as Add.
func (p *Poly) Sub(q *Poly) *Poly {
	order := minOrder(p.order, q.order)
	out := map[int]Coef{}
	for _, t := range p.terms {
		if t.deg >= order {
			continue
		}
		out[t.deg] = t.coef
	}
	for _, t := range q.terms {
		if t.deg >= order {
			continue
		}
		if existing, ok := out[t.deg]; ok {
			out[t.deg] = existing.Sub(t.coef)
		} else {
			out[t.deg] = t.coef.Neg()
		}
	}
	return newPoly(out, order, p.zero)
}

// Neg returns -p.
func (p *Poly) Neg() *Poly {
	out := map[int]Coef{}
	for _, t := range p.terms {
		out[t.deg] = t.coef.Neg()
	}
	return newPoly(out, p.order, p.zero)
}

// Scale returns c*p.
func (p *Poly) Scale(c Coef) *Poly {
	if c.IsZero() {
		return zeroPoly(p.order, p.zero)
	}
	out := map[int]Coef{}
	for _, t := range p.terms {
		out[t.deg] = t.coef.Mul(c)
	}
	return newPoly(out, p.order, p.zero)
}

// Mul returns p * q via sparse convolution. A product term is only
// known exactly up to the first degree where an unknown term of one
// operand could have contributed — the standard Laurent-series
// truncation-order formula order(p*q) = min(order(p)+v(q),
// v(p)+order(q)).
func (p *Poly) Mul(q *Poly) *Poly {
	var order int
	switch {
	case p.order == MaxOrder && q.order == MaxOrder:
		order = MaxOrder
	default:
		order = minOrder(addOrders(p.order, q.Valuation()), addOrders(q.order, p.Valuation()))
	}

	out := map[int]Coef{}
	for _, a := range p.terms {
		for _, b := range q.terms {
			d := a.deg + b.deg
			if d >= order {
				continue
			}
			term := a.coef.Mul(b.coef)
			if existing, ok := out[d]; ok {
				out[d] = existing.Add(term)
			} else {
				out[d] = term
			}
		}
	}
	return newPoly(out, order, p.zero)
}

func addOrders(o, v int) int {
	if o == MaxOrder || v == MaxOrder {
		return MaxOrder
	}
	return o + v
}

// DefaultDivLimit bounds how many quotient terms an exact-mode Div
// (both operands have order MaxOrder) will compute while still hoping
// the synthetic division terminates, e.g. (x^2-1)/(x-1). Most exact
// quotients that don't terminate, like 1/(1-x), never will, so this
// limit keeps Div from running forever.
const DefaultDivLimit = 100

// Div performs synthetic low-to-high series division p / q, valid
// whenever q is not the zero series. The quotient's valuation is
// v(p)-v(q); its truncation order follows the same "first unsafe
// degree" reasoning as Mul, propagated back through the recurrence
// p = q*quotient: order = min(o(p) - v(q), o(q) + v(p) - 2v(q)), where the
// latter bounds how far q's own truncation corrupts the recurrence.
// When both operands are exact, Div falls back to DefaultDivLimit
// iterations; see DivWithLimit to control that bound directly.
func (p *Poly) Div(q *Poly) (*Poly, error) {
	return p.DivWithLimit(q, DefaultDivLimit)
}

// DivWithLimit is Div with an explicit cap on how many quotient terms
// an exact-mode division (both operands exact) will compute before
// giving up on detecting termination. If the synthetic division
// doesn't resolve to an exact quotient within limit terms, the result
// is a series truncated at v(P)-v(Q)+limit with DroppedSignificant
// set, rather than a polynomial claiming to be exact.
func (p *Poly) DivWithLimit(q *Poly, limit int) (*Poly, error) {
	if q.IsZeroExact() {
		return nil, fmt.Errorf("%w: series division by the zero series", ErrDomain)
	}
	vq := q.Valuation()
	lead := q.Coeff(vq)

	vp := p.Valuation()
	if p.IsZeroExact() {
		vp = p.order
	}
	vQuot := vp - vq

	exactMode := p.order == MaxOrder && q.order == MaxOrder

	var order int
	if exactMode {
		order = vQuot + limit
	} else {
		order = minOrder(subOrders(p.order, vq), subOrders(q.order, vq)+vQuot)
	}
	if order <= vQuot {
		return zeroPoly(order, p.zero), nil
	}

	// qSpan bounds how many trailing terms of q can still feed the
	// synthetic-division recurrence once p's own known terms are
	// exhausted; once the quotient has produced more consecutive zero
	// terms than that, every further term must also be zero and the
	// division has genuinely terminated.
	qSpan := 0
	if exactMode {
		qSpan = q.Degree() - vq
		if qSpan < 0 {
			qSpan = 0
		}
	}

	// Synthetic division: express p = q*Q term by term, low degree to
	// high, solving for each coefficient of Q in turn.
	qCoef := map[int]Coef{}
	zeroRun := 0
	terminated := false
	finalOrder := order
	for k := vQuot; k < order; k++ {
		// Coefficient of x^(k+vq) in p, minus contributions already
		// accounted for by lower-degree quotient terms times q.
		acc := p.Coeff(k + vq)
		for j := vQuot; j < k; j++ {
			qc, ok := qCoef[j]
			if !ok {
				continue
			}
			acc = acc.Sub(qc.Mul(q.Coeff(k+vq-j)))
		}
		div, err := acc.Div(lead)
		if err != nil {
			return nil, err
		}
		if !div.IsZero() {
			qCoef[k] = div
			zeroRun = 0
		} else {
			zeroRun++
		}
		if exactMode && k+vq > p.Degree() && zeroRun > qSpan {
			finalOrder = MaxOrder
			terminated = true
			break
		}
	}

	result := newPoly(qCoef, finalOrder, p.zero)
	result.droppedSignificant = exactMode && !terminated
	return result, nil
}

func subOrders(o, v int) int {
	if o == MaxOrder {
		return MaxOrder
	}
	return o - v
}

// Derivative returns d/dx p, the term-by-term derivative; its order
// drops by one exponent step (differentiation loses no further terms
// but a coefficient known only up to order o no longer bounds the
// derivative's order beyond o-1).
func (p *Poly) Derivative() *Poly {
	out := map[int]Coef{}
	for _, t := range p.terms {
		if t.deg == 0 {
			continue
		}
		out[t.deg-1] = t.coef.Mul(t.coef.FromInt64(int64(t.deg)))
	}
	order := p.order
	if order != MaxOrder {
		order--
	}
	return newPoly(out, order, p.zero)
}

// Integrate returns an antiderivative of p with zero constant term.
// Integrating term x^-1 is undefined (it would need a logarithm, which
// this module leaves to Transcendental.Log on the constant term) and
// is simply dropped with its contribution unrepresentable in this
// ring.
func (p *Poly) Integrate() *Poly {
	out := map[int]Coef{}
	for _, t := range p.terms {
		if t.deg == -1 {
			continue
		}
		newDeg := t.deg + 1
		divided, err := t.coef.Div(t.coef.FromInt64(int64(newDeg)))
		if err != nil {
			continue
		}
		out[newDeg] = divided
	}
	order := p.order
	if order != MaxOrder {
		order++
	}
	return newPoly(out, order, p.zero)
}
