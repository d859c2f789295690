// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package poly

// Eval evaluates p at x using Horner's method extended to negative
// exponents: the negative- and non-negative-degree parts are
// accumulated separately, each via ordinary Horner evaluation, then
// combined.
func (p *Poly) Eval(x Coef) Coef {
	if p.IsZeroExact() {
		return p.zero
	}
	deg := p.Degree()
	val := p.Valuation()

	var posPart Coef = p.zero
	if deg >= 0 {
		posPart = p.zero
		for d := deg; d >= 0; d-- {
			posPart = posPart.Mul(x).Add(p.Coeff(d))
		}
	}

	var negPart Coef = p.zero
	if val < 0 {
		xInv, err := p.zero.FromInt64(1).Div(x)
		if err == nil {
			for d := val; d <= -1; d++ {
				negPart = negPart.Mul(xInv).Add(p.Coeff(d))
			}
			negPart = negPart.Mul(xInv)
		}
	}
	return posPart.Add(negPart)
}

// EqualsStrict reports whether p and q have identical terms (same
// degrees, bit-for-bit-equal coefficients) and the same truncation
// order — the strong notion of series equality.
func (p *Poly) EqualsStrict(q *Poly) bool {
	if p.order != q.order {
		return false
	}
	if len(p.terms) != len(q.terms) {
		return false
	}
	for i := range p.terms {
		if p.terms[i].deg != q.terms[i].deg {
			return false
		}
		if !p.terms[i].coef.Equals(q.terms[i].coef) {
			return false
		}
	}
	return true
}

// EqualsApprox reports whether p-q is the zero series up to the
// tighter of the two operands' truncation orders — the weaker,
// "indistinguishable within what is known" notion of series equality.
func (p *Poly) EqualsApprox(q *Poly) bool {
	return p.Sub(q).IsZeroExact()
}
