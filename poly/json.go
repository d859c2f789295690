// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package poly

import "encoding/json"

type termJSON struct {
	Deg  int    `json:"deg"`
	Coef string `json:"coef"`
}

type polyJSON struct {
	Order int        `json:"order"`
	Terms []termJSON `json:"terms"`
}

// MarshalJSON renders p as its truncation order plus its sparse
// (degree, coefficient) terms, each coefficient in its own String form.
func (p *Poly) MarshalJSON() ([]byte, error) {
	out := polyJSON{Order: p.order}
	for _, t := range p.terms {
		out.Terms = append(out.Terms, termJSON{Deg: t.deg, Coef: t.coef.String()})
	}
	return json.Marshal(out)
}

// DecodeJSON parses the form written by MarshalJSON. Since a Poly is
// polymorphic over its coefficient ring, the caller supplies zero (the
// ring's additive identity) and decode (a parser from a coefficient's
// String() form back into that same ring), mirroring the mk parameter
// Parse takes for literal parsing.
func DecodeJSON(data []byte, zero Coef, decode func(string) (Coef, error)) (*Poly, error) {
	var raw polyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	coeffs := map[int]Coef{}
	for _, t := range raw.Terms {
		c, err := decode(t.Coef)
		if err != nil {
			return nil, err
		}
		coeffs[t.Deg] = c
	}
	return newPoly(coeffs, raw.Order, zero), nil
}
