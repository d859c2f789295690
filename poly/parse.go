// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package poly

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mshafiee/numkit/bigfraction"
)

// ErrNeedsRicherCoefficient is returned by Parse when a literal term
// requires a coefficient capability the caller's chosen Coef
// implementation doesn't provide (e.g. an imaginary unit parsed
// against a RationalCoef ring, or a decimal literal with more digits
// than a rational reading can exactly represent at the caller's
// level).
var ErrNeedsRicherCoefficient = errors.New("poly: literal needs a richer coefficient type")

// MakeCoef builds a ring-specific Coef constant from a parsed
// rational term, so Parse can stay independent of which concrete
// coefficient type (RationalCoef, RealCoef, ComplexCoef, ScalarCoef)
// the caller is working in.
type MakeCoef func(*bigfraction.BigFraction) (Coef, error)

// Parse reads a polynomial literal such as "3x^2 - x + 1/2" or a
// Laurent form like "2x^-1 + 1 + x" into a Poly over the coefficient
// ring produced by mk, with zero as that ring's additive identity.
func Parse(s string, order int, zero Coef, mk MakeCoef) (*Poly, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty literal", ErrNeedsRicherCoefficient)
	}

	coeffs := map[int]Coef{}
	terms := splitTerms(s)
	for _, raw := range terms {
		deg, coefLit, err := parseTerm(raw)
		if err != nil {
			return nil, err
		}
		c, err := mk(coefLit)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNeedsRicherCoefficient, err)
		}
		if existing, ok := coeffs[deg]; ok {
			coeffs[deg] = existing.Add(c)
		} else {
			coeffs[deg] = c
		}
	}
	return newPoly(coeffs, order, zero), nil
}

// splitTerms breaks a literal into signed terms on top-level + and -,
// keeping the sign glued to each term.
func splitTerms(s string) []string {
	var terms []string
	start := 0
	for i := 1; i < len(s); i++ {
		if (s[i] == '+' || s[i] == '-') && s[i-1] != 'e' && s[i-1] != 'E' && s[i-1] != '^' {
			terms = append(terms, strings.TrimSpace(s[start:i]))
			start = i
		}
	}
	terms = append(terms, strings.TrimSpace(s[start:]))
	return terms
}

// parseTerm parses one signed term like "-3x^2", "x", "-x^-1", "5".
func parseTerm(raw string) (deg int, coef *bigfraction.BigFraction, err error) {
	raw = strings.TrimSpace(raw)
	sign := int64(1)
	if strings.HasPrefix(raw, "+") {
		raw = raw[1:]
	} else if strings.HasPrefix(raw, "-") {
		sign = -1
		raw = raw[1:]
	}
	raw = strings.TrimSpace(raw)

	xi := strings.IndexByte(raw, 'x')
	if xi < 0 {
		lit, err := bigfraction.FromString(raw)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %q", ErrNeedsRicherCoefficient, raw)
		}
		return 0, lit.Mul(bigfraction.FromInt64(sign)), nil
	}

	coefStr := strings.TrimSpace(raw[:xi])
	var coef0 *bigfraction.BigFraction
	if coefStr == "" {
		coef0 = bigfraction.FromInt64(1)
	} else {
		lit, err := bigfraction.FromString(coefStr)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %q", ErrNeedsRicherCoefficient, coefStr)
		}
		coef0 = lit
	}
	coef0 = coef0.Mul(bigfraction.FromInt64(sign))

	rest := strings.TrimSpace(raw[xi+1:])
	if rest == "" {
		return 1, coef0, nil
	}
	if !strings.HasPrefix(rest, "^") {
		return 0, nil, fmt.Errorf("%w: expected '^' after x in %q", ErrNeedsRicherCoefficient, raw)
	}
	expStr := strings.TrimSpace(rest[1:])
	exp, err := strconv.Atoi(expStr)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: bad exponent %q", ErrNeedsRicherCoefficient, expStr)
	}
	return exp, coef0, nil
}
