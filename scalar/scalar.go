// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

// Package scalar implements the three-level numeric tower
// {Rational ⊑ Real ⊑ Complex} with automatic, monotonic promotion.
package scalar

import (
	"fmt"

	"github.com/mshafiee/numkit/bigcomplex"
	"github.com/mshafiee/numkit/bigfloat"
	"github.com/mshafiee/numkit/bigfraction"
)

// Level tags the payload held by a Scalar.
type Level int

const (
	LevelRational Level = iota
	LevelReal
	LevelComplex
)

func (l Level) String() string {
	switch l {
	case LevelRational:
		return "rational"
	case LevelReal:
		return "real"
	case LevelComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// Scalar is a tagged variant over {BigFraction, BigFloat, Complex}. Its
// payload type always matches Level; promotion only ever raises the
// level during mixed-type arithmetic, never lowers it automatically.
type Scalar struct {
	level Level
	rat   *bigfraction.BigFraction
	real  *bigfloat.BigFloat
	cplx  bigcomplex.Complex
}

func FromRational(r *bigfraction.BigFraction) Scalar { return Scalar{level: LevelRational, rat: r} }
func FromReal(r *bigfloat.BigFloat) Scalar           { return Scalar{level: LevelReal, real: r} }
func FromComplex(c bigcomplex.Complex) Scalar        { return Scalar{level: LevelComplex, cplx: c} }

func (s Scalar) Level() Level { return s.level }

// precision is only meaningful once a Scalar is promoted off Rational.
func (s Scalar) precision(fallback uint) uint {
	switch s.level {
	case LevelReal:
		return s.real.Precision()
	case LevelComplex:
		return s.cplx.Re.Precision()
	default:
		return fallback
	}
}

// ToReal promotes (or demotes-by-conversion) s to a BigFloat at prec.
func (s Scalar) ToReal(prec uint) *bigfloat.BigFloat {
	switch s.level {
	case LevelRational:
		return s.rat.ToBigFloat(prec)
	case LevelReal:
		return s.real
	case LevelComplex:
		return s.cplx.Re
	}
	panic("scalar: unreachable level")
}

// ToComplex promotes s to Complex at prec.
func (s Scalar) ToComplex(prec uint) bigcomplex.Complex {
	switch s.level {
	case LevelRational:
		return bigcomplex.Real(s.rat.ToBigFloat(prec))
	case LevelReal:
		return bigcomplex.Real(s.real)
	case LevelComplex:
		return s.cplx
	}
	panic("scalar: unreachable level")
}

// commonLevel picks max(a.level, b.level): promotion is monotonic, never
// automatic demotion.
func commonLevel(a, b Scalar) Level {
	if a.level > b.level {
		return a.level
	}
	return b.level
}

func defaultPrec(a, b Scalar) uint {
	p := a.precision(0)
	if q := b.precision(0); q > p {
		p = q
	}
	if p == 0 {
		p = bigfloat.DefaultPrecision
	}
	return p
}

// Add promotes both operands to their common level and adds.
func (a Scalar) Add(b Scalar, prec uint) Scalar {
	lvl := commonLevel(a, b)
	if prec == 0 {
		prec = defaultPrec(a, b)
	}
	switch lvl {
	case LevelRational:
		return FromRational(a.rat.Add(b.rat))
	case LevelReal:
		return FromReal(a.ToReal(prec).Add(b.ToReal(prec), prec))
	default:
		return FromComplex(a.ToComplex(prec).Add(b.ToComplex(prec)))
	}
}

func (a Scalar) Sub(b Scalar, prec uint) Scalar {
	lvl := commonLevel(a, b)
	if prec == 0 {
		prec = defaultPrec(a, b)
	}
	switch lvl {
	case LevelRational:
		return FromRational(a.rat.Sub(b.rat))
	case LevelReal:
		return FromReal(a.ToReal(prec).Sub(b.ToReal(prec), prec))
	default:
		return FromComplex(a.ToComplex(prec).Sub(b.ToComplex(prec)))
	}
}

func (a Scalar) Mul(b Scalar, prec uint) Scalar {
	lvl := commonLevel(a, b)
	if prec == 0 {
		prec = defaultPrec(a, b)
	}
	switch lvl {
	case LevelRational:
		return FromRational(a.rat.Mul(b.rat))
	case LevelReal:
		return FromReal(a.ToReal(prec).Mul(b.ToReal(prec), prec))
	default:
		return FromComplex(a.ToComplex(prec).Mul(b.ToComplex(prec)))
	}
}

// Div: a rational division by a non-zero rational stays rational, and
// one by a zero rational returns an error; anything else promotes. An irrational result (e.g. sqrt of a Real)
// that this package can't express exactly is always produced at Real or
// Complex level already by its source operation — Div only ever
// *widens* when asked to, it never discovers irrationality itself.
func (a Scalar) Div(b Scalar, prec uint) (Scalar, error) {
	lvl := commonLevel(a, b)
	if prec == 0 {
		prec = defaultPrec(a, b)
	}
	switch lvl {
	case LevelRational:
		if b.rat.IsZero() {
			return Scalar{}, fmt.Errorf("scalar: division by zero")
		}
		return FromRational(a.rat.Quo(b.rat)), nil
	case LevelReal:
		return FromReal(a.ToReal(prec).Div(b.ToReal(prec), prec)), nil
	default:
		c, err := a.ToComplex(prec).Quo(b.ToComplex(prec))
		if err != nil {
			return Scalar{}, err
		}
		return FromComplex(c), nil
	}
}

func (a Scalar) Neg() Scalar {
	switch a.level {
	case LevelRational:
		return FromRational(a.rat.Neg())
	case LevelReal:
		return FromReal(a.real.Neg(a.real.Precision()))
	default:
		return FromComplex(a.cplx.Neg())
	}
}

func (a Scalar) IsZero() bool {
	switch a.level {
	case LevelRational:
		return a.rat.IsZero()
	case LevelReal:
		return a.real.IsExactZero()
	default:
		return a.cplx.IsZero()
	}
}

// Sqrt always promotes at least to Real (a rational's square root is
// generally irrational), and further to Complex for a negative operand.
func (a Scalar) Sqrt(prec uint) Scalar {
	if prec == 0 {
		prec = a.precision(bigfloat.DefaultPrecision)
	}
	if a.level == LevelComplex {
		return FromComplex(a.cplx.Sqrt())
	}
	re := a.ToReal(prec)
	if re.Sign() < 0 {
		return FromComplex(bigcomplex.Real(re).Sqrt())
	}
	return FromReal(re.Sqrt(prec))
}

// Equals compares at the higher of the two operands' levels.
func (a Scalar) Equals(b Scalar, prec uint) bool {
	lvl := commonLevel(a, b)
	if prec == 0 {
		prec = defaultPrec(a, b)
	}
	switch lvl {
	case LevelRational:
		return a.rat.Equals(b.rat)
	case LevelReal:
		return a.ToReal(prec).Eq(b.ToReal(prec))
	default:
		return a.ToComplex(prec).Equals(b.ToComplex(prec))
	}
}

func (a Scalar) String() string {
	switch a.level {
	case LevelRational:
		return a.rat.String()
	case LevelReal:
		return a.real.String()
	default:
		return a.cplx.String()
	}
}
