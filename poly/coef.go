// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package poly

import (
	"errors"
	"fmt"

	"github.com/mshafiee/numkit/bigcomplex"
	"github.com/mshafiee/numkit/bigfloat"
	"github.com/mshafiee/numkit/bigfraction"
	"github.com/mshafiee/numkit/scalar"
)

// Coef is the capability set a Poly coefficient type must support: the field
// operations plus a same-type/same-precision integer-literal factory,
// used internally wherever series algebra needs to build a constant
// (e.g. 1/k! terms in a Taylor expansion).
type Coef interface {
	Add(Coef) Coef
	Sub(Coef) Coef
	Mul(Coef) Coef
	Div(Coef) (Coef, error)
	Neg() Coef
	IsZero() bool
	Equals(Coef) bool
	FromInt64(n int64) Coef
	String() string
}

// Transcendental is the extended capability set needed by Poly's series
// transcendentals and its J.C.P. Miller series power:
// Exp/Log/Sin/Cos/Tan/Asin/Acos/Atan evaluate the coefficient-level
// function at the polynomial's constant term, and PowRat raises the
// leading coefficient to a rational power n/d.
type Transcendental interface {
	Coef
	Exp() Coef
	Log() (Coef, error)
	Sin() Coef
	Cos() Coef
	Tan() Coef
	Asin() Coef
	Acos() Coef
	Atan() Coef
	PowRat(num, den int64) (Coef, error)
}

var (
	// ErrDomain is returned by coefficient operations given an
	// out-of-domain argument (e.g. Log of a non-positive real).
	ErrDomain = errors.New("poly: domain error")
)

// --- Rational coefficients ---

// RationalCoef adapts *bigfraction.BigFraction to Coef. BigFraction has
// no transcendentals (they are generally irrational), so RationalCoef
// implements only Coef, never Transcendental.
type RationalCoef struct{ V *bigfraction.BigFraction }

func (c RationalCoef) Add(o Coef) Coef { return RationalCoef{c.V.Add(o.(RationalCoef).V)} }
func (c RationalCoef) Sub(o Coef) Coef { return RationalCoef{c.V.Sub(o.(RationalCoef).V)} }
func (c RationalCoef) Mul(o Coef) Coef { return RationalCoef{c.V.Mul(o.(RationalCoef).V)} }
func (c RationalCoef) Div(o Coef) (Coef, error) {
	d := o.(RationalCoef).V
	if d.IsZero() {
		return nil, fmt.Errorf("%w: division by zero", ErrDomain)
	}
	return RationalCoef{c.V.Quo(d)}, nil
}
func (c RationalCoef) Neg() Coef         { return RationalCoef{c.V.Neg()} }
func (c RationalCoef) IsZero() bool      { return c.V.IsZero() }
func (c RationalCoef) Equals(o Coef) bool { return c.V.Equals(o.(RationalCoef).V) }
func (c RationalCoef) FromInt64(n int64) Coef {
	return RationalCoef{bigfraction.FromInt64(n)}
}
func (c RationalCoef) String() string { return c.V.String() }

// --- Real (BigFloat) coefficients ---

// RealCoef adapts *bigfloat.BigFloat to Transcendental.
type RealCoef struct {
	V    *bigfloat.BigFloat
	Prec uint
}

func (c RealCoef) prec() uint {
	if c.Prec != 0 {
		return c.Prec
	}
	return c.V.Precision()
}

func (c RealCoef) Add(o Coef) Coef { return RealCoef{c.V.Add(o.(RealCoef).V, c.prec()), c.prec()} }
func (c RealCoef) Sub(o Coef) Coef { return RealCoef{c.V.Sub(o.(RealCoef).V, c.prec()), c.prec()} }
func (c RealCoef) Mul(o Coef) Coef { return RealCoef{c.V.Mul(o.(RealCoef).V, c.prec()), c.prec()} }
func (c RealCoef) Div(o Coef) (Coef, error) {
	d := o.(RealCoef).V
	if d.IsExactZero() {
		return nil, fmt.Errorf("%w: division by zero", ErrDomain)
	}
	return RealCoef{c.V.Div(d, c.prec()), c.prec()}, nil
}
func (c RealCoef) Neg() Coef          { return RealCoef{c.V.Neg(c.prec()), c.prec()} }
func (c RealCoef) IsZero() bool       { return c.V.IsExactZero() }
func (c RealCoef) Equals(o Coef) bool { return c.V.Eq(o.(RealCoef).V) }
func (c RealCoef) FromInt64(n int64) Coef {
	return RealCoef{bigfloat.NewFromFloat64(float64(n), c.prec()), c.prec()}
}
func (c RealCoef) String() string { return c.V.String() }

func (c RealCoef) Exp() Coef { return RealCoef{c.V.Exp(c.prec()), c.prec()} }
func (c RealCoef) Log() (Coef, error) {
	if c.V.Sign() <= 0 {
		return nil, fmt.Errorf("%w: log of non-positive value", ErrDomain)
	}
	return RealCoef{c.V.Log(c.prec()), c.prec()}, nil
}
func (c RealCoef) Sin() Coef  { return RealCoef{c.V.Sin(c.prec()), c.prec()} }
func (c RealCoef) Cos() Coef  { return RealCoef{c.V.Cos(c.prec()), c.prec()} }
func (c RealCoef) Tan() Coef  { return RealCoef{c.V.Tan(c.prec()), c.prec()} }
func (c RealCoef) Asin() Coef { return RealCoef{c.V.Asin(c.prec()), c.prec()} }
func (c RealCoef) Acos() Coef { return RealCoef{c.V.Acos(c.prec()), c.prec()} }
func (c RealCoef) Atan() Coef { return RealCoef{c.V.Atan(c.prec()), c.prec()} }
func (c RealCoef) PowRat(num, den int64) (Coef, error) {
	if c.V.Sign() < 0 {
		return nil, fmt.Errorf("%w: fractional power of a negative real", ErrDomain)
	}
	p := c.prec()
	exp := bigfloat.NewFromFloat64(float64(num)/float64(den), p)
	return RealCoef{c.V.Pow(exp, p), p}, nil
}

// --- Complex coefficients ---

// ComplexCoef adapts bigcomplex.Complex to Transcendental.
type ComplexCoef struct{ V bigcomplex.Complex }

func (c ComplexCoef) Add(o Coef) Coef { return ComplexCoef{c.V.Add(o.(ComplexCoef).V)} }
func (c ComplexCoef) Sub(o Coef) Coef { return ComplexCoef{c.V.Sub(o.(ComplexCoef).V)} }
func (c ComplexCoef) Mul(o Coef) Coef { return ComplexCoef{c.V.Mul(o.(ComplexCoef).V)} }
func (c ComplexCoef) Div(o Coef) (Coef, error) {
	r, err := c.V.Quo(o.(ComplexCoef).V)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	return ComplexCoef{r}, nil
}
func (c ComplexCoef) Neg() Coef          { return ComplexCoef{c.V.Neg()} }
func (c ComplexCoef) IsZero() bool       { return c.V.IsZero() }
func (c ComplexCoef) Equals(o Coef) bool { return c.V.Equals(o.(ComplexCoef).V) }
func (c ComplexCoef) FromInt64(n int64) Coef {
	p := c.V.Re.Precision()
	return ComplexCoef{bigcomplex.FromFloat64(float64(n), 0, p)}
}
func (c ComplexCoef) String() string { return c.V.String() }

func (c ComplexCoef) Exp() Coef { return ComplexCoef{c.V.Exp()} }
func (c ComplexCoef) Log() (Coef, error) {
	if c.V.IsZero() {
		return nil, fmt.Errorf("%w: log of zero", ErrDomain)
	}
	return ComplexCoef{c.V.Log()}, nil
}
func (c ComplexCoef) Sin() Coef {
	// sin(z) = (exp(iz) - exp(-iz)) / 2i, computed via the real/imag
	// split to keep this package independent of a dedicated Complex Sin.
	p := c.V.Re.Precision()
	iz := bigcomplex.New(c.V.Im.Neg(p), c.V.Re)
	negIz := iz.Neg()
	e1, e2 := iz.Exp(), negIz.Exp()
	diff := e1.Sub(e2)
	twoI := bigcomplex.New(bigfloat.Zero(p), bigfloat.NewFromFloat64(2, p))
	r, _ := diff.Quo(twoI)
	return ComplexCoef{r}
}
func (c ComplexCoef) Cos() Coef {
	p := c.V.Re.Precision()
	iz := bigcomplex.New(c.V.Im.Neg(p), c.V.Re)
	negIz := iz.Neg()
	e1, e2 := iz.Exp(), negIz.Exp()
	sum := e1.Add(e2)
	two := bigcomplex.Real(bigfloat.NewFromFloat64(2, p))
	r, _ := sum.Quo(two)
	return ComplexCoef{r}
}
func (c ComplexCoef) Tan() Coef {
	s, co := c.Sin().(ComplexCoef), c.Cos().(ComplexCoef)
	r, _ := s.V.Quo(co.V)
	return ComplexCoef{r}
}
func (c ComplexCoef) Asin() Coef {
	// asin(z) = -i * log(iz + sqrt(1 - z^2))
	p := c.V.Re.Precision()
	one := bigcomplex.Real(bigfloat.NewFromFloat64(1, p))
	z2 := c.V.Mul(c.V)
	root := one.Sub(z2).Sqrt()
	i := bigcomplex.New(bigfloat.Zero(p), bigfloat.NewFromFloat64(1, p))
	iz := i.Mul(c.V)
	inner := iz.Add(root).Log()
	r := i.Neg().Mul(inner)
	return ComplexCoef{r}
}
func (c ComplexCoef) Acos() Coef {
	p := c.V.Re.Precision()
	halfPi := bigcomplex.Real(bigfloat.Pi(p).Mul(bigfloat.Half(p), p))
	asin := c.Asin().(ComplexCoef)
	return ComplexCoef{halfPi.Sub(asin.V)}
}
func (c ComplexCoef) Atan() Coef {
	// atan(z) = (i/2) * log((1-iz)/(1+iz))
	p := c.V.Re.Precision()
	one := bigcomplex.Real(bigfloat.NewFromFloat64(1, p))
	i := bigcomplex.New(bigfloat.Zero(p), bigfloat.NewFromFloat64(1, p))
	iz := i.Mul(c.V)
	num := one.Sub(iz)
	den := one.Add(iz)
	q, _ := num.Quo(den)
	lg := q.Log()
	halfI := bigcomplex.New(bigfloat.Zero(p), bigfloat.Half(p))
	return ComplexCoef{halfI.Mul(lg)}
}
func (c ComplexCoef) PowRat(num, den int64) (Coef, error) {
	p := c.V.Re.Precision()
	r, theta := c.V.Polar()
	alpha := bigfloat.NewFromFloat64(float64(num)/float64(den), p)
	newR := r.Pow(alpha, p)
	newTheta := theta.Mul(alpha, p)
	return ComplexCoef{bigcomplex.FromPolar(newR, newTheta)}, nil
}

// --- Scalar coefficients ---

// ScalarCoef adapts scalar.Scalar to Transcendental, always promoting to
// Real for transcendentals since a Scalar's Rational level has no
// transcendentals of its own.
type ScalarCoef struct {
	V    scalar.Scalar
	Prec uint
}

func (c ScalarCoef) prec() uint {
	if c.Prec != 0 {
		return c.Prec
	}
	return bigfloat.DefaultPrecision
}

func (c ScalarCoef) Add(o Coef) Coef { return ScalarCoef{c.V.Add(o.(ScalarCoef).V, c.prec()), c.prec()} }
func (c ScalarCoef) Sub(o Coef) Coef { return ScalarCoef{c.V.Sub(o.(ScalarCoef).V, c.prec()), c.prec()} }
func (c ScalarCoef) Mul(o Coef) Coef { return ScalarCoef{c.V.Mul(o.(ScalarCoef).V, c.prec()), c.prec()} }
func (c ScalarCoef) Div(o Coef) (Coef, error) {
	r, err := c.V.Div(o.(ScalarCoef).V, c.prec())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	return ScalarCoef{r, c.prec()}, nil
}
func (c ScalarCoef) Neg() Coef          { return ScalarCoef{c.V.Neg(), c.prec()} }
func (c ScalarCoef) IsZero() bool       { return c.V.IsZero() }
func (c ScalarCoef) Equals(o Coef) bool { return c.V.Equals(o.(ScalarCoef).V, c.prec()) }
func (c ScalarCoef) FromInt64(n int64) Coef {
	return ScalarCoef{scalar.FromRational(bigfraction.FromInt64(n)), c.prec()}
}
func (c ScalarCoef) String() string { return c.V.String() }

func (c ScalarCoef) asReal() RealCoef { return RealCoef{c.V.ToReal(c.prec()), c.prec()} }

func (c ScalarCoef) Exp() Coef { return promote(c.asReal().Exp()) }
func (c ScalarCoef) Log() (Coef, error) {
	r, err := c.asReal().Log()
	if err != nil {
		return nil, err
	}
	return promote(r), nil
}
func (c ScalarCoef) Sin() Coef  { return promote(c.asReal().Sin()) }
func (c ScalarCoef) Cos() Coef  { return promote(c.asReal().Cos()) }
func (c ScalarCoef) Tan() Coef  { return promote(c.asReal().Tan()) }
func (c ScalarCoef) Asin() Coef { return promote(c.asReal().Asin()) }
func (c ScalarCoef) Acos() Coef { return promote(c.asReal().Acos()) }
func (c ScalarCoef) Atan() Coef { return promote(c.asReal().Atan()) }
func (c ScalarCoef) PowRat(num, den int64) (Coef, error) {
	r, err := c.asReal().PowRat(num, den)
	if err != nil {
		return nil, err
	}
	return promote(r), nil
}

func promote(c Coef) Coef {
	rc := c.(RealCoef)
	return ScalarCoef{scalar.FromReal(rc.V), rc.prec()}
}
