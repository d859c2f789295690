// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

// Package bigcomplex implements complex arithmetic and transcendentals
// over bigfloat.BigFloat.
package bigcomplex

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mshafiee/numkit/bigfloat"
)

// ErrDivideByZero is returned by Quo when the divisor is exactly zero.
var ErrDivideByZero = errors.New("bigcomplex: division by zero")

// Complex is a value type (re, im), each a *bigfloat.BigFloat.
type Complex struct {
	Re, Im *bigfloat.BigFloat
}

// New constructs a Complex from real/imaginary BigFloats.
func New(re, im *bigfloat.BigFloat) Complex { return Complex{Re: re, Im: im} }

// FromFloat64 constructs a Complex from float64 parts at the given
// precision.
func FromFloat64(re, im float64, prec uint) Complex {
	return Complex{Re: bigfloat.NewFromFloat64(re, prec), Im: bigfloat.NewFromFloat64(im, prec)}
}

// Real constructs a purely real Complex.
func Real(re *bigfloat.BigFloat) Complex {
	return Complex{Re: re, Im: bigfloat.Zero(re.Precision())}
}

func (c Complex) precision() uint { return c.Re.Precision() }

func (c Complex) Add(d Complex) Complex {
	p := c.precision()
	return Complex{Re: c.Re.Add(d.Re, p), Im: c.Im.Add(d.Im, p)}
}

func (c Complex) Sub(d Complex) Complex {
	p := c.precision()
	return Complex{Re: c.Re.Sub(d.Re, p), Im: c.Im.Sub(d.Im, p)}
}

// Mul multiplies using the standard (ac-bd, ad+bc) formula.
func (c Complex) Mul(d Complex) Complex {
	p := c.precision()
	ac := c.Re.Mul(d.Re, p)
	bd := c.Im.Mul(d.Im, p)
	ad := c.Re.Mul(d.Im, p)
	bc := c.Im.Mul(d.Re, p)
	return Complex{Re: ac.Sub(bd, p), Im: ad.Add(bc, p)}
}

// Quo divides using the conjugate-multiplication method.
func (c Complex) Quo(d Complex) (Complex, error) {
	p := c.precision()
	denom := d.Re.Mul(d.Re, p).Add(d.Im.Mul(d.Im, p), p)
	if denom.IsExactZero() {
		return Complex{}, fmt.Errorf("%w", ErrDivideByZero)
	}
	ac := c.Re.Mul(d.Re, p)
	bd := c.Im.Mul(d.Im, p)
	bc := c.Im.Mul(d.Re, p)
	ad := c.Re.Mul(d.Im, p)
	re := ac.Add(bd, p).Div(denom, p)
	im := bc.Sub(ad, p).Div(denom, p)
	return Complex{Re: re, Im: im}, nil
}

func (c Complex) Neg() Complex {
	p := c.precision()
	return Complex{Re: c.Re.Neg(p), Im: c.Im.Neg(p)}
}

func (c Complex) Conj() Complex {
	p := c.precision()
	return Complex{Re: c.Re.Clone(), Im: c.Im.Neg(p)}
}

// Abs returns |c| = sqrt(re^2 + im^2).
func (c Complex) Abs() *bigfloat.BigFloat {
	p := c.precision()
	sq := c.Re.Mul(c.Re, p).Add(c.Im.Mul(c.Im, p), p)
	return sq.Sqrt(p)
}

// Arg returns atan2(im, re), the principal argument.
func (c Complex) Arg() *bigfloat.BigFloat {
	return c.Im.Atan2(c.Re, c.precision())
}

// Polar returns (r, theta) such that c == r*(cos(theta) + i*sin(theta)).
func (c Complex) Polar() (r, theta *bigfloat.BigFloat) {
	return c.Abs(), c.Arg()
}

// FromPolar constructs a Complex from modulus/argument form.
func FromPolar(r, theta *bigfloat.BigFloat) Complex {
	p := r.Precision()
	return Complex{Re: r.Mul(theta.Cos(p), p), Im: r.Mul(theta.Sin(p), p)}
}

// Exp computes e^c = e^re * (cos(im) + i*sin(im)).
func (c Complex) Exp() Complex {
	p := c.precision()
	scale := c.Re.Exp(p)
	return Complex{Re: scale.Mul(c.Im.Cos(p), p), Im: scale.Mul(c.Im.Sin(p), p)}
}

// Log computes the principal complex logarithm: log|c| + i*arg(c).
func (c Complex) Log() Complex {
	p := c.precision()
	return Complex{Re: c.Abs().Log(p), Im: c.Arg()}
}

// Sqrt computes the principal square root via polar form.
func (c Complex) Sqrt() Complex {
	p := c.precision()
	r, theta := c.Polar()
	halfTheta := theta.Mul(bigfloat.Half(p), p)
	sqrtR := r.Sqrt(p)
	return FromPolar(sqrtR, halfTheta)
}

func (c Complex) IsZero() bool { return c.Re.IsExactZero() && c.Im.IsExactZero() }

func (c Complex) Equals(d Complex) bool { return c.Re.Eq(d.Re) && c.Im.Eq(d.Im) }

func (c Complex) String() string {
	if c.Im.Sign() < 0 {
		return fmt.Sprintf("%s%si", c.Re.String(), c.Im.String())
	}
	return fmt.Sprintf("%s+%si", c.Re.String(), c.Im.String())
}

type complexJSON struct {
	Re, Im string
}

// MarshalJSON renders c as its real and imaginary parts in decimal text,
// round-tripped through BigFloat's own textual form.
func (c Complex) MarshalJSON() ([]byte, error) {
	return json.Marshal(complexJSON{Re: c.Re.String(), Im: c.Im.String()})
}

// UnmarshalJSON parses the form written by MarshalJSON at
// bigfloat.DefaultPrecision.
func (c *Complex) UnmarshalJSON(data []byte) error {
	var raw complexJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	re, err := bigfloat.NewFromString(raw.Re, 10, bigfloat.DefaultPrecision)
	if err != nil {
		return fmt.Errorf("bigcomplex: unmarshal re: %w", err)
	}
	im, err := bigfloat.NewFromString(raw.Im, 10, bigfloat.DefaultPrecision)
	if err != nil {
		return fmt.Errorf("bigcomplex: unmarshal im: %w", err)
	}
	c.Re, c.Im = re, im
	return nil
}
