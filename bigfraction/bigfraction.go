// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

// Package bigfraction implements exact rational arithmetic over
// arbitrary-precision integers, including
// bit-exact construction from an IEEE-754 double.
package bigfraction

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/mshafiee/numkit/bigfloat"
)

// ErrInvalidLiteral is returned when a string fails to parse as an
// integer, decimal, or "a/b" fraction literal.
var ErrInvalidLiteral = errors.New("bigfraction: invalid literal")

// BigFraction is a reduced pair (n, d) with d >= 1 and gcd(|n|, d) == 1.
// The sentinel n=0, d=0 denotes NaN.
type BigFraction struct {
	n, d *big.Int
}

var bigZero = big.NewInt(0)
var bigOne = big.NewInt(1)

// NaN returns the (0, 0) sentinel.
func NaN() *BigFraction { return &BigFraction{n: big.NewInt(0), d: big.NewInt(0)} }

func (f *BigFraction) IsNaN() bool { return f.d.Sign() == 0 }

// FromInt64 constructs an exact integer fraction n/1.
func FromInt64(n int64) *BigFraction {
	return reduce(big.NewInt(n), big.NewInt(1))
}

// FromBigInt constructs an exact integer fraction n/1.
func FromBigInt(n *big.Int) *BigFraction {
	return reduce(new(big.Int).Set(n), big.NewInt(1))
}

// FromInts constructs n/d, reducing to lowest terms; d == 0 yields NaN.
func FromInts(n, d *big.Int) *BigFraction {
	if d.Sign() == 0 {
		return NaN()
	}
	return reduce(new(big.Int).Set(n), new(big.Int).Set(d))
}

// FromFloat64 performs a bit-exact decomposition of an IEEE-754 double's
// mantissa and exponent into a fraction: a
// dyadic double x = m * 2^e becomes m/1 (e>=0) or m/2^-e (e<0) exactly.
func FromFloat64(x float64) *BigFraction {
	if math.IsNaN(x) {
		return NaN()
	}
	if math.IsInf(x, 0) {
		// No exact rational represents infinity; report it the same
		// way the rest of the system reports an undefined result.
		return NaN()
	}
	if x == 0 {
		return FromInt64(0)
	}

	bits := math.Float64bits(x)
	sign := int64(1)
	if bits>>63 != 0 {
		sign = -1
	}
	exp := int((bits >> 52) & 0x7FF)
	mantissa := bits & ((uint64(1) << 52) - 1)

	var m *big.Int
	var e int
	if exp == 0 {
		// Subnormal: value = mantissa * 2^(-1074).
		m = new(big.Int).SetUint64(mantissa)
		e = -1074
	} else {
		// Normal: value = (1.mantissa) * 2^(exp-1023) = (2^52+mantissa) * 2^(exp-1075).
		m = new(big.Int).SetUint64(mantissa | (uint64(1) << 52))
		e = exp - 1075
	}
	m.Mul(m, big.NewInt(sign))

	if e >= 0 {
		m.Lsh(m, uint(e))
		return reduce(m, big.NewInt(1))
	}
	d := new(big.Int).Lsh(big.NewInt(1), uint(-e))
	return reduce(m, d)
}

// ToBigFloat converts f to a BigFloat at the given precision.
func (f *BigFraction) ToBigFloat(prec uint) *bigfloat.BigFloat {
	if f.IsNaN() {
		return bigfloat.NaN(prec)
	}
	num := bigfloat.NewFromBigInt(f.n, prec+64)
	den := bigfloat.NewFromBigInt(f.d, prec+64)
	return num.Div(den, prec)
}

// FromString parses an integer ("12"), decimal ("3.25"), or "a/b" literal.
func FromString(s string) (*BigFraction, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrInvalidLiteral
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		nStr, dStr := s[:i], s[i+1:]
		n, ok1 := new(big.Int).SetString(nStr, 10)
		d, ok2 := new(big.Int).SetString(dStr, 10)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
		}
		return FromInts(n, d), nil
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart := s[:i], s[i+1:]
		if intPart == "" || intPart == "-" {
			intPart += "0"
		}
		digits := intPart + fracPart
		n, ok := new(big.Int).SetString(digits, 10)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
		}
		d := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(fracPart))), nil)
		return FromInts(n, d), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
	}
	return FromBigInt(n), nil
}

func reduce(n, d *big.Int) *BigFraction {
	if d.Sign() == 0 {
		return NaN()
	}
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	if n.Sign() == 0 {
		return &BigFraction{n: big.NewInt(0), d: big.NewInt(1)}
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Cmp(bigOne) != 0 {
		n = new(big.Int).Quo(n, g)
		d = new(big.Int).Quo(d, g)
	}
	return &BigFraction{n: n, d: d}
}

func (f *BigFraction) Num() *big.Int { return new(big.Int).Set(f.n) }
func (f *BigFraction) Den() *big.Int { return new(big.Int).Set(f.d) }

func (f *BigFraction) Add(g *BigFraction) *BigFraction {
	if f.IsNaN() || g.IsNaN() {
		return NaN()
	}
	n := new(big.Int).Add(new(big.Int).Mul(f.n, g.d), new(big.Int).Mul(g.n, f.d))
	d := new(big.Int).Mul(f.d, g.d)
	return reduce(n, d)
}

func (f *BigFraction) Sub(g *BigFraction) *BigFraction {
	if f.IsNaN() || g.IsNaN() {
		return NaN()
	}
	n := new(big.Int).Sub(new(big.Int).Mul(f.n, g.d), new(big.Int).Mul(g.n, f.d))
	d := new(big.Int).Mul(f.d, g.d)
	return reduce(n, d)
}

func (f *BigFraction) Mul(g *BigFraction) *BigFraction {
	if f.IsNaN() || g.IsNaN() {
		return NaN()
	}
	return reduce(new(big.Int).Mul(f.n, g.n), new(big.Int).Mul(f.d, g.d))
}

func (f *BigFraction) Quo(g *BigFraction) *BigFraction {
	if f.IsNaN() || g.IsNaN() || g.n.Sign() == 0 {
		return NaN()
	}
	return reduce(new(big.Int).Mul(f.n, g.d), new(big.Int).Mul(f.d, g.n))
}

func (f *BigFraction) Neg() *BigFraction {
	if f.IsNaN() {
		return NaN()
	}
	return &BigFraction{n: new(big.Int).Neg(f.n), d: new(big.Int).Set(f.d)}
}

func (f *BigFraction) IsZero() bool { return !f.IsNaN() && f.n.Sign() == 0 }

func (f *BigFraction) Equals(g *BigFraction) bool {
	if f.IsNaN() || g.IsNaN() {
		return false
	}
	return f.n.Cmp(g.n) == 0 && f.d.Cmp(g.d) == 0
}

// Cmp orders two non-NaN fractions; NaN operands return 2 ("unordered"),
// mirroring bigfloat.BigFloat.Cmp's convention.
func (f *BigFraction) Cmp(g *BigFraction) int {
	if f.IsNaN() || g.IsNaN() {
		return 2
	}
	lhs := new(big.Int).Mul(f.n, g.d)
	rhs := new(big.Int).Mul(g.n, f.d)
	return lhs.Cmp(rhs)
}

func (f *BigFraction) String() string {
	if f.IsNaN() {
		return "NaN"
	}
	if f.d.Cmp(bigOne) == 0 {
		return f.n.String()
	}
	return f.n.String() + "/" + f.d.String()
}

// MarshalJSON/UnmarshalJSON round-trip through the "a/b" text form.
func (f *BigFraction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

func (f *BigFraction) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}
