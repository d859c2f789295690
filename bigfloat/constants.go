// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package bigfloat

import (
	"math/big"
	"sync"

	altree "github.com/ALTree/bigfloat"
)

// Process-wide BigFloat constants: lazily initialized at
// DefaultPrecision+32 bits and then treated as immutable shared values, per the
// Design Notes' "Constants" guidance. Every accessor returns a fresh,
// mutable copy rounded to the requested precision; a request above
// DefaultPrecision+32 bits gets the stored value with zero trailing bits,
// not further correct digits. The singleton itself never changes value.

var constOnce sync.Once
var (
	zeroConst     *BigFloat
	halfConst     *BigFloat
	oneConst      *BigFloat
	twoConst      *BigFloat
	threeConst    *BigFloat
	negOneConst   *BigFloat
	piConst       *BigFloat
	eConst        *BigFloat
	phiConst      *BigFloat
	sqrt2Const    *BigFloat
	sqrt3Const    *BigFloat
	ln10Const     *BigFloat
)

func initConstants() {
	constOnce.Do(func() {
		p := uint(DefaultPrecision + 32)
		zeroConst = literalConst(0, p)
		halfConst = literalConst(0.5, p)
		oneConst = literalConst(1, p)
		twoConst = literalConst(2, p)
		threeConst = literalConst(3, p)
		negOneConst = literalConst(-1, p)
		piConst = wrapConst(constPi(p))
		eConst = wrapConst(altree.Exp(big.NewFloat(1).SetPrec(p)))
		sqrt2Const = wrapConst(new(big.Float).SetPrec(p).Sqrt(big.NewFloat(2)))
		sqrt3Const = wrapConst(new(big.Float).SetPrec(p).Sqrt(big.NewFloat(3)))
		one := new(big.Float).SetPrec(p).SetInt64(1)
		num := new(big.Float).SetPrec(p).Add(one, new(big.Float).SetPrec(p).Sqrt(big.NewFloat(5)))
		phiConst = wrapConst(new(big.Float).SetPrec(p).Quo(num, big.NewFloat(2)))
		ln10Const = wrapConst(altree.Log(new(big.Float).SetPrec(p).SetInt64(10)))
	})
}

func literalConst(f float64, prec uint) *BigFloat {
	bf := newBigFloat(prec, Global, false)
	defaultPool.native(bf.h).SetFloat64(f)
	return bf.markConstant()
}

func wrapConst(v *big.Float) *BigFloat {
	bf := newBigFloat(v.Prec(), Global, false)
	defaultPool.native(bf.h).Set(v)
	return bf.markConstant()
}

func constAt(c *BigFloat, prec uint) *BigFloat {
	initConstants()
	if prec == 0 {
		prec = DefaultPrecision
	}
	out := New(prec)
	out.assignResult(new(big.Float).SetPrec(prec).Set(c.access()), false, 0)
	return out
}

func Zero(prec uint) *BigFloat   { return constAt(zeroConst, prec) }
func Half(prec uint) *BigFloat   { return constAt(halfConst, prec) }
func One(prec uint) *BigFloat    { return constAt(oneConst, prec) }
func Two(prec uint) *BigFloat    { return constAt(twoConst, prec) }
func Three(prec uint) *BigFloat  { return constAt(threeConst, prec) }
func NegOne(prec uint) *BigFloat { return constAt(negOneConst, prec) }
func Pi(prec uint) *BigFloat     { return constAt(piConst, prec) }
func E(prec uint) *BigFloat      { return constAt(eConst, prec) }

// Phi, Sqrt2, Sqrt3, Ln10 round out the constant set beyond the core
// Pi/E pair.
func Phi(prec uint) *BigFloat   { return constAt(phiConst, prec) }
func Sqrt2(prec uint) *BigFloat { return constAt(sqrt2Const, prec) }
func Sqrt3(prec uint) *BigFloat { return constAt(sqrt3Const, prec) }
func Ln10(prec uint) *BigFloat  { return constAt(ln10Const, prec) }

// minSubnormal and maxValue model "setMIN_VALUE"/"setMAX_VALUE" for an unbounded-exponent-style float: numkit does not fix an
// exponent range the way IEEE-754 doubles do, so these return the
// smallest/largest magnitude representable without overflowing a
// *big.Float's own internal int32 exponent range.
func minSubnormal(prec uint) *big.Float {
	r := new(big.Float).SetPrec(prec).SetInt64(1)
	r.SetMantExp(r, big.MinExp)
	return r
}

func maxValue(prec uint) *big.Float {
	r := new(big.Float).SetPrec(prec).SetInt64(1)
	r.SetMantExp(r, big.MaxExp-1)
	return r
}
