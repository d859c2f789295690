// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package bigfloat

import (
	"math/big"

	altree "github.com/ALTree/bigfloat"
)

// Op is the calc dispatch tag.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpOr  // integer bitwise, operands truncated to *big.Int
	OpXor
	OpAnd
	OpSqrt
	OpRoundPrec // round to a new precision at the given rounding mode
	OpRint      // round to an integer value at the given rounding mode
	OpMod       // round-to-zero remainder
	OpNeg
	OpAbs
	OpSign // result is -1, 0, or 1 packed into a BigFloat
	OpExp
	OpLog
	OpPow
	OpCos
	OpSin
	OpTan
	OpAtan
	OpAtan2
	OpAsin
	OpAcos
	OpRem    // round-to-nearest remainder
	OpDivRem // divrem: quotient truncated toward zero; the remainder is not returned
)

// calc dispatches a binary/unary native operation. a is
// always required; b is nil for unary ops. The returned Status records
// INVALID_OP / DIVIDE_ZERO / INEXACT as appropriate; the caller
// aggregates it into the owning BigFloat's status word.
func calc(op Op, a, b *big.Float, prec uint, rnd RoundingMode) (*big.Float, Status) {
	r := new(big.Float).SetPrec(prec).SetMode(rnd)

	switch op {
	case OpAdd:
		r.Add(a, b)
	case OpSub:
		r.Sub(a, b)
	case OpMul:
		r.Mul(a, b)
	case OpDiv:
		if b.Sign() == 0 {
			return r, StatusDivideZero | StatusInvalidOp
		}
		r.Quo(a, b)
	case OpOr, OpXor, OpAnd:
		ai, _ := a.Int(nil)
		bi, _ := b.Int(nil)
		ri := new(big.Int)
		switch op {
		case OpOr:
			ri.Or(ai, bi)
		case OpXor:
			ri.Xor(ai, bi)
		case OpAnd:
			ri.And(ai, bi)
		}
		r.SetInt(ri)
	case OpSqrt:
		if a.Sign() < 0 {
			return r, StatusInvalidOp
		}
		r.Sqrt(a)
	case OpRoundPrec:
		r.Set(a)
	case OpRint:
		return rint(a, prec, rnd)
	case OpMod:
		if b.Sign() == 0 {
			return r, StatusDivideZero | StatusInvalidOp
		}
		q := new(big.Float).SetPrec(prec + 32).Quo(a, b)
		qi, _ := rint(q, prec+32, ToZero)
		prod := new(big.Float).SetPrec(prec + 32).Mul(qi, b)
		r.Sub(a, prod)
	case OpNeg:
		r.Neg(a)
	case OpAbs:
		r.Abs(a)
	case OpSign:
		r.SetInt64(int64(a.Sign()))
	case OpExp:
		r = altree.Exp(withPrec(a, prec))
	case OpLog:
		if a.Sign() <= 0 {
			return r, StatusInvalidOp
		}
		r = altree.Log(withPrec(a, prec))
	case OpPow:
		return powJSQuirks(a, b, prec)
	case OpCos:
		r = seriesCos(a, prec)
	case OpSin:
		r = seriesSin(a, prec)
	case OpTan:
		sinv := seriesSin(a, prec)
		cosv := seriesCos(a, prec)
		if cosv.Sign() == 0 {
			return r, StatusDivideZero | StatusInvalidOp
		}
		r.Quo(sinv, cosv)
	case OpAtan:
		r = seriesAtan(a, prec)
	case OpAtan2:
		return atan2(a, b, prec), 0
	case OpAsin:
		if cmpAbsOne(a) > 0 {
			return r, StatusInvalidOp
		}
		r = seriesAsin(a, prec)
	case OpAcos:
		if cmpAbsOne(a) > 0 {
			return r, StatusInvalidOp
		}
		halfPi := constPi(prec)
		halfPi.Quo(halfPi, big.NewFloat(2))
		asinv := seriesAsin(a, prec)
		r.Sub(halfPi, asinv)
	case OpRem:
		return remNearest(a, b, prec)
	case OpDivRem:
		return divrem(a, b, prec)
	}

	st := Status(0)
	if !r.IsInt() && r.MinPrec() > 0 && op != OpSign {
		// A conservative inexactness signal: the ALTree/Taylor paths
		// above round internally to prec, so any result that isn't an
		// exact small integer is treated as potentially inexact.
		st |= StatusInexact
	}
	return r, st
}

func withPrec(a *big.Float, prec uint) *big.Float {
	if a.Prec() == prec {
		return a
	}
	return new(big.Float).SetPrec(prec).Set(a)
}

func cmpAbsOne(a *big.Float) int {
	abs := new(big.Float).SetPrec(a.Prec()).Abs(a)
	return abs.Cmp(big.NewFloat(1))
}

// rint rounds a to an integer value using the given rounding mode.
func rint(a *big.Float, prec uint, rnd RoundingMode) (*big.Float, Status) {
	r := new(big.Float).SetPrec(prec)
	i, acc := a.Int(nil)
	exact := acc == big.Exact
	ri := new(big.Float).SetPrec(prec).SetInt(i)
	if exact {
		return ri, 0
	}
	switch rnd {
	case ToZero:
		r.Set(ri)
	case ToPositiveInf:
		r.Set(ri)
		if a.Sign() > 0 {
			r.Add(r, big.NewFloat(1))
		}
	case ToNegativeInf:
		r.Set(ri)
		if a.Sign() < 0 {
			r.Sub(r, big.NewFloat(1))
		}
	case ToNearestEven, ToNearestAway, AwayFromZero:
		frac := new(big.Float).SetPrec(prec+8).Sub(a, ri)
		frac.Abs(frac)
		half := big.NewFloat(0.5)
		cmp := frac.Cmp(half)
		r.Set(ri)
		roundOut := false
		switch {
		case cmp > 0:
			roundOut = true
		case cmp == 0:
			if rnd == ToNearestAway || rnd == AwayFromZero {
				roundOut = true
			} else {
				// ties to even
				iBit := new(big.Int).Mod(i, big.NewInt(2))
				roundOut = iBit.Sign() != 0
			}
		}
		if roundOut {
			if a.Sign() < 0 {
				r.Sub(r, big.NewFloat(1))
			} else {
				r.Add(r, big.NewFloat(1))
			}
		}
	}
	return r, StatusInexact
}

// powJSQuirks implements setpow's documented JS-quirks bit:
// (±1)^(±∞) = NaN, 1^NaN = NaN. NaN handling of the operands themselves
// is the caller's (BigFloat façade's) responsibility; this function only
// encodes the ±1/±∞ special case and flags 0^negative as a division by
// zero and invalid operation, using ordinary math otherwise.
func powJSQuirks(a, b *big.Float, prec uint) (*big.Float, Status) {
	r := new(big.Float).SetPrec(prec)
	absA := new(big.Float).SetPrec(prec).Abs(a)
	if absA.Cmp(big.NewFloat(1)) == 0 && b.IsInf() {
		return r, StatusInvalidOp
	}
	if a.Sign() == 0 && b.Sign() < 0 {
		return r, StatusDivideZero | StatusInvalidOp
	}
	r = altree.Pow(withPrec(a, prec), withPrec(b, prec))
	return r, 0
}

func remNearest(a, b *big.Float, prec uint) (*big.Float, Status) {
	if b.Sign() == 0 {
		return new(big.Float).SetPrec(prec), StatusInvalidOp
	}
	q := new(big.Float).SetPrec(prec + 32).Quo(a, b)
	qi, st := rint(q, prec+32, ToNearestEven)
	_ = st
	prod := new(big.Float).SetPrec(prec + 32).Mul(qi, b)
	r := new(big.Float).SetPrec(prec).Sub(a, prod)
	return r, 0
}

func divrem(a, b *big.Float, prec uint) (*big.Float, Status) {
	if b.Sign() == 0 {
		return new(big.Float).SetPrec(prec), StatusDivideZero | StatusInvalidOp
	}
	q := new(big.Float).SetPrec(prec + 32).Quo(a, b)
	qi, _ := rint(q, prec, ToZero)
	return qi, 0
}
