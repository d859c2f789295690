// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package bigfloat

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrConstantMutation is the fail-fast error raised when an in-place
// setter targets a BigFloat constructed with constant=true).
var ErrConstantMutation = errors.New("bigfloat: cannot mutate a constant value")

// CalcError reports a BF_ST_INVALID_OP that the owning Context is
// configured to raise rather than silently log.
type CalcError struct {
	Op     Op
	Status Status
}

func (e *CalcError) Error() string {
	return fmt.Sprintf("bigfloat: invalid operation (op=%d, status=%#x)", e.Op, e.Status)
}

// BigFloat is a handle-pool-managed, arbitrary-precision binary float.
// It owns at most one native handle at a time: resident handles hold
// live limbs in the pool's slab; evicted ones hold a serialized byte
// buffer instead.
type BigFloat struct {
	h        handle
	resident bool
	buf      []byte
	prec     uint
	nan      bool

	visitStamp uint32
	inLive     bool
	managed    bool // false for unmanaged scratch constants
	constant   bool

	ctx    *Context
	status Status
}

func newBigFloat(prec uint, ctx *Context, managed bool) *BigFloat {
	if ctx == nil {
		ctx = Global
	}
	if prec == 0 {
		prec = ctx.Precision()
	}
	bf := &BigFloat{prec: prec, ctx: ctx, managed: managed}
	h := defaultPool.acquire()
	defaultPool.native(h).SetPrec(prec)
	bf.h = h
	bf.resident = true
	if managed {
		defaultPool.visit(bf, true)
	}
	return bf
}

// New allocates a zero-valued, managed BigFloat at the given precision
// (0 meaning "the context's current precision").
func New(prec uint) *BigFloat { return newBigFloat(prec, Global, true) }

// NewWithContext is New scoped to an explicit Context.
func NewWithContext(prec uint, ctx *Context) *BigFloat {
	return newBigFloat(prec, ctx, true)
}

// NewFromFloat64 constructs a BigFloat from a float64, mapping NaN and
// ±Inf to sentinel values rather than propagating math/big's own
// representation of them.
func NewFromFloat64(f float64, prec uint) *BigFloat {
	bf := newBigFloat(prec, Global, true)
	if isNaN64(f) {
		return bf.setNaN()
	}
	if isInf64(f) {
		defaultPool.native(bf.h).SetInf(f < 0)
		return bf
	}
	defaultPool.native(bf.h).SetFloat64(f)
	return bf
}

func isNaN64(f float64) bool { return f != f }
func isInf64(f float64) bool { return f > maxFloat64 || f < -maxFloat64 }

const maxFloat64 = 1.7976931348623157e+308

// NewFromString constructs a BigFloat by parsing s in the given radix.
func NewFromString(s string, radix int, prec uint) (*BigFloat, error) {
	bf := newBigFloat(prec, Global, true)
	nf := defaultPool.native(bf.h)
	_, _, err := nf.Parse(s, radix)
	if err != nil {
		bf.Dispose()
		return nil, fmt.Errorf("bigfloat: parse %q: %w", s, err)
	}
	return bf, nil
}

// NewFromBigInt constructs an exact BigFloat from a big.Int.
func NewFromBigInt(i *big.Int, prec uint) *BigFloat {
	bf := newBigFloat(prec, Global, true)
	defaultPool.native(bf.h).SetInt(i)
	return bf
}

// NaN returns a NaN-valued BigFloat at the given precision.
func NaN(prec uint) *BigFloat {
	bf := newBigFloat(prec, Global, true)
	return bf.setNaN()
}

func (bf *BigFloat) setNaN() *BigFloat {
	if bf.resident {
		defaultPool.release(bf.h, true)
	}
	bf.resident = false
	bf.h = handle{}
	bf.buf = nil
	bf.nan = true
	return bf
}

// Clone returns an independent copy of bf at the same precision, not
// marked constant.
func (bf *BigFloat) Clone() *BigFloat {
	if bf.nan {
		return NaN(bf.Precision())
	}
	out := newBigFloat(bf.Precision(), bf.ctx, true)
	defaultPool.native(out.h).Set(bf.access())
	return out
}

// markConstant freezes bf in place; used only for the process-wide
// singleton constants.
func (bf *BigFloat) markConstant() *BigFloat {
	bf.managed = false
	defaultPool.forget(bf)
	bf.constant = true
	return bf
}

func (bf *BigFloat) checkMutable() {
	if bf.constant {
		panic(ErrConstantMutation)
	}
}

// access ensures bf has a resident native value and returns it. NaN
// values return a scratch zero float; callers must check IsNaN() first
// for any operation whose result depends on NaN propagation.
func (bf *BigFloat) access() *big.Float {
	if bf.nan {
		return new(big.Float).SetPrec(bf.prec)
	}
	if !bf.resident {
		bf.materialize()
	}
	if bf.managed {
		defaultPool.visit(bf, true)
	}
	return defaultPool.native(bf.h)
}

func (bf *BigFloat) materialize() {
	h := defaultPool.acquire()
	nf := defaultPool.native(h)
	if bf.buf != nil {
		deserializeLimbs(nf, bf.buf)
	} else {
		nf.SetPrec(bf.prec)
	}
	bf.h = h
	bf.resident = true
}

// evict serializes bf's limbs into an owned buffer and returns its
// native handle to the pool: a disposed BigFloat stays logically valid
// and rehydrates its handle lazily on next access.
func (bf *BigFloat) evict() {
	if !bf.resident {
		return
	}
	nf := defaultPool.native(bf.h)
	bf.buf = serializeLimbs(nf)
	bf.prec = nf.Prec()
	defaultPool.release(bf.h, true)
	bf.resident = false
	bf.h = handle{}
	bf.inLive = false
}

// Dispose explicitly releases bf's native handle back to the pool ahead
// of any gc() cycle. bf remains usable: the next access rehydrates it.
func (bf *BigFloat) Dispose() {
	if bf.nan {
		return
	}
	defaultPool.forget(bf)
	bf.evict()
}

// Precision returns bf's bit precision.
func (bf *BigFloat) Precision() uint {
	if bf.resident {
		return defaultPool.native(bf.h).Prec()
	}
	return bf.prec
}

// Status returns the accumulated status word.
func (bf *BigFloat) Status() Status { return bf.status }

// ClearStatus resets the accumulated status word.
func (bf *BigFloat) ClearStatus() { bf.status = 0 }

// --- queries ---

func (bf *BigFloat) IsNaN() bool   { return bf.nan }
func (bf *BigFloat) IsFinite() bool {
	if bf.nan {
		return false
	}
	return !bf.access().IsInf()
}
func (bf *BigFloat) IsInf() bool { return !bf.nan && bf.access().IsInf() }

// IsExactZero reports bit-level equality to zero.
func (bf *BigFloat) IsExactZero() bool {
	return !bf.nan && bf.access().Sign() == 0
}

// IsAlmostZero reports |x| <= eps_p where eps_p = 2^(1-p), cached per
// precision p.
func (bf *BigFloat) IsAlmostZero() bool {
	if bf.nan {
		return false
	}
	eps := almostZeroEpsilon(bf.Precision())
	abs := new(big.Float).SetPrec(bf.Precision()).Abs(bf.access())
	return abs.Cmp(eps) <= 0
}

var almostZeroCache = map[uint]*big.Float{}

func almostZeroEpsilon(prec uint) *big.Float {
	if e, ok := almostZeroCache[prec]; ok {
		return e
	}
	e := new(big.Float).SetPrec(prec).SetMantExp(big.NewFloat(1), 1-int(prec))
	almostZeroCache[prec] = e
	return e
}

// Float64 converts to a double using the library's rounding convention.
func (bf *BigFloat) Float64() float64 {
	if bf.nan {
		return nan64()
	}
	f, _ := bf.access().Float64()
	return f
}

func nan64() float64 {
	var zero float64
	return zero / zero
}

// Sign returns -1, 0, or +1; NaN's sign is reported as 0.
func (bf *BigFloat) Sign() int {
	if bf.nan {
		return 0
	}
	return bf.access().Sign()
}

// Cmp provides a total order consistent with ℝ on finite values. Any
// comparison involving NaN returns 2, a sentinel the Lt/Le/Gt/Ge/Eq
// helpers interpret as "unordered".
func (bf *BigFloat) Cmp(other *BigFloat) int {
	if bf.nan || other.nan {
		return 2
	}
	return bf.access().Cmp(other.access())
}

func (bf *BigFloat) Lt(o *BigFloat) bool { c := bf.Cmp(o); return c != 2 && c < 0 }
func (bf *BigFloat) Le(o *BigFloat) bool { c := bf.Cmp(o); return c != 2 && c <= 0 }
func (bf *BigFloat) Gt(o *BigFloat) bool { c := bf.Cmp(o); return c != 2 && c > 0 }
func (bf *BigFloat) Ge(o *BigFloat) bool { c := bf.Cmp(o); return c != 2 && c >= 0 }
func (bf *BigFloat) Eq(o *BigFloat) bool { c := bf.Cmp(o); return c != 2 && c == 0 }

// --- calc dispatch plumbing ---

func (bf *BigFloat) resolvePrec(prec uint) uint {
	if prec != 0 {
		return prec
	}
	return bf.ctx.Precision()
}

// apply is the shared plumbing behind every in-place setter: it dispatches
// to calc(), aggregates status, and applies the throwExceptionOnInvalidOp
// policy.
func (bf *BigFloat) apply(op Op, a, b *BigFloat, prec uint, rnd RoundingMode) *BigFloat {
	bf.checkMutable()
	prec = bf.resolvePrec(prec)

	if a.nan || (b != nil && b.nan) {
		return bf.assignResult(new(big.Float).SetPrec(prec), true, 0)
	}

	x := a.access()
	var y *big.Float
	if b != nil {
		y = b.access()
	}
	r, st := calc(op, x, y, prec, rnd)
	if st&StatusInvalidOp != 0 && bf.ctx.ThrowOnInvalidOp {
		bf.status |= st
		panic(&CalcError{Op: op, Status: st})
	}
	return bf.assignResult(r, false, st)
}

func (bf *BigFloat) assignResult(r *big.Float, asNaN bool, st Status) *BigFloat {
	bf.status |= st
	if st&StatusInvalidOp != 0 {
		if bf.ctx.ThrowOnInvalidOp {
			panic(&CalcError{Status: st})
		}
		Logger.Warn("bigfloat: invalid operation", "status", st)
		asNaN = true
	}
	if st&StatusDivideZero != 0 {
		Logger.Warn("bigfloat: division by zero")
	}

	if asNaN {
		return bf.setNaN()
	}

	if bf.resident {
		defaultPool.release(bf.h, true)
	}
	h := defaultPool.acquire()
	defaultPool.native(h).SetPrec(r.Prec()).Set(r)
	bf.h = h
	bf.resident = true
	bf.buf = nil
	bf.nan = false
	if bf.managed {
		defaultPool.visit(bf, true)
	}
	return bf
}

func (bf *BigFloat) unary(op Op, a *BigFloat, prec uint, rnd RoundingMode) *BigFloat {
	return bf.apply(op, a, nil, prec, rnd)
}

// --- in-place setters ---

func (bf *BigFloat) SetAdd(a, b *BigFloat, prec uint, rnd RoundingMode) *BigFloat {
	return bf.apply(OpAdd, a, b, prec, rnd)
}
func (bf *BigFloat) SetSub(a, b *BigFloat, prec uint, rnd RoundingMode) *BigFloat {
	return bf.apply(OpSub, a, b, prec, rnd)
}
func (bf *BigFloat) SetMul(a, b *BigFloat, prec uint, rnd RoundingMode) *BigFloat {
	return bf.apply(OpMul, a, b, prec, rnd)
}
func (bf *BigFloat) SetDiv(a, b *BigFloat, prec uint, rnd RoundingMode) *BigFloat {
	return bf.apply(OpDiv, a, b, prec, rnd)
}

// SetMod sets bf = a mod b using round-to-zero remainder semantics.
func (bf *BigFloat) SetMod(a, b *BigFloat, prec uint) *BigFloat {
	return bf.apply(OpMod, a, b, prec, ToZero)
}

// SetRem sets bf = a rem b using round-to-nearest remainder semantics.
func (bf *BigFloat) SetRem(a, b *BigFloat, prec uint) *BigFloat {
	return bf.apply(OpRem, a, b, prec, ToNearestEven)
}

func (bf *BigFloat) SetOr(a, b *BigFloat, prec uint) *BigFloat {
	return bf.apply(OpOr, a, b, prec, ToNearestEven)
}
func (bf *BigFloat) SetXor(a, b *BigFloat, prec uint) *BigFloat {
	return bf.apply(OpXor, a, b, prec, ToNearestEven)
}
func (bf *BigFloat) SetAnd(a, b *BigFloat, prec uint) *BigFloat {
	return bf.apply(OpAnd, a, b, prec, ToNearestEven)
}

func (bf *BigFloat) SetSqrt(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpSqrt, a, prec, ToNearestEven)
}

// SetFPRound rounds a to prec bits using mode.
func (bf *BigFloat) SetFPRound(a *BigFloat, prec uint, rnd RoundingMode) *BigFloat {
	return bf.unary(OpRoundPrec, a, prec, rnd)
}

// SetRound/SetTrunc/SetFloor/SetCeil are rint at precision 0 with the
// corresponding rounding mode.
func (bf *BigFloat) SetRound(a *BigFloat) *BigFloat { return bf.unary(OpRint, a, 0, ToNearestEven) }
func (bf *BigFloat) SetTrunc(a *BigFloat) *BigFloat { return bf.unary(OpRint, a, 0, ToZero) }
func (bf *BigFloat) SetFloor(a *BigFloat) *BigFloat { return bf.unary(OpRint, a, 0, ToNegativeInf) }
func (bf *BigFloat) SetCeil(a *BigFloat) *BigFloat  { return bf.unary(OpRint, a, 0, ToPositiveInf) }

func (bf *BigFloat) SetNeg(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpNeg, a, prec, ToNearestEven)
}
func (bf *BigFloat) SetAbs(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpAbs, a, prec, ToNearestEven)
}
func (bf *BigFloat) SetSign(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpSign, a, prec, ToNearestEven)
}

func (bf *BigFloat) SetLOG2(prec uint) *BigFloat {
	bf.checkMutable()
	prec = bf.resolvePrec(prec)
	two := New(prec + 32)
	two.assignResult(new(big.Float).SetPrec(prec+32).SetInt64(2), false, 0)
	r, st := calc(OpLog, two.access(), nil, prec, ToNearestEven)
	return bf.assignResult(r, false, st)
}
func (bf *BigFloat) SetPI(prec uint) *BigFloat {
	bf.checkMutable()
	prec = bf.resolvePrec(prec)
	return bf.assignResult(constPi(prec), false, 0)
}
func (bf *BigFloat) SetMIN_VALUE(prec uint) *BigFloat {
	bf.checkMutable()
	prec = bf.resolvePrec(prec)
	return bf.assignResult(minSubnormal(prec), false, 0)
}
func (bf *BigFloat) SetMAX_VALUE(prec uint) *BigFloat {
	bf.checkMutable()
	prec = bf.resolvePrec(prec)
	return bf.assignResult(maxValue(prec), false, 0)
}
func (bf *BigFloat) SetEPSILON(prec uint) *BigFloat {
	bf.checkMutable()
	prec = bf.resolvePrec(prec)
	return bf.assignResult(epsilonAt(prec), false, 0)
}

func (bf *BigFloat) SetExp(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpExp, a, prec, ToNearestEven)
}
func (bf *BigFloat) SetLog(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpLog, a, prec, ToNearestEven)
}

// SetPow sets bf = a^b, applying JavaScript's quirky pow corner cases:
// (±1)^(±∞) = NaN, 1^NaN = NaN.
func (bf *BigFloat) SetPow(a, b *BigFloat, prec uint) *BigFloat {
	return bf.apply(OpPow, a, b, prec, ToNearestEven)
}

func (bf *BigFloat) SetCos(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpCos, a, prec, ToNearestEven)
}
func (bf *BigFloat) SetSin(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpSin, a, prec, ToNearestEven)
}
func (bf *BigFloat) SetTan(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpTan, a, prec, ToNearestEven)
}
func (bf *BigFloat) SetAtan(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpAtan, a, prec, ToNearestEven)
}
func (bf *BigFloat) SetAtan2(y, x *BigFloat, prec uint) *BigFloat {
	return bf.apply(OpAtan2, y, x, prec, ToNearestEven)
}
func (bf *BigFloat) SetAsin(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpAsin, a, prec, ToNearestEven)
}
func (bf *BigFloat) SetAcos(a *BigFloat, prec uint) *BigFloat {
	return bf.unary(OpAcos, a, prec, ToNearestEven)
}

// --- pure combinators: return a new BigFloat, never mutate operands ---

func (a *BigFloat) Add(b *BigFloat, prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetAdd(a, b, prec, ToNearestEven)
}
func (a *BigFloat) Sub(b *BigFloat, prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetSub(a, b, prec, ToNearestEven)
}
func (a *BigFloat) Mul(b *BigFloat, prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetMul(a, b, prec, ToNearestEven)
}
func (a *BigFloat) Div(b *BigFloat, prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetDiv(a, b, prec, ToNearestEven)
}
func (a *BigFloat) Mod(b *BigFloat, prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetMod(a, b, prec)
}
func (a *BigFloat) Rem(b *BigFloat, prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetRem(a, b, prec)
}
func (a *BigFloat) Sqrt(prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetSqrt(a, prec)
}
func (a *BigFloat) Neg(prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetNeg(a, prec)
}
func (a *BigFloat) Abs(prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetAbs(a, prec)
}
func (a *BigFloat) Exp(prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetExp(a, prec)
}
func (a *BigFloat) Log(prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetLog(a, prec)
}
func (a *BigFloat) Pow(b *BigFloat, prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetPow(a, b, prec)
}
func (a *BigFloat) Cos(prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetCos(a, prec)
}
func (a *BigFloat) Sin(prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetSin(a, prec)
}
func (a *BigFloat) Tan(prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetTan(a, prec)
}
func (a *BigFloat) Atan(prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetAtan(a, prec)
}
func (y *BigFloat) Atan2(x *BigFloat, prec uint) *BigFloat {
	return newBigFloat(y.resolvePrec(prec), y.ctx, true).SetAtan2(y, x, prec)
}
func (a *BigFloat) Asin(prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetAsin(a, prec)
}
func (a *BigFloat) Acos(prec uint) *BigFloat {
	return newBigFloat(a.resolvePrec(prec), a.ctx, true).SetAcos(a, prec)
}

// --- rounded convenience wrappers ---

// CalcRounded performs op at workPrec = prec+32 and rounds the result
// down to prec at the given rounding mode, returning the ternary value
// (-1 rounded down, 0 exact, +1 rounded up) for every opcode uniformly.
func CalcRounded(op Op, a, b *BigFloat, prec uint, rnd RoundingMode) (result *BigFloat, ternary int) {
	workPrec := prec + 32
	tmp := newBigFloat(workPrec, a.ctx, false)
	tmp.apply(op, a, b, workPrec, ToNearestEven)
	out := newBigFloat(prec, a.ctx, true)
	out.assignResult(new(big.Float).SetPrec(prec).SetMode(rnd).Set(tmp.access()), tmp.nan, tmp.status)

	diff := new(big.Float).SetPrec(workPrec).Sub(tmp.access(), out.access())
	switch diff.Sign() {
	case 0:
		ternary = 0
	case 1:
		ternary = -1
	default:
		ternary = 1
	}
	return out, ternary
}
