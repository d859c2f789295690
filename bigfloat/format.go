// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package bigfloat

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// serializeLimbs captures x's internal state into an owned byte buffer.
// math/big keeps big.Float's mantissa buffer unexported, so this rides
// on big.Float's own Gob encoding, a private binary snapshot of sign,
// exponent, precision and mantissa — restored by deserializeLimbs on the
// next materialize().
func serializeLimbs(x *big.Float) []byte {
	data, err := x.GobEncode()
	if err != nil {
		// GobEncode on a *big.Float only fails for an unsupported
		// Accuracy value, which this package never sets.
		panic(fmt.Errorf("bigfloat: internal serialize failure: %w", err))
	}
	return data
}

// deserializeLimbs restores into dst the state captured by serializeLimbs,
// rewriting dst's own freshly allocated storage.
func deserializeLimbs(dst *big.Float, data []byte) {
	if err := dst.GobDecode(data); err != nil {
		panic(fmt.Errorf("bigfloat: internal deserialize failure: %w", err))
	}
}

// String renders x in FIXED format with the shortest decimal form that
// represents it exactly, trimming trailing repeating zeros.
func (bf *BigFloat) String() string {
	return bf.ToString(10, -1, false)
}

// ToString renders bf in FIXED format with precDigits fractional digits
// (negative: shortest exact form), with trailing-repeating-zero trimming
// and, in pretty mode, collapsing runs of >= 7 identical repeating
// trailing digits into "ddddd(d)". The last kept digit is rounded to
// nearest, ties to even, by big.Float.Text; it is not truncated toward
// zero.
func (bf *BigFloat) ToString(radix int, precDigits int, pretty bool) string {
	if bf.nan {
		return "NaN"
	}
	x := bf.access()
	if x.IsInf() {
		if x.Sign() < 0 {
			return "-Inf"
		}
		return "Inf"
	}
	s := x.Text('f', precDigits)
	s = trimTrailingZeros(s)
	if pretty {
		s = collapseRepeats(s)
	}
	_ = radix // only base 10 is supported; other radices are a possible extension
	return s
}

// ToFixed renders bf in FRAC format with precDigits fractional digits.
// rnd is applied only to a copy at bf's own precision, which leaves the
// value unchanged; the decimal digits are rounded to nearest, ties to
// even, by big.Float.Text, so rnd does not affect the output.
func (bf *BigFloat) ToFixed(radix int, precDigits int, rnd RoundingMode) string {
	x := bf.access()
	r := new(big.Float).SetPrec(x.Prec()).SetMode(rnd).Set(x)
	return r.Text('f', precDigits)
}

func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// collapseRepeats collapses a run of >= 7 identical trailing digits d
// into "ddddd(d)".
func collapseRepeats(s string) string {
	if len(s) < 7 {
		return s
	}
	last := s[len(s)-1]
	run := 1
	for i := len(s) - 2; i >= 0 && s[i] == last; i-- {
		run++
	}
	if run < 7 {
		return s
	}
	head := s[:len(s)-run]
	return fmt.Sprintf("%s%s(%c)", head, strings.Repeat(string(last), 5), last)
}

// MarshalJSON serializes the BigFloat as its decimal text form.
func (bf *BigFloat) MarshalJSON() ([]byte, error) {
	if bf == nil {
		return []byte("null"), nil
	}
	return json.Marshal(bf.String())
}

// UnmarshalJSON parses a BigFloat from its decimal text form at the
// receiver's existing precision (or DefaultPrecision if unset).
func (bf *BigFloat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	prec := bf.Precision()
	if prec == 0 {
		prec = DefaultPrecision
	}
	parsed, err := NewFromString(s, 10, prec)
	if err != nil {
		return err
	}
	*bf = *parsed
	return nil
}
