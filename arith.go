// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ltcore

import (
	"math"
	"strconv"
	"strings"
)

// Add, Sub, Mul, Div, Neg follow IEEE-754 directly via Go's float64
// operators. Pow uses math.Pow. Mod and integer-division-Mod are defined in
// terms of floor, per §4.B.

// Add returns a + b.
func Add(a, b float64) float64 { return a + b }

// Sub returns a - b.
func Sub(a, b float64) float64 { return a - b }

// Mul returns a * b.
func Mul(a, b float64) float64 { return a * b }

// Div returns a / b.
func Div(a, b float64) float64 { return a / b }

// Neg returns -a.
func Neg(a float64) float64 { return -a }

// Pow returns a raised to the b-th power.
func Pow(a, b float64) float64 { return math.Pow(a, b) }

// IDiv returns floor(a/b), Lua's integer-division operator on floats.
func IDiv(a, b float64) float64 { return math.Floor(a / b) }

// Mod returns a - floor(a/b)*b, Lua's modulo operator.
func Mod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// StringToNumber parses s as a Lua numeral: decimal or hexadecimal (0x
// prefix, optional fractional '.', optional binary exponent p±), rejecting
// "inf"/"nan" tokens, tolerating leading/trailing whitespace, and requiring
// at least one digit. It reports ok=false for anything else.
func StringToNumber(s string) (n float64, ok bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, false
	}

	lower := strings.ToLower(t)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") {
		return 0, false
	}

	neg := false
	rest := t
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		neg = rest[0] == '-'
		rest = rest[1:]
	}

	if len(rest) > 2 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		v, ok := parseHexFloat(rest[2:])
		if !ok {
			return 0, false
		}
		if neg {
			v = -v
		}
		return v, true
	}

	if !hasDigit(rest) {
		return 0, false
	}

	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// parseHexFloat parses the body of a hexadecimal numeral after the "0x"
// prefix: hex digits, optional '.', optional fractional hex digits,
// optional binary exponent introduced by 'p' or 'P'.
func parseHexFloat(body string) (float64, bool) {
	if body == "" {
		return 0, false
	}

	mantissa := body
	exp := 0
	hasExp := false
	if i := strings.IndexAny(body, "pP"); i >= 0 {
		mantissa = body[:i]
		expStr := body[i+1:]
		e, err := strconv.Atoi(expStr)
		if err != nil {
			return 0, false
		}
		exp = e
		hasExp = true
	}

	intPart := mantissa
	fracPart := ""
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		intPart = mantissa[:i]
		fracPart = mantissa[i+1:]
	}

	if intPart == "" && fracPart == "" {
		return 0, false
	}
	if !isAllHex(intPart) || !isAllHex(fracPart) {
		return 0, false
	}

	var v float64
	for _, c := range intPart {
		v = v*16 + float64(hexDigit(byte(c)))
	}

	scale := 1.0 / 16
	for _, c := range fracPart {
		v += float64(hexDigit(byte(c))) * scale
		scale /= 16
	}

	if hasExp {
		v *= math.Pow(2, float64(exp))
	}

	return v, true
}

func isAllHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
