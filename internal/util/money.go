package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prices are fixed-point decimals carried as int64 cents. They are stored
// and serialized as strings with exactly two decimal places, never as
// binary floats.

var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice converts a non-negative decimal string into cents.
// Extra fractional digits are rounded half away from zero, so "3.999"
// becomes 400 cents.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidPrice
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidPrice
	}
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return 0, ErrInvalidPrice
	}

	var cents int64
	if intPart != "" {
		whole, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return 0, ErrInvalidPrice
		}
		if whole > (1<<62)/100 {
			return 0, ErrInvalidPrice
		}
		cents = whole * 100
	}

	switch {
	case len(fracPart) == 0:
	case len(fracPart) == 1:
		cents += int64(fracPart[0]-'0') * 10
	default:
		cents += int64(fracPart[0]-'0')*10 + int64(fracPart[1]-'0')
		if fracPart[2:] != "" && fracPart[2] >= '5' {
			cents++
		}
	}
	return cents, nil
}

// FormatCents renders cents as a 2-decimal string: 1050 -> "10.50".
func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// MulCents computes cents*qty, rejecting results that overflow or go
// negative (the fixed-point analogue of a non-finite total).
func MulCents(cents int64, qty int) (int64, error) {
	if cents < 0 || qty < 0 {
		return 0, ErrInvalidPrice
	}
	if cents == 0 || qty == 0 {
		return 0, nil
	}
	total := cents * int64(qty)
	if total/int64(qty) != cents || total < 0 {
		return 0, ErrInvalidPrice
	}
	return total, nil
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
