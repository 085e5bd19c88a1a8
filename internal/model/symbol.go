package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidSymbol is returned for tickers that cannot be looked up.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrNoData is returned by providers that answered without usable data.
	ErrNoData = errors.New("no data returned")
)

var symbolRe = regexp.MustCompile(`^[A-Z0-9.^=-]{1,12}$`)

// NormalizeSymbol trims and upper-cases a user supplied ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidateSymbol checks an already normalized ticker.
func ValidateSymbol(s string) error {
	if !symbolRe.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
	}
	return nil
}

// ParseSymbol normalizes and validates in one step.
func ParseSymbol(s string) (string, error) {
	sym := NormalizeSymbol(s)
	if err := ValidateSymbol(sym); err != nil {
		return "", err
	}
	return sym, nil
}
