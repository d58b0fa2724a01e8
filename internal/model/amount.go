package model

import (
	"errors"
	"math"
	"strconv"
)

// Scale is the fixed-point scale factor: 1 unit = 10000 hundred-thousandths.
// All balance arithmetic happens in this integer unit so that long
// add/subtract histories never accumulate floating-point drift.
const Scale = 10000

// Amount is a monetary amount in integer hundred-thousandths of a unit.
type Amount int64

// ErrBadAmount indicates an amount token that could not be parsed.
var ErrBadAmount = errors.New("malformed amount")

// ParseAmount converts a decimal string (e.g., "25.50") to fixed-point.
// Rounds to the nearest hundred-thousandth to absorb floating point
// error in the intermediate parse (e.g., 0.1 * 10000 = 999.999...).
func ParseAmount(s string) (Amount, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrBadAmount
	}
	return FromFloat(f), nil
}

// FromFloat converts a decimal value to fixed-point, rounding to the
// nearest integer unit.
func FromFloat(f float64) Amount {
	return Amount(math.Round(f * Scale))
}

// Float returns the decimal value of the amount.
func (a Amount) Float() float64 {
	return float64(a) / Scale
}

// String renders the amount as a decimal with 4 fractional digits.
// Used only at the reporting boundary.
func (a Amount) String() string {
	return strconv.FormatFloat(a.Float(), 'f', 4, 64)
}
