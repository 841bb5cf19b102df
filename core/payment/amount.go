package payment

import (
	"errors"
	"math"
)

var ErrInvalidPrice = errors.New("invalid price")

// Amount converts a price in major units to the provider's minor units,
// truncating fractions of a cent.
func Amount(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrInvalidPrice
	}

	cents := math.Trunc(price * 100)
	if cents < 1 || cents >= math.MaxInt64 {
		return 0, ErrInvalidPrice
	}
	return int64(cents), nil
}
