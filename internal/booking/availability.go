package booking

import "github.com/shopspring/decimal"

// Overlaps reports whether the half-open stays [aIn, aOut) and [bIn, bOut)
// share a night. Back-to-back stays do not overlap.
func Overlaps(aIn, aOut, bIn, bOut Date) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// Nights is zero for empty or inverted ranges.
func Nights(checkIn, checkOut Date) int {
	n := checkIn.DaysUntil(checkOut)
	if n < 0 {
		return 0
	}

	return n
}

func TotalPrice(nightly decimal.Decimal, checkIn, checkOut Date) decimal.Decimal {
	return nightly.Mul(decimal.NewFromInt(int64(Nights(checkIn, checkOut))))
}
