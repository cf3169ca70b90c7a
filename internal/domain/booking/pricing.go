package booking

import "time"

// ComputeTotalPrice returns nightlyRate * nights. There is no rounding
// beyond float64 precision.
func ComputeTotalPrice(nightlyRate float64, checkIn, checkOut time.Time) (float64, error) {
	nights := nightsBetween(checkIn, checkOut)
	if nights < 1 {
		return 0, ErrInvalidRange
	}
	return nightlyRate * float64(nights), nil
}
