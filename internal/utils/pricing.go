package utils

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the wire format for booking dates (calendar dates, no time component)
const DateLayout = "2006-01-02"

// maxAmount keeps cents conversions well inside int64
const maxAmount = 1e12

const secondsPerDay = 24 * 60 * 60

// ErrPriceOutOfRange is returned when rate × days does not fit in int64 cents.
var ErrPriceOutOfRange = errors.New("booking price is out of range")

// ParseDate converts a yyyy-mm-dd formatted string into a UTC midnight time
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", dateStr)
	}
	return t, nil
}

// FormatDate renders a date in the wire format
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DaysBetween returns end - start in whole calendar days. It is negative when end precedes start.
// Computed from Unix seconds; a time.Duration saturates past about 292 years.
func DaysBetween(start, end time.Time) int64 {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return (e.Unix() - s.Unix()) / secondsPerDay
}

// CalculateBookingPrice prices a booking from the tool's daily rate:
// rate × (end - start) days. No minimum is applied.
func CalculateBookingPrice(dailyRateCents int64, start, end time.Time) (int64, error) {
	days := DaysBetween(start, end)
	if days != 0 && dailyRateCents != 0 {
		if absInt64(dailyRateCents) > math.MaxInt64/absInt64(days) {
			return 0, ErrPriceOutOfRange
		}
	}
	return dailyRateCents * days, nil
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// CentsFromAmount converts a decimal currency amount into integer cents
func CentsFromAmount(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("amount must be a finite number")
	}
	if math.Abs(amount) > maxAmount {
		return 0, fmt.Errorf("amount is out of range")
	}
	return int64(math.Round(amount * 100)), nil
}

// AmountFromCents converts integer cents back into a decimal amount
func AmountFromCents(cents int64) float64 {
	return float64(cents) / 100
}
