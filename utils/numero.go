package utils

import (
	"fmt"
	"time"
)

// NumeroFacture formats the invoice number for the given save instant,
// "FQ/YYYY/MM/DD/HH:MM" in local time. Two saves within the same minute
// produce the same number; deduplication is the caller's concern.
func NumeroFacture(t time.Time) string {
	return fmt.Sprintf("FQ/%04d/%02d/%02d/%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// NumeroBordereau formats the deposit-slip number for the given batch date,
// "M-YYYY-MM-WW-DDD" with the ISO week number and the day of year padded
// to three digits.
func NumeroBordereau(t time.Time) string {
	_, week := t.ISOWeek()
	return fmt.Sprintf("M-%d-%02d-%02d-%03d",
		t.Year(), int(t.Month()), week, t.YearDay())
}
