package generator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var viPrinter = message.NewPrinter(language.Vietnamese)

// FormatCount groups digits the vi-VN way, e.g. 12345 -> "12.345".
func FormatCount(n int) string {
	return viPrinter.Sprintf("%d", n)
}

// FormatAcqTime turns a satellite acquisition time (HHMM as an integer)
// into "HH:MM", e.g. 930 -> "09:30".
func FormatAcqTime(acqTime int) string {
	s := fmt.Sprintf("%04d", acqTime)
	return s[:2] + ":" + s[2:4]
}

// FormatNumber prints v with the fewest digits that round-trip, like a
// plain JavaScript number.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatFixed prints v with the given number of decimals.
func FormatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// FormatTimestamp formats t the way vi-VN locales print date-times.
func FormatTimestamp(t time.Time) string {
	return t.Format("15:04:05 2/1/2006")
}

// MonthLabel returns the Vietnamese label of month m (1-12).
func MonthLabel(m int) string {
	return "Tháng " + strconv.Itoa(m)
}

// acqDateLabel returns the acquisition date, or "Hôm nay" when unknown.
func acqDateLabel(date string) string {
	if strings.TrimSpace(date) == "" {
		return "Hôm nay"
	}
	return date
}
