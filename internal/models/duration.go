package models

import (
	"fmt"
	"math"
)

// FormatDuration форматирует секунды как HH:MM:SS.
// Часы и минуты усекаются, остаток секунд округляется. Ноль и отрицательные значения - "00:00:00".
func FormatDuration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return "00:00:00"
	}
	return formatHMS(seconds)
}

// FormatSignedDuration форматирует разницу со знаком: -3661 -> "-01:01:01"
func FormatSignedDuration(seconds float64) string {
	if math.IsNaN(seconds) {
		return "00:00:00"
	}
	sign := ""
	if seconds < 0 {
		sign = "-"
	}
	return sign + formatHMS(math.Abs(seconds))
}

func formatHMS(seconds float64) string {
	h := int64(seconds / 3600)
	m := int64(math.Mod(seconds, 3600) / 60)
	s := int64(math.RoundToEven(math.Mod(seconds, 60)))
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
