// Package worktime содержит арифметику длительностей услуг.
// Длительность услуги приходит от бэкенда в формате "HH:MM:SS".
package worktime

import (
	"fmt"
	"strconv"
	"strings"
)

// ToMinutes конвертирует длительность "HH:MM:SS" в минуты.
// Секунды дают дробную часть (seconds/60). Пустые или некорректные
// сегменты считаются нулём - функция никогда не возвращает ошибку,
// для пустой строки результат 0.
func ToMinutes(worktime string) float64 {
	if worktime == "" {
		return 0
	}

	parts := strings.Split(worktime, ":")

	var hours, minutes, seconds float64
	if len(parts) > 0 {
		hours = parseSegment(parts[0])
	}
	if len(parts) > 1 {
		minutes = parseSegment(parts[1])
	}
	if len(parts) > 2 {
		seconds = parseSegment(parts[2])
	}

	return hours*60 + minutes + seconds/60
}

// FormatDuration форматирует суммарную длительность в человекочитаемый вид.
// Часы и минуты округляются вниз до целых, нулевые минуты опускаются:
// 90 -> "1h 30min", 60 -> "1h", 45 -> "0h 45min".
func FormatDuration(totalMinutes float64) string {
	hours := int(totalMinutes) / 60
	minutes := int(totalMinutes) % 60

	if minutes > 0 {
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}

// parseSegment парсит один сегмент длительности, мусор считается нулём
func parseSegment(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
