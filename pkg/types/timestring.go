// Package types содержит общие типы значений, используемые по всему сервису.
package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeString локальное время суток в формате "HH:MM:SS" (секунды опциональны).
// Используется для времени начала/конца окон доступности.
type TimeString string

// NewTimeString создает TimeString из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04:05"))
}

// NewTimeStringFromString парсит и валидирует строку времени
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат и диапазоны времени
func (t TimeString) Validate() error {
	_, _, _, err := t.parts()
	return err
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает время суток в минутах от полуночи (секунды дают дробную часть)
func (t TimeString) Minutes() (float64, error) {
	h, m, s, err := t.parts()
	if err != nil {
		return 0, err
	}
	return float64(h)*60 + float64(m) + float64(s)/60, nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, err1 := t.Minutes()
	b, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// AddMinutes возвращает время, смещенное на minutes вперед
// Переход через полночь не поддерживается - возвращается ошибка
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	h, m, s, err := t.parts()
	if err != nil {
		return "", err
	}

	total := h*60 + m + minutes
	if total >= 24*60 {
		return "", fmt.Errorf("types: time %s + %dmin crosses midnight", t, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d:%02d", total/60, total%60, s)), nil
}

// At совмещает дату с временем суток в указанной таймзоне
func (t TimeString) At(date time.Time, loc *time.Location) (time.Time, error) {
	h, m, s, err := t.parts()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, s, 0, loc), nil
}

// String возвращает нормализованное представление "HH:MM:SS"
func (t TimeString) String() string {
	h, m, s, err := t.parts()
	if err != nil {
		return string(t)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func (t TimeString) parts() (hour, minute, second int, err error) {
	segments := strings.Split(string(t), ":")
	if len(segments) < 2 || len(segments) > 3 {
		return 0, 0, 0, fmt.Errorf("types: invalid time %q, expected HH:MM or HH:MM:SS", string(t))
	}

	hour, err = strconv.Atoi(segments[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, 0, fmt.Errorf("types: invalid hour in %q", string(t))
	}

	minute, err = strconv.Atoi(segments[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, 0, fmt.Errorf("types: invalid minute in %q", string(t))
	}

	if len(segments) == 3 {
		second, err = strconv.Atoi(segments[2])
		if err != nil || second < 0 || second > 59 {
			return 0, 0, 0, fmt.Errorf("types: invalid second in %q", string(t))
		}
	}

	return hour, minute, second, nil
}
