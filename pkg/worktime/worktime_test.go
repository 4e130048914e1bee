package worktime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name     string
		worktime string
		want     float64
	}{
		{name: "hour and a half", worktime: "01:30:00", want: 90},
		{name: "empty string", worktime: "", want: 0},
		{name: "fractional seconds", worktime: "00:45:30", want: 45.5},
		{name: "hours only", worktime: "02:00:00", want: 120},
		{name: "missing seconds segment", worktime: "01:15", want: 75},
		{name: "garbled hours segment", worktime: "xx:30:00", want: 30},
		{name: "garbage", worktime: "not-a-time", want: 0},
		{name: "single segment treated as hours", worktime: "45", want: 2700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMinutes(tt.worktime))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		want    string
	}{
		{name: "hour and a half", minutes: 90, want: "1h 30min"},
		{name: "exact hour omits minutes", minutes: 60, want: "1h"},
		{name: "under an hour", minutes: 45, want: "0h 45min"},
		{name: "zero", minutes: 0, want: "0h"},
		{name: "fractional minutes floored", minutes: 90.7, want: "1h 30min"},
		{name: "long duration", minutes: 150, want: "2h 30min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.minutes))
		})
	}
}
