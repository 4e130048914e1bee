package domain

// Default configuration values
const (
	DefaultSlotSizeMinutes         = 30
	DefaultModificationNoticeHours = 8
	DefaultErrorNoticeSeconds      = 10
	DefaultBusinessTimezone        = "Europe/Stockholm"
)

// Business validation constants
const (
	MinSlotSizeMinutes = 5
	MaxSlotSizeMinutes = 480 // 8 hours
	MaxNotesLength     = 500
)

// Time format constants
const (
	TimeFormat = "15:04:05"   // HH:MM:SS
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
