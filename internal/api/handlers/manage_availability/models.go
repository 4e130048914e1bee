package manage_availability

import (
	"time"

	manageAvailability "github.com/nordco/NC-BookingClient/internal/usecase/manage_availability"
)

// RangeRequest HTTP модель временного диапазона
// Используется и для создания окна, и для удаления окон в диапазоне
type RangeRequest struct {
	StartAt string `json:"startAt" validate:"required"` // UTC, ISO8601
	EndAt   string `json:"endAt" validate:"required"`   // UTC, ISO8601
}

// DeleteWindowsResponse HTTP модель ответа на удаление окон
type DeleteWindowsResponse struct {
	WindowIDs []int64 `json:"windowIds"`
}

// ToCreateRequest конвертирует HTTP запрос в модель use case
func (r *RangeRequest) ToCreateRequest() (*manageAvailability.CreateRequest, error) {
	start, end, err := r.parse()
	if err != nil {
		return nil, err
	}
	return &manageAvailability.CreateRequest{StartAt: start, EndAt: end}, nil
}

// ToDeleteRequest конвертирует HTTP запрос в модель use case
func (r *RangeRequest) ToDeleteRequest() (*manageAvailability.DeleteRequest, error) {
	start, end, err := r.parse()
	if err != nil {
		return nil, err
	}
	return &manageAvailability.DeleteRequest{StartAt: start, EndAt: end}, nil
}

func (r *RangeRequest) parse() (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
