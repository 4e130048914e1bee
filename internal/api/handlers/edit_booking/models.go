package edit_booking

import (
	"time"

	editBooking "github.com/nordco/NC-BookingClient/internal/usecase/edit_booking"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	StartAt    *string `json:"startAt,omitempty"` // UTC, ISO8601
	ServiceIDs []int64 `json:"serviceIds,omitempty" validate:"omitempty,min=1,dive,gt=0"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64) (*editBooking.UpdateRequest, error) {
	req := &editBooking.UpdateRequest{
		BookingID:  bookingID,
		ServiceIDs: r.ServiceIDs,
		Notes:      r.Notes,
	}

	if r.StartAt != nil {
		startAt, err := time.Parse(time.RFC3339, *r.StartAt)
		if err != nil {
			return nil, err
		}
		req.StartAt = &startAt
	}

	return req, nil
}
