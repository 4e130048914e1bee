package create_booking

import (
	"time"

	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
	createBooking "github.com/nordco/NC-BookingClient/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceIDs []int64 `json:"serviceIds" validate:"required,min=1,dive,gt=0"`
	StartAt    string  `json:"startAt" validate:"required"` // UTC, ISO8601
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	ForUser    *int64  `json:"forUser,omitempty" validate:"omitempty,gt=0"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	StartAt       string  `json:"startAt"`
	EndAt         string  `json:"endAt"`
	ServiceIDs    []int64 `json:"serviceIds"`
	TotalPrice    float64 `json:"totalPrice"`
	TotalDuration string  `json:"totalDuration"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceIDs: r.ServiceIDs,
		StartAt:    startAt,
		Notes:      r.Notes,
		ForUser:    r.ForUser,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		StartAt:       salonapi.FormatInstant(resp.StartAt),
		EndAt:         salonapi.FormatInstant(resp.EndAt),
		ServiceIDs:    resp.ServiceIDs,
		TotalPrice:    resp.TotalPrice,
		TotalDuration: resp.TotalDuration,
	}
}
