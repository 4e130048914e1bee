package domain

import (
	"strconv"

	"github.com/nordco/NC-BookingClient/pkg/worktime"
)

// Service represents a bookable salon service.
// Worktime приходит от бэкенда в формате "HH:MM:SS", Price - десятичная строка.
type Service struct {
	ID          int64
	Name        string
	Worktime    string
	Price       string
	Information string
	CategoryID  int64
}

// WorktimeMinutes returns the service duration in minutes
func (s *Service) WorktimeMinutes() float64 {
	return worktime.ToMinutes(s.Worktime)
}

// PriceValue returns the price parsed as a decimal number, 0 for non-numeric prices
func (s *Service) PriceValue() float64 {
	v, err := strconv.ParseFloat(s.Price, 64)
	if err != nil {
		return 0
	}
	return v
}

// TotalMinutes returns the summed duration of the given services in minutes
func TotalMinutes(services []Service) float64 {
	var total float64
	for _, svc := range services {
		total += svc.WorktimeMinutes()
	}
	return total
}

// TotalPrice returns the summed price of the given services
func TotalPrice(services []Service) float64 {
	var total float64
	for _, svc := range services {
		total += svc.PriceValue()
	}
	return total
}

// FormatTotalDuration returns the summed duration formatted for display, e.g. "1h 30min"
func FormatTotalDuration(services []Service) string {
	return worktime.FormatDuration(TotalMinutes(services))
}

// Category represents a service category
type Category struct {
	ID   int64
	Name string
}
