package get_services

import (
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
	"github.com/nordco/NC-BookingClient/pkg/worktime"
)

// ServiceResponse HTTP модель услуги
// durationLabel - человекочитаемая длительность для списков, например "1h 30min"
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Worktime        string  `json:"worktime"`
	WorktimeMinutes float64 `json:"worktimeMinutes"`
	DurationLabel   string  `json:"durationLabel"`
	Price           float64 `json:"price"`
	Information     string  `json:"information,omitempty"`
	CategoryID      int64   `json:"categoryId,omitempty"`
}

// CategoryResponse HTTP модель категории услуг
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromServices конвертирует список услуг в HTTP модели
func FromServices(services []salonapi.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		d := s.ToDomain()
		minutes := worktime.ToMinutes(d.Worktime)
		out = append(out, ServiceResponse{
			ID:              d.ID,
			Name:            d.Name,
			Worktime:        d.Worktime,
			WorktimeMinutes: minutes,
			DurationLabel:   worktime.FormatDuration(minutes),
			Price:           d.PriceValue(),
			Information:     d.Information,
			CategoryID:      d.CategoryID,
		})
	}
	return out
}

// FromCategories конвертирует список категорий в HTTP модели
func FromCategories(categories []salonapi.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}
