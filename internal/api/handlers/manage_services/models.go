package manage_services

import (
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
)

// ServiceRequest HTTP request model
// worktime в формате HH:MM:SS, price - десятичная строка
type ServiceRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Worktime    string `json:"worktime" validate:"required,datetime=15:04:05"`
	Price       string `json:"price" validate:"required,number"`
	Information string `json:"information,omitempty" validate:"omitempty,max=1000"`
	CategoryID  int64  `json:"categoryId" validate:"required,gt=0"`
}

// ToPayload конвертирует HTTP запрос в wire-модель бэкенда
func (r *ServiceRequest) ToPayload() salonapi.ServicePayload {
	return salonapi.ServicePayload{
		Name:        r.Name,
		Worktime:    r.Worktime,
		Price:       r.Price,
		Information: r.Information,
		Category:    r.CategoryID,
	}
}
