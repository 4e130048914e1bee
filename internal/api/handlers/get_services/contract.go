package get_services

import (
	"context"

	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
)

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	ListServices(ctx context.Context, admin bool) ([]salonapi.Service, error)
	ListCategories(ctx context.Context) ([]salonapi.Category, error)
	ListCategoryServices(ctx context.Context, categoryID int64) ([]salonapi.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
