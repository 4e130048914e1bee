package manage_services

import (
	"context"

	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
)

// CatalogAdminClient интерфейс админского клиента каталога услуг
type CatalogAdminClient interface {
	CreateService(ctx context.Context, req salonapi.ServicePayload) error
	UpdateService(ctx context.Context, id int64, req salonapi.ServicePayload) error
	DeleteService(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
