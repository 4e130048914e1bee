package accounts

import (
	"context"

	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
)

// AccountsClient интерфейс клиента аккаунтов бэкенда
type AccountsClient interface {
	Login(ctx context.Context, creds salonapi.Credentials) (*salonapi.TokenPair, error)
	Register(ctx context.Context, req salonapi.RegisterRequest) error
	GetProfile(ctx context.Context) (*salonapi.Profile, error)
	UpdateProfile(ctx context.Context, req salonapi.ProfileUpdate) (*salonapi.Profile, error)
	ChangePassword(ctx context.Context, req salonapi.ChangePasswordRequest) error
	DeleteAccount(ctx context.Context) error
	ListUsers(ctx context.Context) ([]salonapi.User, error)
}

// SessionInvalidator сбрасывает event store закрытой сессии
type SessionInvalidator interface {
	Invalidate(token string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
