package get_calendar

import (
	"errors"
	"net/http"

	"github.com/nordco/NC-BookingClient/internal/api/handlers"
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
	"github.com/nordco/NC-BookingClient/internal/service/events"
)

const (
	msgTokenRejected = "сессия недействительна, требуется повторный вход"
)

type Handler struct {
	registry StoreRegistry
	role     events.Role
	logger   Logger
}

func NewHandler(registry StoreRegistry, role events.Role, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		role:     role,
		logger:   logger,
	}
}

// Handle GET /api/v1/calendar
// Запускает refresh и возвращает опубликованное состояние календаря.
// Сбой refresh не фатален: отдается прежний снапшот с текстом ошибки.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, _ := salonapi.TokenFromContext(r.Context())
	store := h.registry.Get(token, h.role)

	if err := store.Refresh(r.Context()); err != nil {
		if errors.Is(err, salonapi.ErrUnauthorized) {
			h.logger.Warn("GET /calendar - Token rejected by backend")
			h.registry.Invalidate(token)
			handlers.RespondUnauthorized(w, msgTokenRejected)
			return
		}
		h.logger.Warn("GET /calendar - Refresh failed, serving stale snapshot: %v", err)
	}

	state := store.State()
	h.logger.Info("GET /calendar - Returning %d events (role=%s, loading=%v)",
		len(state.Snapshot.Events), h.role, state.Loading)
	handlers.RespondJSON(w, http.StatusOK, FromState(state))
}
