package create_booking

import (
	"errors"
	"net/http"

	"github.com/nordco/NC-BookingClient/internal/api/handlers"
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
	"github.com/nordco/NC-BookingClient/internal/service/events"
	createBooking "github.com/nordco/NC-BookingClient/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartAt     = "некорректный формат startAt, ожидается ISO8601"
	msgNoServices         = "не выбрана ни одна услуга"
	msgNoSlot             = "не выбран временной слот"
	msgSlotInPast         = "выбранный слот уже в прошлом"
	msgServiceNotFound    = "услуга не найдена"
	msgOutsideHours       = "слот вне рабочих часов"
	msgSlotTaken          = "слот уже занят"
	msgForbidden          = "операция требует прав администратора"
	msgTokenRejected      = "сессия недействительна, требуется повторный вход"
	msgBackendDown        = "сервис бронирований недоступен, попробуйте позже"
)

type Handler struct {
	registry   StoreRegistry
	role       events.Role
	newUseCase UseCaseFactory
	logger     Logger
}

func NewHandler(registry StoreRegistry, role events.Role, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		role:     role,
		newUseCase: func(store *events.Store) CreateBookingUseCase {
			return createBooking.NewUseCase(store, logger)
		},
		logger: logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.ValidateStruct(&req); fields != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", fields)
		handlers.RespondValidationError(w, fields)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	token, _ := salonapi.TokenFromContext(r.Context())
	store := h.registry.Get(token, h.role)

	result, err := h.newUseCase(store).Execute(r.Context(), useCaseReq)
	if err != nil {
		// Бронирование создано, не удался только refresh календаря
		if errors.Is(err, events.ErrRefreshFailed) {
			h.logger.Warn("POST /bookings - Booking created but refresh failed: %v", err)
			handlers.RespondJSON(w, http.StatusCreated, nil)
			return
		}

		h.respondError(w, token, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created: start=%s, services=%v",
		req.StartAt, req.ServiceIDs)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, token string, err error) {
	var validationErr *salonapi.ValidationError

	switch {
	case errors.Is(err, createBooking.ErrNoServicesSelected):
		handlers.RespondBadRequest(w, msgNoServices)

	case errors.Is(err, createBooking.ErrSlotNotSelected):
		handlers.RespondBadRequest(w, msgNoSlot)

	case errors.Is(err, createBooking.ErrSlotInPast):
		handlers.RespondBadRequest(w, msgSlotInPast)

	case errors.Is(err, createBooking.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	case errors.Is(err, createBooking.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrOutsideAvailability):
		handlers.RespondConflict(w, msgOutsideHours)

	case errors.Is(err, createBooking.ErrSlotTaken):
		handlers.RespondConflict(w, msgSlotTaken)

	case errors.Is(err, createBooking.ErrForbidden), errors.Is(err, salonapi.ErrForbidden):
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, salonapi.ErrUnauthorized):
		h.registry.Invalidate(token)
		handlers.RespondUnauthorized(w, msgTokenRejected)

	case errors.As(err, &validationErr):
		handlers.RespondValidationError(w, validationErr.Fields)

	case errors.Is(err, salonapi.ErrUnavailable):
		handlers.RespondBadGateway(w, msgBackendDown)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: %v", err)
		handlers.RespondInternalError(w)
	}
}
