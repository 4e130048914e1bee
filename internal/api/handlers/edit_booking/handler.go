package edit_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/nordco/NC-BookingClient/internal/api/handlers"
	"github.com/nordco/NC-BookingClient/internal/domain"
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
	"github.com/nordco/NC-BookingClient/internal/service/events"
	editBooking "github.com/nordco/NC-BookingClient/internal/usecase/edit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidStartAt     = "некорректный формат startAt, ожидается ISO8601"
	msgBookingNotFound    = "бронирование не найдено"
	msgServiceNotFound    = "услуга не найдена"
	msgNotOwner           = "бронирование принадлежит другому пользователю"
	msgTooCloseToStart    = "до начала бронирования осталось слишком мало времени"
	msgSlotInPast         = "новый слот уже в прошлом"
	msgOutsideHours       = "новый слот вне рабочих часов"
	msgSlotTaken          = "новый слот уже занят"
	msgTokenRejected      = "сессия недействительна, требуется повторный вход"
	msgBackendDown        = "сервис бронирований недоступен, попробуйте позже"
)

type Handler struct {
	registry   StoreRegistry
	role       events.Role
	newUseCase UseCaseFactory
	logger     Logger
}

// NewHandler создает handler изменения бронирований
// notice - минимальный срок до начала, в пределах которого клиент
// уже не может менять бронирование
func NewHandler(registry StoreRegistry, role events.Role, noticeHours int, logger Logger) *Handler {
	if noticeHours <= 0 {
		noticeHours = domain.DefaultModificationNoticeHours
	}

	return &Handler{
		registry: registry,
		role:     role,
		newUseCase: func(store *events.Store) EditBookingUseCase {
			return editBooking.NewUseCase(store, time.Duration(noticeHours)*time.Hour, logger)
		},
		logger: logger,
	}
}

// HandleUpdate PUT /api/v1/bookings/{bookingId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%d - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.ValidateStruct(&req); fields != nil {
		h.logger.Warn("PUT /bookings/%d - Validation failed: %v", bookingID, fields)
		handlers.RespondValidationError(w, fields)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/%d - Failed to parse startAt: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	token, _ := salonapi.TokenFromContext(r.Context())
	store := h.registry.Get(token, h.role)

	if err := h.newUseCase(store).Update(r.Context(), useCaseReq); err != nil {
		if errors.Is(err, events.ErrRefreshFailed) {
			h.logger.Warn("PUT /bookings/%d - Updated but refresh failed: %v", bookingID, err)
			handlers.RespondJSON(w, http.StatusNoContent, nil)
			return
		}
		h.respondError(w, token, bookingID, err)
		return
	}

	h.logger.Info("PUT /bookings/%d - Booking updated", bookingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleDelete DELETE /api/v1/bookings/{bookingId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	token, _ := salonapi.TokenFromContext(r.Context())
	store := h.registry.Get(token, h.role)

	if err := h.newUseCase(store).Delete(r.Context(), &editBooking.DeleteRequest{BookingID: bookingID}); err != nil {
		if errors.Is(err, events.ErrRefreshFailed) {
			h.logger.Warn("DELETE /bookings/%d - Deleted but refresh failed: %v", bookingID, err)
			handlers.RespondJSON(w, http.StatusNoContent, nil)
			return
		}
		h.respondError(w, token, bookingID, err)
		return
	}

	h.logger.Info("DELETE /bookings/%d - Booking deleted", bookingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["bookingId"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("%s %s - Invalid booking id: %q", r.Method, r.URL.Path, raw)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, token string, bookingID int64, err error) {
	var validationErr *salonapi.ValidationError

	switch {
	case errors.Is(err, editBooking.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	case errors.Is(err, editBooking.ErrBookingNotFound), errors.Is(err, salonapi.ErrNotFound):
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, editBooking.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, editBooking.ErrNotOwner), errors.Is(err, salonapi.ErrForbidden):
		handlers.RespondForbidden(w, msgNotOwner)

	case errors.Is(err, editBooking.ErrTooCloseToStart):
		handlers.RespondForbidden(w, msgTooCloseToStart)

	case errors.Is(err, editBooking.ErrSlotInPast):
		handlers.RespondBadRequest(w, msgSlotInPast)

	case errors.Is(err, editBooking.ErrOutsideAvailability):
		handlers.RespondConflict(w, msgOutsideHours)

	case errors.Is(err, editBooking.ErrSlotTaken):
		handlers.RespondConflict(w, msgSlotTaken)

	case errors.Is(err, salonapi.ErrUnauthorized):
		h.registry.Invalidate(token)
		handlers.RespondUnauthorized(w, msgTokenRejected)

	case errors.As(err, &validationErr):
		handlers.RespondValidationError(w, validationErr.Fields)

	case errors.Is(err, salonapi.ErrUnavailable):
		handlers.RespondBadGateway(w, msgBackendDown)

	default:
		h.logger.Error("Booking id=%d - Operation failed: %v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
