package manage_availability

import (
	"errors"
	"net/http"

	"github.com/nordco/NC-BookingClient/internal/api/handlers"
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
	"github.com/nordco/NC-BookingClient/internal/service/events"
	manageAvailability "github.com/nordco/NC-BookingClient/internal/usecase/manage_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamps  = "некорректный формат startAt/endAt, ожидается ISO8601"
	msgForbidden          = "операция требует прав администратора"
	msgInvalidRange       = "некорректный временной диапазон"
	msgRangeInPast        = "диапазон целиком в прошлом"
	msgNoWindows          = "в диапазоне нет окон доступности"
	msgPartialDelete      = "часть окон удалить не удалось"
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
		newUseCase: func(store *events.Store) ManageAvailabilityUseCase {
			return manageAvailability.NewUseCase(store, logger)
		},
		logger: logger,
	}
}

// HandleCreate POST /api/v1/admin/availability
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRange(w, r)
	if !ok {
		return
	}

	useCaseReq, err := req.ToCreateRequest()
	if err != nil {
		h.logger.Warn("POST /admin/availability - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	token, _ := salonapi.TokenFromContext(r.Context())
	store := h.registry.Get(token, h.role)

	if err := h.newUseCase(store).Create(r.Context(), useCaseReq); err != nil {
		if errors.Is(err, events.ErrRefreshFailed) {
			h.logger.Warn("POST /admin/availability - Window created but refresh failed: %v", err)
			handlers.RespondJSON(w, http.StatusCreated, nil)
			return
		}
		h.respondError(w, token, err)
		return
	}

	h.logger.Info("POST /admin/availability - Window created: [%s, %s)", req.StartAt, req.EndAt)
	handlers.RespondJSON(w, http.StatusCreated, nil)
}

// HandleDelete DELETE /api/v1/admin/availability
// Удаляет все окна, пересекающие переданный диапазон
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRange(w, r)
	if !ok {
		return
	}

	useCaseReq, err := req.ToDeleteRequest()
	if err != nil {
		h.logger.Warn("DELETE /admin/availability - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	token, _ := salonapi.TokenFromContext(r.Context())
	store := h.registry.Get(token, h.role)

	result, err := h.newUseCase(store).Delete(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, events.ErrPartialDelete) {
			h.logger.Warn("DELETE /admin/availability - Partial failure: %v", err)
			handlers.RespondError(w, http.StatusMultiStatus, msgPartialDelete)
			return
		}
		if errors.Is(err, events.ErrRefreshFailed) {
			h.logger.Warn("DELETE /admin/availability - Deleted but refresh failed: %v", err)
			handlers.RespondJSON(w, http.StatusOK, nil)
			return
		}
		h.respondError(w, token, err)
		return
	}

	h.logger.Info("DELETE /admin/availability - Deleted %d windows", len(result.WindowIDs))
	handlers.RespondJSON(w, http.StatusOK, &DeleteWindowsResponse{WindowIDs: result.WindowIDs})
}

func (h *Handler) decodeRange(w http.ResponseWriter, r *http.Request) (*RangeRequest, bool) {
	var req RangeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s %s - Invalid request body: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}

	if fields := handlers.ValidateStruct(&req); fields != nil {
		h.logger.Warn("%s %s - Validation failed: %v", r.Method, r.URL.Path, fields)
		handlers.RespondValidationError(w, fields)
		return nil, false
	}

	return &req, true
}

func (h *Handler) respondError(w http.ResponseWriter, token string, err error) {
	var validationErr *salonapi.ValidationError

	switch {
	case errors.Is(err, manageAvailability.ErrForbidden), errors.Is(err, salonapi.ErrForbidden):
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, manageAvailability.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	case errors.Is(err, manageAvailability.ErrInvalidRange):
		handlers.RespondBadRequest(w, msgInvalidRange)

	case errors.Is(err, manageAvailability.ErrRangeInPast):
		handlers.RespondBadRequest(w, msgRangeInPast)

	case errors.Is(err, manageAvailability.ErrNoWindowsInRange):
		handlers.RespondNotFound(w, msgNoWindows)

	case errors.Is(err, salonapi.ErrUnauthorized):
		h.registry.Invalidate(token)
		handlers.RespondUnauthorized(w, msgTokenRejected)

	case errors.As(err, &validationErr):
		handlers.RespondValidationError(w, validationErr.Fields)

	case errors.Is(err, salonapi.ErrUnavailable):
		handlers.RespondBadGateway(w, msgBackendDown)

	default:
		h.logger.Error("Availability operation failed: %v", err)
		handlers.RespondInternalError(w)
	}
}
