package manage_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nordco/NC-BookingClient/internal/api/handlers"
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgServiceNotFound    = "услуга не найдена"
	msgForbidden          = "операция требует прав администратора"
	msgTokenRejected      = "сессия недействительна, требуется повторный вход"
	msgBackendDown        = "сервис бронирований недоступен, попробуйте позже"
)

type Handler struct {
	client CatalogAdminClient
	logger Logger
}

func NewHandler(client CatalogAdminClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// HandleCreate POST /api/v1/admin/services
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeService(w, r)
	if !ok {
		return
	}

	if err := h.client.CreateService(r.Context(), req.ToPayload()); err != nil {
		h.respondError(w, "POST /admin/services", err)
		return
	}

	h.logger.Info("POST /admin/services - Service created: name=%q", req.Name)
	handlers.RespondJSON(w, http.StatusCreated, nil)
}

// HandleUpdate PUT /api/v1/admin/services/{serviceId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := h.serviceID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeService(w, r)
	if !ok {
		return
	}

	if err := h.client.UpdateService(r.Context(), serviceID, req.ToPayload()); err != nil {
		h.respondError(w, "PUT /admin/services/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/services/%d - Service updated", serviceID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleDelete DELETE /api/v1/admin/services/{serviceId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := h.serviceID(w, r)
	if !ok {
		return
	}

	if err := h.client.DeleteService(r.Context(), serviceID); err != nil {
		h.respondError(w, "DELETE /admin/services/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/services/%d - Service deleted", serviceID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) decodeService(w http.ResponseWriter, r *http.Request) (*ServiceRequest, bool) {
	var req ServiceRequest
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

func (h *Handler) serviceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["serviceId"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("%s %s - Invalid service id: %q", r.Method, r.URL.Path, raw)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	var validationErr *salonapi.ValidationError

	switch {
	case errors.Is(err, salonapi.ErrNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, salonapi.ErrForbidden):
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, salonapi.ErrUnauthorized):
		handlers.RespondUnauthorized(w, msgTokenRejected)

	case errors.As(err, &validationErr):
		handlers.RespondValidationError(w, validationErr.Fields)

	case errors.Is(err, salonapi.ErrUnavailable):
		handlers.RespondBadGateway(w, msgBackendDown)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
