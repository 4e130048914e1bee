package get_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nordco/NC-BookingClient/internal/api/handlers"
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
)

const (
	msgInvalidCategoryID = "некорректный ID категории"
	msgCategoryNotFound  = "категория не найдена"
	msgTokenRejected     = "сессия недействительна, требуется повторный вход"
	msgBackendDown       = "сервис бронирований недоступен, попробуйте позже"
)

type Handler struct {
	client CatalogClient
	logger Logger
}

func NewHandler(client CatalogClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// HandleServices GET /api/v1/services
func (h *Handler) HandleServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.client.ListServices(r.Context(), false)
	if err != nil {
		h.respondError(w, "GET /services", err)
		return
	}

	h.logger.Info("GET /services - Returning %d services", len(services))
	handlers.RespondJSON(w, http.StatusOK, FromServices(services))
}

// HandleCategories GET /api/v1/categories
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.client.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, "GET /categories", err)
		return
	}

	h.logger.Info("GET /categories - Returning %d categories", len(categories))
	handlers.RespondJSON(w, http.StatusOK, FromCategories(categories))
}

// HandleCategoryServices GET /api/v1/categories/{categoryId}/services
func (h *Handler) HandleCategoryServices(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["categoryId"]
	categoryID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || categoryID <= 0 {
		h.logger.Warn("GET /categories/{id}/services - Invalid category id: %q", raw)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	services, err := h.client.ListCategoryServices(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, salonapi.ErrNotFound) {
			handlers.RespondNotFound(w, msgCategoryNotFound)
			return
		}
		h.respondError(w, "GET /categories/{id}/services", err)
		return
	}

	h.logger.Info("GET /categories/%d/services - Returning %d services", categoryID, len(services))
	handlers.RespondJSON(w, http.StatusOK, FromServices(services))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, salonapi.ErrUnauthorized):
		handlers.RespondUnauthorized(w, msgTokenRejected)

	case errors.Is(err, salonapi.ErrUnavailable):
		handlers.RespondBadGateway(w, msgBackendDown)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
