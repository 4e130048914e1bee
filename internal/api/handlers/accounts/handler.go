package accounts

import (
	"errors"
	"net/http"

	"github.com/nordco/NC-BookingClient/internal/api/handlers"
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBadCredentials     = "неверный логин или пароль"
	msgForbidden          = "операция требует прав администратора"
	msgTokenRejected      = "сессия недействительна, требуется повторный вход"
	msgBackendDown        = "сервис бронирований недоступен, попробуйте позже"
)

type Handler struct {
	client   AccountsClient
	sessions SessionInvalidator
	logger   Logger
}

func NewHandler(client AccountsClient, sessions SessionInvalidator, logger Logger) *Handler {
	return &Handler{
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

// HandleLogin POST /api/v1/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	tokens, err := h.client.Login(r.Context(), salonapi.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, salonapi.ErrUnauthorized) {
			h.logger.Warn("POST /auth/login - Bad credentials for user %q", req.Username)
			handlers.RespondUnauthorized(w, msgBadCredentials)
			return
		}
		h.respondError(w, "POST /auth/login", err)
		return
	}

	h.logger.Info("POST /auth/login - User %q logged in", req.Username)
	handlers.RespondJSON(w, http.StatusOK, &TokenResponse{
		Access:  tokens.Access,
		Refresh: tokens.Refresh,
	})
}

// HandleRegister POST /api/v1/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.client.Register(r.Context(), salonapi.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(w, "POST /auth/register", err)
		return
	}

	h.logger.Info("POST /auth/register - User %q registered", req.Username)
	handlers.RespondJSON(w, http.StatusCreated, nil)
}

// HandleGetProfile GET /api/v1/profile
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.client.GetProfile(r.Context())
	if err != nil {
		h.respondError(w, "GET /profile", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromProfile(profile))
}

// HandleUpdateProfile PUT /api/v1/profile
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !h.decode(w, r, &req) {
		return
	}

	profile, err := h.client.UpdateProfile(r.Context(), salonapi.ProfileUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.respondError(w, "PUT /profile", err)
		return
	}

	h.logger.Info("PUT /profile - Profile updated for user id=%d", profile.ID)
	handlers.RespondJSON(w, http.StatusOK, FromProfile(profile))
}

// HandleChangePassword POST /api/v1/profile/change-password
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.client.ChangePassword(r.Context(), salonapi.ChangePasswordRequest{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.respondError(w, "POST /profile/change-password", err)
		return
	}

	h.logger.Info("POST /profile/change-password - Password changed")
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleDeleteAccount DELETE /api/v1/profile
// После удаления аккаунта сессия сбрасывается
func (h *Handler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteAccount(r.Context()); err != nil {
		h.respondError(w, "DELETE /profile", err)
		return
	}

	token, _ := salonapi.TokenFromContext(r.Context())
	h.sessions.Invalidate(token)

	h.logger.Info("DELETE /profile - Account deleted, session invalidated")
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleListUsers GET /api/v1/admin/users
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.client.ListUsers(r.Context())
	if err != nil {
		h.respondError(w, "GET /admin/users", err)
		return
	}

	h.logger.Info("GET /admin/users - Returning %d users", len(users))
	handlers.RespondJSON(w, http.StatusOK, FromUsers(users))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := handlers.DecodeJSON(r, dst); err != nil {
		h.logger.Warn("%s %s - Invalid request body: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}

	if fields := handlers.ValidateStruct(dst); fields != nil {
		h.logger.Warn("%s %s - Validation failed: %v", r.Method, r.URL.Path, fields)
		handlers.RespondValidationError(w, fields)
		return false
	}

	return true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	var validationErr *salonapi.ValidationError

	switch {
	case errors.Is(err, salonapi.ErrUnauthorized):
		handlers.RespondUnauthorized(w, msgTokenRejected)

	case errors.Is(err, salonapi.ErrForbidden):
		handlers.RespondForbidden(w, msgForbidden)

	case errors.As(err, &validationErr):
		handlers.RespondValidationError(w, validationErr.Fields)

	case errors.Is(err, salonapi.ErrUnavailable):
		handlers.RespondBadGateway(w, msgBackendDown)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
