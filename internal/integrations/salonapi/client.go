// Package salonapi содержит клиент внешнего REST-бэкенда бронирований.
// Бэкенд - единственный источник истины: клиент только читает состояние
// и отправляет мутации, вся авторитетная логика живет на той стороне.
package salonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsObserver интерфейс для метрик исходящих запросов
type MetricsObserver interface {
	ObserveUpstreamRequest(operation string, status int, duration time.Duration)
}

// Client клиент для работы с бэкендом бронирований
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    MetricsObserver
}

// NewClient создает новый экземпляр клиента бэкенда
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithMetrics подключает сбор метрик исходящих запросов
func (c *Client) WithMetrics(m MetricsObserver) *Client {
	c.metrics = m
	return c
}

// ListAvailability получает окна доступности
// Админский и клиентский пути различаются, форма ответа одинаковая
func (c *Client) ListAvailability(ctx context.Context, admin bool) ([]Availability, error) {
	path := "/availability/"
	if admin {
		path = "/admin/availability/"
	}

	var out []Availability
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "list_availability"); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAllBookings получает все бронирования (для отображения занятых слотов)
func (c *Client) ListAllBookings(ctx context.Context, admin bool) ([]Booking, error) {
	path := "/bookings/all/"
	if admin {
		path = "/admin/bookings/"
	}

	var out []Booking
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "list_all_bookings"); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMyBookings получает бронирования текущего пользователя
func (c *Client) ListMyBookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/mine/", nil, &out, "list_my_bookings"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBooking получает бронирование по ID
func (c *Client) GetBooking(ctx context.Context, id int64, admin bool) (*Booking, error) {
	path := fmt.Sprintf("/bookings/%d/edit/", id)
	if admin {
		path = fmt.Sprintf("/admin/bookings/%d/", id)
	}

	var out Booking
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "get_booking"); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBooking создает бронирование
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest, admin bool) error {
	path := "/bookings/"
	if admin {
		path = "/admin/bookings/"
	}
	return c.do(ctx, http.MethodPost, path, req, nil, "create_booking")
}

// UpdateBooking обновляет бронирование
func (c *Client) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest, admin bool) error {
	path := fmt.Sprintf("/bookings/%d/edit/", id)
	if admin {
		path = fmt.Sprintf("/admin/bookings/%d/", id)
	}
	return c.do(ctx, http.MethodPut, path, req, nil, "update_booking")
}

// DeleteBooking удаляет бронирование
func (c *Client) DeleteBooking(ctx context.Context, id int64, admin bool) error {
	path := fmt.Sprintf("/bookings/%d/edit/", id)
	if admin {
		path = fmt.Sprintf("/admin/bookings/%d/", id)
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, "delete_booking")
}

// CreateAvailability создает окно доступности (admin)
func (c *Client) CreateAvailability(ctx context.Context, req CreateAvailabilityRequest) error {
	return c.do(ctx, http.MethodPost, "/admin/availability/", req, nil, "create_availability")
}

// DeleteAvailability удаляет окно доступности по ID (admin)
// Массовое удаление - один запрос на ID, это делает вызывающая сторона
func (c *Client) DeleteAvailability(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/admin/availability/%d/", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "delete_availability")
}

// ListServices получает список услуг
func (c *Client) ListServices(ctx context.Context, admin bool) ([]Service, error) {
	path := "/services/"
	if admin {
		path = "/admin/services/"
	}

	var out []Service
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "list_services"); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCategories получает список категорий услуг
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &out, "list_categories"); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCategoryServices получает услуги категории
func (c *Client) ListCategoryServices(ctx context.Context, categoryID int64) ([]Service, error) {
	path := fmt.Sprintf("/categories/%d/services/", categoryID)

	var out []Service
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "list_category_services"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateService создает услугу (admin)
func (c *Client) CreateService(ctx context.Context, req ServicePayload) error {
	return c.do(ctx, http.MethodPost, "/admin/services/", req, nil, "create_service")
}

// UpdateService обновляет услугу (admin)
func (c *Client) UpdateService(ctx context.Context, id int64, req ServicePayload) error {
	path := fmt.Sprintf("/admin/services/%d/", id)
	return c.do(ctx, http.MethodPut, path, req, nil, "update_service")
}

// DeleteService удаляет услугу (admin)
func (c *Client) DeleteService(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/admin/services/%d/", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "delete_service")
}

// Login выполняет вход и возвращает пару токенов
func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	var out TokenPair
	if err := c.do(ctx, http.MethodPost, "/accounts/login/", creds, &out, "login"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/accounts/register/", req, nil, "register")
}

// GetProfile получает профиль текущего пользователя
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/accounts/profile/", nil, &out, "get_profile"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile обновляет профиль текущего пользователя
func (c *Client) UpdateProfile(ctx context.Context, req ProfileUpdate) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodPut, "/accounts/profile/", req, &out, "update_profile"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword меняет пароль текущего пользователя
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/accounts/change-password/", req, nil, "change_password")
}

// DeleteAccount удаляет аккаунт текущего пользователя
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/accounts/delete-account/", nil, nil, "delete_account")
}

// ListUsers получает список пользователей (admin)
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/accounts/users/", nil, &out, "list_users"); err != nil {
		return nil, err
	}
	return out, nil
}

// do выполняет один запрос к бэкенду: прикрепляет bearer-токен из контекста,
// разбирает статус-коды в ошибки таксономии и декодирует тело ответа
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}, operation string) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request body: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(operation, 0, started)
		c.log.Error("salonapi: %s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.observe(operation, resp.StatusCode, started)

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusNoContent:
		return nil
	case http.StatusBadRequest:
		return decodeValidationError(resp.Body)
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(payload))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) observe(operation string, status int, started time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveUpstreamRequest(operation, status, time.Since(started))
}

// decodeValidationError разбирает тело 400-ответа в field-level сообщения.
// Бэкенд отвечает либо {"field": ["msg", ...]}, либо {"detail": "msg"} -
// сообщения передаются дословно
func decodeValidationError(body io.Reader) error {
	payload, err := io.ReadAll(body)
	if err != nil {
		return &ValidationError{}
	}

	fields := map[string][]string{}

	var multi map[string][]string
	if err := json.Unmarshal(payload, &multi); err == nil {
		fields = multi
		return &ValidationError{Fields: fields}
	}

	var single map[string]string
	if err := json.Unmarshal(payload, &single); err == nil {
		for name, msg := range single {
			fields[name] = []string{msg}
		}
	}

	return &ValidationError{Fields: fields}
}
