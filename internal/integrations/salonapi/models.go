package salonapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nordco/NC-BookingClient/internal/domain"
	"github.com/nordco/NC-BookingClient/pkg/types"
)

// decimalString десятичное значение, которое бэкенд может прислать
// строкой ("25.00") или числом (25.0)
type decimalString string

func (d *decimalString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = decimalString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = decimalString(n.String())
	return nil
}

// Booking модель бронирования на проводе
// Таймстемпы ISO8601; end_time вычислен бэкендом из длительности услуг
type Booking struct {
	ID       int64   `json:"id"`
	DateTime string  `json:"date_time"`
	EndTime  string  `json:"end_time"`
	User     int64   `json:"user"`
	UserName string  `json:"user_name"`
	Services []int64 `json:"services"`
	Notes    string  `json:"notes"`
}

// ToDomain конвертирует запись в доменную модель
// Отсутствующий или неразбираемый таймстемп дает нулевое время - решение
// об отбрасывании записи принимает проектор
func (b Booking) ToDomain(mine bool) domain.BookingRecord {
	return domain.BookingRecord{
		ID:         b.ID,
		StartAt:    parseInstant(b.DateTime),
		EndAt:      parseInstant(b.EndTime),
		UserName:   b.UserName,
		Mine:       mine,
		Notes:      b.Notes,
		ServiceIDs: b.Services,
	}
}

// Availability модель окна доступности на проводе
type Availability struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ToDomain конвертирует окно в доменную модель
func (a Availability) ToDomain() (domain.AvailabilityWindow, error) {
	date, err := time.Parse(domain.DateFormat, a.Date)
	if err != nil {
		return domain.AvailabilityWindow{}, fmt.Errorf("%w: invalid availability date %q: %v", ErrInvalidResponse, a.Date, err)
	}

	start, err := types.NewTimeStringFromString(a.StartTime)
	if err != nil {
		return domain.AvailabilityWindow{}, fmt.Errorf("%w: invalid availability start_time: %v", ErrInvalidResponse, err)
	}

	end, err := types.NewTimeStringFromString(a.EndTime)
	if err != nil {
		return domain.AvailabilityWindow{}, fmt.Errorf("%w: invalid availability end_time: %v", ErrInvalidResponse, err)
	}

	return domain.AvailabilityWindow{
		ID:        a.ID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// Service модель услуги на проводе
type Service struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Worktime    string        `json:"worktime"`
	Price       decimalString `json:"price"`
	Information string        `json:"information"`
	Category    int64         `json:"category"`
}

// ToDomain конвертирует услугу в доменную модель
func (s Service) ToDomain() domain.Service {
	return domain.Service{
		ID:          s.ID,
		Name:        s.Name,
		Worktime:    s.Worktime,
		Price:       string(s.Price),
		Information: s.Information,
		CategoryID:  s.Category,
	}
}

// Category модель категории услуг на проводе
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ToDomain конвертирует категорию в доменную модель
func (c Category) ToDomain() domain.Category {
	return domain.Category{ID: c.ID, Name: c.Name}
}

// CreateBookingRequest запрос на создание бронирования
// date_time передается в UTC (ISO8601)
type CreateBookingRequest struct {
	ServiceIDs []int64 `json:"service_ids"`
	DateTime   string  `json:"date_time"`
	Notes      string  `json:"notes,omitempty"`
	User       *int64  `json:"user,omitempty"` // только admin: бронирование от имени пользователя
}

// UpdateBookingRequest запрос на обновление бронирования
type UpdateBookingRequest struct {
	ServiceIDs []int64 `json:"service_ids,omitempty"`
	DateTime   string  `json:"date_time,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// CreateAvailabilityRequest запрос на создание окна доступности
type CreateAvailabilityRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ServicePayload запрос на создание/обновление услуги (admin)
type ServicePayload struct {
	Name        string `json:"name"`
	Worktime    string `json:"worktime"`
	Price       string `json:"price"`
	Information string `json:"information,omitempty"`
	Category    int64  `json:"category"`
}

// Credentials данные для входа
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair ответ на логин
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile профиль пользователя
type Profile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

// ProfileUpdate запрос на обновление профиля
type ProfileUpdate struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// ChangePasswordRequest запрос на смену пароля
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// User запись пользователя (admin-список)
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// FormatInstant форматирует момент времени для передачи бэкенду:
// все таймстемпы уходят в UTC (ISO8601)
func FormatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseInstant парсит ISO8601-таймстемп, нулевое время при ошибке
func parseInstant(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
