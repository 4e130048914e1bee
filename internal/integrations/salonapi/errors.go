package salonapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnavailable возвращается при транспортных сбоях - запрос можно повторить
	ErrUnavailable = errors.New("salonapi client: backend unavailable")

	// ErrUnauthorized возвращается при отсутствующем или истекшем токене (401)
	ErrUnauthorized = errors.New("salonapi client: unauthorized")

	// ErrForbidden возвращается при недостатке прав (403)
	ErrForbidden = errors.New("salonapi client: forbidden")

	// ErrNotFound возвращается, когда запрошенный ресурс не найден (404)
	ErrNotFound = errors.New("salonapi client: not found")

	// ErrInvalidResponse возвращается при некорректном ответе бэкенда
	ErrInvalidResponse = errors.New("salonapi client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("salonapi client: internal error")
)

// ValidationError ошибка валидации от бэкенда (400)
// Field-level сообщения передаются наверх дословно
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "salonapi client: validation failed"
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return "salonapi client: validation failed: " + strings.Join(parts, ", ")
}
