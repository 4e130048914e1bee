package handlers

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct валидирует структуру по validate-тегам.
// Возвращает ошибки по полям, nil если структура валидна.
func ValidateStruct(s interface{}) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"_": {err.Error()}}
	}

	fields := make(map[string][]string, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fe.Field()] = append(fields[fe.Field()], fe.Tag())
	}
	return fields
}
