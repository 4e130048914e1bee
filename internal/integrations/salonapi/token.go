package salonapi

import "context"

type ctxKey int

const tokenKey ctxKey = iota

// WithToken кладет bearer-токен пользователя в контекст
// Единственная точка, через которую токен попадает в исходящие запросы
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext извлекает bearer-токен из контекста
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}
