// Package apperrors содержит ошибки доменного уровня. Хендлеры сопоставляют
// их с HTTP-статусами через errors.Is, наружу сырые ошибки хранилища не уходят.
package apperrors

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or revoked token")
)
