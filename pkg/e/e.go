package e

import (
	"errors"
	"fmt"
)

var (
	// Внутренние ошибки
	ErrInternalServerError  = fmt.Errorf("internal server error")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// Ошибки удалённых вызовов (каталог, категории, логин, регистрация)
	ErrFetchFailed      = fmt.Errorf("remote fetch failed")
	ErrUnexpectedStatus = fmt.Errorf("unexpected response status")

	// Ошибки аутентификации
	ErrAuthFailed     = fmt.Errorf("authentication failed")
	ErrTokenNotFound  = fmt.Errorf("token not found")
	ErrRegisterFailed = fmt.Errorf("registration failed")

	// Ошибки внешних возможностей устройства
	ErrPermissionDenied = fmt.Errorf("permission denied")
	ErrCameraFailed     = fmt.Errorf("camera capture failed")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrUsernameRequired     = fmt.Errorf("username is required")
	ErrPasswordRequired     = fmt.Errorf("password is required")
	ErrEmailRequired        = fmt.Errorf("email is required")
	ErrInvalidEmail         = fmt.Errorf("invalid email address")
	ErrPasswordTooShort     = fmt.Errorf("password must be at least 6 characters")
	ErrPhotoRequired        = fmt.Errorf("photo is required")
	ErrRatingRequired       = fmt.Errorf("rating must be between 1 and 5")
	ErrUnknownCondition     = fmt.Errorf("unknown item condition")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrInvalidQuantity      = fmt.Errorf("invalid quantity")
	ErrProductRequired      = fmt.Errorf("product is required")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	ErrUnknownTokenStore  = fmt.Errorf("unknown token store backend")
	ErrRouteNotReachable  = fmt.Errorf("route is not reachable in the active flow")
	ErrSubmissionRejected = fmt.Errorf("submission queue is shutting down")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// messageError несёт сообщение, предназначенное пользователю,
// поверх сентинела. Обычный Wrap добавляет технический контекст,
// который наружу не отдаётся; этот тип — единственный канал,
// по которому текст доходит до клиента.
type messageError struct {
	msg string
	err error
}

func (m *messageError) Error() string { return m.msg + ": " + m.err.Error() }

func (m *messageError) Unwrap() error { return m.err }

// WithMessage оборачивает ошибку пользовательским сообщением,
// например присланным сервером текстом отказа.
func WithMessage(msg string, err error) error {
	return &messageError{msg: msg, err: err}
}

// UserMessage возвращает ближайшее пользовательское сообщение
// в цепочке ошибки, если оно есть.
func UserMessage(err error) (string, bool) {
	var m *messageError
	if errors.As(err, &m) {
		return m.msg, true
	}

	return "", false
}
