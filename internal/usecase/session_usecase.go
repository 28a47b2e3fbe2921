package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SessionUseCase — Session Gate: единственный на процесс держатель
// статуса аутентификации, выведенного из наличия сохранённого токена.
// Состояние раздаётся только на чтение; переходы идут через Resolve,
// Login и Logout. Терминальных состояний нет.
type SessionUseCase struct {
	mu      sync.Mutex
	tokens  TokenRepository
	auth    AuthRepository
	logger  logger.Logger
	state   domain.AuthState
	subs    map[int]func(domain.AuthState)
	nextSub int
}

func NewSessionUC(tokens TokenRepository, auth AuthRepository, logger logger.Logger) *SessionUseCase {
	return &SessionUseCase{
		tokens: tokens,
		auth:   auth,
		logger: logger,
		state:  domain.AuthUnknown,
		subs:   make(map[int]func(domain.AuthState)),
	}
}

// State возвращает текущее состояние без обращения к хранилищу.
func (s *SessionUseCase) State() domain.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Resolve перечитывает наличие токена и перевыводит флаг
// аутентификации. Вызов дешёвый и идемпотентный: выполняется при
// старте и после каждого изменения навигации. Ошибка хранилища
// трактуется как отсутствие токена (fail closed): из Unknown машина
// выходит всегда.
func (s *SessionUseCase) Resolve(ctx context.Context) domain.AuthState {
	const op = "SessionUseCase.Resolve"

	state := domain.AuthAuthenticated
	if _, err := s.tokens.Get(ctx); err != nil {
		if !errors.Is(err, e.ErrTokenNotFound) {
			s.logger.Warnf("%s: token read failed, treating as unauthenticated: %v", op, err)
		}
		state = domain.AuthUnauthenticated
	}

	s.setState(state)
	return state
}

// Login валидирует ввод, выполняет удалённый вход и сохраняет токен.
// Неверные кредиты возвращаются как e.ErrAuthFailed с сообщением
// сервера, когда оно есть.
func (s *SessionUseCase) Login(ctx context.Context, req *LoginReq) error {
	const op = "SessionUseCase.Login"

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" {
		return e.ErrUsernameRequired
	}
	if password == "" {
		return e.ErrPasswordRequired
	}

	token, err := s.auth.Login(ctx, NewLoginReq(username, password))
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := s.tokens.Set(ctx, token); err != nil {
		// Без сохранённого токена следующая проверка выкинет из
		// авторизованного подграфа, поэтому вход считается неудавшимся.
		return e.Wrap(op, err)
	}

	s.setState(domain.AuthAuthenticated)
	return nil
}

// Register валидирует ввод, регистрирует пользователя и сразу
// выполняет цепочку входа с теми же кредитами.
func (s *SessionUseCase) Register(ctx context.Context, req *RegisterReq) error {
	const op = "SessionUseCase.Register"

	if err := validateRegister(req); err != nil {
		return err
	}

	if err := s.auth.Register(ctx, req); err != nil {
		return e.Wrap(op, err)
	}

	return s.Login(ctx, NewLoginReq(req.Username, req.Password))
}

// Logout удаляет сохранённый токен и закрывает авторизованный подграф.
// Отсутствие токена не ошибка: переход поддерживается всегда.
func (s *SessionUseCase) Logout(ctx context.Context) error {
	const op = "SessionUseCase.Logout"

	if err := s.tokens.Delete(ctx); err != nil && !errors.Is(err, e.ErrTokenNotFound) {
		return e.Wrap(op, err)
	}

	s.setState(domain.AuthUnauthenticated)
	return nil
}

// Subscribe регистрирует обработчик смены состояния и возвращает
// функцию отписки. Подписка без отписки — утечка: контроллер навигации
// обязан отписаться при завершении.
func (s *SessionUseCase) Subscribe(fn func(domain.AuthState)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// setState фиксирует переход и уведомляет подписчиков только при
// фактической смене значения: повторное подтверждение того же
// состояния не должно провоцировать лишние перестроения экранов.
func (s *SessionUseCase) setState(state domain.AuthState) {
	s.mu.Lock()
	if s.state == state {
		s.mu.Unlock()
		return
	}

	prev := s.state
	s.state = state
	subs := make([]func(domain.AuthState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.logger.Infof("session state changed: %s -> %s", prev, state)
	for _, fn := range subs {
		fn(state)
	}
}

func validateRegister(req *RegisterReq) error {
	if strings.TrimSpace(req.Username) == "" {
		return e.ErrUsernameRequired
	}
	if strings.TrimSpace(req.Email) == "" {
		return e.ErrEmailRequired
	}
	if !emailRe.MatchString(req.Email) {
		return e.ErrInvalidEmail
	}
	if len(req.Password) < 6 {
		return e.ErrPasswordTooShort
	}

	return nil
}
