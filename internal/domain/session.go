package domain

// AuthState — состояние машины Session Gate.
// Unknown действует только до первой проверки токена при старте,
// терминальных состояний нет: машина живёт весь процесс.
type AuthState int

const (
	AuthUnknown AuthState = iota
	AuthUnauthenticated
	AuthAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case AuthUnknown:
		return "unknown"
	case AuthUnauthenticated:
		return "unauthenticated"
	case AuthAuthenticated:
		return "authenticated"
	default:
		return "invalid"
	}
}

// Authenticated сообщает, открыт ли авторизованный подграф экранов.
func (s AuthState) Authenticated() bool {
	return s == AuthAuthenticated
}
