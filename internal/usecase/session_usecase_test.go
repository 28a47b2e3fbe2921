package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

func TestSessionResolve_NoTokenMeansUnauthenticated(t *testing.T) {
	session := usecase.NewSessionUC(&fakeTokenRepo{}, &fakeAuthRepo{}, nopLogger{})

	if got := session.State(); got != domain.AuthUnknown {
		t.Fatalf("state before first resolve must be unknown, got %s", got)
	}

	if got := session.Resolve(context.Background()); got != domain.AuthUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", got)
	}
}

func TestSessionResolve_StorageFailureFailsClosed(t *testing.T) {
	tokens := &fakeTokenRepo{getErr: errors.New("storage down")}
	session := usecase.NewSessionUC(tokens, &fakeAuthRepo{}, nopLogger{})

	if got := session.Resolve(context.Background()); got != domain.AuthUnauthenticated {
		t.Fatalf("storage failure must resolve to unauthenticated, got %s", got)
	}
	// из unknown машина выходит всегда
	if got := session.State(); got == domain.AuthUnknown {
		t.Fatal("state must never stay unknown after resolve")
	}
}

func TestSessionLogin_PersistsTokenAcrossResolves(t *testing.T) {
	tokens := &fakeTokenRepo{}
	auth := &fakeAuthRepo{token: "jwt-token"}
	session := usecase.NewSessionUC(tokens, auth, nopLogger{})

	err := session.Login(context.Background(), usecase.NewLoginReq("mor_2314", "83r5^_"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := session.State(); got != domain.AuthAuthenticated {
		t.Fatalf("expected authenticated, got %s", got)
	}

	// повторные проверки после навигации читают тот же токен
	for i := 0; i < 3; i++ {
		if got := session.Resolve(context.Background()); got != domain.AuthAuthenticated {
			t.Fatalf("resolve %d: expected authenticated, got %s", i, got)
		}
	}
}

func TestSessionLogin_ValidatesInput(t *testing.T) {
	session := usecase.NewSessionUC(&fakeTokenRepo{}, &fakeAuthRepo{}, nopLogger{})

	err := session.Login(context.Background(), usecase.NewLoginReq("  ", "pass"))
	if !errors.Is(err, e.ErrUsernameRequired) {
		t.Fatalf("expected ErrUsernameRequired, got %v", err)
	}

	err = session.Login(context.Background(), usecase.NewLoginReq("user", ""))
	if !errors.Is(err, e.ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestSessionLogin_AuthFailureKeepsUnauthenticated(t *testing.T) {
	auth := &fakeAuthRepo{loginErr: e.WithMessage("invalid credentials", e.ErrAuthFailed)}
	session := usecase.NewSessionUC(&fakeTokenRepo{}, auth, nopLogger{})
	session.Resolve(context.Background())

	err := session.Login(context.Background(), usecase.NewLoginReq("user", "wrong"))
	if !errors.Is(err, e.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
	if got := session.State(); got != domain.AuthUnauthenticated {
		t.Fatalf("failed login must keep unauthenticated, got %s", got)
	}
}

func TestSessionLogin_TokenWriteFailureMeansLoginFailed(t *testing.T) {
	tokens := &fakeTokenRepo{setErr: errors.New("disk full")}
	auth := &fakeAuthRepo{token: "jwt-token"}
	session := usecase.NewSessionUC(tokens, auth, nopLogger{})
	session.Resolve(context.Background())

	if err := session.Login(context.Background(), usecase.NewLoginReq("user", "pass")); err == nil {
		t.Fatal("expected error when token cannot be persisted")
	}
	if got := session.State(); got != domain.AuthUnauthenticated {
		t.Fatalf("unpersisted login must not authenticate, got %s", got)
	}
}

func TestSessionRegister_ChainsIntoLogin(t *testing.T) {
	tokens := &fakeTokenRepo{}
	auth := &fakeAuthRepo{token: "jwt-token"}
	session := usecase.NewSessionUC(tokens, auth, nopLogger{})

	req := usecase.NewRegisterReq("newuser", "secret1", "new@example.com")
	if err := session.Register(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(auth.registered) != 1 || len(auth.logins) != 1 {
		t.Fatalf("register must chain into login: registered=%d logins=%d", len(auth.registered), len(auth.logins))
	}
	if auth.logins[0].Username != "newuser" || auth.logins[0].Password != "secret1" {
		t.Fatalf("login chain must reuse the same credentials: %+v", auth.logins[0])
	}
	if got := session.State(); got != domain.AuthAuthenticated {
		t.Fatalf("expected authenticated after register, got %s", got)
	}
}

func TestSessionRegister_Validation(t *testing.T) {
	session := usecase.NewSessionUC(&fakeTokenRepo{}, &fakeAuthRepo{}, nopLogger{})
	ctx := context.Background()

	cases := []struct {
		name string
		req  *usecase.RegisterReq
		want error
	}{
		{"empty username", usecase.NewRegisterReq("", "secret1", "a@b.co"), e.ErrUsernameRequired},
		{"empty email", usecase.NewRegisterReq("user", "secret1", ""), e.ErrEmailRequired},
		{"malformed email", usecase.NewRegisterReq("user", "secret1", "not-an-email"), e.ErrInvalidEmail},
		{"short password", usecase.NewRegisterReq("user", "12345", "a@b.co"), e.ErrPasswordTooShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := session.Register(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSessionLogout_MissingTokenIsNotError(t *testing.T) {
	session := usecase.NewSessionUC(&fakeTokenRepo{}, &fakeAuthRepo{}, nopLogger{})

	if err := session.Logout(context.Background()); err != nil {
		t.Fatalf("logout without token must succeed, got %v", err)
	}
	if got := session.State(); got != domain.AuthUnauthenticated {
		t.Fatalf("expected unauthenticated after logout, got %s", got)
	}
}

func TestSessionSubscribe_NotifiesOnlyOnChange(t *testing.T) {
	tokens := &fakeTokenRepo{}
	auth := &fakeAuthRepo{token: "jwt-token"}
	session := usecase.NewSessionUC(tokens, auth, nopLogger{})

	var transitions []domain.AuthState
	unsub := session.Subscribe(func(state domain.AuthState) {
		transitions = append(transitions, state)
	})

	session.Resolve(context.Background()) // unknown -> unauthenticated
	session.Resolve(context.Background()) // без смены, уведомления нет
	if err := session.Login(context.Background(), usecase.NewLoginReq("user", "pass")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	session.Resolve(context.Background()) // подтверждение того же состояния

	want := []domain.AuthState{domain.AuthUnauthenticated, domain.AuthAuthenticated}
	if len(transitions) != len(want) {
		t.Fatalf("expected %d notifications, got %d: %v", len(want), len(transitions), transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d: expected %s, got %s", i, want[i], transitions[i])
		}
	}

	unsub()
	if err := session.Logout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transitions) != len(want) {
		t.Fatal("unsubscribed handler must not be notified")
	}
}
