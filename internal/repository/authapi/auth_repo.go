package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/jimlawless/whereami"
)

// AuthRepo реализует логин и регистрацию поверх REST API аутентификации.
type AuthRepo struct {
	client *http.Client
	cfg    *cfg.AuthAPICfg
	logger logger.Logger
}

func NewAuthRepo(client *http.Client, cfg *cfg.AuthAPICfg, logger logger.Logger) *AuthRepo {
	return &AuthRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Login обменивает кредиты на токен доступа. Каноничное поле ответа —
// accessToken; token принимается как запасной вариант для серверов,
// отдающих старое имя. Сообщение сервера об отказе пробрасывается
// пользователю.
func (r *AuthRepo) Login(ctx context.Context, req *usecase.LoginReq) (string, error) {
	var res loginResponse
	status, err := r.postJSON(ctx, "/auth/login", newLoginRequest(req), &res)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), e.Wrap(err.Error(), e.ErrFetchFailed))
	}

	token := res.token()
	if status != http.StatusOK || token == "" {
		if res.Message != "" {
			return "", e.WithMessage(res.Message, e.ErrAuthFailed)
		}
		return "", e.ErrAuthFailed
	}

	return token, nil
}

// Register создаёт пользователя. Успешный ответ содержит id; цепочку
// входа после регистрации выполняет слой выше.
func (r *AuthRepo) Register(ctx context.Context, req *usecase.RegisterReq) error {
	var res registerResponse
	status, err := r.postJSON(ctx, "/users/add", newRegisterRequest(req), &res)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), e.Wrap(err.Error(), e.ErrFetchFailed))
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices || res.ID == 0 {
		if res.Message != "" {
			return e.WithMessage(res.Message, e.ErrRegisterFailed)
		}
		return e.ErrRegisterFailed
	}

	return nil
}

func (r *AuthRepo) postJSON(ctx context.Context, path string, body any, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	// Тело ответа об отказе тоже JSON с полем message,
	// поэтому декодируем независимо от статуса.
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		r.logger.Debugf("auth api %s: undecodable response body: %v", path, err)
	}

	return res.StatusCode, nil
}
