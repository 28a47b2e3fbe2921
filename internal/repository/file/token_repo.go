package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/jimlawless/whereami"
)

// TokenRepo хранит токен сессии в одном файле на диске — аналог
// единственной пары ключ-значение у мобильного клиента.
type TokenRepo struct {
	path string
}

func NewTokenRepo(cfg *cfg.SessionCfg) *TokenRepo {
	return &TokenRepo{
		path: cfg.FilePath,
	}
}

// Get возвращает сохранённый токен либо e.ErrTokenNotFound.
func (t *TokenRepo) Get(_ context.Context) (string, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", e.ErrTokenNotFound
		}

		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", e.ErrTokenNotFound
	}

	return token, nil
}

func (t *TokenRepo) Set(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.WriteFile(t.path, []byte(token), 0o600); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет файл токена. Отсутствие файла не ошибка.
func (t *TokenRepo) Delete(_ context.Context) error {
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
