package redis

import (
	"context"
	"errors"

	"github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/pkg/clients"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// TokenRepo хранит токен сессии в Redis под единственным ключом.
// TTL не ставится: токен живёт до явного logout либо внешней
// инвалидации.
type TokenRepo struct {
	client *clients.RedisClient
	cfg    *cfg.SessionCfg
	logger logger.Logger
}

func NewTokenRepo(client *clients.RedisClient, cfg *cfg.SessionCfg, logger logger.Logger) *TokenRepo {
	return &TokenRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Get возвращает сохранённый токен либо e.ErrTokenNotFound.
func (t *TokenRepo) Get(ctx context.Context) (string, error) {
	val, err := t.client.Client.Get(ctx, t.cfg.TokenKey).Result()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return "", e.ErrTokenNotFound
		}

		t.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	if val == "" {
		return "", e.ErrTokenNotFound
	}

	return val, nil
}

func (t *TokenRepo) Set(ctx context.Context, token string) error {
	if err := t.client.Client.Set(ctx, t.cfg.TokenKey, token, 0).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет токен. Отсутствие ключа не ошибка.
func (t *TokenRepo) Delete(ctx context.Context) error {
	if err := t.client.Client.Del(ctx, t.cfg.TokenKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
