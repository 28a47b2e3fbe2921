package usecase

import (
	"context"

	"github.com/DRSN-tech/go-storefront/internal/domain"
)

type CatalogRepository interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	FetchCategories(ctx context.Context) ([]string, error)
}

type AuthRepository interface {
	// Login возвращает токен доступа либо ошибку e.ErrAuthFailed
	// с сообщением сервера, когда оно есть.
	Login(ctx context.Context, req *LoginReq) (string, error)
	Register(ctx context.Context, req *RegisterReq) error
}

// TokenRepository хранит единственную пару ключ-значение: токен сессии.
// Get возвращает e.ErrTokenNotFound, когда токен отсутствует.
type TokenRepository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

type PhotoRepository interface {
	Upload(ctx context.Context, photo *ProofPhoto) (string, error)
	Delete(ctx context.Context, key string) error
}
