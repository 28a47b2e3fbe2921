package usecase

import (
	"context"

	"github.com/DRSN-tech/go-storefront/internal/domain"
)

type CatalogUC interface {
	Load(ctx context.Context) error
	LoadCategories(ctx context.Context) error
	SetCategory(category string)
	SetPriceRange(min, max string) error
	View() *CatalogView
}

type CartUC interface {
	Add(product *domain.Product)
	Remove(productID int64)
	UpdateQuantity(productID int64, quantity int)
	Clear()
	View() *CartView
}

type SessionUC interface {
	State() domain.AuthState
	Resolve(ctx context.Context) domain.AuthState
	Login(ctx context.Context, req *LoginReq) error
	Register(ctx context.Context, req *RegisterReq) error
	Logout(ctx context.Context) error
	Subscribe(fn func(domain.AuthState)) (unsubscribe func())
}

type NavigationUC interface {
	Flow() domain.Flow
	Route() domain.Route
	Navigate(ctx context.Context, route domain.Route) error
	Close()
}

type ProofUC interface {
	Capture(ctx context.Context) (string, error)
	Submit(ctx context.Context, req *SubmitProofReq) (*SubmitProofRes, error)
}
