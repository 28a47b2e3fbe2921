package usecase_test

import (
	"context"
	"sync"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeCatalogRepo struct {
	products []domain.Product
	cats     []string
	err      error
	calls    int
}

func (f *fakeCatalogRepo) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeCatalogRepo) FetchCategories(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.cats...), nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	token  string
	getErr error
	setErr error
}

func (f *fakeTokenRepo) Get(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	if f.token == "" {
		return "", e.ErrTokenNotFound
	}
	return f.token, nil
}

func (f *fakeTokenRepo) Set(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.token = token
	return nil
}

func (f *fakeTokenRepo) Delete(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.token == "" {
		return e.ErrTokenNotFound
	}
	f.token = ""
	return nil
}

type fakeAuthRepo struct {
	token       string
	loginErr    error
	registerErr error
	logins      []usecase.LoginReq
	registered  []usecase.RegisterReq
}

func (f *fakeAuthRepo) Login(ctx context.Context, req *usecase.LoginReq) (string, error) {
	f.logins = append(f.logins, *req)
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

func (f *fakeAuthRepo) Register(ctx context.Context, req *usecase.RegisterReq) error {
	f.registered = append(f.registered, *req)
	return f.registerErr
}

type fakeCamera struct {
	uri string
	err error
}

func (f *fakeCamera) LaunchCamera(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.uri, nil
}

type fakePhotoRepo struct {
	uploadErr error
	uploaded  []*usecase.ProofPhoto
	deleted   []string
}

func (f *fakePhotoRepo) Upload(ctx context.Context, photo *usecase.ProofPhoto) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = append(f.uploaded, photo)
	return "proof/" + photo.SubmissionID + ".jpg", nil
}

func (f *fakePhotoRepo) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeSink struct {
	err      error
	enqueued []*domain.ProofOfDelivery
}

func (f *fakeSink) Enqueue(proof *domain.ProofOfDelivery) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, proof)
	return nil
}
