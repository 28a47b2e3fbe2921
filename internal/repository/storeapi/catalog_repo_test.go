package storeapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/internal/repository/storeapi"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/shopspring/decimal"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

func newRepo(t *testing.T, handler http.Handler, maxRetries int) *storeapi.CatalogRepo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return storeapi.NewCatalogRepo(srv.Client(), &cfg.StoreAPICfg{
		BaseURL:    srv.URL,
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
	}, nopLogger{})
}

func TestFetchProducts_DecodesWireFormat(t *testing.T) {
	repo := newRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"title":"Backpack","price":109.95,"image":"https://img/1.jpg","category":"men's clothing"},
			{"id":2,"title":"T-Shirt","price":22.3,"image":"https://img/2.jpg","category":"men's clothing"}
		]`))
	}), 1)

	products, err := repo.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != 1 || products[0].Title != "Backpack" {
		t.Fatalf("unexpected product: %+v", products[0])
	}
	if !products[0].Price.Equal(decimal.RequireFromString("109.95")) {
		t.Fatalf("price decoded as %s", products[0].Price)
	}
}

func TestFetchCategories(t *testing.T) {
	repo := newRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/categories" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`["electronics","jewelery"]`))
	}), 1)

	cats, err := repo.FetchCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != 2 || cats[0] != "electronics" {
		t.Fatalf("unexpected categories: %v", cats)
	}
}

func TestFetchProducts_RetriesServerErrors(t *testing.T) {
	var calls int
	repo := newRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	}), 3)

	if _, err := repo.FetchProducts(context.Background()); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestFetchProducts_ClientErrorNotRetried(t *testing.T) {
	var calls int
	repo := newRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}), 3)

	_, err := repo.FetchProducts(context.Background())
	if !errors.Is(err, e.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("4xx must not be retried, got %d attempts", calls)
	}
}

func TestFetchProducts_ExhaustedRetriesWrapFetchFailed(t *testing.T) {
	var calls int
	repo := newRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}), 2)

	_, err := repo.FetchProducts(context.Background())
	if !errors.Is(err, e.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestFetchProducts_CancelledContextStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	repo := newRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		cancel()
		w.WriteHeader(http.StatusInternalServerError)
	}), 5)

	if _, err := repo.FetchProducts(ctx); err == nil {
		t.Fatal("expected error after cancellation")
	}
	if calls != 1 {
		t.Fatalf("cancelled context must stop the retry loop, got %d attempts", calls)
	}
}
