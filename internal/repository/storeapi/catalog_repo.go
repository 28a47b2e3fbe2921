package storeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/jitter"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/jimlawless/whereami"
)

// CatalogRepo реализует загрузку каталога поверх REST API магазина.
type CatalogRepo struct {
	client *http.Client
	cfg    *cfg.StoreAPICfg
	logger logger.Logger
}

func NewCatalogRepo(client *http.Client, cfg *cfg.StoreAPICfg, logger logger.Logger) *CatalogRepo {
	return &CatalogRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// FetchProducts запрашивает полный список товаров.
func (r *CatalogRepo) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogRepo.FetchProducts"

	var models []productModel
	if err := r.getJSON(ctx, "/products", &models); err != nil {
		return nil, e.Wrap(op, err)
	}

	products := make([]domain.Product, 0, len(models))
	for _, m := range models {
		products = append(products, *m.toDomain())
	}

	return products, nil
}

// FetchCategories запрашивает список категорий. Вызов независим от
// загрузки товаров: его неудача не должна её блокировать.
func (r *CatalogRepo) FetchCategories(ctx context.Context) ([]string, error) {
	const op = "CatalogRepo.FetchCategories"

	var categories []string
	if err := r.getJSON(ctx, "/products/categories", &categories); err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// getJSON выполняет GET с повторами и экспоненциальной задержкой.
// Повторяются только сетевые сбои и 5xx; отмена контекста прерывает
// цикл сразу.
func (r *CatalogRepo) getJSON(ctx context.Context, path string, out any) error {
	const (
		baseBackoff = 500 * time.Millisecond
		maxBackoff  = 5 * time.Second
	)

	var lastErr error
	for attempt := 0; attempt < r.cfg.MaxRetries; attempt++ {
		retryable, err := r.getJSONOnce(ctx, path, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if attempt == r.cfg.MaxRetries-1 {
			break
		}

		sleepTime := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)
		r.logger.Warnf("store api %s failed, retrying in %v (attempt %d): %v", path, sleepTime, attempt+1, err)

		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return e.Wrap(whereami.WhereAmI(), ctx.Err())
		}
	}

	return e.Wrap(whereami.WhereAmI(), e.Wrap(lastErr.Error(), e.ErrFetchFailed))
}

func (r *CatalogRepo) getJSONOnce(ctx context.Context, path string, out any) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+path, nil)
	if err != nil {
		return false, err
	}

	res, err := r.client.Do(req)
	if err != nil {
		return true, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return res.StatusCode >= http.StatusInternalServerError,
			e.Wrap(fmt.Sprintf("%s: %d", path, res.StatusCode), e.ErrUnexpectedStatus)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return false, err
	}

	return false, nil
}
