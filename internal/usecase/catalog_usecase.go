package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// CatalogUseCase держит загруженный каталог и производное
// отфильтрованное представление. Каталог принадлежит ему монопольно;
// корзина хранит собственные снимки и от сбросов каталога не зависит.
type CatalogUseCase struct {
	mu      sync.Mutex
	repo    CatalogRepository
	logger  logger.Logger
	loaded  bool
	catalog []domain.Product
	cats    []string

	// производные границы цен и выбранный диапазон
	minBound decimal.Decimal
	maxBound decimal.Decimal
	selMin   decimal.Decimal
	selMax   decimal.Decimal
	category string
}

func NewCatalogUC(repo CatalogRepository, logger logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Load выполняет ровно один удалённый запрос каталога. Успех заменяет
// каталог и перевыводит границы цен: floor(min) и ceil(max). Неудача
// оставляет предыдущее состояние нетронутым и возвращает ошибку
// загрузки вызывающему, а не роняет слой выше.
func (c *CatalogUseCase) Load(ctx context.Context) error {
	const op = "CatalogUseCase.Load"

	products, err := c.repo.FetchProducts(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	// Результат, пришедший после отмены (экран размонтирован),
	// отбрасывается, а не применяется к уже неактуальному состоянию.
	if ctx.Err() != nil {
		c.logger.Debugf("%s: fetch result discarded after cancellation", op)
		return e.Wrap(op, ctx.Err())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.catalog = products
	c.deriveBounds()
	c.loaded = true

	return nil
}

// LoadCategories — независимый запрос списка категорий.
// Его неудача не блокирует и не инвалидирует загрузку товаров.
func (c *CatalogUseCase) LoadCategories(ctx context.Context) error {
	const op = "CatalogUseCase.LoadCategories"

	cats, err := c.repo.FetchCategories(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	if ctx.Err() != nil {
		return e.Wrap(op, ctx.Err())
	}

	c.mu.Lock()
	c.cats = cats
	c.mu.Unlock()

	return nil
}

// SetCategory выбирает фильтр категории; пустая строка — «все».
func (c *CatalogUseCase) SetCategory(category string) {
	c.mu.Lock()
	c.category = category
	c.mu.Unlock()
}

// SetPriceRange выставляет выбранный диапазон цен. Слайдеры в UI
// независимы, поэтому min > max допустим и означает пустую выборку;
// отклоняется только непарсящееся значение.
func (c *CatalogUseCase) SetPriceRange(min, max string) error {
	minPrice, err := decimal.NewFromString(min)
	if err != nil {
		return e.Wrap(min, e.ErrInvalidPrice)
	}

	maxPrice, err := decimal.NewFromString(max)
	if err != nil {
		return e.Wrap(max, e.ErrInvalidPrice)
	}

	c.mu.Lock()
	c.selMin = minPrice
	c.selMax = maxPrice
	c.mu.Unlock()

	return nil
}

// View возвращает снимок каталога с отфильтрованным представлением.
// Фильтр пересчитывается от полного каталога при каждом вызове.
func (c *CatalogUseCase) View() *CatalogView {
	c.mu.Lock()
	defer c.mu.Unlock()

	criteria := domain.NewFilterCriteria(c.category, c.selMin, c.selMax)

	return &CatalogView{
		Products:         FilterProducts(c.catalog, criteria),
		Categories:       append([]string(nil), c.cats...),
		Bounds:           PriceBounds{Min: c.minBound, Max: c.maxBound},
		Selected:         PriceBounds{Min: c.selMin, Max: c.selMax},
		SelectedCategory: c.category,
	}
}

// deriveBounds перевыводит границы цен из каталога и приводит выбранный
// диапазон к новым границам. При первой загрузке выбранный диапазон
// совпадает с границами; при повторной — прижимается внутрь, чтобы
// устаревший выбор не отфильтровал каталог в пустоту.
// Вызывается под мьютексом.
func (c *CatalogUseCase) deriveBounds() {
	if len(c.catalog) == 0 {
		c.minBound, c.maxBound = decimal.Zero, decimal.Zero
		c.selMin, c.selMax = decimal.Zero, decimal.Zero
		return
	}

	min, max := c.catalog[0].Price, c.catalog[0].Price
	for _, p := range c.catalog[1:] {
		if p.Price.LessThan(min) {
			min = p.Price
		}
		if p.Price.GreaterThan(max) {
			max = p.Price
		}
	}

	c.minBound = min.Floor()
	c.maxBound = max.Ceil()

	if !c.loaded {
		c.selMin, c.selMax = c.minBound, c.maxBound
		return
	}

	c.selMin = clampPrice(c.selMin, c.minBound, c.maxBound)
	c.selMax = clampPrice(c.selMax, c.minBound, c.maxBound)
}

func clampPrice(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
