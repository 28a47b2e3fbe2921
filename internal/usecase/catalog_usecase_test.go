package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

func TestCatalogLoad_DerivesRoundedBounds(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleCatalog()}
	catalog := usecase.NewCatalogUC(repo, nopLogger{})

	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view := catalog.View()
	if !view.Bounds.Min.Equal(price("9")) {
		t.Fatalf("expected floor(9.99)=9, got %s", view.Bounds.Min)
	}
	if !view.Bounds.Max.Equal(price("168")) {
		t.Fatalf("expected ceil(168.00)=168, got %s", view.Bounds.Max)
	}
	// при первой загрузке выбранный диапазон совпадает с границами
	if !view.Selected.Min.Equal(view.Bounds.Min) || !view.Selected.Max.Equal(view.Bounds.Max) {
		t.Fatalf("selected range must match bounds on first load: %+v", view.Selected)
	}
	if repo.calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", repo.calls)
	}
}

func TestCatalogLoad_FailureKeepsPreviousState(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleCatalog()}
	catalog := usecase.NewCatalogUC(repo, nopLogger{})

	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.err = e.ErrFetchFailed
	if err := catalog.Load(context.Background()); !errors.Is(err, e.ErrFetchFailed) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	view := catalog.View()
	if len(view.Products) != 4 {
		t.Fatalf("failed reload must keep previous catalog, got %d products", len(view.Products))
	}
}

func TestCatalogLoad_DiscardsResultAfterCancellation(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleCatalog()}
	catalog := usecase.NewCatalogUC(repo, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := catalog.Load(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if got := len(catalog.View().Products); got != 0 {
		t.Fatalf("cancelled load must not apply, got %d products", got)
	}
}

func TestCatalogReload_ClampsSelectedRange(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleCatalog()}
	catalog := usecase.NewCatalogUC(repo, nopLogger{})

	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := catalog.SetPriceRange("9", "168"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// каталог сжался: старый выбор выходит за новые границы
	repo.products = []domain.Product{
		*domain.NewProduct(5, "Pen", price("12.40"), "", "office"),
		*domain.NewProduct(6, "Notebook", price("30.10"), "", "office"),
	}
	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view := catalog.View()
	if !view.Selected.Min.Equal(price("12")) || !view.Selected.Max.Equal(price("31")) {
		t.Fatalf("selected range must clamp to new bounds [12, 31], got %+v", view.Selected)
	}
}

func TestCatalogSetPriceRange_RejectsUnparsable(t *testing.T) {
	catalog := usecase.NewCatalogUC(&fakeCatalogRepo{}, nopLogger{})

	if err := catalog.SetPriceRange("abc", "10"); !errors.Is(err, e.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if err := catalog.SetPriceRange("1", ""); !errors.Is(err, e.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestCatalogSetPriceRange_AllowsInvertedRange(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleCatalog()}
	catalog := usecase.NewCatalogUC(repo, nopLogger{})

	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// слайдеры независимы: min > max валиден и даёт пустую выборку
	if err := catalog.SetPriceRange("100", "10"); err != nil {
		t.Fatalf("inverted range must be accepted, got %v", err)
	}
	if got := len(catalog.View().Products); got != 0 {
		t.Fatalf("inverted range must yield empty view, got %d", got)
	}
}

func TestCatalogView_FilterRecomputedFromFullCatalog(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleCatalog(), cats: []string{"bags", "clothing", "jewelery"}}
	catalog := usecase.NewCatalogUC(repo, nopLogger{})

	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := catalog.LoadCategories(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	catalog.SetCategory("clothing")
	if got := len(catalog.View().Products); got != 2 {
		t.Fatalf("expected 2 clothing products, got %d", got)
	}

	// снятие фильтра возвращает полный каталог, состояние не потеряно
	catalog.SetCategory("")
	view := catalog.View()
	if got := len(view.Products); got != 4 {
		t.Fatalf("expected full catalog after filter reset, got %d", got)
	}
	if len(view.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(view.Categories))
	}
}

func TestCatalogLoadCategories_FailureDoesNotTouchProducts(t *testing.T) {
	repo := &fakeCatalogRepo{products: sampleCatalog()}
	catalog := usecase.NewCatalogUC(repo, nopLogger{})

	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.err = e.ErrFetchFailed
	if err := catalog.LoadCategories(context.Background()); err == nil {
		t.Fatal("expected categories error")
	}

	if got := len(catalog.View().Products); got != 4 {
		t.Fatalf("categories failure must not affect products, got %d", got)
	}
}
