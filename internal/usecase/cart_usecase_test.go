package usecase_test

import (
	"testing"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/usecase"
)

func TestCartAdd_NewLineAndIncrement(t *testing.T) {
	cart := usecase.NewCartUC(nopLogger{})
	backpack := domain.NewProduct(1, "Backpack", price("9.99"), "img/1.jpg", "bags")

	cart.Add(backpack)
	cart.Add(backpack)

	view := cart.View()
	if len(view.Lines) != 1 {
		t.Fatalf("expected single line, got %d", len(view.Lines))
	}
	if view.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", view.Lines[0].Quantity)
	}
}

func TestCartView_TotalAndBadge(t *testing.T) {
	cart := usecase.NewCartUC(nopLogger{})
	cart.Add(domain.NewProduct(1, "Backpack", price("9.99"), "img/1.jpg", "bags"))
	cart.Add(domain.NewProduct(1, "Backpack", price("9.99"), "img/1.jpg", "bags"))
	cart.Add(domain.NewProduct(2, "Mug", price("5.00"), "img/2.jpg", "home"))

	view := cart.View()
	if want := price("24.98"); !view.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, view.Total)
	}
	// бейдж считает различные строки, не суммарное количество
	if view.ItemCount != 2 {
		t.Fatalf("expected badge 2, got %d", view.ItemCount)
	}
}

func TestCartUpdateQuantity_ClampsBelowOne(t *testing.T) {
	cart := usecase.NewCartUC(nopLogger{})
	cart.Add(domain.NewProduct(1, "Backpack", price("9.99"), "img/1.jpg", "bags"))

	cart.UpdateQuantity(1, 0)
	if got := cart.View().Lines[0].Quantity; got != 1 {
		t.Fatalf("quantity 0 must clamp to 1, got %d", got)
	}

	cart.UpdateQuantity(1, -5)
	if got := cart.View().Lines[0].Quantity; got != 1 {
		t.Fatalf("negative quantity must clamp to 1, got %d", got)
	}

	cart.UpdateQuantity(1, 7)
	if got := cart.View().Lines[0].Quantity; got != 7 {
		t.Fatalf("expected quantity 7, got %d", got)
	}
}

func TestCartRemove_AbsentIsNoop(t *testing.T) {
	cart := usecase.NewCartUC(nopLogger{})
	cart.Add(domain.NewProduct(1, "Backpack", price("9.99"), "img/1.jpg", "bags"))

	cart.Remove(42)
	cart.UpdateQuantity(42, 3)

	view := cart.View()
	if len(view.Lines) != 1 || view.Lines[0].ProductID != 1 {
		t.Fatalf("absent product mutations must not touch existing lines: %+v", view.Lines)
	}
}

func TestCartRemove_DropsWholeLine(t *testing.T) {
	cart := usecase.NewCartUC(nopLogger{})
	cart.Add(domain.NewProduct(1, "Backpack", price("9.99"), "img/1.jpg", "bags"))
	cart.Add(domain.NewProduct(1, "Backpack", price("9.99"), "img/1.jpg", "bags"))
	cart.Add(domain.NewProduct(2, "Mug", price("5.00"), "img/2.jpg", "home"))

	cart.Remove(1)

	view := cart.View()
	if len(view.Lines) != 1 || view.Lines[0].ProductID != 2 {
		t.Fatalf("remove must drop the whole line regardless of quantity: %+v", view.Lines)
	}
	if !view.Total.Equal(price("5.00")) {
		t.Fatalf("expected total 5.00, got %s", view.Total)
	}
}

func TestCartClear_EmptyTotalIsZero(t *testing.T) {
	cart := usecase.NewCartUC(nopLogger{})
	cart.Add(domain.NewProduct(1, "Backpack", price("9.99"), "img/1.jpg", "bags"))

	cart.Clear()

	view := cart.View()
	if len(view.Lines) != 0 || view.ItemCount != 0 {
		t.Fatalf("expected empty cart, got %+v", view)
	}
	if !view.Total.IsZero() {
		t.Fatalf("empty cart total must be zero, got %s", view.Total)
	}
}

func TestCartSnapshot_IgnoresCatalogChanges(t *testing.T) {
	cart := usecase.NewCartUC(nopLogger{})
	backpack := domain.NewProduct(1, "Backpack", price("9.99"), "img/1.jpg", "bags")
	cart.Add(backpack)

	// изменение товара каталога после добавления не трогает строку
	backpack.Title = "Renamed"
	backpack.Price = price("99.99")

	line := cart.View().Lines[0]
	if line.Title != "Backpack" || !line.Price.Equal(price("9.99")) {
		t.Fatalf("cart line must keep its snapshot: %+v", line)
	}
}

func TestCartView_KeepsInsertionOrder(t *testing.T) {
	cart := usecase.NewCartUC(nopLogger{})
	cart.Add(domain.NewProduct(3, "C", price("3"), "", ""))
	cart.Add(domain.NewProduct(1, "A", price("1"), "", ""))
	cart.Add(domain.NewProduct(2, "B", price("2"), "", ""))

	view := cart.View()
	want := []int64{3, 1, 2}
	for i, id := range want {
		if view.Lines[i].ProductID != id {
			t.Fatalf("expected insertion order %v, got %+v", want, view.Lines)
		}
	}
}
