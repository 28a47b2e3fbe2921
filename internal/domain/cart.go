package domain

import "github.com/shopspring/decimal"

// CartLine — строка корзины: снимок товара на момент добавления
// плюс количество. На один ProductID приходится не более одной строки.
// Инвариант: Quantity >= 1; строка с нулевым количеством не хранится.
type CartLine struct {
	ProductID int64
	Title     string
	Price     decimal.Decimal
	Image     string
	Quantity  int
}

// NewCartLine создаёт строку корзины со снимком полей товара.
// Снимок денормализован намеренно: обновление каталога не должно
// менять уже добавленные строки.
func NewCartLine(product *Product) *CartLine {
	return &CartLine{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  1,
	}
}

// Subtotal возвращает стоимость строки: цена × количество.
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
