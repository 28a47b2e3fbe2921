package domain

import "github.com/shopspring/decimal"

// Product описывает товар каталога.
// Неизменяем после загрузки; владеет им Catalog Store,
// уничтожается при сбросе каталога (повторная загрузка, рестарт).
type Product struct {
	ID       int64
	Title    string
	Price    decimal.Decimal
	Image    string // URI изображения
	Category string
}

func NewProduct(id int64, title string, price decimal.Decimal, image string, category string) *Product {
	return &Product{
		ID:       id,
		Title:    title,
		Price:    price,
		Image:    image,
		Category: category,
	}
}
