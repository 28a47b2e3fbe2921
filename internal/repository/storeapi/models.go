package storeapi

import (
	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// productModel — формат товара на проводе:
// {id, title, price, image, category}.
type productModel struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
}

func (m *productModel) toDomain() *domain.Product {
	return domain.NewProduct(m.ID, m.Title, m.Price, m.Image, m.Category)
}
