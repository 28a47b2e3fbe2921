package domain

import "github.com/shopspring/decimal"

// FilterCriteria — критерии фильтрации каталога.
// Пустая категория означает «все категории».
type FilterCriteria struct {
	Category string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
}

func NewFilterCriteria(category string, minPrice, maxPrice decimal.Decimal) FilterCriteria {
	return FilterCriteria{
		Category: category,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}
}

// Matches сообщает, проходит ли товар оба предиката критериев:
// точное совпадение категории (если задана) и попадание цены
// в закрытый интервал [MinPrice, MaxPrice].
func (c FilterCriteria) Matches(p *Product) bool {
	if c.Category != "" && p.Category != c.Category {
		return false
	}

	return p.Price.GreaterThanOrEqual(c.MinPrice) && p.Price.LessThanOrEqual(c.MaxPrice)
}
