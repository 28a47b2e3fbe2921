package usecase

import "github.com/DRSN-tech/go-storefront/internal/domain"

// FilterProducts возвращает товары каталога, проходящие оба предиката
// критериев (категория И цена), с сохранением исходного порядка.
// Функция чистая и не держит состояния между вызовами: результат всегда
// пересчитывается от полного каталога, инкрементальных правок нет.
// Пустой каталог и вывернутый диапазон (min > max) дают пустой результат,
// не ошибку.
func FilterProducts(catalog []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	filtered := make([]domain.Product, 0, len(catalog))
	for _, product := range catalog {
		if criteria.Matches(&product) {
			filtered = append(filtered, product)
		}
	}

	return filtered
}
