package usecase

import (
	"sync"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// CartUseCase — журнал корзины: отображение товара в количество.
// Строки хранят денормализованные снимки, поэтому обновление каталога
// не трогает уже добавленное. Мутации никогда не завершаются ошибкой:
// некорректный ввод нормализуется, а не отклоняется.
type CartUseCase struct {
	mu     sync.Mutex
	lines  map[int64]*domain.CartLine
	order  []int64 // порядок добавления для стабильного отображения
	logger logger.Logger
}

func NewCartUC(logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		lines:  make(map[int64]*domain.CartLine),
		logger: logger,
	}
}

// Add увеличивает количество существующей строки на 1 либо создаёт
// новую строку с количеством 1 и снимком полей товара.
func (c *CartUseCase) Add(product *domain.Product) {
	if product == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[product.ID]; ok {
		line.Quantity++
		return
	}

	c.lines[product.ID] = domain.NewCartLine(product)
	c.order = append(c.order, product.ID)
}

// Remove удаляет строку. Отсутствующий productID — no-op, не ошибка.
func (c *CartUseCase) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[productID]; !ok {
		return
	}

	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// UpdateQuantity выставляет количество строки. Значения меньше 1
// прижимаются к 1: нулевые и отрицательные количества не сохраняются
// никогда, даже если контрол декремента в UI сам ограничен единицей.
// Отсутствующий productID — no-op.
func (c *CartUseCase) UpdateQuantity(productID int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[productID]
	if !ok {
		return
	}

	if quantity < 1 {
		c.logger.Debugf("cart quantity %d clamped to 1 for product %d", quantity, productID)
		quantity = 1
	}

	line.Quantity = quantity
}

// Clear опустошает корзину целиком.
func (c *CartUseCase) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[int64]*domain.CartLine)
	c.order = nil
}

// View возвращает снимок корзины. Сумма считается заново при каждом
// вызове, кэша по строкам нет. ItemCount — число различных строк,
// не суммарное количество: ровно то, что показывает бейдж.
func (c *CartUseCase) View() *CartView {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]domain.CartLine, 0, len(c.order))
	total := decimal.Zero
	for _, id := range c.order {
		line := c.lines[id]
		lines = append(lines, *line)
		total = total.Add(line.Subtotal())
	}

	return &CartView{
		Lines:     lines,
		Total:     total,
		ItemCount: len(lines),
	}
}
