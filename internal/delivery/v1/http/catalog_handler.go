package http

import (
	"net/http"

	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

type filterRequest struct {
	Category string `json:"category"`
	MinPrice string `json:"minPrice"`
	MaxPrice string `json:"maxPrice"`
}

// getCatalog
//
//	@Summary		Каталог с текущим фильтром
//	@Description	Возвращает отфильтрованное представление каталога, границы цен и категории
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	CatalogResponse
//	@Failure		401	{object}	ErrorResponse	"Подграф недоступен"
//	@Router			/catalog [get]
func (h *CatalogHandler) getCatalog(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, toCatalogResponse(h.catalogUsecase.View()))
}

// refreshCatalog
//
//	@Summary		Загрузка каталога
//	@Description	Выполняет удалённую загрузку товаров и категорий; сбой категорий не мешает товарам
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	CatalogResponse
//	@Failure		502	{object}	ErrorResponse	"Сбой удалённого запроса"
//	@Router			/catalog/refresh [post]
func (h *CatalogHandler) refreshCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUsecase.Load(r.Context()); err != nil {
		h.logger.Warnf("catalog load failed: %v", err)
		WriteError(w, err)
		return
	}

	// Категории — независимый запрос: его неудача не инвалидирует товары.
	if err := h.catalogUsecase.LoadCategories(r.Context()); err != nil {
		h.logger.Warnf("categories load failed: %v", err)
	}

	WriteSuccess(w, http.StatusOK, toCatalogResponse(h.catalogUsecase.View()))
}

// getCategories
//
//	@Summary	Список категорий
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Router		/catalog/categories [get]
func (h *CatalogHandler) getCategories(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"categories": h.catalogUsecase.View().Categories,
	})
}

// setFilter
//
//	@Summary		Критерии фильтрации
//	@Description	Выставляет категорию и диапазон цен; пустая категория означает «все»
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			filter	body		filterRequest	true	"Критерии"
//	@Success		200		{object}	CatalogResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/catalog/filter [put]
func (h *CatalogHandler) setFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.catalogUsecase.SetPriceRange(req.MinPrice, req.MaxPrice); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, "invalid price range", err.Error())
		WriteError(w, err)
		return
	}
	h.catalogUsecase.SetCategory(req.Category)

	WriteSuccess(w, http.StatusOK, toCatalogResponse(h.catalogUsecase.View()))
}
