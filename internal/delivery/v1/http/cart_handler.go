package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

type addItemRequest struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// getCart
//
//	@Summary	Содержимое корзины
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Router		/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, toCartResponse(h.cartUsecase.View()))
}

// addItem
//
//	@Summary		Добавление товара в корзину
//	@Description	Повторное добавление того же товара увеличивает количество на 1
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			product	body		addItemRequest	true	"Товар"
//	@Success		201		{object}	CartResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/cart/items [post]
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.ID <= 0 {
		h.logger.Warnf("%d %s: product id %d", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), req.ID)
		WriteError(w, e.ErrProductRequired)
		return
	}

	h.cartUsecase.Add(domain.NewProduct(req.ID, req.Title, req.Price, req.Image, req.Category))

	WriteSuccess(w, http.StatusCreated, toCartResponse(h.cartUsecase.View()))
}

// updateItem
//
//	@Summary		Количество строки корзины
//	@Description	Количество меньше 1 прижимается к 1; отсутствующий товар — no-op
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int					true	"ID товара"
//	@Param			quantity	body		updateItemRequest	true	"Новое количество"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/cart/items/{id} [put]
func (h *CartHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req updateItemRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	h.cartUsecase.UpdateQuantity(productID, req.Quantity)

	WriteSuccess(w, http.StatusOK, toCartResponse(h.cartUsecase.View()))
}

// removeItem
//
//	@Summary	Удаление строки корзины
//	@Tags		cart
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	CartResponse
//	@Router		/cart/items/{id} [delete]
func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.cartUsecase.Remove(productID)

	WriteSuccess(w, http.StatusOK, toCartResponse(h.cartUsecase.View()))
}

// clearCart
//
//	@Summary	Очистка корзины
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Router		/cart [delete]
func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.cartUsecase.Clear()

	WriteSuccess(w, http.StatusOK, toCartResponse(h.cartUsecase.View()))
}

func parseProductID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, e.Wrap(chi.URLParam(r, "id"), e.ErrProductRequired)
	}

	return id, nil
}
