package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest),
		errors.Is(err, e.ErrUsernameRequired),
		errors.Is(err, e.ErrPasswordRequired),
		errors.Is(err, e.ErrEmailRequired),
		errors.Is(err, e.ErrInvalidEmail),
		errors.Is(err, e.ErrPasswordTooShort),
		errors.Is(err, e.ErrPhotoRequired),
		errors.Is(err, e.ErrRatingRequired),
		errors.Is(err, e.ErrUnknownCondition),
		errors.Is(err, e.ErrInvalidPrice),
		errors.Is(err, e.ErrInvalidQuantity),
		errors.Is(err, e.ErrProductRequired),
		errors.Is(err, e.ErrRegisterFailed):
		return http.StatusBadRequest, rootMessage(err)
	case errors.Is(err, e.ErrAuthFailed),
		errors.Is(err, e.ErrTokenNotFound),
		errors.Is(err, e.ErrRouteNotReachable):
		return http.StatusUnauthorized, rootMessage(err)
	case errors.Is(err, e.ErrPermissionDenied):
		return http.StatusForbidden, e.ErrPermissionDenied.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrFetchFailed), errors.Is(err, e.ErrUnexpectedStatus):
		return http.StatusBadGateway, e.ErrFetchFailed.Error()
	case errors.Is(err, e.ErrSubmissionRejected):
		return http.StatusServiceUnavailable, e.ErrSubmissionRejected.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// rootMessage отдаёт сообщение для пользователя: присланный сервером
// текст, когда он есть в цепочке, иначе текст корневого сентинела.
// Технические префиксы обёрток (op, call site) наружу не уходят.
func rootMessage(err error) string {
	if msg, ok := e.UserMessage(err); ok {
		return msg
	}

	for unwrapped := errors.Unwrap(err); unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		err = unwrapped
	}

	return err.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RESPONSE DTO

type ProductResponse struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
}

type PriceBoundsResponse struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

type CatalogResponse struct {
	Products         []ProductResponse   `json:"products"`
	Categories       []string            `json:"categories"`
	Bounds           PriceBoundsResponse `json:"bounds"`
	Selected         PriceBoundsResponse `json:"selected"`
	SelectedCategory string              `json:"selectedCategory"`
}

type CartLineResponse struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

type CartResponse struct {
	Lines     []CartLineResponse `json:"lines"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int                `json:"itemCount"`
}

type SessionResponse struct {
	State string `json:"state"`
	Flow  string `json:"flow"`
	Route string `json:"route"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
	}
}

func toCatalogResponse(view *usecase.CatalogView) *CatalogResponse {
	products := make([]ProductResponse, 0, len(view.Products))
	for i := range view.Products {
		products = append(products, toProductResponse(&view.Products[i]))
	}

	return &CatalogResponse{
		Products:         products,
		Categories:       view.Categories,
		Bounds:           PriceBoundsResponse{Min: view.Bounds.Min, Max: view.Bounds.Max},
		Selected:         PriceBoundsResponse{Min: view.Selected.Min, Max: view.Selected.Max},
		SelectedCategory: view.SelectedCategory,
	}
}

func toCartResponse(view *usecase.CartView) *CartResponse {
	lines := make([]CartLineResponse, 0, len(view.Lines))
	for _, l := range view.Lines {
		lines = append(lines, CartLineResponse{
			ProductID: l.ProductID,
			Title:     l.Title,
			Price:     l.Price,
			Image:     l.Image,
			Quantity:  l.Quantity,
		})
	}

	return &CartResponse{
		Lines:     lines,
		Total:     view.Total,
		ItemCount: view.ItemCount,
	}
}

func decodeJSONBody(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}

	return nil
}
