package usecase

import (
	"time"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// SESSION USECASE

// LoginReq — запрос на вход по логину и паролю.
type LoginReq struct {
	Username string
	Password string
}

// RegisterReq — запрос на регистрацию нового пользователя.
type RegisterReq struct {
	Username string
	Password string
	Email    string
}

// CATALOG USECASE

// PriceBounds — границы цен, выведенные из каталога.
type PriceBounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// CatalogView — снимок каталога для внешнего использования:
// отфильтрованный список, категории и текущие критерии.
type CatalogView struct {
	Products         []domain.Product
	Categories       []string
	Bounds           PriceBounds
	Selected         PriceBounds
	SelectedCategory string
}

// CART USECASE

// CartView — снимок корзины: строки в порядке добавления, сумма
// и количество различных позиций (значение для бейджа).
type CartView struct {
	Lines     []domain.CartLine
	Total     decimal.Decimal
	ItemCount int
}

// PROOF OF DELIVERY USECASE

// SubmitProofReq — запрос на отправку подтверждения доставки.
type SubmitProofReq struct {
	ImageURI  string
	Rating    int
	Condition string
	Feedback  string
}

// SubmitProofRes — принятая заявка.
type SubmitProofRes struct {
	SubmissionID string
	SubmittedAt  time.Time
}

// ProofPhoto — байты фото для загрузки в объектное хранилище.
type ProofPhoto struct {
	Data         []byte
	MimeType     string
	SubmissionID string
}

// MAPPERS

func NewLoginReq(username, password string) *LoginReq {
	return &LoginReq{
		Username: username,
		Password: password,
	}
}

func NewRegisterReq(username, password, email string) *RegisterReq {
	return &RegisterReq{
		Username: username,
		Password: password,
		Email:    email,
	}
}

func NewSubmitProofReq(imageURI string, rating int, condition, feedback string) *SubmitProofReq {
	return &SubmitProofReq{
		ImageURI:  imageURI,
		Rating:    rating,
		Condition: condition,
		Feedback:  feedback,
	}
}

func NewSubmitProofRes(submissionID string, submittedAt time.Time) *SubmitProofRes {
	return &SubmitProofRes{
		SubmissionID: submissionID,
		SubmittedAt:  submittedAt,
	}
}

func NewProofPhoto(data []byte, mimeType, submissionID string) *ProofPhoto {
	return &ProofPhoto{
		Data:         data,
		MimeType:     mimeType,
		SubmissionID: submissionID,
	}
}
