package http

import (
	"net/http"

	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

type AuthHandler struct {
	sessionUsecase usecase.SessionUC
	navigation     usecase.NavigationUC
	logger         logger.Logger
}

func NewAuthHandler(sessionUsecase usecase.SessionUC, navigation usecase.NavigationUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{sessionUsecase: sessionUsecase, navigation: navigation, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// login
//
//	@Summary		Вход по логину и паролю
//	@Description	При успехе токен сохраняется, активным становится торговый подграф
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		loginRequest	true	"Учётные данные"
//	@Success		200			{object}	SessionResponse
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		401			{object}	ErrorResponse	"Неверные учётные данные"
//	@Router			/auth/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.sessionUsecase.Login(r.Context(), usecase.NewLoginReq(req.Username, req.Password)); err != nil {
		h.logger.Warnf("login failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, h.sessionResponse())
}

// register
//
//	@Summary		Регистрация нового пользователя
//	@Description	После создания учётной записи сразу выполняется вход
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			profile	body		registerRequest	true	"Данные пользователя"
//	@Success		201		{object}	SessionResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/auth/register [post]
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.sessionUsecase.Register(r.Context(), usecase.NewRegisterReq(req.Username, req.Password, req.Email)); err != nil {
		h.logger.Warnf("register failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, h.sessionResponse())
}

// logout
//
//	@Summary		Выход из сессии
//	@Description	Токен удаляется, активным становится подграф аутентификации
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Router			/auth/logout [post]
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionUsecase.Logout(r.Context()); err != nil {
		h.logger.Errorf(err, "logout failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, h.sessionResponse())
}

// getSession
//
//	@Summary		Текущее состояние сессии
//	@Description	Статус перечитывается из хранилища токена
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Router			/session [get]
func (h *AuthHandler) getSession(w http.ResponseWriter, r *http.Request) {
	h.sessionUsecase.Resolve(r.Context())

	WriteSuccess(w, http.StatusOK, h.sessionResponse())
}

func (h *AuthHandler) sessionResponse() *SessionResponse {
	return &SessionResponse{
		State: h.sessionUsecase.State().String(),
		Flow:  h.navigation.Flow().String(),
		Route: string(h.navigation.Route()),
	}
}
