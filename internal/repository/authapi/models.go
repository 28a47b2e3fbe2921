package authapi

import "github.com/DRSN-tech/go-storefront/internal/usecase"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// loginResponse несёт токен в одном из двух полей: accessToken —
// каноничное, token — устаревшее. Message заполняется при отказе.
type loginResponse struct {
	AccessToken string `json:"accessToken"`
	LegacyToken string `json:"token"`
	Message     string `json:"message"`
}

func (r *loginResponse) token() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}

	return r.LegacyToken
}

type registerResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func newLoginRequest(req *usecase.LoginReq) loginRequest {
	return loginRequest{
		Username: req.Username,
		Password: req.Password,
	}
}

func newRegisterRequest(req *usecase.RegisterReq) registerRequest {
	return registerRequest{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	}
}
