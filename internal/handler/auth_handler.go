package handler

import (
	"net/http"

	"ecofinds/internal/middleware"
	"ecofinds/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /accountsのHTTP
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// /accounts/register のリクエストボディ。
type registerRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// /accounts/login のリクエストボディ。loginはemailでもusernameでもよい。
type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type profileUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// /accounts 配下を登録
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/accounts")

	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/token/refresh", h.refresh)

	g.GET("/profile", h.getProfile, authMW)
	g.PUT("/profile", h.updateProfile, authMW)
}

// POST /accounts/register
func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	out, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// POST /accounts/login
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// POST /accounts/token/refresh
func (h *AuthHandler) refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	out, err := h.uc.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// GET /accounts/profile
func (h *AuthHandler) getProfile(c echo.Context) error {
	out, err := h.uc.Profile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// PUT /accounts/profile
func (h *AuthHandler) updateProfile(c echo.Context) error {
	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	out, err := h.uc.UpdateProfile(c.Request().Context(), middleware.UserID(c), usecase.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// usecaseのエラーをHTTPレスポンスへ変換。
// FieldErrorsはフィールド別メッセージのままbodyになる。
func writeError(c echo.Context, err error) error {
	if fe, ok := usecase.AsFieldErrors(err); ok {
		return c.JSON(http.StatusBadRequest, fe)
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, errorBody(he.Message))
	}
	return c.JSON(http.StatusInternalServerError, errorBody("internal error"))
}
