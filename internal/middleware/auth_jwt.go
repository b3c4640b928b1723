package middleware

import (
	"net/http"
	"strings"

	"ecofinds/internal/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey = "user_id" // int64
)

// accessトークンの検証だけを約束
type AccessVerifier interface {
	VerifyAccess(raw string) (int64, error)
}

// bearerAuth用のJWT検証ミドルウェア。
// 検証に通ったらuser_idをechoのcontextへ入れる。
func AuthJWT(verifier AccessVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Authentication credentials were not provided."))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("Authentication credentials were not provided."))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Authentication credentials were not provided."))
			}

			userID, err := verifier.VerifyAccess(rawToken)
			if err != nil || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("Token is invalid or expired"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, userID)

			return next(c)
		}
	}
}

// handlerからuser_idを取り出す。未設定なら0。
func UserID(c echo.Context) int64 {
	v := c.Get(CtxUserIDKey)
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// コンパイル時にJWTIssuerが約束を満たすことを確認
var _ AccessVerifier = (*token.JWTIssuer)(nil)
