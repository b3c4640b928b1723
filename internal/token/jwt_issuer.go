package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// accessとrefreshのペア。レスポンスでそのまま返す。
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

var ErrInvalidToken = errors.New("invalid token")

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// JWTIssuer はHS256でaccess/refreshトークンを発行・検証する。
type JWTIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTIssuer(secret string, accessTTL time.Duration, refreshTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// ログイン・登録成功時にペアを発行する。
func (i *JWTIssuer) IssuePair(userID int64) (Pair, error) {
	now := time.Now()

	access, err := i.sign(userID, TypeAccess, now, now.Add(i.accessTTL))
	if err != nil {
		return Pair{}, err
	}

	refresh, err := i.sign(userID, TypeRefresh, now, now.Add(i.refreshTTL))
	if err != nil {
		return Pair{}, err
	}

	return Pair{Access: access, Refresh: refresh}, nil
}

// refreshトークンを検証してuserIDを返す。
func (i *JWTIssuer) VerifyRefresh(raw string) (int64, error) {
	return i.verify(raw, TypeRefresh)
}

// accessトークンを検証してuserIDを返す。
func (i *JWTIssuer) VerifyAccess(raw string) (int64, error) {
	return i.verify(raw, TypeAccess)
}

func (i *JWTIssuer) sign(userID int64, tokenType string, now time.Time, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":        userID,
		"token_type": tokenType,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

func (i *JWTIssuer) verify(raw string, wantType string) (int64, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	if tt, _ := claims["token_type"].(string); tt != wantType {
		return 0, ErrInvalidToken
	}

	userID, err := parseSubject(claims["sub"])
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

// JWTの数値claimはfloat64になるので変換する
func parseSubject(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case int64:
		return t, nil
	default:
		return 0, errors.New("invalid sub")
	}
}
