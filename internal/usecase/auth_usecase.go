package usecase

import (
	"context"
	"errors"
	"net/http"

	"ecofinds/internal/domain/model"
	"ecofinds/internal/repository"
	"ecofinds/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// フィールドごとの検証エラー。
// {"email": ["A user with that email already exists."]} の形でそのまま返す。
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	return "validation error"
}

func (e FieldErrors) Add(field string, message string) {
	e[field] = append(e[field], message)
}

func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	ok := errors.As(err, &fe)
	return fe, ok
}

// ログイン失敗はどの理由でも同じメッセージ（どっちが違うかを漏らさない）
const msgInvalidCredentials = "Unable to log in with provided credentials."

// 停止済みアカウント
const msgUserInactive = "User account is disabled."

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, in RegisterInput) error
}

// token発行は外部コラボレータに任せる約束
type TokenIssuer interface {
	IssuePair(userID int64) (token.Pair, error)
	VerifyRefresh(raw string) (int64, error)
}

type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
}

type LoginInput struct {
	Login    string
	Password string
}

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// プロフィールのAPI返却用DTO。emailとusernameはここからは変更できない。
type UserProfile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// register/loginのレスポンス（user + token pair）
type AuthResponse struct {
	User    UserProfile `json:"user"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
}

type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	validator AuthValidator
	issuer    TokenIssuer
}

func NewAuthUsecase(
	users repository.UserRepository,
	validator AuthValidator,
	issuer TokenIssuer,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		validator: validator,
		issuer:    issuer,
	}
}

// 会員登録。成功したらuserとtoken pairを返す。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(pwHash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
	}

	if err := u.users.Create(ctx, user); err != nil {
		// 検証後に同じemail/usernameが入った場合のunique違反
		fe := FieldErrors{}
		fe.Add("non_field_errors", "A user with that email or username already exists.")
		return nil, fe
	}

	pair, err := u.issuer.IssuePair(user.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthResponse{
		User:    toUserProfile(user),
		Access:  pair.Access,
		Refresh: pair.Refresh,
	}, nil
}

// ログイン。loginはemailでもusernameでもよく、大文字小文字は無視。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*AuthResponse, error) {
	if in.Login == "" || in.Password == "" {
		fe := FieldErrors{}
		fe.Add("non_field_errors", `Must include "login" (email or username) and "password".`)
		return nil, fe
	}

	user, err := u.users.FindByLogin(ctx, in.Login)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 未登録でもパスワード違いでも同じエラー
	if user == nil {
		return nil, invalidCredentials()
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, invalidCredentials()
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		fe := FieldErrors{}
		fe.Add("non_field_errors", msgUserInactive)
		return nil, fe
	}

	pair, err := u.issuer.IssuePair(user.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthResponse{
		User:    toUserProfile(user),
		Access:  pair.Access,
		Refresh: pair.Refresh,
	}, nil
}

// refreshトークンから新しいペアを発行する。
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	userID, err := u.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "Token is invalid or expired")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil || !user.IsActive {
		return nil, NewHTTPError(http.StatusUnauthorized, "Token is invalid or expired")
	}

	pair, err := u.issuer.IssuePair(user.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &RefreshResponse{Access: pair.Access, Refresh: pair.Refresh}, nil
}

// 自分のプロフィール取得
func (u *AuthUsecase) Profile(ctx context.Context, userID int64) (*UserProfile, error) {
	user, err := u.findActiveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := toUserProfile(user)
	return &profile, nil
}

// プロフィール更新。email/usernameは変更不可。
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*UserProfile, error) {
	user, err := u.findActiveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Phone = in.Phone
	user.Address = in.Address

	if err := u.users.Update(ctx, user); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	profile := toUserProfile(user)
	return &profile, nil
}

func (u *AuthUsecase) findActiveUser(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil || !user.IsActive {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return user, nil
}

func invalidCredentials() error {
	fe := FieldErrors{}
	fe.Add("non_field_errors", msgInvalidCredentials)
	return fe
}

// model.UserをAPI返却用DTOに変換。
func toUserProfile(u *model.User) UserProfile {
	return UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Address:   u.Address,
	}
}
