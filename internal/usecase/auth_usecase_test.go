package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"ecofinds/internal/domain/model"
	"ecofinds/internal/token"
	"ecofinds/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// =====================
// Mock: AuthValidator
// =====================

type MockAuthValidator struct {
	mock.Mock
}

func (m *MockAuthValidator) ValidateRegister(ctx context.Context, in usecase.RegisterInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

// =====================
// Mock: TokenIssuer
// =====================

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) IssuePair(userID int64) (token.Pair, error) {
	args := m.Called(userID)
	p, _ := args.Get(0).(token.Pair)
	return p, args.Error(1)
}

func (m *MockTokenIssuer) VerifyRefresh(raw string) (int64, error) {
	args := m.Called(raw)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Helper
// =====================

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(b)
}

func newAuthUC(users *MockUserRepository, v *MockAuthValidator, issuer *MockTokenIssuer) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(users, v, issuer)
}

// =====================
// Register
// =====================

func TestAuthUsecase_Register_Success(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	in := usecase.RegisterInput{
		Email:           "user@test.com",
		Username:        "testuser",
		Password:        "CorrectPW123",
		PasswordConfirm: "CorrectPW123",
	}

	v.On("ValidateRegister", mock.Anything, in).Return(nil)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// 保存されるユーザーが最低限正しい形かを見る
		return u.Email == in.Email && u.Username == in.Username &&
			u.IsActive && u.PasswordHash != "" && u.PasswordHash != in.Password
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 1
	}).Return(nil)

	issuer.On("IssuePair", int64(1)).Return(token.Pair{Access: "a", Refresh: "r"}, nil)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Register(ctx, in)
	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, in.Email, resp.User.Email)
	assert.Equal(t, "a", resp.Access)
	assert.Equal(t, "r", resp.Refresh)

	users.AssertExpectations(t)
	v.AssertExpectations(t)
	issuer.AssertExpectations(t)
}

func TestAuthUsecase_Register_ValidationError(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	in := usecase.RegisterInput{Email: "bad"}

	fe := usecase.FieldErrors{}
	fe.Add("email", "Enter a valid email address.")
	v.On("ValidateRegister", mock.Anything, in).Return(fe)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Register(ctx, in)
	assert.Nil(t, resp)

	got, ok := usecase.AsFieldErrors(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Enter a valid email address."}, got["email"])

	// validatorで落ちたら保存もtoken発行も走らない
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	issuer.AssertNotCalled(t, "IssuePair", mock.Anything)
}

// 検証とINSERTの間に同じemailが入ったケース
func TestAuthUsecase_Register_DuplicateOnInsert(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	in := usecase.RegisterInput{
		Email:           "user@test.com",
		Username:        "testuser",
		Password:        "CorrectPW123",
		PasswordConfirm: "CorrectPW123",
	}

	v.On("ValidateRegister", mock.Anything, in).Return(nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Return(assert.AnError)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Register(ctx, in)
	assert.Nil(t, resp)

	got, ok := usecase.AsFieldErrors(err)
	assert.True(t, ok)
	assert.Contains(t, got["non_field_errors"], "A user with that email or username already exists.")

	issuer.AssertNotCalled(t, "IssuePair", mock.Anything)
}

// =====================
// Login
// =====================

func TestAuthUsecase_Login_Success(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	pass := "CorrectPW123"

	users.On("FindByLogin", mock.Anything, "user@test.com").Return(&model.User{
		ID:           1,
		Email:        "user@test.com",
		Username:     "testuser",
		PasswordHash: mustHash(t, pass),
		IsActive:     true,
	}, nil)

	issuer.On("IssuePair", int64(1)).Return(token.Pair{Access: "a", Refresh: "r"}, nil)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Login(ctx, usecase.LoginInput{Login: "user@test.com", Password: pass})
	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, "testuser", resp.User.Username)
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)

	users.AssertExpectations(t)
	issuer.AssertExpectations(t)
}

// usernameでもログインできる
func TestAuthUsecase_Login_ByUsername(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	pass := "CorrectPW123"

	users.On("FindByLogin", mock.Anything, "testuser").Return(&model.User{
		ID:           1,
		Email:        "user@test.com",
		Username:     "testuser",
		PasswordHash: mustHash(t, pass),
		IsActive:     true,
	}, nil)

	issuer.On("IssuePair", int64(1)).Return(token.Pair{Access: "a", Refresh: "r"}, nil)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Login(ctx, usecase.LoginInput{Login: "testuser", Password: pass})
	assert.NoError(t, err)
	assert.NotNil(t, resp)
}

// PW違いでも未登録でも同じメッセージ（どっちが違うかを漏らさない）
func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	users.On("FindByLogin", mock.Anything, "user@test.com").Return(&model.User{
		ID:           1,
		Email:        "user@test.com",
		PasswordHash: mustHash(t, "CorrectPW123"),
		IsActive:     true,
	}, nil)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Login(ctx, usecase.LoginInput{Login: "user@test.com", Password: "WrongPW"})
	assert.Nil(t, resp)

	fe, ok := usecase.AsFieldErrors(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Unable to log in with provided credentials."}, fe["non_field_errors"])

	issuer.AssertNotCalled(t, "IssuePair", mock.Anything)
}

func TestAuthUsecase_Login_UnknownUser(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	users.On("FindByLogin", mock.Anything, "nobody").Return(nil, nil)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Login(ctx, usecase.LoginInput{Login: "nobody", Password: "whatever1"})
	assert.Nil(t, resp)

	fe, ok := usecase.AsFieldErrors(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Unable to log in with provided credentials."}, fe["non_field_errors"])
}

func TestAuthUsecase_Login_EmptyFields(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Login(ctx, usecase.LoginInput{Login: "", Password: ""})
	assert.Nil(t, resp)

	fe, ok := usecase.AsFieldErrors(err)
	assert.True(t, ok)
	assert.Equal(t, []string{`Must include "login" (email or username) and "password".`}, fe["non_field_errors"])

	users.AssertNotCalled(t, "FindByLogin", mock.Anything, mock.Anything)
}

// 停止ユーザーはPWが合っていてもログイン不可
func TestAuthUsecase_Login_InactiveUser(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	pass := "CorrectPW123"

	users.On("FindByLogin", mock.Anything, "user@test.com").Return(&model.User{
		ID:           1,
		Email:        "user@test.com",
		PasswordHash: mustHash(t, pass),
		IsActive:     false,
	}, nil)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Login(ctx, usecase.LoginInput{Login: "user@test.com", Password: pass})
	assert.Nil(t, resp)

	fe, ok := usecase.AsFieldErrors(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"User account is disabled."}, fe["non_field_errors"])

	issuer.AssertNotCalled(t, "IssuePair", mock.Anything)
}

// =====================
// Refresh
// =====================

func TestAuthUsecase_Refresh_Success(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	issuer.On("VerifyRefresh", "old-refresh").Return(int64(1), nil)
	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, IsActive: true}, nil)
	issuer.On("IssuePair", int64(1)).Return(token.Pair{Access: "a2", Refresh: "r2"}, nil)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Refresh(ctx, "old-refresh")
	assert.NoError(t, err)
	assert.Equal(t, "a2", resp.Access)
	assert.Equal(t, "r2", resp.Refresh)
}

func TestAuthUsecase_Refresh_InvalidToken(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	issuer.On("VerifyRefresh", "garbage").Return(int64(0), token.ErrInvalidToken)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Refresh(ctx, "garbage")
	assert.Nil(t, resp)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "Token is invalid or expired", he.Message)
}

func TestAuthUsecase_Refresh_InactiveUser(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	issuer.On("VerifyRefresh", "old-refresh").Return(int64(1), nil)
	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, IsActive: false}, nil)

	u := newAuthUC(users, v, issuer)

	resp, err := u.Refresh(ctx, "old-refresh")
	assert.Nil(t, resp)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)

	issuer.AssertNotCalled(t, "IssuePair", mock.Anything)
}

// =====================
// Profile
// =====================

func TestAuthUsecase_UpdateProfile_KeepsEmailAndUsername(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	v := new(MockAuthValidator)
	issuer := new(MockTokenIssuer)

	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{
		ID:       1,
		Email:    "user@test.com",
		Username: "testuser",
		IsActive: true,
	}, nil)

	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// email/usernameは更新対象外
		return u.Email == "user@test.com" && u.Username == "testuser" &&
			u.FirstName == "Taro" && u.Phone == "090-0000-0000"
	})).Return(nil)

	u := newAuthUC(users, v, issuer)

	resp, err := u.UpdateProfile(ctx, 1, usecase.UpdateProfileInput{
		FirstName: "Taro",
		LastName:  "Yamada",
		Phone:     "090-0000-0000",
		Address:   "Tokyo",
	})
	assert.NoError(t, err)
	assert.Equal(t, "user@test.com", resp.Email)
	assert.Equal(t, "Taro", resp.FirstName)

	users.AssertExpectations(t)
}
