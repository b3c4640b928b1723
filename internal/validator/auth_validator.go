package validator

import (
	"context"
	"net/http"

	"ecofinds/internal/repository"
	"ecofinds/internal/usecase"

	playground "github.com/go-playground/validator/v10"
)

type authValidator struct {
	users    repository.UserRepository
	validate *playground.Validate
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{
		users:    users,
		validate: playground.New(),
	}
}

// validator/v10のタグで形式チェックする入れ物
type registerPayload struct {
	Email           string `validate:"required,email"`
	Username        string `validate:"required,max=150"`
	Password        string `validate:"required,min=8"`
	PasswordConfirm string `validate:"required"`
}

// 会員登録の入力を検証。
// エラーはフィールドごとに集めて1回で全部返す。
func (v *authValidator) ValidateRegister(ctx context.Context, in usecase.RegisterInput) error {
	fe := usecase.FieldErrors{}

	payload := registerPayload{
		Email:           in.Email,
		Username:        in.Username,
		Password:        in.Password,
		PasswordConfirm: in.PasswordConfirm,
	}

	if err := v.validate.Struct(payload); err != nil {
		if verrs, ok := err.(playground.ValidationErrors); ok {
			for _, verr := range verrs {
				field, msg := registerMessage(verr)
				fe.Add(field, msg)
			}
		} else {
			return usecase.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	//パスワード一致チェック
	if in.Password != "" && in.PasswordConfirm != "" && in.Password != in.PasswordConfirm {
		fe.Add("password", "Password fields didn't match.")
	}

	//重複チェック（保存値そのままで比較）
	if in.Email != "" {
		exists, err := v.users.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return usecase.NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			fe.Add("email", "A user with that email already exists.")
		}
	}
	if in.Username != "" {
		exists, err := v.users.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return usecase.NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			fe.Add("username", "A user with that username already exists.")
		}
	}

	if len(fe) > 0 {
		return fe
	}
	return nil
}

// validator/v10のエラーをAPIのフィールド名とメッセージに変換
func registerMessage(verr playground.FieldError) (string, string) {
	switch verr.StructField() {
	case "Email":
		if verr.Tag() == "required" {
			return "email", "This field is required."
		}
		return "email", "Enter a valid email address."
	case "Username":
		if verr.Tag() == "required" {
			return "username", "This field is required."
		}
		return "username", "Ensure this field has no more than 150 characters."
	case "Password":
		if verr.Tag() == "required" {
			return "password", "This field is required."
		}
		return "password", "Ensure this field has at least 8 characters."
	case "PasswordConfirm":
		return "password_confirm", "This field is required."
	}
	return "non_field_errors", "Invalid input."
}
