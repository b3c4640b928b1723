package repository

import (
	"context"
	"errors"

	"ecofinds/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error

	//IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)

	//emailまたはusernameの大文字小文字を無視した一致で1件取得する。
	//見つからなければ(nil, nil)。
	FindByLogin(ctx context.Context, login string) (*model.User, error)

	//登録時の重複チェック（保存されている値そのままで比較）
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	//プロフィール更新など
	Update(ctx context.Context, user *model.User) error
}
