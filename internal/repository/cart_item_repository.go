package repository

import (
	"context"

	"ecofinds/internal/domain/model"
)

type CartItemRepository interface {
	//商品（画像含む）をpreloadして返す
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)

	// 同一商品はプラス
	UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error

	//そのユーザーの行だけ取得。他人の行はErrNotFound。
	FindOwnedByID(ctx context.Context, cartItemID int64, userID int64) (model.CartItem, error)

	DeleteByID(ctx context.Context, cartItemID int64) error

	//checkoutでカートを空にする
	DeleteAllByUserID(ctx context.Context, userID int64) error
}
