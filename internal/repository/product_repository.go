package repository

import (
	"context"
	"errors"

	"ecofinds/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	CategoryID *int64
	Condition  string
	Search     string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//公開中（is_available=true）の商品のみ。画像付き。
	ListAvailable(ctx context.Context, q ProductListQuery) ([]model.Product, error)

	//出品者自身の一覧。非公開も含む。
	ListBySellerID(ctx context.Context, sellerID int64) ([]model.Product, error)

	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindAvailableByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	//売れた商品を非公開にする（checkout用）
	MarkUnavailable(ctx context.Context, id int64) error

	//画像の追加。primaryは商品ごとに1枚を超えないように付け替える。
	AddImages(ctx context.Context, productID int64, images []model.ProductImage) error
}
