package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ecofinds/internal/domain/model"
	repo "ecofinds/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// カート行のレスポンス。total_priceは「現在の商品単価 × 数量」。
type CartItemResponse struct {
	ID         int64           `json:"id"`
	Product    ProductListItem `json:"product"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	AddedAt    time.Time       `json:"added_at"`
}

type AddToCartInput struct {
	ProductID int64
	Quantity  int64
}

type RemovedResponse struct {
	Message string `json:"message"`
}

// カート取得
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) ([]CartItemResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toCartItemResponse(it))
	}
	return resp, nil
}

// カートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddToCartInput) ([]CartItemResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if in.Quantity <= 0 {
		in.Quantity = 1
	}

	// 商品チェック（公開中のみ）
	_, err := u.productRepo.FindAvailableByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は加算）
	if err := u.cartItemRepo.UpsertByUserAndProduct(ctx, userID, in.ProductID, in.Quantity); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetCart(ctx, userID)
}

// 行削除（所有チェック付き）
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (*RemovedResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//他人の行はErrNotFoundになる
	item, err := u.cartItemRepo.FindOwnedByID(ctx, cartItemID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "Item not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, item.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "Item not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return &RemovedResponse{Message: "Item removed from cart"}, nil
}

func toCartItemResponse(it model.CartItem) CartItemResponse {
	qty := decimal.NewFromInt(it.Quantity)
	return CartItemResponse{
		ID:         it.ID,
		Product:    toProductListItem(it.Product),
		Quantity:   it.Quantity,
		TotalPrice: it.Product.Price.Mul(qty),
		AddedAt:    it.AddedAt,
	}
}
