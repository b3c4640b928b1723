package repository

import (
	"context"

	"ecofinds/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//新しい順
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
}
