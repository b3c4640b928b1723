package usecase

import (
	"context"
	"net/http"
	"time"

	"ecofinds/internal/domain/model"
	repo "ecofinds/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderItemOutput struct {
	ID           int64           `json:"id"`
	Product      int64           `json:"product"`
	ProductTitle string          `json:"product_title"`
	Quantity     int64           `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

type OrderOutput struct {
	ID          int64             `json:"id"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Items       []OrderItemOutput `json:"items"`
}

// Checkout はカートを注文に変換する。
// 合計計算・注文作成・明細作成・商品の非公開化・カート全削除を
// 1トランザクションで行い、途中で失敗したら全部ロールバックする。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cartItems, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "Cart is empty")
		}

		// 合計は「checkout時点の商品単価 × 数量」の和
		total := decimal.Zero
		for _, ci := range cartItems {
			total = total.Add(ci.Product.Price.Mul(decimal.NewFromInt(ci.Quantity)))
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:      userID,
			TotalAmount: total,
			Status:      model.OrderStatusPending,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 明細は単価をスナップショットして凍結
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		for _, ci := range cartItems {
			orderItems = append(orderItems, model.OrderItem{
				ProductID:    ci.ProductID,
				ProductTitle: ci.Product.Title,
				Quantity:     ci.Quantity,
				Price:        ci.Product.Price,
			})

			// 売れた商品は非公開（数量は減らさない）
			if err := r.Products().MarkUnavailable(ctx, ci.ProductID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートを空にする
		if err := r.CartItems().DeleteAllByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(created, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 自分の注文履歴（新しい順、明細付き）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:           it.ID,
			Product:      it.ProductID,
			ProductTitle: it.ProductTitle,
			Quantity:     it.Quantity,
			Price:        it.Price,
		})
	}

	return OrderOutput{
		ID:          o.ID,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       outItems,
	}
}
