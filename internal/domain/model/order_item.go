package model

import "github.com/shopspring/decimal"

// 注文明細。priceは購入時点の単価のスナップショットで、
// その後の商品価格変更の影響を受けない。
type OrderItem struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      int64           `gorm:"not null;index" json:"-"`
	ProductID    int64           `gorm:"not null;index" json:"product"`
	ProductTitle string          `gorm:"type:varchar(200);not null" json:"product_title"`
	Quantity     int64           `gorm:"not null" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}
