package model

import "time"

// カート行。(user, product)ごとに1行で、同じ商品を追加すると数量が加算される。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"-"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"-"`
	Quantity  int64     `gorm:"not null;default:1" json:"quantity"`
	AddedAt   time.Time `gorm:"not null;autoCreateTime" json:"added_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}
