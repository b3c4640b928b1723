package model

// 商品画像。is_primaryは商品ごとに最大1枚
// （DB制約ではなくrepository側のトランザクションで守る）。
type ProductImage struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64  `gorm:"not null;index" json:"-"`
	URL       string `gorm:"type:varchar(500);not null" json:"image"`
	AltText   string `gorm:"type:varchar(200)" json:"alt_text"`
	IsPrimary bool   `gorm:"not null;default:false" json:"is_primary"`
}
