package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 中古品の状態
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like-new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

// 出品商品。sellerが1人、categoryが1つ。
// 売れたら is_available=false になる（数量は減らさない）。
type Product struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID   int64 `gorm:"not null;index" json:"seller"`
	CategoryID int64 `gorm:"not null;index" json:"category"`

	Title       string          `gorm:"type:varchar(200);not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int64           `gorm:"not null;default:1" json:"quantity"`
	Condition   Condition       `gorm:"type:varchar(20);not null;default:'good'" json:"condition"`

	//商品詳細（任意項目）
	Brand             string `gorm:"type:varchar(100)" json:"brand"`
	Model             string `gorm:"type:varchar(100)" json:"model"`
	YearOfManufacture *int64 `json:"year_of_manufacture"`
	Material          string `gorm:"type:varchar(100)" json:"material"`
	Color             string `gorm:"type:varchar(50)" json:"color"`

	//寸法はcm、重さはkg
	Length decimal.NullDecimal `gorm:"type:decimal(8,2)" json:"length"`
	Width  decimal.NullDecimal `gorm:"type:decimal(8,2)" json:"width"`
	Height decimal.NullDecimal `gorm:"type:decimal(8,2)" json:"height"`
	Weight decimal.NullDecimal `gorm:"type:decimal(8,2)" json:"weight"`

	OriginalPackaging           bool   `gorm:"not null;default:false" json:"original_packaging"`
	ManualIncluded              bool   `gorm:"not null;default:false" json:"manual_included"`
	WorkingConditionDescription string `gorm:"type:text" json:"working_condition_description"`

	IsAvailable bool           `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	//Relations
	Seller   User           `gorm:"foreignKey:SellerID" json:"-"`
	Category Category       `gorm:"foreignKey:CategoryID" json:"-"`
	Images   []ProductImage `gorm:"foreignKey:ProductID" json:"images"`
}
