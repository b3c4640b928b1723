package repository

import (
	"context"
	"errors"
	"strings"

	"ecofinds/internal/domain/model"
	repo "ecofinds/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品のみを、カテゴリ/状態/キーワード絞り込み付きで返す。
func (r *ProductGormRepository) ListAvailable(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	var products []model.Product

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// 公開（is_available=true）のものだけ
	tx = tx.Where("is_available = ?", true)

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}

	if q.Condition != "" {
		tx = tx.Where("condition = ?", q.Condition)
	}

	// キーワードはtitleとdescriptionを対象
	if strings.TrimSpace(q.Search) != "" {
		like := "%" + strings.TrimSpace(q.Search) + "%"
		tx = tx.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	err := tx.
		Preload("Images").
		Preload("Seller").
		Preload("Category").
		Order("created_at desc").Order("id desc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}

	return products, nil
}

// 出品者自身の一覧（非公開も含む）
func (r *ProductGormRepository) ListBySellerID(ctx context.Context, sellerID int64) ([]model.Product, error) {
	var products []model.Product

	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Preload("Images").
		Preload("Seller").
		Preload("Category").
		Order("created_at desc").Order("id desc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}

	return products, nil
}

// IDで商品を取得（画像・出品者・カテゴリ付き）
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Seller").
		Preload("Category").
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 公開中の商品だけを取得
func (r *ProductGormRepository) FindAvailableByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Preload("Images").
		Preload("Seller").
		Preload("Category").
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"category_id":                   p.CategoryID,
		"title":                         p.Title,
		"description":                   p.Description,
		"price":                         p.Price,
		"quantity":                      p.Quantity,
		"condition":                     p.Condition,
		"brand":                         p.Brand,
		"model":                         p.Model,
		"year_of_manufacture":           p.YearOfManufacture,
		"material":                      p.Material,
		"color":                         p.Color,
		"length":                        p.Length,
		"width":                         p.Width,
		"height":                        p.Height,
		"weight":                        p.Weight,
		"original_packaging":            p.OriginalPackaging,
		"manual_included":               p.ManualIncluded,
		"working_condition_description": p.WorkingConditionDescription,
		"is_available":                  p.IsAvailable,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 売れた商品を非公開にする
func (r *ProductGormRepository) MarkUnavailable(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("is_available", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 画像をまとめて追加。
// primary指定が既存と被らないように、新しいprimaryが来たら先に他を落とす。
func (r *ProductGormRepository) AddImages(ctx context.Context, productID int64, images []model.ProductImage) error {
	if len(images) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hasPrimary := false
		for i := range images {
			images[i].ProductID = productID
			if images[i].IsPrimary {
				if hasPrimary {
					// 1枚目以外のprimary指定は落とす
					images[i].IsPrimary = false
					continue
				}
				hasPrimary = true
			}
		}

		if hasPrimary {
			if err := tx.Model(&model.ProductImage{}).
				Where("product_id = ?", productID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&images).Error; err != nil {
			return err
		}
		return nil
	})
}
