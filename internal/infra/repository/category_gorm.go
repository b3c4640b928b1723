package repository

import (
	"context"
	"errors"

	"ecofinds/internal/domain/model"
	repo "ecofinds/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&categories).Error; err != nil {
		return []model.Category{}, err
	}
	return categories, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, categoryID int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// nameで探して無ければ作る。同時seedで重複作成になったら取り直す。
func (r *CategoryGormRepository) UpsertByName(ctx context.Context, name string, description string) (model.Category, bool, error) {
	var c model.Category

	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&c).Error

	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, false, err
	}

	newCat := model.Category{
		Name:        name,
		Description: description,
	}

	if createErr := r.db.WithContext(ctx).Create(&newCat).Error; createErr != nil {
		retryErr := r.db.WithContext(ctx).
			Where("name = ?", name).
			First(&c).Error
		if retryErr == nil {
			return c, false, nil
		}
		return model.Category{}, false, createErr
	}

	return newCat, true, nil
}
