package db

import (
	"context"

	"ecofinds/internal/repository"

	"github.com/rs/zerolog"
)

type seedCategory struct {
	Name        string
	Description string
}

// 初期カテゴリ。nameがunique keyなので何回seedしても増えない。
var seedCategories = []seedCategory{
	{Name: "Electronics", Description: "Phones, laptops, gadgets"},
	{Name: "Clothing", Description: "Fashion and apparel"},
	{Name: "Books", Description: "Books and educational materials"},
	{Name: "Home & Garden", Description: "Furniture and home decor"},
	{Name: "Sports & Outdoors", Description: "Sports equipment and outdoor gear"},
	{Name: "Toys & Games", Description: "Children toys and board games"},
}

// SeedCategories は基準データを投入する（upsert-by-name）。
func SeedCategories(ctx context.Context, categories repository.CategoryRepository, logger *zerolog.Logger) error {
	for _, c := range seedCategories {
		cat, created, err := categories.UpsertByName(ctx, c.Name, c.Description)
		if err != nil {
			return err
		}
		if created {
			logger.Info().Int64("category_id", cat.ID).Str("name", cat.Name).Msg("category seeded")
		}
	}
	return nil
}
