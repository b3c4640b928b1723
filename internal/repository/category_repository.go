package repository

import (
	"context"

	"ecofinds/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, categoryID int64) (model.Category, error)

	//nameで探して無ければ作る。seed用（何回実行しても増えない）。
	//作成したときはcreated=trueを返す。
	UpsertByName(ctx context.Context, name string, description string) (model.Category, bool, error)
}
