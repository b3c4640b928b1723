package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"ecofinds/internal/domain/model"
	"ecofinds/internal/repository"
	"ecofinds/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: CategoryRepository
// =====================

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, categoryID int64) (model.Category, error) {
	args := m.Called(ctx, categoryID)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryRepository) UpsertByName(ctx context.Context, name string, description string) (model.Category, bool, error) {
	args := m.Called(ctx, name, description)
	c, _ := args.Get(0).(model.Category)
	return c, args.Bool(1), args.Error(2)
}

// =====================
// Helper
// =====================

func validInput() usecase.ProductInput {
	return usecase.ProductInput{
		Title:       "Old Camera",
		Description: "Works fine",
		Price:       price("120.00"),
		Quantity:    1,
		CategoryID:  1,
		Condition:   "good",
	}
}

// =====================
// Create
// =====================

func TestProductUsecase_Create_Success(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	categoryRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Category{ID: 1, Name: "Electronics"}, nil)

	productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.SellerID == 1 && p.Title == "Old Camera" && p.IsAvailable &&
			p.Condition == model.ConditionGood
	})).Return(model.Product{ID: 10, SellerID: 1}, nil)

	// 1枚目がprimaryになる
	productRepo.On("AddImages", mock.Anything, int64(10), mock.MatchedBy(func(images []model.ProductImage) bool {
		return len(images) == 2 && images[0].IsPrimary && !images[1].IsPrimary
	})).Return(nil)

	productRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{
		ID:          10,
		SellerID:    1,
		Title:       "Old Camera",
		Price:       price("120.00"),
		Condition:   model.ConditionGood,
		IsAvailable: true,
		Category:    model.Category{ID: 1, Name: "Electronics"},
		Images: []model.ProductImage{
			{ID: 1, URL: "https://img/1.jpg", IsPrimary: true},
			{ID: 2, URL: "https://img/2.jpg"},
		},
	}, nil)

	u := usecase.NewProductUsecase(productRepo, categoryRepo)

	in := validInput()
	in.Images = []usecase.ProductImageInput{
		{URL: "https://img/1.jpg"},
		{URL: "https://img/2.jpg"},
	}

	resp, err := u.Create(ctx, 1, in)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "Electronics", resp.CategoryName)
	assert.Len(t, resp.Images, 2)
	assert.True(t, resp.Images[0].IsPrimary)

	productRepo.AssertExpectations(t)
	categoryRepo.AssertExpectations(t)
}

func TestProductUsecase_Create_MissingTitle(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	u := usecase.NewProductUsecase(productRepo, categoryRepo)

	in := validInput()
	in.Title = ""

	_, err := u.Create(ctx, 1, in)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_Create_ZeroPrice(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	u := usecase.NewProductUsecase(productRepo, categoryRepo)

	in := validInput()
	in.Price = price("0")

	_, err := u.Create(ctx, 1, in)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invalid price", he.Message)
}

func TestProductUsecase_Create_UnknownCondition(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	u := usecase.NewProductUsecase(productRepo, categoryRepo)

	in := validInput()
	in.Condition = "broken"

	_, err := u.Create(ctx, 1, in)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invalid condition", he.Message)
}

func TestProductUsecase_Create_UnknownCategory(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	categoryRepo.On("FindByID", mock.Anything, int64(99)).
		Return(model.Category{}, repository.ErrNotFound)

	u := usecase.NewProductUsecase(productRepo, categoryRepo)

	in := validInput()
	in.CategoryID = 99

	_, err := u.Create(ctx, 1, in)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invalid category", he.Message)
}

// =====================
// Get
// =====================

func TestProductUsecase_Get_NotAvailable(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	productRepo.On("FindAvailableByID", mock.Anything, int64(10)).
		Return(model.Product{}, repository.ErrNotFound)

	u := usecase.NewProductUsecase(productRepo, categoryRepo)

	_, err := u.Get(ctx, 10)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "Product not found", he.Message)
}

// =====================
// Update / Delete（所有チェック）
// =====================

// 他人の商品は存在しない扱いで404
func TestProductUsecase_Update_NotOwner(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	productRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{
		ID:       10,
		SellerID: 2,
	}, nil)

	u := usecase.NewProductUsecase(productRepo, categoryRepo)

	_, err := u.Update(ctx, 1, 10, validInput())

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "Product not found", he.Message)

	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductUsecase_Delete_NotOwner(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	productRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{
		ID:       10,
		SellerID: 2,
	}, nil)

	u := usecase.NewProductUsecase(productRepo, categoryRepo)

	err := u.Delete(ctx, 1, 10)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	productRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

func TestProductUsecase_Delete_Owner(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	productRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{
		ID:       10,
		SellerID: 1,
	}, nil)
	productRepo.On("SoftDelete", mock.Anything, int64(10)).Return(nil)

	u := usecase.NewProductUsecase(productRepo, categoryRepo)

	err := u.Delete(ctx, 1, 10)
	assert.NoError(t, err)

	productRepo.AssertExpectations(t)
}

// =====================
// List
// =====================

func TestProductUsecase_List_MapsPrimaryImage(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	categoryID := int64(1)
	q := repository.ProductListQuery{CategoryID: &categoryID, Condition: "good", Search: "camera"}

	productRepo.On("ListAvailable", mock.Anything, q).Return([]model.Product{
		{
			ID:          10,
			Title:       "Old Camera",
			Price:       price("120.00"),
			Condition:   model.ConditionGood,
			IsAvailable: true,
			Category:    model.Category{ID: 1, Name: "Electronics"},
			Seller:      model.User{ID: 2, Username: "seller"},
			Images: []model.ProductImage{
				{ID: 1, URL: "https://img/other.jpg"},
				{ID: 2, URL: "https://img/main.jpg", IsPrimary: true},
			},
		},
		{
			ID:    11,
			Title: "No Image Camera",
			Price: price("80.00"),
		},
	}, nil)

	u := usecase.NewProductUsecase(productRepo, categoryRepo)

	items, err := u.List(ctx, usecase.ProductListInput{CategoryID: &categoryID, Condition: "good", Search: "camera"})
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	assert.Equal(t, "Electronics", items[0].CategoryName)
	assert.Equal(t, "seller", items[0].SellerName)
	if assert.NotNil(t, items[0].PrimaryImage) {
		assert.Equal(t, "https://img/main.jpg", *items[0].PrimaryImage)
	}

	// 画像が無ければnull
	assert.Nil(t, items[1].PrimaryImage)
}
