package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ecofinds/internal/domain/model"
	repo "ecofinds/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

func NewProductUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// 一覧用の軽いかたち。primary_imageは代表画像のURL（無ければnull）。
type ProductListItem struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	CategoryName string          `json:"category_name"`
	Condition    string          `json:"condition"`
	SellerName   string          `json:"seller_name"`
	IsAvailable  bool            `json:"is_available"`
	PrimaryImage *string         `json:"primary_image"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ProductImageResponse struct {
	ID        int64  `json:"id"`
	Image     string `json:"image"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
}

// 詳細用。編集画面でも使うので全項目入り。
type ProductResponse struct {
	ID                          int64                  `json:"id"`
	Title                       string                 `json:"title"`
	Description                 string                 `json:"description"`
	Price                       decimal.Decimal        `json:"price"`
	Quantity                    int64                  `json:"quantity"`
	Category                    int64                  `json:"category"`
	CategoryName                string                 `json:"category_name"`
	Condition                   string                 `json:"condition"`
	Brand                       string                 `json:"brand"`
	Model                       string                 `json:"model"`
	YearOfManufacture           *int64                 `json:"year_of_manufacture"`
	Material                    string                 `json:"material"`
	Color                       string                 `json:"color"`
	Length                      decimal.NullDecimal    `json:"length"`
	Width                       decimal.NullDecimal    `json:"width"`
	Height                      decimal.NullDecimal    `json:"height"`
	Weight                      decimal.NullDecimal    `json:"weight"`
	OriginalPackaging           bool                   `json:"original_packaging"`
	ManualIncluded              bool                   `json:"manual_included"`
	WorkingConditionDescription string                 `json:"working_condition_description"`
	Seller                      int64                  `json:"seller"`
	SellerName                  string                 `json:"seller_name"`
	IsAvailable                 bool                   `json:"is_available"`
	Images                      []ProductImageResponse `json:"images"`
	CreatedAt                   time.Time              `json:"created_at"`
	UpdatedAt                   time.Time              `json:"updated_at"`
}

type ProductImageInput struct {
	URL     string
	AltText string
}

type ProductInput struct {
	Title                       string
	Description                 string
	Price                       decimal.Decimal
	Quantity                    int64
	CategoryID                  int64
	Condition                   string
	Brand                       string
	Model                       string
	YearOfManufacture           *int64
	Material                    string
	Color                       string
	Length                      *decimal.Decimal
	Width                       *decimal.Decimal
	Height                      *decimal.Decimal
	Weight                      *decimal.Decimal
	OriginalPackaging           bool
	ManualIncluded              bool
	WorkingConditionDescription string
	Images                      []ProductImageInput
}

type ProductListInput struct {
	CategoryID *int64
	Condition  string
	Search     string
}

// 公開中の商品一覧（カテゴリ/状態/キーワード絞り込み）。
func (u *ProductUsecase) List(ctx context.Context, in ProductListInput) ([]ProductListItem, error) {
	products, err := u.productRepo.ListAvailable(ctx, repo.ProductListQuery{
		CategoryID: in.CategoryID,
		Condition:  in.Condition,
		Search:     in.Search,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]ProductListItem, 0, len(products))
	for _, p := range products {
		items = append(items, toProductListItem(p))
	}
	return items, nil
}

// カテゴリ一覧
func (u *ProductUsecase) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}

// 公開中の商品詳細
func (u *ProductUsecase) Get(ctx context.Context, productID int64) (ProductResponse, error) {
	if productID <= 0 {
		return ProductResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindAvailableByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductResponse{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return ProductResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProductResponse(p), nil
}

// 出品（作成者がseller）。画像は1枚目がprimary。
func (u *ProductUsecase) Create(ctx context.Context, sellerID int64, in ProductInput) (ProductResponse, error) {
	if sellerID <= 0 {
		return ProductResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validateInput(ctx, &in); err != nil {
		return ProductResponse{}, err
	}

	p := model.Product{
		SellerID:                    sellerID,
		CategoryID:                  in.CategoryID,
		Title:                       in.Title,
		Description:                 in.Description,
		Price:                       in.Price,
		Quantity:                    in.Quantity,
		Condition:                   model.Condition(in.Condition),
		Brand:                       in.Brand,
		Model:                       in.Model,
		YearOfManufacture:           in.YearOfManufacture,
		Material:                    in.Material,
		Color:                       in.Color,
		Length:                      toNullDecimal(in.Length),
		Width:                       toNullDecimal(in.Width),
		Height:                      toNullDecimal(in.Height),
		Weight:                      toNullDecimal(in.Weight),
		OriginalPackaging:           in.OriginalPackaging,
		ManualIncluded:              in.ManualIncluded,
		WorkingConditionDescription: in.WorkingConditionDescription,
		IsAvailable:                 true,
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return ProductResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if len(in.Images) > 0 {
		images := make([]model.ProductImage, 0, len(in.Images))
		for i, img := range in.Images {
			images = append(images, model.ProductImage{
				URL:       img.URL,
				AltText:   img.AltText,
				IsPrimary: i == 0, // 1枚目が代表画像
			})
		}
		if err := u.productRepo.AddImages(ctx, created.ID, images); err != nil {
			return ProductResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	// 画像・関連を含めて取り直す
	full, err := u.productRepo.FindByID(ctx, created.ID)
	if err != nil {
		return ProductResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProductResponse(full), nil
}

// 自分の出品だけ編集できる。他人の商品は「存在しない扱い」。
func (u *ProductUsecase) Update(ctx context.Context, sellerID int64, productID int64, in ProductInput) (ProductResponse, error) {
	if sellerID <= 0 {
		return ProductResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := u.findOwned(ctx, sellerID, productID)
	if err != nil {
		return ProductResponse{}, err
	}

	if err := u.validateInput(ctx, &in); err != nil {
		return ProductResponse{}, err
	}

	p.CategoryID = in.CategoryID
	p.Title = in.Title
	p.Description = in.Description
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.Condition = model.Condition(in.Condition)
	p.Brand = in.Brand
	p.Model = in.Model
	p.YearOfManufacture = in.YearOfManufacture
	p.Material = in.Material
	p.Color = in.Color
	p.Length = toNullDecimal(in.Length)
	p.Width = toNullDecimal(in.Width)
	p.Height = toNullDecimal(in.Height)
	p.Weight = toNullDecimal(in.Weight)
	p.OriginalPackaging = in.OriginalPackaging
	p.ManualIncluded = in.ManualIncluded
	p.WorkingConditionDescription = in.WorkingConditionDescription

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductResponse{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return ProductResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	full, err := u.productRepo.FindByID(ctx, p.ID)
	if err != nil {
		return ProductResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductResponse(full), nil
}

// 出品の削除（soft delete）
func (u *ProductUsecase) Delete(ctx context.Context, sellerID int64, productID int64) error {
	if sellerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := u.findOwned(ctx, sellerID, productID)
	if err != nil {
		return err
	}

	if err := u.productRepo.SoftDelete(ctx, p.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 自分の出品一覧（非公開含む）
func (u *ProductUsecase) MyProducts(ctx context.Context, sellerID int64) ([]ProductListItem, error) {
	if sellerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	products, err := u.productRepo.ListBySellerID(ctx, sellerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]ProductListItem, 0, len(products))
	for _, p := range products {
		items = append(items, toProductListItem(p))
	}
	return items, nil
}

func (u *ProductUsecase) findOwned(ctx context.Context, sellerID int64, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//他人の出品は存在しない扱い
	if p.SellerID != sellerID {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return p, nil
}

func (u *ProductUsecase) validateInput(ctx context.Context, in *ProductInput) error {
	if in.Title == "" {
		return NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if in.Description == "" {
		return NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Quantity <= 0 {
		in.Quantity = 1
	}
	if in.Condition == "" {
		in.Condition = string(model.ConditionGood)
	}
	if !isValidCondition(in.Condition) {
		return NewHTTPError(http.StatusBadRequest, "invalid condition")
	}

	//カテゴリの存在確認
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category")
	}
	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func isValidCondition(c string) bool {
	switch model.Condition(c) {
	case model.ConditionNew, model.ConditionLikeNew, model.ConditionGood,
		model.ConditionFair, model.ConditionPoor:
		return true
	}
	return false
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func toProductListItem(p model.Product) ProductListItem {
	item := ProductListItem{
		ID:           p.ID,
		Title:        p.Title,
		Price:        p.Price,
		CategoryName: p.Category.Name,
		Condition:    string(p.Condition),
		SellerName:   p.Seller.Username,
		IsAvailable:  p.IsAvailable,
		CreatedAt:    p.CreatedAt,
	}

	for _, img := range p.Images {
		if img.IsPrimary {
			url := img.URL
			item.PrimaryImage = &url
			break
		}
	}
	return item
}

func toProductResponse(p model.Product) ProductResponse {
	images := make([]ProductImageResponse, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ProductImageResponse{
			ID:        img.ID,
			Image:     img.URL,
			AltText:   img.AltText,
			IsPrimary: img.IsPrimary,
		})
	}

	return ProductResponse{
		ID:                          p.ID,
		Title:                       p.Title,
		Description:                 p.Description,
		Price:                       p.Price,
		Quantity:                    p.Quantity,
		Category:                    p.CategoryID,
		CategoryName:                p.Category.Name,
		Condition:                   string(p.Condition),
		Brand:                       p.Brand,
		Model:                       p.Model,
		YearOfManufacture:           p.YearOfManufacture,
		Material:                    p.Material,
		Color:                       p.Color,
		Length:                      p.Length,
		Width:                       p.Width,
		Height:                      p.Height,
		Weight:                      p.Weight,
		OriginalPackaging:           p.OriginalPackaging,
		ManualIncluded:              p.ManualIncluded,
		WorkingConditionDescription: p.WorkingConditionDescription,
		Seller:                      p.SellerID,
		SellerName:                  p.Seller.Username,
		IsAvailable:                 p.IsAvailable,
		Images:                      images,
		CreatedAt:                   p.CreatedAt,
		UpdatedAt:                   p.UpdatedAt,
	}
}
