package handler

import (
	"net/http"
	"strconv"

	"ecofinds/internal/middleware"
	"ecofinds/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /productsのHTTP
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type productImageRequest struct {
	Image   string `json:"image"`
	AltText string `json:"alt_text"`
}

type productRequest struct {
	Title                       string             `json:"title"`
	Description                 string             `json:"description"`
	Price                       decimal.Decimal    `json:"price"`
	Quantity                    int64              `json:"quantity"`
	Category                    int64              `json:"category"`
	Condition                   string             `json:"condition"`
	Brand                       string             `json:"brand"`
	Model                       string             `json:"model"`
	YearOfManufacture           *int64             `json:"year_of_manufacture"`
	Material                    string             `json:"material"`
	Color                       string             `json:"color"`
	Length                      *decimal.Decimal   `json:"length"`
	Width                       *decimal.Decimal   `json:"width"`
	Height                      *decimal.Decimal   `json:"height"`
	Weight                      *decimal.Decimal   `json:"weight"`
	OriginalPackaging           bool               `json:"original_packaging"`
	ManualIncluded              bool               `json:"manual_included"`
	WorkingConditionDescription string             `json:"working_condition_description"`
	UploadedImages              []productImageRequest `json:"uploaded_images"`
}

// /products 配下を登録。参照系は認証なし、更新系は認証あり。
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/products")

	g.GET("", h.list)
	g.GET("/categories", h.categories)
	g.GET("/my-products", h.myProducts, authMW)
	g.GET("/:id", h.get)

	g.POST("", h.create, authMW)
	g.PUT("/:id", h.update, authMW)
	g.DELETE("/:id", h.delete, authMW)
}

// GET /products
func (h *ProductHandler) list(c echo.Context) error {
	in := usecase.ProductListInput{
		Condition: c.QueryParam("condition"),
		Search:    c.QueryParam("search"),
	}

	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid category"))
		}
		in.CategoryID = &id
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /products/categories
func (h *ProductHandler) categories(c echo.Context) error {
	out, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /products/:id
func (h *ProductHandler) get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid id"))
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /products
func (h *ProductHandler) create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	out, err := h.uc.Create(c.Request().Context(), middleware.UserID(c), toProductInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// PUT /products/:id
func (h *ProductHandler) update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid id"))
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	out, err := h.uc.Update(c.Request().Context(), middleware.UserID(c), id, toProductInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /products/:id
func (h *ProductHandler) delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid id"))
	}

	if err := h.uc.Delete(c.Request().Context(), middleware.UserID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /products/my-products
func (h *ProductHandler) myProducts(c echo.Context) error {
	out, err := h.uc.MyProducts(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func toProductInput(req productRequest) usecase.ProductInput {
	images := make([]usecase.ProductImageInput, 0, len(req.UploadedImages))
	for _, img := range req.UploadedImages {
		images = append(images, usecase.ProductImageInput{
			URL:     img.Image,
			AltText: img.AltText,
		})
	}

	return usecase.ProductInput{
		Title:                       req.Title,
		Description:                 req.Description,
		Price:                       req.Price,
		Quantity:                    req.Quantity,
		CategoryID:                  req.Category,
		Condition:                   req.Condition,
		Brand:                       req.Brand,
		Model:                       req.Model,
		YearOfManufacture:           req.YearOfManufacture,
		Material:                    req.Material,
		Color:                       req.Color,
		Length:                      req.Length,
		Width:                       req.Width,
		Height:                      req.Height,
		Weight:                      req.Weight,
		OriginalPackaging:           req.OriginalPackaging,
		ManualIncluded:              req.ManualIncluded,
		WorkingConditionDescription: req.WorkingConditionDescription,
		Images:                      images,
	}
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
