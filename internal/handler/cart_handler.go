package handler

import (
	"net/http"

	"ecofinds/internal/middleware"
	"ecofinds/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	cartUC  *usecase.CartUsecase
	orderUC *usecase.OrderUsecase
}

// DI
func NewCartHandler(cartUC *usecase.CartUsecase, orderUC *usecase.OrderUsecase) *CartHandler {
	return &CartHandler{cartUC: cartUC, orderUC: orderUC}
}

type addToCartRequest struct {
	Product  int64 `json:"product"`
	Quantity int64 `json:"quantity"`
}

// /cart 配下を登録。全部認証あり。
func (h *CartHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/cart")
	g.Use(authMW)

	g.GET("", h.getCart)
	g.POST("/add", h.addToCart)
	g.DELETE("/remove/:item_id", h.removeItem)
	g.POST("/checkout", h.checkout)
	g.GET("/orders", h.orders)
}

// GET /cart
func (h *CartHandler) getCart(c echo.Context) error {
	out, err := h.cartUC.GetCart(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /cart/add
func (h *CartHandler) addToCart(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	out, err := h.cartUC.AddToCart(c.Request().Context(), middleware.UserID(c), usecase.AddToCartInput{
		ProductID: req.Product,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// DELETE /cart/remove/:item_id
func (h *CartHandler) removeItem(c echo.Context) error {
	id, err := pathID(c, "item_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid id"))
	}

	out, err := h.cartUC.RemoveItem(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /cart/checkout
func (h *CartHandler) checkout(c echo.Context) error {
	out, err := h.orderUC.Checkout(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /cart/orders
func (h *CartHandler) orders(c echo.Context) error {
	out, err := h.orderUC.ListMyOrders(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
