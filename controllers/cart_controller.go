package controllers

import (
	"errors"
	"strconv"
	"ua-shop/models"
	"ua-shop/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// @Summary Get cart
// @Description Get the authenticated user's cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart/ [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	cart, err := ctrl.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to retrieve cart"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Cart retrieved successfully", Data: cart})
}

// @Summary Add to cart
// @Description Add a product to the cart; re-adding an existing product increments its quantity and refreshes its price snapshot
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddToCartRequest true "Product and quantity"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/addToCart [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	cart, err := ctrl.cartService.AddToCart(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		ctrl.respondCartError(c, err, "Failed to add item to cart")
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Item added to cart", Data: cart})
}

// @Summary Update quantity
// @Description Set the quantity of a product already in the cart
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateQuantityRequest true "Product and new quantity"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/updateQuantity [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	cart, err := ctrl.cartService.UpdateQuantity(c.Request.Context(), userID, req.ProductID, req.NewQuantity)
	if err != nil {
		ctrl.respondCartError(c, err, "Failed to update quantity")
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Quantity updated successfully", Data: cart})
}

// @Summary Remove from cart
// @Description Remove a product from the cart; removing an absent product is a no-op
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/{productId}/removeFromCart [patch]
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid product ID"})
		return
	}

	cart, err := ctrl.cartService.RemoveFromCart(c.Request.Context(), userID, productID)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to remove item from cart"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Item removed from cart", Data: cart})
}

// @Summary Clear cart
// @Description Remove every item from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart/clearCart [put]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	cart, err := ctrl.cartService.ClearCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to clear cart"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Cart cleared successfully", Data: cart})
}

func (ctrl *CartController) respondCartError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, services.ErrProductUnavailable), errors.Is(err, services.ErrLineNotFound):
		c.JSON(404, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, services.ErrCartConflict):
		c.JSON(409, models.ErrorResponse{Success: false, Message: err.Error()})
	default:
		c.JSON(500, models.ErrorResponse{Success: false, Message: fallback})
	}
}
