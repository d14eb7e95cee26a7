package controllers

import (
	"errors"
	"strconv"
	"ua-shop/models"
	"ua-shop/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	checkoutService *services.CheckoutService
	orderService    *services.OrderService
}

func NewOrderController(checkoutService *services.CheckoutService, orderService *services.OrderService) *OrderController {
	return &OrderController{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// @Summary Checkout
// @Description Convert the authenticated user's cart into an order and empty the cart
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	userID := c.GetInt("user_id")
	email := c.GetString("user_email")

	order, err := ctrl.checkoutService.Checkout(c.Request.Context(), userID, email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(400, models.ErrorResponse{Success: false, Message: err.Error()})
		case errors.Is(err, services.ErrCartConflict):
			c.JSON(409, models.ErrorResponse{Success: false, Message: err.Error()})
		default:
			c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to place order"})
		}
		return
	}

	c.JSON(201, models.Response{Success: true, Message: "Order placed successfully", Data: order})
}

// @Summary My orders
// @Description Get the authenticated user's orders, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /orders/my-orders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetInt("user_id")

	orders, err := ctrl.orderService.GetMyOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to retrieve orders"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Orders retrieved successfully", Data: orders})
}

// @Summary All orders
// @Description Get all orders across users with pagination (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /orders/all-orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	response, err := ctrl.orderService.GetAllOrders(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to retrieve orders"})
		return
	}

	c.JSON(200, response)
}
