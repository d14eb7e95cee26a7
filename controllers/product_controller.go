package controllers

import (
	"errors"
	"strconv"
	"ua-shop/models"
	"ua-shop/repositories"
	"ua-shop/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService *services.ProductService
}

func NewProductController(productService *services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// @Summary Get active products
// @Description Get paginated list of active products
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetActiveProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	response, err := ctrl.productService.GetActiveProducts(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to retrieve products"})
		return
	}

	c.JSON(200, response)
}

// @Summary Get all products
// @Description Get every product including archived ones (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /products/all [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	products, err := ctrl.productService.GetAllProducts(c.Request.Context())
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to retrieve products"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Products retrieved successfully", Data: products})
}

// @Summary Get product by ID
// @Description Get a single product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid product ID"})
		return
	}

	product, err := ctrl.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			c.JSON(404, models.ErrorResponse{Success: false, Message: "Product not found"})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to retrieve product"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Product retrieved successfully", Data: product})
}

// @Summary Search products by name
// @Description Find products whose name contains the query, case-insensitively
// @Tags Products
// @Accept json
// @Produce json
// @Param request body models.SearchByNameRequest true "Name query"
// @Success 200 {object} models.Response
// @Router /products/searchByName [post]
func (ctrl *ProductController) SearchByName(c *gin.Context) {
	var req models.SearchByNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Search name is required", Error: err.Error()})
		return
	}

	products, err := ctrl.productService.SearchByName(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to search products"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Products retrieved successfully", Data: products})
}

// @Summary Search products by price range
// @Description Find products priced between minPrice and maxPrice; a missing maxPrice means no upper bound
// @Tags Products
// @Accept json
// @Produce json
// @Param request body models.SearchByPriceRequest true "Price range"
// @Success 200 {object} models.Response
// @Router /products/searchByPrice [post]
func (ctrl *ProductController) SearchByPrice(c *gin.Context) {
	var req models.SearchByPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	products, err := ctrl.productService.SearchByPrice(c.Request.Context(), req.MinPrice, req.MaxPrice)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to search products"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Products retrieved successfully", Data: products})
}

// @Summary Create product
// @Description Create a new product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateProductRequest true "Product data"
// @Success 201 {object} models.Response
// @Router /products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}
	if req.Price < 0 {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Price must not be negative"})
		return
	}

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to create product"})
		return
	}

	c.JSON(201, models.Response{Success: true, Message: "Product created successfully", Data: product})
}

// @Summary Update product
// @Description Update a product's name, description, or price (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid product ID"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			c.JSON(404, models.ErrorResponse{Success: false, Message: "Product not found"})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to update product"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Product updated successfully", Data: product})
}

// @Summary Activate product
// @Description Make an archived product available again (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/activate [patch]
func (ctrl *ProductController) ActivateProduct(c *gin.Context) {
	ctrl.setProductActive(c, true, "Product activated successfully")
}

// @Summary Archive product
// @Description Hide a product from the storefront without deleting it (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/archive [patch]
func (ctrl *ProductController) ArchiveProduct(c *gin.Context) {
	ctrl.setProductActive(c, false, "Product archived successfully")
}

func (ctrl *ProductController) setProductActive(c *gin.Context, active bool, message string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid product ID"})
		return
	}

	if active {
		err = ctrl.productService.ActivateProduct(c.Request.Context(), id)
	} else {
		err = ctrl.productService.ArchiveProduct(c.Request.Context(), id)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			c.JSON(404, models.ErrorResponse{Success: false, Message: "Product not found"})
			return
		}
		c.JSON(500, models.ErrorResponse{Success: false, Message: "Failed to update product status"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: message, Data: gin.H{"id": id, "isActive": active}})
}
