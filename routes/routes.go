package routes

import (
	"log"
	"ua-shop/controllers"
	"ua-shop/middleware"
	"ua-shop/repositories"
	"ua-shop/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	userRepo := repositories.NewUserRepository()
	productRepo := repositories.NewProductRepository()
	cartRepo := repositories.NewCartRepository()
	orderRepo := repositories.NewOrderRepository()

	var mailer services.Mailer
	if emailService, err := services.NewEmailService(); err == nil {
		mailer = emailService
	} else {
		log.Println("SMTP not configured, order confirmation emails disabled")
	}

	authCtrl := controllers.NewAuthController(services.NewAuthService(userRepo))
	productCtrl := controllers.NewProductController(services.NewProductService(productRepo))
	cartCtrl := controllers.NewCartController(services.NewCartService(productRepo, cartRepo))
	orderCtrl := controllers.NewOrderController(
		services.NewCheckoutService(cartRepo, orderRepo, mailer),
		services.NewOrderService(orderRepo),
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/users/register", authCtrl.Register)
	router.POST("/users/login", authCtrl.Login)
	router.GET("/products", productCtrl.GetActiveProducts)
	router.POST("/products/searchByName", productCtrl.SearchByName)
	router.POST("/products/searchByPrice", productCtrl.SearchByPrice)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/users/details", authCtrl.GetDetails)
		auth.POST("/users/reset-password", authCtrl.ResetPassword)

		auth.GET("/cart/", cartCtrl.GetCart)
		auth.POST("/cart/addToCart", cartCtrl.AddToCart)
		auth.PATCH("/cart/updateQuantity", cartCtrl.UpdateQuantity)
		auth.PATCH("/cart/:productId/removeFromCart", cartCtrl.RemoveFromCart)
		auth.PUT("/cart/clearCart", cartCtrl.ClearCart)

		auth.POST("/orders/checkout", orderCtrl.Checkout)
		auth.GET("/orders/my-orders", orderCtrl.GetMyOrders)
	}

	admin := router.Group("/")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.PATCH("/users/:id/set-as-admin", authCtrl.SetAsAdmin)

		admin.GET("/products/all", productCtrl.GetAllProducts)
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.PATCH("/products/:id/activate", productCtrl.ActivateProduct)
		admin.PATCH("/products/:id/archive", productCtrl.ArchiveProduct)

		admin.GET("/orders/all-orders", orderCtrl.GetAllOrders)
	}

	router.GET("/products/:id", productCtrl.GetProductByID)
}
