package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/dhanvanth-dev/sparkle-shop-manager/config"
	"github.com/dhanvanth-dev/sparkle-shop-manager/controllers"
	"github.com/dhanvanth-dev/sparkle-shop-manager/libs"
	"github.com/dhanvanth-dev/sparkle-shop-manager/middleware"
	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
	"github.com/dhanvanth-dev/sparkle-shop-manager/repositories"
	"github.com/dhanvanth-dev/sparkle-shop-manager/services"
)

func SetupRoutes(router *gin.Engine) {
	cfg := config.AppConfig

	productRepo := repositories.NewProductRepository()
	cartRepo := repositories.NewCartRepository()
	savedRepo := repositories.NewSavedItemRepository()
	orderRepo := repositories.NewOrderRepository()
	userRepo := repositories.NewUserRepository()

	var store services.CacheStore
	if models.RedisClient != nil {
		store = services.NewRedisStore(models.RedisClient)
	} else {
		store = services.NewMemoryStore()
	}
	cache := services.NewCacheService(store, cfg.CacheTTL)

	productSvc := services.NewProductService(productRepo, cache)
	productSvc.StartPeriodicRefresh(cfg.CacheTTL)
	cartSvc := services.NewCartService(cartRepo, savedRepo, cfg.MaxCartQuantity, cfg.SavedItemTTLDays)
	gateway := libs.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayAPIURL)
	paymentSvc := services.NewPaymentService(orderRepo, cartRepo, gateway, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	if mailer, err := models.NewEmailService(); err == nil {
		paymentSvc = paymentSvc.WithMailer(mailer)
	}
	authSvc := services.NewAuthService(userRepo)

	authCtrl := controllers.NewAuthController(authSvc)
	productCtrl := controllers.NewProductController(productSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	orderCtrl := controllers.NewOrderController(paymentSvc, orderRepo)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.GET("/products", productCtrl.GetProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/profile", authCtrl.UpdateProfile)
		auth.POST("/auth/profile/photo", authCtrl.UpdateProfilePhoto)
		auth.POST("/auth/change-password", authCtrl.ChangePassword)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart", cartCtrl.AddToCart)
		auth.PATCH("/cart/:id", cartCtrl.UpdateQuantity)
		auth.DELETE("/cart/:id", cartCtrl.RemoveFromCart)
		auth.DELETE("/cart", cartCtrl.ClearCart)
		auth.POST("/cart/:id/save", cartCtrl.MoveToSaved)

		auth.GET("/saved", cartCtrl.GetSavedItems)
		auth.POST("/saved", cartCtrl.SaveItem)
		auth.DELETE("/saved/:id", cartCtrl.RemoveSavedItem)
		auth.POST("/saved/:id/cart", cartCtrl.MoveToCart)

		auth.POST("/payments/orders", paymentCtrl.CreateOrder)
		auth.POST("/payments/verify", paymentCtrl.VerifyPayment)
		auth.POST("/payments/orders/:id/fail", paymentCtrl.MarkOrderFailed)

		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:id", orderCtrl.GetMyOrder)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)
		admin.POST("/products/images", productCtrl.UploadProductImage)
		admin.DELETE("/cache", productCtrl.ClearCache)

		admin.GET("/orders", orderCtrl.GetAllOrders)
	}
}
