package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	_ "github.com/thekingpuff/kingpuff-api/docs" // Import generated docs
	"github.com/thekingpuff/kingpuff-api/internal/config"
	"github.com/thekingpuff/kingpuff-api/internal/controllers"
	"github.com/thekingpuff/kingpuff-api/internal/database"
	"github.com/thekingpuff/kingpuff-api/internal/events"
	"github.com/thekingpuff/kingpuff-api/internal/mail"
	"github.com/thekingpuff/kingpuff-api/internal/middleware"
	"github.com/thekingpuff/kingpuff-api/internal/models"
	"github.com/thekingpuff/kingpuff-api/internal/services"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	configuration *config.Config
	bus           *events.Bus

	categoryService services.CategoryService
	productService  services.ProductService
	userService     services.UserService
	cartService     services.CartService
	checkoutService services.CheckoutService

	authController     *controllers.AuthController
	categoryController controllers.CategoryController
	productController  controllers.ProductController
	cartController     controllers.CartController
	checkoutController controllers.CheckoutController
	notifyController   controllers.NotifyController
	eventsController   controllers.EventsController
	uploadController   controllers.UploadController
)

// @title The King Puff API
// @version 1.0
// @description Storefront API for The King Puff vape shop
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	setupServices()

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and returns a gorm.DB instance
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)

	// Migrate the schema
	err = db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{})
	checkPanicErr(err)

	// Create only if is empty
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}

// seedDatabase seeds the database with initial data
func seedDatabase() {
	log.Info("Seeding database with initial data")

	desechables := models.Category{Nombre: "Desechables", Slug: "desechables"}
	recargables := models.Category{Nombre: "Recargables", Slug: "recargables"}
	db.Create(&desechables)
	db.Create(&recargables)

	products := []models.Product{
		{
			Nombre:      "Puff X 9000",
			CategoriaID: desechables.ID,
			EnStock:     true,
			Sabores: []models.Flavor{
				{Nombre: "Menta"},
				{Nombre: "Sandía"},
				{Nombre: "Mango Ice"},
			},
			CreadoEn: time.Now(),
		},
		{
			Nombre:      "Puff Mini",
			CategoriaID: desechables.ID,
			EnStock:     true,
			Sabores: []models.Flavor{
				{Nombre: "Cola"},
				{Nombre: "Fresa"},
			},
			CreadoEn: time.Now(),
		},
	}
	for _, product := range products {
		db.Create(&product)
	}
	log.Info("Database seeded successfully")
}

// setupServices wires the event bus, services and controllers
func setupServices() {
	bus = events.NewBus()

	categoryService = services.NewCategoryService(db, bus)
	productService = services.NewProductService(db, bus)
	userService = services.NewUserService(db)
	cartService = services.NewCartService(db, productService)

	sender := mail.NewSMTPSender(configuration.SMTPHost, configuration.SMTPPort,
		configuration.GmailUser, configuration.GmailPass)
	checkoutService = services.NewCheckoutService(userService, cartService, productService,
		sender, configuration.AdminEmail)

	authController = controllers.NewAuthController(userService, configuration)
	categoryController = controllers.NewCategoryController(categoryService)
	productController = controllers.NewProductController(productService)
	cartController = controllers.NewCartController(cartService)
	checkoutController = controllers.NewCheckoutController(checkoutService)
	notifyController = controllers.NewNotifyController(sender, configuration.AdminEmail)
	eventsController = controllers.NewEventsController(bus, productService, categoryService)
	uploadController = controllers.NewUploadController(configuration.UploadsDir)
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Legacy-shaped email gateway. Registered for every method so the
	// handler can answer 405 on anything but POST.
	router.Any("/api/sendEmail", notifyController.SendEmail)

	// Uploaded flavor images
	router.Static("/uploads", configuration.UploadsDir)

	v1 := router.Group("/api/v1")
	{
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/products", productController.GetPublicProducts)
			publicApi.GET("/products/:id", productController.GetProductDetail)
			publicApi.GET("/categories", categoryController.GetCategories)
			publicApi.GET("/events/catalog", eventsController.StreamPublic)
		}

		// Authentication routes (public but for auth purposes)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		// Protected routes (requires JWT authentication)
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.JWTAuth([]byte(configuration.JWTSecret)))
		{
			protectedApi.GET("/cart", cartController.GetCart)
			protectedApi.PUT("/cart", cartController.ReplaceCart)
			protectedApi.POST("/cart/items", cartController.AddItem)
			protectedApi.DELETE("/cart/items/:idx", cartController.RemoveItem)
			protectedApi.POST("/checkout", checkoutController.Checkout)

			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.GET("/products", productController.GetAdminProducts)
				adminApi.POST("/products", productController.CreateProduct)
				adminApi.PUT("/products/:id", productController.UpdateProduct)
				adminApi.PATCH("/products/:id/stock", productController.ToggleProductStock)
				adminApi.PATCH("/products/:id/flavors/:idx/stock", productController.ToggleFlavorStock)
				adminApi.DELETE("/products/:id", productController.DeleteProduct)

				adminApi.POST("/categories", categoryController.CreateCategory)
				adminApi.PUT("/categories/:id", categoryController.RenameCategory)
				adminApi.DELETE("/categories/:id", categoryController.DeleteCategory)

				adminApi.GET("/events/catalog", eventsController.StreamAdmin)
				adminApi.POST("/uploads/flavors", uploadController.UploadFlavorImage)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "kingpuff-api",
	})
}
