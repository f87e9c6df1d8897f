package routes

import (
	"os"

	"rental-booking/constants"
	authController "rental-booking/controllers/auth"
	branchController "rental-booking/controllers/branch"
	customerController "rental-booking/controllers/customer"
	dashboardController "rental-booking/controllers/dashboard"
	paymentController "rental-booking/controllers/payment"
	productController "rental-booking/controllers/product"
	rentalController "rental-booking/controllers/rental"
	userController "rental-booking/controllers/user"
	"rental-booking/httpServices/line"
	"rental-booking/logger"
	"rental-booking/middleware"
	"rental-booking/repository"
	"rental-booking/services/availability"
	"rental-booking/services/notification"
	paymentService "rental-booking/services/payment"
	rentalService "rental-booking/services/rental"
	"rental-booking/services/slipparser"
	"rental-booking/services/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	store := repository.NewStore(db)
	lineClient := line.NewClient(os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"))
	notifier := notification.NewDispatcher(lineClient)
	fileStore := storage.NewService()
	asyncLogger := logger.NewAsyncLogger(db)

	rentals := rentalService.NewService(store, notifier)
	payments := paymentService.NewService(store, notifier)
	checker := availability.NewChecker(store)
	parser := slipparser.NewService(store)

	auth := authController.NewAuthController(db, asyncLogger)
	rental := rentalController.NewRentalController(db, rentals, asyncLogger)
	payment := paymentController.NewPaymentController(db, payments, fileStore, parser, asyncLogger)
	product := productController.NewProductController(db, checker, fileStore, asyncLogger)
	customer := customerController.NewCustomerController(db, asyncLogger)
	user := userController.NewUserController(db, asyncLogger)
	branch := branchController.NewBranchController(db, asyncLogger)
	dashboard := dashboardController.NewDashboardController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Rental booking API")
	})

	// Uploaded slip and product images
	app.Static("/uploads", fileStore.UploadDir)

	/*=============================================================================
	| Public Routes (LIFF frontend, no auth)
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/auth/login", auth.Login)

	api.Get("/products", product.Index)
	api.Get("/products/:id", product.Show)
	api.Get("/products/:id/availability", product.CheckAvailability)
	api.Get("/products/:id/calendar", product.Calendar)

	api.Get("/branches", branch.Index)

	api.Post("/rentals", rental.Store)
	api.Post("/payments", payment.Store)

	/*=============================================================================
	| Admin Routes (staff and above)
	===============================================================================*/
	staff := middleware.RequireRoles(constants.RoleSuperAdmin, constants.RoleAdmin, constants.RoleStaff)
	admin := middleware.RequireRoles(constants.RoleSuperAdmin, constants.RoleAdmin)
	superAdmin := middleware.RequireRoles(constants.RoleSuperAdmin)

	rentalGroup := api.Group("/admin/rentals")
	rentalGroup.Get("/", staff, rental.Index)
	rentalGroup.Get("/:id", staff, rental.Show)
	rentalGroup.Patch("/:id/status", staff, rental.UpdateStatus)
	rentalGroup.Get("/:id/history", staff, rental.History)

	paymentGroup := api.Group("/admin/payments")
	paymentGroup.Get("/", staff, payment.Index)
	paymentGroup.Get("/order/:orderId", staff, payment.Show)

	productGroup := api.Group("/admin/products")
	productGroup.Post("/", admin, product.Store)
	productGroup.Put("/:id", admin, product.Update)
	productGroup.Delete("/:id", admin, product.Destroy)

	customerGroup := api.Group("/admin/customers")
	customerGroup.Get("/", staff, customer.Index)
	customerGroup.Get("/:id", staff, customer.Show)

	branchGroup := api.Group("/admin/branches")
	branchGroup.Get("/:id", staff, branch.Show)
	branchGroup.Post("/", admin, branch.Store)
	branchGroup.Put("/:id", admin, branch.Update)
	branchGroup.Delete("/:id", superAdmin, branch.Destroy)

	userGroup := api.Group("/admin/users")
	userGroup.Get("/", admin, user.Index)
	userGroup.Get("/:id", admin, user.Show)
	userGroup.Post("/", superAdmin, user.Store)
	userGroup.Put("/:id", superAdmin, user.Update)
	userGroup.Patch("/:id/password", superAdmin, user.UpdatePassword)
	userGroup.Patch("/:id/toggle-status", superAdmin, user.ToggleStatus)

	dashboardGroup := api.Group("/admin/dashboard")
	dashboardGroup.Get("/stats", staff, dashboard.Stats)
	dashboardGroup.Get("/recent-orders", staff, dashboard.RecentOrders)
	dashboardGroup.Get("/top-products", staff, dashboard.TopProducts)
	dashboardGroup.Get("/revenue-chart", staff, dashboard.RevenueChart)
	dashboardGroup.Get("/product-status", staff, dashboard.ProductStatus)
}
