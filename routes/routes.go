package routes

import (
	"net/http"

	"backend/config"
	"backend/controllers"
	"backend/middleware"
	"backend/models"

	"github.com/gin-gonic/gin"
)

func InitializeRoutes(r *gin.Engine, db *config.Database) {
	auth := controllers.NewAuthController(db)
	products := controllers.NewProductController(db)
	categories := controllers.NewCategoryController(db)
	brands := controllers.NewBrandController(db)
	customers := controllers.NewCustomerController(db)
	suppliers := controllers.NewSupplierController(db)
	warehouses := controllers.NewWarehouseController(db)
	staff := controllers.NewStaffController(db)
	orders := controllers.NewOrderController(db)
	purchases := controllers.NewPurchaseController(db)
	returns := controllers.NewReturnController(db)
	expenses := controllers.NewExpenseController(db)
	settings := controllers.NewSettingsController(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", auth.Login)
	r.POST("/auth/register", auth.Register)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(models.RoleAdmin, models.RoleStaff))
	{
		api.GET("/profile", auth.GetProfile)
		api.PUT("/profile", auth.UpdateProfile)

		api.POST("/products", products.CreateProduct)
		api.GET("/products", products.GetAllProducts)
		api.GET("/products/:id", products.GetProductByID)
		api.PUT("/products/:id", products.UpdateProduct)
		api.DELETE("/products/:id", products.DeleteProduct)

		api.POST("/categories", categories.CreateCategory)
		api.GET("/categories", categories.GetAllCategories)
		api.GET("/categories/:id", categories.GetCategoryByID)
		api.PUT("/categories/:id", categories.UpdateCategory)
		api.DELETE("/categories/:id", categories.DeleteCategory)

		api.POST("/brands", brands.CreateBrand)
		api.GET("/brands", brands.GetAllBrands)
		api.PUT("/brands/:id", brands.UpdateBrand)
		api.DELETE("/brands/:id", brands.DeleteBrand)

		api.POST("/customers", customers.CreateCustomer)
		api.GET("/customers", customers.GetAllCustomers)
		api.GET("/customers/:id", customers.GetCustomerByID)
		api.PUT("/customers/:id", customers.UpdateCustomer)
		api.DELETE("/customers/:id", customers.DeleteCustomer)

		api.POST("/suppliers", suppliers.CreateSupplier)
		api.GET("/suppliers", suppliers.GetAllSuppliers)
		api.GET("/suppliers/:id", suppliers.GetSupplierByID)
		api.PUT("/suppliers/:id", suppliers.UpdateSupplier)
		api.DELETE("/suppliers/:id", suppliers.DeleteSupplier)

		api.POST("/warehouses", warehouses.CreateWarehouse)
		api.GET("/warehouses", warehouses.GetAllWarehouses)
		api.GET("/warehouses/:id", warehouses.GetWarehouseByID)
		api.PUT("/warehouses/:id", warehouses.UpdateWarehouse)
		api.DELETE("/warehouses/:id", warehouses.DeleteWarehouse)

		api.POST("/orders", orders.CreateOrder)
		api.GET("/orders", orders.GetAllOrders)
		api.GET("/orders/:id", orders.GetOrderByID)
		api.PUT("/orders/:id", orders.UpdateOrder)
		api.DELETE("/orders/:id", orders.DeleteOrder)

		api.POST("/purchases", purchases.CreatePurchase)
		api.GET("/purchases", purchases.GetAllPurchases)
		api.GET("/purchases/:id", purchases.GetPurchaseByID)
		api.PUT("/purchases/:id", purchases.UpdatePurchase)
		api.DELETE("/purchases/:id", purchases.DeletePurchase)

		api.POST("/sale-returns", returns.CreateSaleReturn)
		api.GET("/sale-returns", returns.GetAllSaleReturns)
		api.POST("/purchase-returns", returns.CreatePurchaseReturn)
		api.GET("/purchase-returns", returns.GetAllPurchaseReturns)

		api.POST("/expenses", expenses.CreateExpense)
		api.GET("/expenses", expenses.GetAllExpenses)
		api.GET("/expenses/:id", expenses.GetExpenseByID)
		api.PUT("/expenses/:id", expenses.UpdateExpense)
		api.DELETE("/expenses/:id", expenses.DeleteExpense)

		api.GET("/settings", settings.GetSettings)
	}

	admin := r.Group("/api")
	admin.Use(middleware.RequireAuth(models.RoleAdmin))
	{
		admin.POST("/staff", staff.CreateStaff)
		admin.GET("/staff", staff.GetAllStaff)
		admin.GET("/staff/:id", staff.GetStaffByID)
		admin.PUT("/staff/:id", staff.UpdateStaff)
		admin.DELETE("/staff/:id", staff.DeleteStaff)

		admin.POST("/settings", settings.SaveSettings)
	}
}
