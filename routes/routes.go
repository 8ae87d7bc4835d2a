package routes

import (
	"cake-shop/controllers"
	"cake-shop/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	authCtrl := &controllers.AuthController{}
	sectionCtrl := &controllers.SectionController{}
	multiplierCtrl := &controllers.MultiplierController{}
	recipeCtrl := &controllers.RecipeController{}
	orderCtrl := &controllers.OrderController{}
	visitCtrl := &controllers.VisitController{}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.GET("/catalog", sectionCtrl.GetCatalog)
	router.POST("/orders", orderCtrl.Checkout)
	router.POST("/orders/quote", orderCtrl.Quote)
	router.POST("/visits", visitCtrl.LogVisit)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.POST("/auth/change-password", authCtrl.ChangePassword)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/stats", visitCtrl.GetStats)

		admin.POST("/sections", sectionCtrl.SaveSection)
		admin.PUT("/sections/order", sectionCtrl.ReorderSections)
		admin.DELETE("/sections/:key", sectionCtrl.DeleteSection)
		admin.POST("/options/:id/image", sectionCtrl.UploadOptionImage)

		admin.GET("/sections/:key/diameter", multiplierCtrl.GetMultipliers)
		admin.POST("/sections/:key/diameter", multiplierCtrl.ToggleDiameter)
		admin.PATCH("/sections/:key/diameter", multiplierCtrl.SetMultiplier)
		admin.POST("/sections/:key/diameter/base", multiplierCtrl.SetBaseOption)

		admin.GET("/recipes", recipeCtrl.GetAllRecipes)
		admin.GET("/recipes/:id", recipeCtrl.GetRecipeByID)
		admin.POST("/recipes", recipeCtrl.CreateRecipe)
		admin.PATCH("/recipes/:id", recipeCtrl.UpdateRecipe)
		admin.DELETE("/recipes/:id", recipeCtrl.DeleteRecipe)
		admin.POST("/recipes/:id/ingredients", recipeCtrl.AddRecipeIngredient)
		admin.DELETE("/recipes/:id/ingredients/:lineId", recipeCtrl.RemoveRecipeIngredient)

		admin.GET("/ingredients", recipeCtrl.GetAllIngredients)
		admin.POST("/ingredients", recipeCtrl.CreateIngredient)
		admin.PATCH("/ingredients/:id", recipeCtrl.UpdateIngredient)
		admin.DELETE("/ingredients/:id", recipeCtrl.DeleteIngredient)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:id", orderCtrl.GetOrderByID)
	}

	router.Static("/uploads", "./uploads")
}
