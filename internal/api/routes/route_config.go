package routes

import (
	"meal-planner/internal/api/handlers"
	"meal-planner/internal/middleware"
	"meal-planner/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	AuthHandler       handlers.AuthHandler
	PantryHandler     handlers.PantryHandler
	StoreHandler      handlers.StoreHandler
	RecipeHandler     handlers.RecipeHandler
	StapleHandler     handlers.StapleHandler
	KnownPriceHandler handlers.KnownPriceHandler
	MealPlanHandler   handlers.MealPlanHandler
	ShoppingHandler   handlers.ShoppingHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Pantry()
	c.Stores()
	c.Recipes()
	c.Staples()
	c.KnownPrices()
	c.MealPlan()
	c.Shopping()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/login", c.AuthHandler.Login)
		auth.Post("/logout", c.AuthHandler.Logout)
	}
}

func (c *Config) Pantry() {
	pantry := c.App.Group("/api/v1/pantry", c.Middleware.AuthMiddleware(c.JWTService))

	pantry.Get("/locations", c.PantryHandler.GetLocations)
	pantry.Get("/categories", c.PantryHandler.GetCategories)
	pantry.Get("/expiring", c.PantryHandler.GetExpiringSoon)
	pantry.Post("/import", c.PantryHandler.ImportCSV)
	pantry.Post("/delete-many", c.PantryHandler.DeleteItems)

	pantry.Get("", c.PantryHandler.GetItems)
	pantry.Post("", c.PantryHandler.AddItem)
	pantry.Get("/:id", c.PantryHandler.GetItem)
	pantry.Put("/:id", c.PantryHandler.UpdateItem)
	pantry.Delete("/:id", c.PantryHandler.DeleteItem)
}

func (c *Config) Stores() {
	stores := c.App.Group("/api/v1/stores", c.Middleware.AuthMiddleware(c.JWTService))

	stores.Get("", c.StoreHandler.GetStores)
	stores.Post("", c.StoreHandler.AddStore)
	stores.Put("/:id", c.StoreHandler.UpdateStore)
	stores.Delete("/:id", c.StoreHandler.DeleteStore)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	// AI-backed operations
	recipes.Post("/parse-text", c.RecipeHandler.ParseText)
	recipes.Post("/parse-url", c.RecipeHandler.ParseURL)
	recipes.Post("/generate", c.RecipeHandler.Generate)
	recipes.Post("/bulk-generate", c.RecipeHandler.BulkGenerate)
	recipes.Post("/normalize-all", c.RecipeHandler.NormalizeAllRecipes)

	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Post("", c.RecipeHandler.AddRecipe)
	recipes.Get("/:id", c.RecipeHandler.GetRecipe)
	recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
	recipes.Post("/:id/normalize", c.RecipeHandler.NormalizeRecipe)
	recipes.Post("/:id/modify", c.RecipeHandler.Modify)
}

func (c *Config) Staples() {
	staples := c.App.Group("/api/v1/staples", c.Middleware.AuthMiddleware(c.JWTService))

	staples.Get("", c.StapleHandler.GetStaples)
	staples.Post("", c.StapleHandler.AddStaple)
	staples.Put("/:id", c.StapleHandler.UpdateStaple)
	staples.Delete("/:id", c.StapleHandler.DeleteStaple)
	staples.Patch("/:id/need-to-buy", c.StapleHandler.SetNeedToBuy)
}

func (c *Config) KnownPrices() {
	prices := c.App.Group("/api/v1/known-prices", c.Middleware.AuthMiddleware(c.JWTService))

	prices.Get("", c.KnownPriceHandler.GetPrices)
	prices.Post("", c.KnownPriceHandler.UpsertPrice)
	prices.Delete("/:id", c.KnownPriceHandler.DeletePrice)
	prices.Post("/receipt-scan", c.KnownPriceHandler.ParseReceipt)
}

func (c *Config) MealPlan() {
	mealPlan := c.App.Group("/api/v1/meal-plan", c.Middleware.AuthMiddleware(c.JWTService))

	mealPlan.Get("/week", c.MealPlanHandler.GetWeek)
	mealPlan.Post("/set", c.MealPlanHandler.SetMeal)
	mealPlan.Post("/clear", c.MealPlanHandler.ClearMeal)
	mealPlan.Post("/suggest", c.MealPlanHandler.SuggestWeek)
	mealPlan.Post("/apply", c.MealPlanHandler.ApplyWeek)
}

func (c *Config) Shopping() {
	shopping := c.App.Group("/api/v1/shopping-list", c.Middleware.AuthMiddleware(c.JWTService))

	shopping.Post("/generate", c.ShoppingHandler.Generate)
	shopping.Get("/sources", c.ShoppingHandler.Sources)
	shopping.Post("/save", c.ShoppingHandler.SaveCached)
	shopping.Get("/saved", c.ShoppingHandler.LoadCached)
	shopping.Delete("/saved", c.ShoppingHandler.ClearCached)
	shopping.Post("/email", c.ShoppingHandler.EmailList)
	shopping.Post("/estimate-prices", c.ShoppingHandler.EstimatePrices)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
