package config

import (
	"os"
	"time"

	"meal-planner/internal/api/handlers"
	"meal-planner/internal/api/routes"
	"meal-planner/internal/middleware"
	"meal-planner/internal/utils"
	"meal-planner/internal/utils/storage"
	"meal-planner/pkg/assistant"
	"meal-planner/pkg/auth"
	"meal-planner/pkg/jwt"
	"meal-planner/pkg/knownprice"
	"meal-planner/pkg/mealplan"
	"meal-planner/pkg/pantry"
	"meal-planner/pkg/recipe"
	"meal-planner/pkg/setting"
	"meal-planner/pkg/shopping"
	"meal-planner/pkg/staple"
	"meal-planner/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	utils.InitLogger(utils.GetConfig("LOG_LEVEL"))

	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         25 * 1024 * 1024, // receipt photo uploads
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	pantryRepository := pantry.NewPantryRepository(db)
	storeRepository := store.NewStoreRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	stapleRepository := staple.NewStapleRepository(db)
	knownPriceRepository := knownprice.NewKnownPriceRepository(db)
	mealPlanRepository := mealplan.NewMealPlanRepository(db)
	settingRepository := setting.NewSettingRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	authService := auth.NewAuthService(jwtService)
	assistantService := assistant.NewAssistantService(pantryRepository)
	storeService := store.NewStoreService(storeRepository)
	pantryService := pantry.NewPantryService(pantryRepository, storeService)
	recipeService := recipe.NewRecipeService(recipeRepository, assistantService)
	stapleService := staple.NewStapleService(stapleRepository)
	knownPriceService := knownprice.NewKnownPriceService(knownPriceRepository, assistantService, s3)
	mealPlanService := mealplan.NewMealPlanService(mealPlanRepository, recipeRepository, assistantService)
	shoppingService := shopping.NewShoppingService(
		mealPlanRepository,
		recipeRepository,
		pantryRepository,
		stapleRepository,
		knownPriceRepository,
		settingRepository,
		assistantService,
	)

	// Handler
	authHandler := handlers.NewAuthHandler(authService, validator)
	pantryHandler := handlers.NewPantryHandler(pantryService, validator)
	storeHandler := handlers.NewStoreHandler(storeService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	stapleHandler := handlers.NewStapleHandler(stapleService, validator)
	knownPriceHandler := handlers.NewKnownPriceHandler(knownPriceService, validator)
	mealPlanHandler := handlers.NewMealPlanHandler(mealPlanService, validator)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		AuthHandler:       authHandler,
		PantryHandler:     pantryHandler,
		StoreHandler:      storeHandler,
		RecipeHandler:     recipeHandler,
		StapleHandler:     stapleHandler,
		KnownPriceHandler: knownPriceHandler,
		MealPlanHandler:   mealPlanHandler,
		ShoppingHandler:   shoppingHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
