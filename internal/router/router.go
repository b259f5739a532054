package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/smith-matt-7272/recipe-app-api/internal/auth"
	"github.com/smith-matt-7272/recipe-app-api/internal/config"
	"github.com/smith-matt-7272/recipe-app-api/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	recipeHandler *handler.RecipeHandler,
	tagHandler *handler.TagHandler,
	ingredientHandler *handler.IngredientHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/user/create", authHandler.Register)
	api.POST("/user/token", authHandler.Token)
	api.POST("/user/token/refresh", authHandler.Refresh)
	api.POST("/user/token/revoke", authHandler.Revoke)

	// Secured routes (require a bearer token); claims are parsed into
	// auth.Claims so handlers can read the acting user id.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Profile: only GET and PATCH are routed, anything else is 405.
	secured.GET("/user/me", userHandler.Me)
	secured.PATCH("/user/me", userHandler.UpdateMe)

	// Recipe routes
	secured.GET("/recipe/recipes", recipeHandler.List)
	secured.POST("/recipe/recipes", recipeHandler.Create)
	secured.GET("/recipe/recipes/:id", recipeHandler.Get)
	secured.PATCH("/recipe/recipes/:id", recipeHandler.Update)
	secured.PUT("/recipe/recipes/:id", recipeHandler.Update)
	secured.DELETE("/recipe/recipes/:id", recipeHandler.Delete)
	secured.POST("/recipe/recipes/:id/upload-image", recipeHandler.UploadImage)

	// Tag routes (no create: tags appear through recipe writes)
	secured.GET("/recipe/tags", tagHandler.List)
	secured.PATCH("/recipe/tags/:id", tagHandler.Update)
	secured.DELETE("/recipe/tags/:id", tagHandler.Delete)

	// Ingredient routes
	secured.GET("/recipe/ingredients", ingredientHandler.List)
	secured.PATCH("/recipe/ingredients/:id", ingredientHandler.Update)
	secured.DELETE("/recipe/ingredients/:id", ingredientHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
