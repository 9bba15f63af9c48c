package router

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"foodshare/internal/auth"
	"foodshare/internal/config"
	apperrors "foodshare/internal/errors"
	"foodshare/internal/handler"
)

// uploadBodySlack covers multipart boundary and header bytes on top of the
// configured file ceiling.
const uploadBodySlack = 16 << 10

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	foodHandler *handler.FoodHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.HTTPErrorHandler = apperrors.HTTPErrorHandler
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.FileUploadPath)

	// The session token travels in a custom header, not the Authorization
	// bearer convention; echo-jwt is pointed at it directly.
	requireToken := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:authtoken",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.ErrInvalidToken
		},
	})

	api := e.Group("/api/v1")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/get-user", authHandler.GetUser, requireToken)
	api.PUT("/auth/book-food/:id", authHandler.BookFood)
	api.POST("/auth/get-user-food", authHandler.GetUserFoods)

	// The body cap rejects oversized uploads before multipart parsing buffers
	// them; the service still enforces the exact file ceiling.
	uploadLimit := middleware.BodyLimit(strconv.FormatInt(cfg.MaxFileUpload+uploadBodySlack, 10))

	api.GET("/foods", foodHandler.GetFoods)
	api.POST("/foods", foodHandler.CreateFood)
	api.GET("/foods/radius/:zipcode/:distance", foodHandler.GetFoodsInRadius)
	api.GET("/foods/:id", foodHandler.GetFood)
	api.PUT("/foods/:id", foodHandler.UpdateFood)
	api.DELETE("/foods/:id", foodHandler.DeleteFood)
	api.POST("/foods/:id/photo", foodHandler.UploadFoodPhoto, uploadLimit)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
