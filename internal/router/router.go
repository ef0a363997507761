package router

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"transferbff/internal/auth"
	"transferbff/internal/errors"
	"transferbff/internal/handler"
	appmiddleware "transferbff/internal/middleware"
)

// ClaimsContextKey is where the authenticated token claims are stored on the echo context.
const ClaimsContextKey = "user"

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Transfer *handler.TransferHandler
	Customer *handler.CustomerHandler
	Seed     *handler.SeedHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, jwtService *auth.JWTService, h Handlers) {
	e.Use(middleware.Recover())
	e.Use(appmiddleware.Tracing())
	e.Use(appmiddleware.Metrics())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			slog.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public: other services use this to check customers without a token.
	api.GET("/customer/:id/exists", h.Customer.CustomerExists)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey:  ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			slog.DebugContext(c.Request().Context(), "bearer token rejected", slog.Any("error", err))
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid bearer token",
				Code:  "UNAUTHORIZED",
			})
		},
	}))

	secured.GET("/me", func(c echo.Context) error {
		claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return c.JSON(http.StatusOK, echo.Map{"token_claims": claims})
	})

	// Transfer routes
	secured.POST("/transfers", h.Transfer.CreateTransfer)
	secured.GET("/transfers/:id", h.Transfer.GetTransfer)
	secured.GET("/transfers/customer/:customerId", h.Transfer.ListCustomerTransfers)
	secured.PATCH("/transfers/:id/cancel", h.Transfer.CancelTransfer)
	secured.PATCH("/transfers/:id/status", h.Transfer.UpdateTransferStatus)

	// Customer routes
	secured.POST("/customer", h.Customer.CreateCustomer)
	secured.GET("/customer", h.Customer.ListCustomers)
	secured.GET("/customer/:id", h.Customer.GetCustomer)

	secured.POST("/seed/customers", h.Seed.SeedCustomers)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
