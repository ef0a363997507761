package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"transferbff/internal/errors"
	"transferbff/internal/repository"
	"transferbff/internal/seed"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	customerRepo repository.CustomerRepository
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(customerRepo repository.CustomerRepository) *SeedHandler {
	return &SeedHandler{customerRepo: customerRepo}
}

// SeedCustomersResponse represents the seed response.
type SeedCustomersResponse struct {
	Message string `json:"message"`
	seed.Result
}

// SeedCustomers godoc
// @Summary Upsert customers from a JSON array
// @Tags seed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []seed.CustomerRecord true "Customers"
// @Success 200 {object} SeedCustomersResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/seed/customers [post]
func (h *SeedHandler) SeedCustomers(c echo.Context) error {
	records, err := seed.Decode(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_REQUEST",
		})
	}

	ctx := c.Request().Context()
	res, err := seed.Upsert(ctx, h.customerRepo, records)
	if err != nil {
		slog.ErrorContext(ctx, "seed customers failed", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to seed customers",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(http.StatusOK, SeedCustomersResponse{
		Message: "Customers seeded successfully",
		Result:  res,
	})
}
