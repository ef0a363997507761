package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"transferbff/internal/errors"
	"transferbff/internal/model"
	"transferbff/internal/service"
)

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest represents a customer registration request.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Surname string `json:"surname" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
}

// CreateCustomer godoc
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCustomerRequest true "Customer data"
// @Success 201 {object} model.Customer
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /v1/customer [post]
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	created, err := h.customerService.CreateCustomer(c.Request().Context(), &model.Customer{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
	})
	if err != nil {
		return toEchoError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetCustomer godoc
// @Summary Get customer by id
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} model.Customer
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /v1/customer/{id} [get]
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.customerService.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return toEchoError(err)
	}
	return c.JSON(http.StatusOK, customer)
}

// ListCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Customer
// @Router /v1/customer [get]
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	customers, err := h.customerService.ListCustomers(c.Request().Context())
	if err != nil {
		return toEchoError(err)
	}
	return c.JSON(http.StatusOK, customers)
}

// CustomerExists godoc
// @Summary Check whether a customer exists
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {boolean} boolean
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/customer/{id}/exists [get]
func (h *CustomerHandler) CustomerExists(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	exists, err := h.customerService.CustomerExists(c.Request().Context(), id)
	if err != nil {
		return toEchoError(err)
	}
	return c.JSON(http.StatusOK, exists)
}
