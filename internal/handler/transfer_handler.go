package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"transferbff/internal/errors"
	"transferbff/internal/model"
	"transferbff/internal/service"
)

// TransferHandler handles transfer endpoints.
type TransferHandler struct {
	transferService service.TransferService
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// CreateTransferRequest represents a transfer creation request.
// Presence rules are enforced by the service so that they apply in a fixed order.
type CreateTransferRequest struct {
	CustomerID *int64           `json:"customer_id" swaggertype:"integer" example:"42"`
	Amount     *decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
	Type       string           `json:"type" validate:"omitempty,oneof=CARD_TO_CARD ACCOUNT_TO_CARD" example:"CARD_TO_CARD"`
	Payee      string           `json:"payee" validate:"max=255" example:"AZ00BANK0000000000001"`
}

// UpdateTransferStatusRequest represents a status change request.
type UpdateTransferStatusRequest struct {
	Status string `json:"status" example:"COMPLETED"`
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Payee       string    `json:"payee"`
	Tariff      string    `json:"tariff"`
	Commission  string    `json:"commission"`
	TotalAmount string    `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTransferResponse(v *service.TransferView) TransferResponse {
	return TransferResponse{
		ID:          v.ID,
		CustomerID:  v.CustomerID,
		Amount:      v.Amount.StringFixed(2),
		Type:        string(v.Type),
		Payee:       v.Payee,
		Tariff:      v.Tariff.StringFixed(2),
		Commission:  v.Commission.StringFixed(2),
		TotalAmount: v.TotalAmount.StringFixed(2),
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt,
	}
}

// CreateTransfer godoc
// @Summary Create a transfer
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransferRequest true "Transfer data"
// @Success 201 {object} TransferResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /v1/transfers [post]
func (h *TransferHandler) CreateTransfer(c echo.Context) error {
	var req CreateTransferRequest
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

	view, err := h.transferService.CreateTransfer(c.Request().Context(), service.CreateTransferRequest{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Type:       model.TransferType(req.Type),
		Payee:      req.Payee,
	})
	if err != nil {
		return toEchoError(err)
	}

	return c.JSON(http.StatusCreated, toTransferResponse(view))
}

// GetTransfer godoc
// @Summary Get a transfer by id
// @Tags transfers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transfer ID"
// @Success 200 {object} TransferResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /v1/transfers/{id} [get]
func (h *TransferHandler) GetTransfer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	view, err := h.transferService.GetTransferByID(c.Request().Context(), id)
	if err != nil {
		return toEchoError(err)
	}

	return c.JSON(http.StatusOK, toTransferResponse(view))
}

// ListCustomerTransfers godoc
// @Summary List a customer's transfers
// @Tags transfers
// @Produce json
// @Security BearerAuth
// @Param customerId path int true "Customer ID"
// @Success 200 {array} TransferResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /v1/transfers/customer/{customerId} [get]
func (h *TransferHandler) ListCustomerTransfers(c echo.Context) error {
	customerID, err := pathID(c, "customerId")
	if err != nil {
		return err
	}

	views, err := h.transferService.GetTransfersByCustomerID(c.Request().Context(), customerID)
	if err != nil {
		return toEchoError(err)
	}

	resp := make([]TransferResponse, 0, len(views))
	for i := range views {
		resp = append(resp, toTransferResponse(&views[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// CancelTransfer godoc
// @Summary Cancel a pending transfer
// @Tags transfers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transfer ID"
// @Success 200 {object} TransferResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /v1/transfers/{id}/cancel [patch]
func (h *TransferHandler) CancelTransfer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	view, err := h.transferService.CancelTransfer(c.Request().Context(), id)
	if err != nil {
		return toEchoError(err)
	}

	return c.JSON(http.StatusOK, toTransferResponse(view))
}

// UpdateTransferStatus godoc
// @Summary Change the status of a pending transfer
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transfer ID"
// @Param request body UpdateTransferStatusRequest true "Target status"
// @Success 200 {object} TransferResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /v1/transfers/{id}/status [patch]
func (h *TransferHandler) UpdateTransferStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTransferStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	// An absent status goes through so the service reports it.
	var status model.TransferStatus
	if req.Status != "" {
		parsed, ok := model.ParseTransferStatus(req.Status)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "unknown transfer status: " + req.Status,
				Code:  "INVALID_STATUS",
			})
		}
		status = parsed
	}

	view, err := h.transferService.UpdateTransfer(c.Request().Context(), id, status)
	if err != nil {
		return toEchoError(err)
	}

	return c.JSON(http.StatusOK, toTransferResponse(view))
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_ID",
		})
	}
	return id, nil
}

func toEchoError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}
