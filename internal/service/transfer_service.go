package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"transferbff/internal/client"
	"transferbff/internal/errors"
	"transferbff/internal/model"
	"transferbff/internal/repository"
	"transferbff/internal/telemetry"
)

const (
	msgCustomerIDRequired     = "Customer id is required"
	msgCustomerUnavailable    = "Customer service unavailable"
	msgAmountNotPositive      = "Amount must be greater than zero"
	msgAmountScale            = "Amount must have at most 2 decimal places"
	msgTypeRequired           = "Transfer type is required"
	msgTypeUnsupported        = "Unsupported transfer type"
	msgPayeeRequired          = "Payee is required"
	msgTransferIDNotPositive  = "Transfer id must be positive"
	msgCustomerIDNotPositive  = "Customer id must be positive"
	msgStatusRequired         = "Transfer status must not be null"
	msgOnlyPendingCancellable = "Only PENDING transfers can be cancelled"
	msgOnlyPendingUpdatable   = "Only PENDING transfers can change status"
)

var tracer = otel.Tracer("transferbff/service")

// TransferService handles the transfer lifecycle.
type TransferService interface {
	CreateTransfer(ctx context.Context, req CreateTransferRequest) (*TransferView, error)
	GetTransferByID(ctx context.Context, id int64) (*TransferView, error)
	GetTransfersByCustomerID(ctx context.Context, customerID int64) ([]TransferView, error)
	CancelTransfer(ctx context.Context, id int64) (*TransferView, error)
	UpdateTransfer(ctx context.Context, id int64, status model.TransferStatus) (*TransferView, error)
}

type transferService struct {
	transferRepo repository.TransferRepository
	customers    client.CustomerDirectory
	now          func() time.Time
}

// NewTransferService creates a new transfer service.
func NewTransferService(
	transferRepo repository.TransferRepository,
	customers client.CustomerDirectory,
) TransferService {
	return &transferService{
		transferRepo: transferRepo,
		customers:    customers,
		now:          time.Now,
	}
}

// CreateTransfer validates the request, prices it and stores it as PENDING.
func (s *transferService) CreateTransfer(ctx context.Context, req CreateTransferRequest) (view *TransferView, err error) {
	ctx, span := tracer.Start(ctx, "TransferService.CreateTransfer")
	defer func() { s.finish(span, "create", err) }()

	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	tariff := CalculateTariff(req.Type)
	commission := CalculateCommission(*req.Amount, req.Type)
	transfer := toTransferEntity(req, tariff, commission, s.now().UTC())

	if err := s.transferRepo.Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}

	span.SetAttributes(attribute.Int64("transfer.id", transfer.ID))
	slog.InfoContext(ctx, "transfer created",
		slog.Int64("transfer_id", transfer.ID),
		slog.Int64("customer_id", transfer.CustomerID),
		slog.String("type", string(transfer.Type)),
		slog.String("amount", transfer.Amount.String()),
	)

	return toTransferView(transfer), nil
}

// validate checks the request in a fixed order and stops at the first failure.
func (s *transferService) validate(ctx context.Context, req CreateTransferRequest) error {
	if req.CustomerID == nil {
		return errors.InvalidTransfer(msgCustomerIDRequired)
	}

	if err := s.validateCustomerExists(ctx, *req.CustomerID); err != nil {
		return err
	}

	if req.Amount == nil || !req.Amount.IsPositive() {
		return errors.InvalidTransfer(msgAmountNotPositive)
	}
	// amounts are stored as decimal(20,2); finer values would be rounded on write
	if !req.Amount.Equal(req.Amount.Round(model.MoneyScale)) {
		return errors.InvalidTransfer(msgAmountScale)
	}

	if req.Type == "" {
		return errors.InvalidTransfer(msgTypeRequired)
	}
	if !req.Type.Valid() {
		return errors.InvalidTransfer(msgTypeUnsupported)
	}

	if strings.TrimSpace(req.Payee) == "" {
		return errors.InvalidTransfer(msgPayeeRequired)
	}

	return nil
}

func (s *transferService) validateCustomerExists(ctx context.Context, customerID int64) error {
	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		slog.WarnContext(ctx, "customer existence check failed",
			slog.Int64("customer_id", customerID),
			slog.Any("error", err),
		)
		return &errors.InvalidTransferError{Message: msgCustomerUnavailable, Err: err}
	}
	if !exists {
		return errors.CustomerNotFound(customerID)
	}
	return nil
}

// GetTransferByID returns a single transfer.
func (s *transferService) GetTransferByID(ctx context.Context, id int64) (view *TransferView, err error) {
	ctx, span := tracer.Start(ctx, "TransferService.GetTransferByID")
	defer func() { s.finish(span, "get", err) }()

	if id <= 0 {
		return nil, errors.InvalidTransfer(msgTransferIDNotPositive)
	}

	transfer, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.TransferNotFound(id)
		}
		return nil, fmt.Errorf("find transfer: %w", err)
	}

	return toTransferView(transfer), nil
}

// GetTransfersByCustomerID returns every transfer owned by a customer.
func (s *transferService) GetTransfersByCustomerID(ctx context.Context, customerID int64) (views []TransferView, err error) {
	ctx, span := tracer.Start(ctx, "TransferService.GetTransfersByCustomerID")
	defer func() { s.finish(span, "list", err) }()

	if customerID <= 0 {
		return nil, errors.InvalidTransfer(msgCustomerIDNotPositive)
	}

	transfers, err := s.transferRepo.FindAllByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}

	return toTransferViews(transfers), nil
}

// CancelTransfer moves a PENDING transfer to CANCELLED.
func (s *transferService) CancelTransfer(ctx context.Context, id int64) (view *TransferView, err error) {
	ctx, span := tracer.Start(ctx, "TransferService.CancelTransfer")
	defer func() { s.finish(span, "cancel", err) }()

	if id <= 0 {
		return nil, errors.InvalidTransfer(msgTransferIDNotPositive)
	}

	return s.transition(ctx, id, model.TransferStatusCancelled, msgOnlyPendingCancellable)
}

// UpdateTransfer moves a PENDING transfer to the given status.
func (s *transferService) UpdateTransfer(ctx context.Context, id int64, status model.TransferStatus) (view *TransferView, err error) {
	ctx, span := tracer.Start(ctx, "TransferService.UpdateTransfer")
	defer func() { s.finish(span, "update", err) }()

	if id <= 0 {
		return nil, errors.InvalidTransfer(msgTransferIDNotPositive)
	}
	if status == "" {
		return nil, errors.InvalidTransfer(msgStatusRequired)
	}

	return s.transition(ctx, id, status, msgOnlyPendingUpdatable)
}

func (s *transferService) transition(ctx context.Context, id int64, to model.TransferStatus, conflictMsg string) (*TransferView, error) {
	transfer, err := s.transferRepo.TransitionStatus(ctx, id, model.TransferStatusPending, to)
	if err != nil {
		switch {
		case stderrors.Is(err, gorm.ErrRecordNotFound):
			return nil, errors.TransferNotFound(id)
		case stderrors.Is(err, repository.ErrStatusConflict):
			return nil, errors.InvalidTransfer(conflictMsg)
		default:
			return nil, fmt.Errorf("transition transfer status: %w", err)
		}
	}

	slog.InfoContext(ctx, "transfer status changed",
		slog.Int64("transfer_id", id),
		slog.String("status", string(transfer.Status)),
	)

	return toTransferView(transfer), nil
}

// finish records the outcome of an operation on its span and in metrics.
func (s *transferService) finish(span trace.Span, operation string, err error) {
	defer span.End()

	outcome := outcomeOf(err)
	telemetry.TransferOperationsTotal.WithLabelValues(operation, outcome).Inc()
	if err != nil {
		span.SetAttributes(attribute.String("outcome", outcome))
		span.SetStatus(codes.Error, err.Error())
	}
}

func outcomeOf(err error) string {
	var (
		invalid          *errors.InvalidTransferError
		customerNotFound *errors.CustomerNotFoundError
		transferNotFound *errors.TransferNotFoundError
	)
	switch {
	case err == nil:
		return "ok"
	case stderrors.Is(err, errors.ErrCustomerServiceUnavailable):
		return "unavailable"
	case stderrors.As(err, &invalid):
		return "invalid"
	case stderrors.As(err, &customerNotFound), stderrors.As(err, &transferNotFound):
		return "not_found"
	default:
		return "error"
	}
}
