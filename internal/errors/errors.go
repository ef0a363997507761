package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCustomerServiceUnavailable is wrapped by InvalidTransferError when the
	// customer directory could not answer.
	ErrCustomerServiceUnavailable = errors.New("customer service unavailable")
	// ErrCustomerAlreadyExists is returned when a customer email is taken.
	ErrCustomerAlreadyExists = errors.New("customer already exists")
	// ErrInvalidCustomer is returned when a customer payload misses required fields.
	ErrInvalidCustomer = errors.New("invalid customer")
	// ErrInvalidCustomerID is returned for non-positive customer ids.
	ErrInvalidCustomerID = errors.New("customer id must be positive")
)

// InvalidTransferError reports a transfer request that failed a precondition.
// Err is set when the failure came from a dependency rather than the caller.
type InvalidTransferError struct {
	Message string
	Err     error
}

func (e *InvalidTransferError) Error() string {
	return e.Message
}

func (e *InvalidTransferError) Unwrap() error {
	return e.Err
}

// InvalidTransfer creates an InvalidTransferError with the given message.
func InvalidTransfer(message string) *InvalidTransferError {
	return &InvalidTransferError{Message: message}
}

// CustomerNotFoundError is returned when the directory does not know a customer.
type CustomerNotFoundError struct {
	CustomerID int64
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("Customer not found with id: %d", e.CustomerID)
}

// CustomerNotFound creates a CustomerNotFoundError.
func CustomerNotFound(customerID int64) *CustomerNotFoundError {
	return &CustomerNotFoundError{CustomerID: customerID}
}

// TransferNotFoundError is returned when no transfer has the given id.
type TransferNotFoundError struct {
	TransferID int64
}

func (e *TransferNotFoundError) Error() string {
	return fmt.Sprintf("Transfer not found with id: %d", e.TransferID)
}

// TransferNotFound creates a TransferNotFoundError.
func TransferNotFound(transferID int64) *TransferNotFoundError {
	return &TransferNotFoundError{TransferID: transferID}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var (
		invalid          *InvalidTransferError
		customerNotFound *CustomerNotFoundError
		transferNotFound *TransferNotFoundError
	)

	switch {
	case errors.As(err, &invalid):
		if errors.Is(invalid, ErrCustomerServiceUnavailable) {
			return NewHTTPError(http.StatusServiceUnavailable, invalid.Message, "CUSTOMER_SERVICE_UNAVAILABLE")
		}
		return NewHTTPError(http.StatusBadRequest, invalid.Message, "INVALID_TRANSFER")
	case errors.As(err, &customerNotFound):
		return NewHTTPError(http.StatusNotFound, customerNotFound.Error(), "CUSTOMER_NOT_FOUND")
	case errors.As(err, &transferNotFound):
		return NewHTTPError(http.StatusNotFound, transferNotFound.Error(), "TRANSFER_NOT_FOUND")
	case errors.Is(err, ErrCustomerAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "CUSTOMER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCustomer), errors.Is(err, ErrInvalidCustomerID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CUSTOMER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
