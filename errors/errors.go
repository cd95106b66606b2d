package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeStaffNotFound   ErrorCode = "STAFF_NOT_FOUND"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidStatus ErrorCode = "INVALID_STATUS"

	// Business errors
	ErrCodeDateConflict     ErrorCode = "DATE_CONFLICT"
	ErrCodeRoomUnavailable  ErrorCode = "ROOM_UNAVAILABLE"
	ErrCodeNoReservation    ErrorCode = "NO_RESERVATION"
	ErrCodeNotDueYet        ErrorCode = "NOT_DUE_YET"
	ErrCodeRoomNotOccupied  ErrorCode = "ROOM_NOT_OCCUPIED"
	ErrCodeNoOpenInvoice    ErrorCode = "NO_OPEN_INVOICE"
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Database errors
	ErrCodeDBError    ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound ErrorCode = "DB_NOT_FOUND"
)

// AppError định nghĩa lỗi của ứng dụng, Message dùng hiển thị trực tiếp
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetAppError lấy AppError từ error, nil nếu không phải
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Reason trả về chuỗi lý do hiển thị cho người dùng
func Reason(err error) string {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return "Lỗi hệ thống"
}

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrServiceNotFound     = errors.New("service not found")
)
