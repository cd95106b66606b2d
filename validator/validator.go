package validator

import (
	"regexp"
	"time"

	"hms/dto"
	"hms/errors"
)

const dateLayout = "2006-01-02"

var phoneRegex = regexp.MustCompile(`^(0|\+84)[0-9]{9,10}$`)
var cccdRegex = regexp.MustCompile(`^[0-9]{1,20}$`)

// ParseDate chuyển chuỗi YYYY-MM-DD thành time.Time
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày không đúng định dạng YYYY-MM-DD", err)
	}
	return t, nil
}

// ValidateDateRange parse và kiểm tra khoảng ngày [đến, đi)
func ValidateDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := ParseDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := ParseDate(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeValidation, "Ngày đi phải sau ngày đến", nil)
	}
	return from, to, nil
}

// ValidateBookingRequest kiểm tra và chuyển request đặt phòng thành intent
// đã định kiểu, tầng nghiệp vụ không nhận chuỗi thô
func ValidateBookingRequest(req dto.BookingRequest) (dto.BookingIntent, error) {
	var intent dto.BookingIntent

	if req.GuestName == "" {
		return intent, errors.NewAppError(errors.ErrCodeRequiredField, "Họ tên không được để trống", nil)
	}
	if req.CCCD == "" {
		return intent, errors.NewAppError(errors.ErrCodeRequiredField, "CCCD không được để trống", nil)
	}
	if !cccdRegex.MatchString(req.CCCD) {
		return intent, errors.NewAppError(errors.ErrCodeInvalidFormat, "CCCD không hợp lệ", nil)
	}
	if req.Phone != "" && !phoneRegex.MatchString(req.Phone) {
		return intent, errors.NewAppError(errors.ErrCodeInvalidFormat, "Số điện thoại không hợp lệ", nil)
	}
	if len(req.RoomIDs) == 0 {
		return intent, errors.NewAppError(errors.ErrCodeRequiredField, "Chưa chọn phòng nào", nil)
	}

	arrival, departure, err := ValidateDateRange(req.ArrivalDate, req.DepartureDate)
	if err != nil {
		return intent, err
	}

	intent = dto.BookingIntent{
		GuestName:     req.GuestName,
		CCCD:          req.CCCD,
		Phone:         req.Phone,
		RoomIDs:       req.RoomIDs,
		ArrivalDate:   arrival,
		DepartureDate: departure,
	}
	return intent, nil
}

// ValidateServiceUsageRequest kiểm tra request gọi dịch vụ
func ValidateServiceUsageRequest(req dto.ServiceUsageRequest) error {
	if req.RoomID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Chưa nhập số phòng", nil)
	}
	if req.ServiceID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Chưa chọn dịch vụ", nil)
	}
	if req.Quantity <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Số lượng phải lớn hơn 0", nil)
	}
	return nil
}

// ValidateCheckoutRequest kiểm tra request trả phòng
func ValidateCheckoutRequest(req dto.CheckoutRequest) error {
	if req.RoomID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Chưa nhập số phòng", nil)
	}
	if req.Surcharge < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Phụ thu không được âm", nil)
	}
	return nil
}
