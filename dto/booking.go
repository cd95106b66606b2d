package dto

import "time"

// BookingRequest mang toàn bộ ý định đặt phòng trong một request,
// không giữ trạng thái phòng đã chọn ở tầng nào khác.
type BookingRequest struct {
	GuestName     string `json:"guestName"`
	CCCD          string `json:"cccd"`
	Phone         string `json:"phone"`
	RoomIDs       []uint `json:"roomIds"`
	ArrivalDate   string `json:"arrivalDate"`   // YYYY-MM-DD
	DepartureDate string `json:"departureDate"` // YYYY-MM-DD
}

// BookingIntent là BookingRequest đã qua validate, ngày đã parse
type BookingIntent struct {
	GuestName     string
	CCCD          string
	Phone         string
	RoomIDs       []uint
	ArrivalDate   time.Time
	DepartureDate time.Time
}

type BookingResult struct {
	GuestID        uint   `json:"guestId"`
	GuestName      string `json:"guestName"`
	ReservationIDs []uint `json:"reservationIds"`
	RoomIDs        []uint `json:"roomIds"`
}

type CheckInRequest struct {
	CCCD string `json:"cccd"`
}

type CheckInResult struct {
	GuestName   string   `json:"guestName"`
	Rooms       []uint   `json:"rooms"`
	Count       int      `json:"count"`
	NotDueYet   []uint   `json:"notDueYet,omitempty"` // Phiếu chưa tới ngày nhận
	NotDueDates []string `json:"notDueDates,omitempty"`
}

type ServiceUsageRequest struct {
	RoomID    uint `json:"roomId"`
	ServiceID uint `json:"serviceId"`
	Quantity  int  `json:"quantity"`
}

type CheckoutRequest struct {
	RoomID    uint    `json:"roomId"`
	Surcharge float64 `json:"surcharge"`
}

type RoomStatusRequest struct {
	RoomID uint `json:"roomId"`
	Status int  `json:"status"`
}

type RoomNoteRequest struct {
	RoomID uint   `json:"roomId"`
	Note   string `json:"note"`
}
