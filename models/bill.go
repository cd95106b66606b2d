package models

import "time"

// BillLine là một dòng dịch vụ trên hóa đơn
type BillLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

// BillDetail là kết quả tính tiền chi tiết cho một lần ở
type BillDetail struct {
	InvoiceID     uint       `json:"invoiceId"`
	ReservationID uint       `json:"reservationId"`
	GuestName     string     `json:"guestName"`
	RoomID        uint       `json:"roomId"`
	CheckIn       time.Time  `json:"checkIn"`
	CheckOut      time.Time  `json:"checkOut"`
	DaysUsed      int        `json:"daysUsed"` // Số ngày tính tròn lên, tối thiểu 1
	RoomPrice     float64    `json:"roomPrice"`
	RoomTotal     float64    `json:"roomTotal"`
	Services      []BillLine `json:"services"`
	ServiceTotal  float64    `json:"serviceTotal"`
	GrandTotal    float64    `json:"grandTotal"`
}
