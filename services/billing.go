package services

import (
	"math"
	"time"

	"hms/models"
)

// SecondsPerDay là đơn vị tính tiền phòng: mỗi ngày bắt đầu là một ngày tính đủ
const SecondsPerDay = 86400

// BillInput là dữ liệu thô đã đọc từ DB để tính hóa đơn.
// CheckOut do caller truyền vào, không đọc đồng hồ hệ thống.
type BillInput struct {
	InvoiceID     uint
	ReservationID uint
	GuestName     string
	RoomID        uint
	CheckIn       time.Time
	CheckOut      time.Time
	RoomPrice     float64
	Services      []UsageLine
}

// UsageLine là một dòng sử dụng dịch vụ đưa vào tính tiền
type UsageLine struct {
	Name     string
	Quantity int
	Price    float64
}

// CalculateBill tính hóa đơn chi tiết. Hàm thuần túy: cùng input cho cùng
// kết quả, không có side effect. Ngày ở lẻ giờ được làm tròn lên,
// tối thiểu tính 1 ngày.
func CalculateBill(in BillInput) models.BillDetail {
	seconds := in.CheckOut.Sub(in.CheckIn).Seconds()
	days := int(math.Ceil(seconds / SecondsPerDay))
	if days < 1 {
		days = 1
	}

	roomTotal := float64(days) * in.RoomPrice

	serviceTotal := 0.0
	lines := make([]models.BillLine, 0, len(in.Services))
	for _, s := range in.Services {
		subtotal := float64(s.Quantity) * s.Price
		serviceTotal += subtotal
		lines = append(lines, models.BillLine{
			Name:     s.Name,
			Quantity: s.Quantity,
			Price:    s.Price,
			Subtotal: subtotal,
		})
	}

	return models.BillDetail{
		InvoiceID:     in.InvoiceID,
		ReservationID: in.ReservationID,
		GuestName:     in.GuestName,
		RoomID:        in.RoomID,
		CheckIn:       in.CheckIn,
		CheckOut:      in.CheckOut,
		DaysUsed:      days,
		RoomPrice:     in.RoomPrice,
		RoomTotal:     roomTotal,
		Services:      lines,
		ServiceTotal:  serviceTotal,
		GrandTotal:    roomTotal + serviceTotal,
	}
}
