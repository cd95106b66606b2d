package models

import (
	"time"
)

type Invoice struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	ReservationID uint        `json:"reservationId"`
	Reservation   Reservation `json:"reservation" gorm:"foreignKey:ReservationID"`
	Total         float64     `json:"total" gorm:"default:0"`
	Surcharge     float64     `json:"surcharge" gorm:"default:0"` // Phụ thu
	Status        int         `json:"status" gorm:"default:0"`
	PaymentDate   *time.Time  `json:"paymentDate,omitempty"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"createdAt"` // Thời điểm check-in, mốc tính tiền phòng
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}
