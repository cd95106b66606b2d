package models

import "time"

type Service struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Name  string  `json:"name" gorm:"size:50"`
	Price float64 `json:"price"`
}

// ServiceUsage là một dòng sử dụng dịch vụ của một phiếu đặt phòng.
// Mỗi cặp (phiếu, dịch vụ) chỉ có một dòng, gọi thêm thì cộng dồn số lượng.
type ServiceUsage struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ReservationID uint      `json:"reservationId" gorm:"index"`
	ServiceID     uint      `json:"serviceId"`
	Service       Service   `json:"service" gorm:"foreignKey:ServiceID"`
	Quantity      int       `json:"quantity"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
