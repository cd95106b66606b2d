package models

import (
	"time"
)

type Reservation struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	GuestID       uint      `json:"guestId"`
	Guest         Guest     `json:"guest" gorm:"foreignKey:GuestID"`
	RoomID        uint      `json:"roomId"`
	Room          Room      `json:"room" gorm:"foreignKey:RoomID"`
	ArrivalDate   time.Time `json:"arrivalDate" gorm:"type:date"`
	DepartureDate time.Time `json:"departureDate" gorm:"type:date"` // Khoảng [đến, đi), ngày đi không tính
	Status        int       `json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
