package models

import (
	"fmt"
	"time"

	"hms/constants"
)

type RoomType struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"size:50"`
	Price    float64 `json:"price"` // Giá theo ngày
	Capacity int     `json:"capacity" gorm:"default:2"`
}

type Room struct {
	RoomID     uint      `json:"id" gorm:"primaryKey"` // Số phòng, không tự tăng
	Status     int       `json:"status" gorm:"default:0"`
	RoomTypeID uint      `json:"roomTypeId"`
	RoomType   RoomType  `json:"roomType" gorm:"foreignKey:RoomTypeID"`
	Note       string    `json:"note" gorm:"size:500;default:''"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Room) ValidateStatus() error {
	if r.Status < constants.RoomStatusFree || r.Status > constants.RoomStatusMaintenance {
		return fmt.Errorf("invalid status: %d, must be between 0 and 4", r.Status)
	}
	return nil
}

// RoomInfo là dữ liệu phòng đã join loại phòng, dùng cho phân tích tình trạng
type RoomInfo struct {
	RoomID   uint    `json:"id"`
	Status   int     `json:"status"`
	TypeID   uint    `json:"typeId"`
	TypeName string  `json:"typeName"`
	Price    float64 `json:"price"`
	Capacity int     `json:"capacity"`
	Note     string  `json:"note"`
}
