package models

import "time"

type Guest struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100"`
	CCCD      string    `json:"cccd" gorm:"unique;size:20"` // Căn cước công dân, khóa nghiệp vụ
	Phone     string    `json:"phone" gorm:"size:15"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
