package models

import "time"

type Staff struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"unique;size:50"`
	Password  string    `json:"-" gorm:"size:100"`
	Name      string    `json:"name" gorm:"size:100"`
	Role      int       `json:"role"` // 1: quản lý, 2: lễ tân
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
