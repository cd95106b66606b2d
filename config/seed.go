package config

import (
	"log"

	"hms/constants"
	"hms/models"

	"gorm.io/gorm"
)

// Migrate tạo bảng cho toàn bộ entity
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
		&models.Invoice{},
		&models.Service{},
		&models.ServiceUsage{},
		&models.Staff{},
	)
}

// Seed nạp dữ liệu tham chiếu ban đầu, chạy lại không ghi đè
func Seed(db *gorm.DB, hashPassword func(string) (string, error)) error {
	roomTypes := []models.RoomType{
		{ID: 1, Name: "Standard", Price: 300000, Capacity: 2},
		{ID: 2, Name: "Superior", Price: 500000, Capacity: 2},
		{ID: 3, Name: "Deluxe", Price: 800000, Capacity: 2},
		{ID: 4, Name: "Family", Price: 1200000, Capacity: 4},
		{ID: 5, Name: "President", Price: 3000000, Capacity: 4},
	}
	var count int64
	if err := db.Model(&models.RoomType{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Create(&roomTypes).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		log.Println("[SYSTEM] Seeding 2000 rooms...")
		batch := make([]models.Room, 0, 500)
		for i := uint(101); i <= 2100; i++ {
			batch = append(batch, models.Room{
				RoomID:     i,
				Status:     constants.RoomStatusFree,
				RoomTypeID: uint(i%5) + 1,
			})
			if len(batch) == 500 {
				if err := db.Create(&batch).Error; err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
		if len(batch) > 0 {
			if err := db.Create(&batch).Error; err != nil {
				return err
			}
		}
	}

	services := []models.Service{
		{ID: 1, Name: "Coca Cola", Price: 15000},
		{ID: 2, Name: "Bia Tiger", Price: 25000},
		{ID: 3, Name: "Mì tôm trứng", Price: 30000},
		{ID: 4, Name: "Giặt ủi", Price: 50000},
		{ID: 5, Name: "Massage", Price: 200000},
		{ID: 6, Name: "Thuê xe máy", Price: 150000},
	}
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Create(&services).Error; err != nil {
			return err
		}
	}

	// Tài khoản quản lý mặc định, đổi mật khẩu sau lần đăng nhập đầu
	if err := db.Model(&models.Staff{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		password := GetEnv("ADMIN_PASSWORD")
		if password == "" {
			password = "admin123"
		}
		hashed, err := hashPassword(password)
		if err != nil {
			return err
		}
		staff := models.Staff{
			Username: "admin",
			Password: hashed,
			Name:     "Quản lý khách sạn",
			Role:     constants.RoleManager,
		}
		if err := db.Create(&staff).Error; err != nil {
			return err
		}
	}

	return nil
}
