package services

import (
	stderrors "errors"

	"hms/errors"
	"hms/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenExpiryMinutes = 12 * 60 // một ca làm việc

// AuthService xác thực nhân viên lễ tân / quản lý
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// Login kiểm tra tài khoản và trả về token đăng nhập
func (s *AuthService) Login(username, password string) (string, *models.Staff, error) {
	var staff models.Staff
	err := s.db.Where("username = ?", username).First(&staff).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, errors.NewAppError(errors.ErrCodeStaffNotFound, "Sai tài khoản hoặc mật khẩu", nil)
	}
	if err != nil {
		return "", nil, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được tài khoản", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return "", nil, errors.NewAppError(errors.ErrCodeInvalidPassword, "Sai tài khoản hoặc mật khẩu", nil)
	}

	token, err := GenerateToken(StaffInfo{StaffID: staff.ID, Role: staff.Role}, tokenExpiryMinutes)
	if err != nil {
		return "", nil, errors.NewAppError(errors.ErrCodeDBError, "Không tạo được token", err)
	}
	return token, &staff, nil
}
