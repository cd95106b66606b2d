package services

import (
	"encoding/json"
	"strings"
	"time"

	"hms/config"
	"hms/errors"

	"github.com/dgrijalva/jwt-go"
)

// StaffInfo là phần định danh nhân viên nhúng trong token
type StaffInfo struct {
	StaffID uint `json:"staffId"`
	Role    int  `json:"role"`
}

type Claims struct {
	StaffInfo StaffInfo `json:"staffInfo"`
	jwt.StandardClaims
}

// Đọc khóa lúc ký, không đọc lúc init: package này init trước khi
// main kịp load file .env
func secretKey() []byte {
	return []byte(config.GetEnv("SECRET_KEY_ACCESS_TOKEN"))
}

// GenerateToken tạo access token cho nhân viên
func GenerateToken(info StaffInfo, expiryMinutes int) (string, error) {
	claims := &Claims{
		StaffInfo: info,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Minute * time.Duration(expiryMinutes)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// GetStaffFromToken lấy staffID và role từ token
func GetStaffFromToken(tokenString string) (uint, int, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", nil)
	}

	// Giải mã phần payload của token
	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Không thể giải mã token", err)
	}

	claimsMap := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claimsMap); err != nil {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Không thể parse token", err)
	}

	staffInfo, ok := claimsMap["staffInfo"].(map[string]interface{})
	if !ok {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy thông tin nhân viên trong token", nil)
	}

	staffID, okID := staffInfo["staffId"].(float64)
	if !okID {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy ID nhân viên trong token", nil)
	}

	role, okRole := staffInfo["role"].(float64)
	if !okRole {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy role trong token", nil)
	}

	return uint(staffID), int(role), nil
}
