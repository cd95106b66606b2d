package controllers

import (
	"hms/dto"
	"hms/errors"
	"hms/response"
	"hms/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(db *gorm.DB) AuthController {
	return AuthController{
		authService: services.NewAuthService(db),
	}
}

// Login đăng nhập nhân viên, trả về token
func (a AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}
	if req.Username == "" || req.Password == "" {
		response.BadRequest(c, "Tài khoản và mật khẩu không được để trống")
		return
	}

	token, staff, err := a.authService.Login(req.Username, req.Password)
	if err != nil {
		response.BadRequest(c, errors.Reason(err))
		return
	}

	response.Success(c, dto.LoginResponse{
		Token: token,
		Name:  staff.Name,
		Role:  staff.Role,
	})
}
