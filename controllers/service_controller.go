package controllers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"hms/dto"
	"hms/errors"
	"hms/models"
	"hms/response"
	"hms/services"
	"hms/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ServiceController struct {
	DB    *gorm.DB
	Redis *redis.Client
	Stay  *services.StayService
}

func NewServiceController(db *gorm.DB, redisCli *redis.Client, stay *services.StayService) ServiceController {
	return ServiceController{
		DB:    db,
		Redis: redisCli,
		Stay:  stay,
	}
}

// cachedServices đọc bảng giá dịch vụ, dữ liệu tham chiếu nên cache dài
func (sc ServiceController) cachedServices(c *gin.Context) ([]models.Service, error) {
	var list []models.Service
	if err := services.GetFromRedis(c.Request.Context(), sc.Redis, services.CacheKeyServices, &list); err != nil || len(list) == 0 {
		if err := sc.DB.Order("id").Find(&list).Error; err != nil {
			return nil, err
		}
		if err := services.SetToRedis(c.Request.Context(), sc.Redis, services.CacheKeyServices, list, time.Hour); err != nil {
			log.Printf("Lỗi khi lưu bảng giá dịch vụ vào Redis: %v", err)
		}
	}
	return list, nil
}

// GetServices trả về bảng giá dịch vụ
func (sc ServiceController) GetServices(c *gin.Context) {
	list, err := sc.cachedServices(c)
	if err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, list)
}

// GetServiceCombos gợi ý các tổ hợp dịch vụ trong ngân sách của khách
func (sc ServiceController) GetServiceCombos(c *gin.Context) {
	budget, err := strconv.ParseFloat(c.Query("budget"), 64)
	if err != nil || budget <= 0 {
		response.BadRequest(c, "Ngân sách không hợp lệ")
		return
	}

	list, err := sc.cachedServices(c)
	if err != nil {
		response.ServerError(c)
		return
	}

	combos := services.SuggestServiceCombos(list, budget)
	response.Success(c, combos)
}

// AddServiceUsage ghi một lần gọi dịch vụ cho phòng đang có khách
func (sc ServiceController) AddServiceUsage(c *gin.Context) {
	var req dto.ServiceUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}
	if err := validator.ValidateServiceUsageRequest(req); err != nil {
		response.BadRequest(c, errors.Reason(err))
		return
	}

	updated, err := sc.Stay.AddServiceUsage(req.RoomID, req.ServiceID, req.Quantity)
	if err != nil {
		response.BadRequest(c, errors.Reason(err))
		return
	}

	action := "Thêm mới"
	if updated {
		action = "Cập nhật"
	}
	response.SuccessWithMessage(c, fmt.Sprintf("%s dịch vụ thành công", action), nil)
}
