package controllers

import (
	"strconv"
	"time"

	"hms/constants"
	"hms/dto"
	"hms/errors"
	"hms/models"
	"hms/response"
	"hms/services"
	"hms/validator"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type BillingController struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Stay   *services.StayService
	Melody *melody.Melody
}

func NewBillingController(db *gorm.DB, redisCli *redis.Client, stay *services.StayService, m *melody.Melody) BillingController {
	return BillingController{
		DB:     db,
		Redis:  redisCli,
		Stay:   stay,
		Melody: m,
	}
}

// GetProvisionalBill xem hóa đơn tạm tính của phòng đang có khách,
// không ghi gì vào DB
func (bc BillingController) GetProvisionalBill(c *gin.Context) {
	idParam, err := strconv.Atoi(c.Param("roomId"))
	if err != nil || idParam <= 0 {
		response.BadRequest(c, "Số phòng không hợp lệ")
		return
	}

	bill, err := bc.Stay.ProvisionalBill(uint(idParam), time.Now())
	if err != nil {
		response.BadRequest(c, errors.Reason(err))
		return
	}

	response.Success(c, bill)
}

// Checkout chốt hóa đơn, thu tiền và trả phòng
func (bc BillingController) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}
	if err := validator.ValidateCheckoutRequest(req); err != nil {
		response.BadRequest(c, errors.Reason(err))
		return
	}

	bill, err := bc.Stay.Checkout(req.RoomID, req.Surcharge, time.Now())
	if err != nil {
		response.BadRequest(c, errors.Reason(err))
		return
	}

	services.DeleteFromRedis(c.Request.Context(), bc.Redis, services.CacheKeyRooms)
	services.BroadcastRoomEvent(bc.Melody, "room_checkout", req.RoomID, constants.RoomStatusCleaning)

	response.SuccessWithMessage(c, "Thanh toán thành công. Phòng chuyển sang 'Đang dọn'", gin.H{
		"bill":       bill,
		"surcharge":  req.Surcharge,
		"finalTotal": bill.GrandTotal + req.Surcharge,
	})
}

// GetInvoices liệt kê hóa đơn, lọc theo trạng thái, phân trang
func (bc BillingController) GetInvoices(c *gin.Context) {
	page := 0
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	tx := bc.DB.Model(&models.Invoice{}).
		Preload("Reservation").
		Preload("Reservation.Guest")

	if statusFilter := c.Query("status"); statusFilter != "" {
		if parsed, err := strconv.Atoi(statusFilter); err == nil {
			tx = tx.Where("status = ?", parsed)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var invoices []models.Invoice
	if err := tx.Order("created_at DESC").Offset(page * limit).Limit(limit).Find(&invoices).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithPagination(c, invoices, page, limit, int(total))
}

// GetInvoiceDetail xem một hóa đơn
func (bc BillingController) GetInvoiceDetail(c *gin.Context) {
	idParam, err := strconv.Atoi(c.Param("id"))
	if err != nil || idParam <= 0 {
		response.BadRequest(c, "Mã hóa đơn không hợp lệ")
		return
	}

	var invoice models.Invoice
	if err := bc.DB.Preload("Reservation").Preload("Reservation.Guest").
		First(&invoice, idParam).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, invoice)
}
