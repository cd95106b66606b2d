package controllers

import (
	"fmt"
	"time"

	"hms/constants"
	"hms/dto"
	"hms/errors"
	"hms/response"
	"hms/services"
	"hms/validator"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
)

type BookingController struct {
	Redis  *redis.Client
	Stay   *services.StayService
	Melody *melody.Melody
}

func NewBookingController(redisCli *redis.Client, stay *services.StayService, m *melody.Melody) BookingController {
	return BookingController{
		Redis:  redisCli,
		Stay:   stay,
		Melody: m,
	}
}

// CreateBooking đặt một hoặc nhiều phòng cho một khách trong một giao dịch
func (bc BookingController) CreateBooking(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	intent, err := validator.ValidateBookingRequest(req)
	if err != nil {
		response.BadRequest(c, errors.Reason(err))
		return
	}

	result, err := bc.Stay.Book(intent)
	if err != nil {
		appErr := errors.GetAppError(err)
		if appErr != nil && appErr.Code == errors.ErrCodeDateConflict {
			response.Conflict(c, appErr.Message)
			return
		}
		response.BadRequest(c, errors.Reason(err))
		return
	}

	services.DeleteFromRedis(c.Request.Context(), bc.Redis, services.CacheKeyRooms)
	services.BroadcastRoomEvents(bc.Melody, "room_booked", result.RoomIDs, constants.RoomStatusBooked)

	response.SuccessWithMessage(c,
		fmt.Sprintf("Đặt thành công cho khách %s (Mã KH: %d)", result.GuestName, result.GuestID),
		result)
}

// CheckIn nhận phòng theo CCCD, chỉ các phiếu tới ngày hôm nay được kích hoạt
func (bc BookingController) CheckIn(c *gin.Context) {
	var req struct {
		CCCD   string `json:"cccd"`
		RoomID uint   `json:"roomId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}
	if req.CCCD == "" {
		response.BadRequest(c, "CCCD không được để trống")
		return
	}

	result, err := bc.Stay.CheckIn(req.CCCD, req.RoomID, time.Now())
	if err != nil {
		response.BadRequest(c, errors.Reason(err))
		return
	}

	services.DeleteFromRedis(c.Request.Context(), bc.Redis, services.CacheKeyRooms)
	services.BroadcastRoomEvents(bc.Melody, "room_checkin", result.Rooms, constants.RoomStatusOccupied)

	response.SuccessWithMessage(c,
		fmt.Sprintf("Check-in thành công %d phòng cho khách %s", result.Count, result.GuestName),
		result)
}
