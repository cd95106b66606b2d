package controllers

import (
	"log"
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

type RoomController struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Stay   *services.StayService
	Melody *melody.Melody
}

func NewRoomController(db *gorm.DB, redisCli *redis.Client, stay *services.StayService, m *melody.Melody) RoomController {
	return RoomController{
		DB:     db,
		Redis:  redisCli,
		Stay:   stay,
		Melody: m,
	}
}

func toRoomResponse(r models.RoomInfo) dto.RoomResponse {
	return dto.RoomResponse{
		RoomID:      r.RoomID,
		Status:      r.Status,
		StatusLabel: constants.RoomStatusLabels[r.Status],
		TypeID:      r.TypeID,
		TypeName:    r.TypeName,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Note:        r.Note,
	}
}

// GetRooms trả về danh sách phòng, ưu tiên cache Redis, có filter và phân trang
func (rc RoomController) GetRooms(c *gin.Context) {
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
	statusFilter := c.Query("status")
	typeFilter := c.Query("type")

	rooms, err := rc.cachedRooms(c)
	if err != nil {
		response.ServerError(c)
		return
	}

	filtered := make([]dto.RoomResponse, 0)
	for _, room := range rooms {
		if statusFilter != "" {
			if parsed, err := strconv.Atoi(statusFilter); err == nil && room.Status != parsed {
				continue
			}
		}
		if typeFilter != "" {
			if parsed, err := strconv.Atoi(typeFilter); err == nil && room.TypeID != uint(parsed) {
				continue
			}
		}
		filtered = append(filtered, toRoomResponse(room))
	}

	total := len(filtered)
	start := page * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	response.SuccessWithPagination(c, filtered[start:end], page, limit, total)
}

// cachedRooms đọc danh sách phòng từ Redis, hụt cache thì truy vấn DB và nạp lại
func (rc RoomController) cachedRooms(c *gin.Context) ([]models.RoomInfo, error) {
	var rooms []models.RoomInfo
	if err := services.GetFromRedis(c.Request.Context(), rc.Redis, services.CacheKeyRooms, &rooms); err != nil || len(rooms) == 0 {
		var dbErr error
		rooms, dbErr = rc.Stay.AllRoomInfo()
		if dbErr != nil {
			return nil, dbErr
		}
		if err := services.SetToRedis(c.Request.Context(), rc.Redis, services.CacheKeyRooms, rooms, 5*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu danh sách phòng vào Redis: %v", err)
		}
	}
	return rooms, nil
}

// invalidateRooms xóa cache phòng sau khi ghi
func (rc RoomController) invalidateRooms(c *gin.Context) {
	if err := services.DeleteFromRedis(c.Request.Context(), rc.Redis, services.CacheKeyRooms); err != nil {
		log.Printf("Lỗi khi xóa cache phòng: %v", err)
	}
}

// GetRoomDetail tra cứu một phòng: tìm nhị phân trên danh sách id đã sắp
// từ cache, có rồi mới đọc chi tiết
func (rc RoomController) GetRoomDetail(c *gin.Context) {
	idParam, err := strconv.Atoi(c.Param("id"))
	if err != nil || idParam <= 0 {
		response.BadRequest(c, "Số phòng không hợp lệ")
		return
	}
	roomID := uint(idParam)

	rooms, err := rc.cachedRooms(c)
	if err != nil {
		response.ServerError(c)
		return
	}

	// AllRoomInfo trả về theo room_id tăng dần nên dùng được tìm nhị phân
	ids := make([]uint, len(rooms))
	for i, r := range rooms {
		ids[i] = r.RoomID
	}
	if !services.SearchRoomID(ids, roomID) {
		response.NotFound(c)
		return
	}

	for _, r := range rooms {
		if r.RoomID == roomID {
			response.Success(c, toRoomResponse(r))
			return
		}
	}
	response.NotFound(c)
}

// GetAvailability phân tích phòng trống theo loại cho khoảng ngày hỏi.
// Truyền count để nhận thêm gợi ý cụm phòng gần nhau cho loại đã chọn.
func (rc RoomController) GetAvailability(c *gin.Context) {
	from, to, err := validator.ValidateDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		response.BadRequest(c, errors.Reason(err))
		return
	}

	stats, err := rc.Stay.Availability(from, to)
	if err != nil {
		response.ServerError(c)
		return
	}

	countStr := c.Query("count")
	typeStr := c.Query("typeId")
	if countStr == "" || typeStr == "" {
		response.Success(c, stats)
		return
	}

	count, err := strconv.Atoi(countStr)
	if err != nil || count <= 0 {
		response.BadRequest(c, "Số lượng phòng không hợp lệ")
		return
	}
	typeID, err := strconv.Atoi(typeStr)
	if err != nil {
		response.BadRequest(c, "ID loại phòng không hợp lệ")
		return
	}

	for _, s := range stats {
		if s.TypeID == uint(typeID) {
			if count > s.Count {
				response.BadRequest(c, "Số lượng vượt quá số phòng còn trống")
				return
			}
			suggestion := services.FindClosestRooms(s.RoomIDs, count)
			response.Success(c, gin.H{
				"availability": stats,
				"suggestion":   suggestion,
			})
			return
		}
	}
	response.BadRequest(c, "Loại phòng không còn phòng trống trong khoảng ngày này")
}

// ChangeRoomStatus đổi trạng thái phòng thủ công (dọn xong, bảo trì...)
func (rc RoomController) ChangeRoomStatus(c *gin.Context) {
	var req dto.RoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := rc.Stay.SetRoomStatus(req.RoomID, req.Status); err != nil {
		response.Conflict(c, errors.Reason(err))
		return
	}

	rc.invalidateRooms(c)
	services.BroadcastRoomEvent(rc.Melody, "room_status", req.RoomID, req.Status)
	response.SuccessWithMessage(c, "Cập nhật trạng thái phòng thành công", nil)
}

// UpdateRoomNote lưu ghi chú của lễ tân cho phòng
func (rc RoomController) UpdateRoomNote(c *gin.Context) {
	var req dto.RoomNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := rc.Stay.UpdateRoomNote(req.RoomID, req.Note); err != nil {
		response.BadRequest(c, errors.Reason(err))
		return
	}

	rc.invalidateRooms(c)
	response.SuccessWithMessage(c, "Đã lưu ghi chú thành công", nil)
}
