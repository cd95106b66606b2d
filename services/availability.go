package services

import (
	"hms/constants"
	"hms/dto"
	"hms/models"
)

// AnalyzeAvailability gom phòng trống theo loại phòng. Một phòng được coi là
// trống khi không nằm trong tập busy (có phiếu đặt trùng khoảng ngày) và
// không ở trạng thái Bảo trì. Phòng Đã đặt hay Đang dọn cho khoảng ngày khác
// vẫn được chào: tình trạng tính theo ngày, chỉ Bảo trì là loại tuyệt đối.
// Kết quả giữ thứ tự loại phòng theo lần gặp đầu tiên.
func AnalyzeAvailability(rooms []models.RoomInfo, busy map[uint]struct{}) []dto.TypeAvailability {
	index := make(map[uint]int)
	stats := make([]dto.TypeAvailability, 0)

	for _, room := range rooms {
		if _, conflicted := busy[room.RoomID]; conflicted {
			continue
		}
		if room.Status == constants.RoomStatusMaintenance {
			continue
		}

		i, ok := index[room.TypeID]
		if !ok {
			i = len(stats)
			index[room.TypeID] = i
			stats = append(stats, dto.TypeAvailability{
				TypeID:   room.TypeID,
				TypeName: room.TypeName,
				Price:    room.Price,
				Capacity: room.Capacity,
			})
		}
		stats[i].Count++
		stats[i].RoomIDs = append(stats[i].RoomIDs, room.RoomID)
	}

	return stats
}
