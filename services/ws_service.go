package services

import (
	"encoding/json"
	"log"

	"hms/constants"

	"github.com/olahol/melody"
)

// RoomEvent là thông điệp đẩy xuống bảng điều khiển lễ tân khi một phòng
// đổi trạng thái
type RoomEvent struct {
	Event       string `json:"event"`
	RoomID      uint   `json:"roomId"`
	Status      int    `json:"status"`
	StatusLabel string `json:"statusLabel"`
}

// BroadcastRoomEvent đẩy sự kiện phòng qua websocket, lỗi chỉ ghi log:
// dashboard lệch một nhịp không làm hỏng nghiệp vụ đã commit
func BroadcastRoomEvent(m *melody.Melody, event string, roomID uint, status int) {
	if m == nil {
		return
	}
	msg, err := json.Marshal(RoomEvent{
		Event:       event,
		RoomID:      roomID,
		Status:      status,
		StatusLabel: constants.RoomStatusLabels[status],
	})
	if err != nil {
		log.Printf("❌ Lỗi tạo thông điệp websocket: %v", err)
		return
	}
	if err := m.Broadcast(msg); err != nil {
		log.Printf("❌ Lỗi broadcast websocket: %v", err)
	}
}

// BroadcastRoomEvents đẩy cùng một sự kiện cho nhiều phòng
func BroadcastRoomEvents(m *melody.Melody, event string, roomIDs []uint, status int) {
	for _, id := range roomIDs {
		BroadcastRoomEvent(m, event, id, status)
	}
}
