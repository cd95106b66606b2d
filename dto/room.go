package dto

// TypeAvailability là thống kê phòng trống của một loại phòng
// trong khoảng ngày đã hỏi
type TypeAvailability struct {
	TypeID   uint    `json:"typeId"`
	TypeName string  `json:"typeName"`
	Price    float64 `json:"price"`
	Capacity int     `json:"capacity"`
	Count    int     `json:"count"`
	RoomIDs  []uint  `json:"roomIds"`
}

// ServiceCombo là một tổ hợp dịch vụ gợi ý trong ngân sách
type ServiceCombo struct {
	Names []string `json:"names"`
	Total float64  `json:"total"`
}

type RoomResponse struct {
	RoomID      uint    `json:"id"`
	Status      int     `json:"status"`
	StatusLabel string  `json:"statusLabel"`
	TypeID      uint    `json:"typeId"`
	TypeName    string  `json:"typeName"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	Note        string  `json:"note"`
}
