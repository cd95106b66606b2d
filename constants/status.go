package constants

// Room status
const (
	RoomStatusFree        = 0
	RoomStatusBooked      = 1
	RoomStatusOccupied    = 2
	RoomStatusCleaning    = 3
	RoomStatusMaintenance = 4
)

// Reservation status
const (
	ReservationStatusConfirmed = 1
	ReservationStatusOccupied  = 2
	ReservationStatusCompleted = 3
)

// Invoice status
const (
	InvoiceStatusOpen = 0
	InvoiceStatusPaid = 1
)

// Staff role
const (
	RoleManager      = 1
	RoleReceptionist = 2
)

// Nhãn hiển thị cho lễ tân
var RoomStatusLabels = map[int]string{
	RoomStatusFree:        "Trống",
	RoomStatusBooked:      "Đã đặt",
	RoomStatusOccupied:    "Đang ở",
	RoomStatusCleaning:    "Đang dọn",
	RoomStatusMaintenance: "Bảo trì",
}

var ReservationStatusLabels = map[int]string{
	ReservationStatusConfirmed: "Đã xác nhận",
	ReservationStatusOccupied:  "Đang ở",
	ReservationStatusCompleted: "Hoàn tất",
}

var InvoiceStatusLabels = map[int]string{
	InvoiceStatusOpen: "Chưa thanh toán",
	InvoiceStatusPaid: "Đã thanh toán",
}
