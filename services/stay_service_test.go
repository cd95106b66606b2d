package services

import (
	"testing"
	"time"

	"hms/constants"
	"hms/dto"
	"hms/errors"
	"hms/models"
	"hms/services/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStayTest(t *testing.T) (*gorm.DB, *StayService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
		&models.Invoice{},
		&models.Service{},
		&models.ServiceUsage{},
	))

	require.NoError(t, db.Create(&models.RoomType{ID: 1, Name: "Standard", Price: 150000, Capacity: 2}).Error)
	for _, id := range []uint{101, 102, 103, 104, 105} {
		require.NoError(t, db.Create(&models.Room{RoomID: id, Status: constants.RoomStatusFree, RoomTypeID: 1}).Error)
	}
	require.NoError(t, db.Create(&models.Service{ID: 1, Name: "Coca Cola", Price: 15000}).Error)
	require.NoError(t, db.Create(&models.Service{ID: 2, Name: "Bia Tiger", Price: 25000}).Error)

	svc := NewStayService(StayServiceOptions{
		DB:     db,
		Logger: logger.NewDefaultLogger(logger.ErrorLevel),
	})
	return db, svc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bookRoom(t *testing.T, svc *StayService, cccd string, rooms []uint, from, to time.Time) *dto.BookingResult {
	t.Helper()
	result, err := svc.Book(dto.BookingIntent{
		GuestName:     "Nguyễn Văn A",
		CCCD:          cccd,
		Phone:         "0901234567",
		RoomIDs:       rooms,
		ArrivalDate:   from,
		DepartureDate: to,
	})
	require.NoError(t, err)
	return result
}

func TestBookCreatesReservationAndMarksRoom(t *testing.T) {
	db, svc := setupStayTest(t)

	result := bookRoom(t, svc, "001", []uint{101}, date(2025, 1, 1), date(2025, 1, 3))
	require.Len(t, result.ReservationIDs, 1)

	var reservation models.Reservation
	require.NoError(t, db.First(&reservation, result.ReservationIDs[0]).Error)
	assert.Equal(t, constants.ReservationStatusConfirmed, reservation.Status)
	assert.Equal(t, uint(101), reservation.RoomID)

	var room models.Room
	require.NoError(t, db.First(&room, 101).Error)
	assert.Equal(t, constants.RoomStatusBooked, room.Status)
}

func TestBookOverlapConflict(t *testing.T) {
	db, svc := setupStayTest(t)

	bookRoom(t, svc, "001", []uint{101}, date(2025, 1, 1), date(2025, 1, 3))

	// Trùng một phần khoảng ngày
	_, err := svc.Book(dto.BookingIntent{
		GuestName:     "Trần Thị B",
		CCCD:          "002",
		RoomIDs:       []uint{101},
		ArrivalDate:   date(2025, 1, 2),
		DepartureDate: date(2025, 1, 4),
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodeDateConflict, appErr.Code)

	// Rollback: không còn dấu vết gì của lượt đặt hỏng
	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Model(&models.Guest{}).Where("cccd = ?", "002").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestBookHalfOpenBoundary(t *testing.T) {
	_, svc := setupStayTest(t)

	bookRoom(t, svc, "001", []uint{101}, date(2025, 1, 1), date(2025, 1, 3))

	// Ngày đi của khách trước là ngày đến của khách sau: không trùng
	_, err := svc.Book(dto.BookingIntent{
		GuestName:     "Trần Thị B",
		CCCD:          "002",
		RoomIDs:       []uint{101},
		ArrivalDate:   date(2025, 1, 3),
		DepartureDate: date(2025, 1, 5),
	})
	assert.NoError(t, err)
}

func TestBookMultipleRoomsAtomically(t *testing.T) {
	db, svc := setupStayTest(t)

	// 103 bảo trì thì cả cụm 102+103 phải hỏng
	require.NoError(t, db.Model(&models.Room{}).Where("room_id = ?", 103).
		Update("status", constants.RoomStatusMaintenance).Error)

	_, err := svc.Book(dto.BookingIntent{
		GuestName:     "Nguyễn Văn A",
		CCCD:          "001",
		RoomIDs:       []uint{102, 103},
		ArrivalDate:   date(2025, 1, 1),
		DepartureDate: date(2025, 1, 3),
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var room models.Room
	require.NoError(t, db.First(&room, 102).Error)
	assert.Equal(t, constants.RoomStatusFree, room.Status)
}

func TestBookUpsertsGuestByCCCD(t *testing.T) {
	db, svc := setupStayTest(t)

	first := bookRoom(t, svc, "001", []uint{101}, date(2025, 1, 1), date(2025, 1, 3))

	// Khách quay lại: cùng CCCD, tên và SĐT mới
	second, err := svc.Book(dto.BookingIntent{
		GuestName:     "Nguyễn Văn An",
		CCCD:          "001",
		Phone:         "0909999999",
		RoomIDs:       []uint{102},
		ArrivalDate:   date(2025, 2, 1),
		DepartureDate: date(2025, 2, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, first.GuestID, second.GuestID)

	var guest models.Guest
	require.NoError(t, db.First(&guest, first.GuestID).Error)
	assert.Equal(t, "Nguyễn Văn An", guest.Name)
	assert.Equal(t, "0909999999", guest.Phone)

	var count int64
	require.NoError(t, db.Model(&models.Guest{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBookFutureRangeKeepsRoomState(t *testing.T) {
	db, svc := setupStayTest(t)

	checkInAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	occupyRoom(t, db, svc, checkInAt)

	// Khách sau đặt trước phòng 101 cho khoảng ngày không giao với khách
	// đang ở: phòng phải giữ nguyên Đang ở, không bị ghi đè thành Đã đặt
	_, err := svc.Book(dto.BookingIntent{
		GuestName:     "Trần Thị B",
		CCCD:          "002",
		RoomIDs:       []uint{101},
		ArrivalDate:   date(2025, 2, 1),
		DepartureDate: date(2025, 2, 3),
	})
	require.NoError(t, err)

	var room models.Room
	require.NoError(t, db.First(&room, 101).Error)
	assert.Equal(t, constants.RoomStatusOccupied, room.Status)

	// Khách đang ở vẫn checkout được bình thường
	bill, err := svc.Checkout(101, 0, checkInAt.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn A", bill.GuestName)

	// Phòng Đang dọn cũng không bị phiếu đặt trước kéo về Đã đặt
	_, err = svc.Book(dto.BookingIntent{
		GuestName:     "Trần Thị B",
		CCCD:          "002",
		RoomIDs:       []uint{101},
		ArrivalDate:   date(2025, 3, 1),
		DepartureDate: date(2025, 3, 3),
	})
	require.NoError(t, err)
	require.NoError(t, db.First(&room, 101).Error)
	assert.Equal(t, constants.RoomStatusCleaning, room.Status)
}

func TestBookInvalidDateRange(t *testing.T) {
	_, svc := setupStayTest(t)

	_, err := svc.Book(dto.BookingIntent{
		GuestName:     "Nguyễn Văn A",
		CCCD:          "001",
		RoomIDs:       []uint{101},
		ArrivalDate:   date(2025, 1, 3),
		DepartureDate: date(2025, 1, 1),
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.GetAppError(err).Code)
}

func TestCheckInActivatesTodayOnly(t *testing.T) {
	db, svc := setupStayTest(t)

	today := date(2025, 1, 1)
	bookRoom(t, svc, "001", []uint{101}, today, date(2025, 1, 3))
	bookRoom(t, svc, "001", []uint{102}, date(2025, 1, 5), date(2025, 1, 7))

	result, err := svc.CheckIn("001", 0, today)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, []uint{101}, result.Rooms)
	assert.Equal(t, []uint{102}, result.NotDueYet)

	var room models.Room
	require.NoError(t, db.First(&room, 101).Error)
	assert.Equal(t, constants.RoomStatusOccupied, room.Status)

	// Phiếu ngày khác giữ nguyên Đã xác nhận
	var other models.Reservation
	require.NoError(t, db.Where("room_id = ?", 102).First(&other).Error)
	assert.Equal(t, constants.ReservationStatusConfirmed, other.Status)

	// Hóa đơn mở đúng một cái cho phiếu đã kích hoạt
	var invoices []models.Invoice
	require.NoError(t, db.Find(&invoices).Error)
	require.Len(t, invoices, 1)
	assert.Equal(t, constants.InvoiceStatusOpen, invoices[0].Status)
}

func TestCheckInNotDueYet(t *testing.T) {
	_, svc := setupStayTest(t)

	bookRoom(t, svc, "001", []uint{101}, date(2025, 1, 5), date(2025, 1, 7))

	_, err := svc.CheckIn("001", 0, date(2025, 1, 1))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotDueYet, errors.GetAppError(err).Code)
}

func TestCheckInUnknownCCCD(t *testing.T) {
	_, svc := setupStayTest(t)

	// Sai CCCD, sai phòng hay chưa đặt đều ra một lý do gộp
	_, err := svc.CheckIn("999", 0, date(2025, 1, 1))
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodeNoReservation, appErr.Code)
	assert.Contains(t, appErr.Message, "999")
}

func TestCheckInWithRoomFilter(t *testing.T) {
	_, svc := setupStayTest(t)

	today := date(2025, 1, 1)
	bookRoom(t, svc, "001", []uint{101, 102}, today, date(2025, 1, 3))

	result, err := svc.CheckIn("001", 102, today)
	require.NoError(t, err)
	assert.Equal(t, []uint{102}, result.Rooms)

	// Phòng không thuộc phiếu nào của khách
	_, err = svc.CheckIn("001", 105, today)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNoReservation, errors.GetAppError(err).Code)
}

func TestCheckInIdempotentInvoice(t *testing.T) {
	db, svc := setupStayTest(t)

	today := date(2025, 1, 1)
	bookRoom(t, svc, "001", []uint{101}, today, date(2025, 1, 3))

	_, err := svc.CheckIn("001", 0, today)
	require.NoError(t, err)

	// Đặt thêm phòng khác cùng ngày rồi check-in lại: hóa đơn phòng 101 không mở thêm
	bookRoom(t, svc, "001", []uint{102}, today, date(2025, 1, 3))
	_, err = svc.CheckIn("001", 0, today)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAddServiceUsageUpsertsByPair(t *testing.T) {
	db, svc := setupStayTest(t)

	today := date(2025, 1, 1)
	bookRoom(t, svc, "001", []uint{101}, today, date(2025, 1, 3))
	_, err := svc.CheckIn("001", 0, today)
	require.NoError(t, err)

	updated, err := svc.AddServiceUsage(101, 1, 2)
	require.NoError(t, err)
	assert.False(t, updated)

	// Gọi lại cùng dịch vụ: cộng dồn, không thêm dòng
	updated, err = svc.AddServiceUsage(101, 1, 3)
	require.NoError(t, err)
	assert.True(t, updated)

	var usages []models.ServiceUsage
	require.NoError(t, db.Find(&usages).Error)
	require.Len(t, usages, 1)
	assert.Equal(t, 5, usages[0].Quantity)

	// Dịch vụ khác thì thêm dòng mới
	updated, err = svc.AddServiceUsage(101, 2, 1)
	require.NoError(t, err)
	assert.False(t, updated)
	require.NoError(t, db.Find(&usages).Error)
	assert.Len(t, usages, 2)
}

func TestAddServiceUsageRequiresOccupiedRoom(t *testing.T) {
	_, svc := setupStayTest(t)

	_, err := svc.AddServiceUsage(101, 1, 2)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRoomNotOccupied, errors.GetAppError(err).Code)

	// Đã đặt nhưng chưa check-in cũng không gọi được
	bookRoom(t, svc, "001", []uint{101}, date(2025, 1, 1), date(2025, 1, 3))
	_, err = svc.AddServiceUsage(101, 1, 2)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRoomNotOccupied, errors.GetAppError(err).Code)
}

func TestAddServiceUsageUnknownService(t *testing.T) {
	_, svc := setupStayTest(t)

	today := date(2025, 1, 1)
	bookRoom(t, svc, "001", []uint{101}, today, date(2025, 1, 3))
	_, err := svc.CheckIn("001", 0, today)
	require.NoError(t, err)

	_, err = svc.AddServiceUsage(101, 99, 1)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDBNotFound, errors.GetAppError(err).Code)
}

// occupyRoom đưa phòng 101 tới trạng thái Đang ở với mốc check-in cố định
func occupyRoom(t *testing.T, db *gorm.DB, svc *StayService, checkInAt time.Time) {
	t.Helper()
	today := date(2025, 1, 1)
	bookRoom(t, svc, "001", []uint{101}, today, date(2025, 1, 3))
	_, err := svc.CheckIn("001", 0, today)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Invoice{}).Where("1 = 1").
		Update("created_at", checkInAt).Error)
}

func TestCheckoutFullScenario(t *testing.T) {
	db, svc := setupStayTest(t)

	checkInAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	occupyRoom(t, db, svc, checkInAt)

	_, err := svc.AddServiceUsage(101, 1, 2)
	require.NoError(t, err)

	// 25 giờ => 2 ngày: 2x150000 + 2x15000 = 330000
	bill, err := svc.Checkout(101, 0, checkInAt.Add(25*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, bill.DaysUsed)
	assert.Equal(t, 300000.0, bill.RoomTotal)
	assert.Equal(t, 30000.0, bill.ServiceTotal)
	assert.Equal(t, 330000.0, bill.GrandTotal)
	assert.Equal(t, "Nguyễn Văn A", bill.GuestName)

	var invoice models.Invoice
	require.NoError(t, db.First(&invoice, bill.InvoiceID).Error)
	assert.Equal(t, constants.InvoiceStatusPaid, invoice.Status)
	assert.Equal(t, 330000.0, invoice.Total)
	require.NotNil(t, invoice.PaymentDate)

	var reservation models.Reservation
	require.NoError(t, db.First(&reservation, bill.ReservationID).Error)
	assert.Equal(t, constants.ReservationStatusCompleted, reservation.Status)

	var room models.Room
	require.NoError(t, db.First(&room, 101).Error)
	assert.Equal(t, constants.RoomStatusCleaning, room.Status)
	assert.Equal(t, "", room.Note)
}

func TestCheckoutWithSurcharge(t *testing.T) {
	db, svc := setupStayTest(t)

	checkInAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	occupyRoom(t, db, svc, checkInAt)

	bill, err := svc.Checkout(101, 50000, checkInAt.Add(10*time.Hour))
	require.NoError(t, err)

	var invoice models.Invoice
	require.NoError(t, db.First(&invoice, bill.InvoiceID).Error)
	assert.Equal(t, bill.GrandTotal+50000, invoice.Total)
	assert.Equal(t, 50000.0, invoice.Surcharge)
}

func TestCheckoutWithoutOpenInvoice(t *testing.T) {
	db, svc := setupStayTest(t)

	// Chưa check-in
	_, err := svc.Checkout(101, 0, time.Now())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNoOpenInvoice, errors.GetAppError(err).Code)

	// Checkout hai lần
	checkInAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	occupyRoom(t, db, svc, checkInAt)
	_, err = svc.Checkout(101, 0, checkInAt.Add(time.Hour))
	require.NoError(t, err)
	_, err = svc.Checkout(101, 0, checkInAt.Add(2*time.Hour))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNoOpenInvoice, errors.GetAppError(err).Code)
}

func TestProvisionalBillDoesNotWrite(t *testing.T) {
	db, svc := setupStayTest(t)

	checkInAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	occupyRoom(t, db, svc, checkInAt)
	_, err := svc.AddServiceUsage(101, 1, 2)
	require.NoError(t, err)

	bill, err := svc.ProvisionalBill(101, checkInAt.Add(25*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 330000.0, bill.GrandTotal)

	// Hóa đơn vẫn mở, phòng vẫn Đang ở
	var invoice models.Invoice
	require.NoError(t, db.First(&invoice, bill.InvoiceID).Error)
	assert.Equal(t, constants.InvoiceStatusOpen, invoice.Status)
	assert.Equal(t, 0.0, invoice.Total)

	var room models.Room
	require.NoError(t, db.First(&room, 101).Error)
	assert.Equal(t, constants.RoomStatusOccupied, room.Status)
}

func TestSetRoomStatusRules(t *testing.T) {
	db, svc := setupStayTest(t)

	// Trống -> Bảo trì được phép
	require.NoError(t, svc.SetRoomStatus(103, constants.RoomStatusMaintenance))
	var room models.Room
	require.NoError(t, db.First(&room, 103).Error)
	assert.Equal(t, constants.RoomStatusMaintenance, room.Status)

	// Trùng trạng thái hiện tại bị từ chối
	err := svc.SetRoomStatus(103, constants.RoomStatusMaintenance)
	require.Error(t, err)

	// Trạng thái do vòng đời quản không đặt tay được
	err = svc.SetRoomStatus(102, constants.RoomStatusOccupied)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidStatus, errors.GetAppError(err).Code)

	// Phòng đang có khách phải checkout trước
	checkInAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	occupyRoom(t, db, svc, checkInAt)
	err = svc.SetRoomStatus(101, constants.RoomStatusFree)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidOperation, errors.GetAppError(err).Code)

	// Phòng không tồn tại
	err = svc.SetRoomStatus(999, constants.RoomStatusFree)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDBNotFound, errors.GetAppError(err).Code)
}

func TestUpdateRoomNote(t *testing.T) {
	db, svc := setupStayTest(t)

	require.NoError(t, svc.UpdateRoomNote(101, "Khách cần thêm gối"))
	var room models.Room
	require.NoError(t, db.First(&room, 101).Error)
	assert.Equal(t, "Khách cần thêm gối", room.Note)

	err := svc.UpdateRoomNote(999, "x")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDBNotFound, errors.GetAppError(err).Code)
}

func TestConflictRoomIDsHalfOpenInterval(t *testing.T) {
	_, svc := setupStayTest(t)

	bookRoom(t, svc, "001", []uint{101}, date(2025, 1, 1), date(2025, 1, 3))

	// Trùng một phần
	busy, err := svc.ConflictRoomIDs(date(2025, 1, 2), date(2025, 1, 5))
	require.NoError(t, err)
	assert.Contains(t, busy, uint(101))

	// Khoảng hỏi bắt đầu đúng ngày đi: không trùng
	busy, err = svc.ConflictRoomIDs(date(2025, 1, 3), date(2025, 1, 5))
	require.NoError(t, err)
	assert.NotContains(t, busy, uint(101))

	// Khoảng hỏi kết thúc đúng ngày đến: không trùng
	busy, err = svc.ConflictRoomIDs(date(2024, 12, 29), date(2025, 1, 1))
	require.NoError(t, err)
	assert.NotContains(t, busy, uint(101))
}

func TestAvailabilityEndToEnd(t *testing.T) {
	db, svc := setupStayTest(t)

	bookRoom(t, svc, "001", []uint{101}, date(2025, 1, 1), date(2025, 1, 3))
	require.NoError(t, db.Model(&models.Room{}).Where("room_id = ?", 105).
		Update("status", constants.RoomStatusMaintenance).Error)

	stats, err := svc.Availability(date(2025, 1, 2), date(2025, 1, 4))
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].Count)
	assert.Equal(t, []uint{102, 103, 104}, stats[0].RoomIDs)

	// Khoảng không trùng: 101 lại được chào dù phòng đang Đã đặt
	stats, err = svc.Availability(date(2025, 2, 1), date(2025, 2, 3))
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, []uint{101, 102, 103, 104}, stats[0].RoomIDs)
}
