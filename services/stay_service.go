package services

import (
	stderrors "errors"
	"fmt"
	"time"

	"hms/constants"
	"hms/dto"
	"hms/errors"
	"hms/models"
	"hms/services/logger"

	"gorm.io/gorm"
)

// StayService điều phối vòng đời một lần ở: Đặt phòng -> Check-in ->
// Gọi dịch vụ -> Check-out. Mỗi bước ghi nhiều bảng được gói trong một
// transaction, lỗi ở đâu rollback toàn bộ ở đó.
type StayService struct {
	db     *gorm.DB
	logger logger.Logger
}

type StayServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewStayService(opts StayServiceOptions) *StayService {
	return &StayService{
		db:     opts.DB,
		logger: opts.Logger,
	}
}

// AllRoomInfo đọc toàn bộ phòng kèm thông tin loại phòng
func (s *StayService) AllRoomInfo() ([]models.RoomInfo, error) {
	var rooms []models.RoomInfo
	err := s.db.Table("rooms").
		Select("rooms.room_id, rooms.status, rooms.note, room_types.id AS type_id, room_types.name AS type_name, room_types.price, room_types.capacity").
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Order("rooms.room_id").
		Scan(&rooms).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được danh sách phòng", err)
	}
	return rooms, nil
}

// ConflictRoomIDs trả về các số phòng có phiếu đặt còn hiệu lực giao với
// khoảng [from, to). Khoảng nửa hở: ngày đi của phiếu cũ trùng ngày đến
// của khoảng hỏi thì không tính là giao.
func (s *StayService) ConflictRoomIDs(from, to time.Time) (map[uint]struct{}, error) {
	var ids []uint
	err := s.db.Model(&models.Reservation{}).
		Where("status IN ?", []int{constants.ReservationStatusConfirmed, constants.ReservationStatusOccupied}).
		Where("arrival_date < ? AND departure_date > ?", to, from).
		Pluck("room_id", &ids).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được phiếu đặt phòng", err)
	}
	busy := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		busy[id] = struct{}{}
	}
	return busy, nil
}

// Availability chạy phân tích phòng trống cho một khoảng ngày
func (s *StayService) Availability(from, to time.Time) ([]dto.TypeAvailability, error) {
	rooms, err := s.AllRoomInfo()
	if err != nil {
		return nil, err
	}
	busy, err := s.ConflictRoomIDs(from, to)
	if err != nil {
		return nil, err
	}
	return AnalyzeAvailability(rooms, busy), nil
}

// Book đặt một hoặc nhiều phòng cho một khách trong một transaction:
// upsert khách theo CCCD, mỗi phòng một phiếu Đã xác nhận, phòng Trống
// chuyển Đã đặt. Bất kỳ phòng nào trùng lịch hoặc bảo trì thì toàn bộ bị hủy.
func (s *StayService) Book(intent dto.BookingIntent) (*dto.BookingResult, error) {
	if !intent.ArrivalDate.Before(intent.DepartureDate) {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Ngày đi phải sau ngày đến", nil)
	}
	if len(intent.RoomIDs) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "Chưa chọn phòng nào", nil)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi hệ thống", tx.Error)
	}

	result, err := s.bookInTx(tx, intent)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi hệ thống", err)
	}

	s.logger.Info("Đặt %d phòng cho khách %s (CCCD %s)", len(result.RoomIDs), result.GuestName, intent.CCCD)
	return result, nil
}

func (s *StayService) bookInTx(tx *gorm.DB, intent dto.BookingIntent) (*dto.BookingResult, error) {
	// Kiểm tra phòng tồn tại và không bảo trì
	var rooms []models.Room
	if err := tx.Where("room_id IN ?", intent.RoomIDs).Find(&rooms).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được phòng", err)
	}
	if len(rooms) != len(intent.RoomIDs) {
		return nil, errors.NewAppError(errors.ErrCodeRoomUnavailable, "Có phòng không tồn tại trong danh sách đã chọn", nil)
	}
	statusByRoom := make(map[uint]int, len(rooms))
	for _, r := range rooms {
		if r.Status == constants.RoomStatusMaintenance {
			return nil, errors.NewAppError(errors.ErrCodeRoomUnavailable,
				fmt.Sprintf("Phòng %d đang bảo trì", r.RoomID), nil)
		}
		statusByRoom[r.RoomID] = r.Status
	}

	// Kiểm tra trùng lịch trên chính các phòng định đặt
	var conflicted []uint
	err := tx.Model(&models.Reservation{}).
		Where("room_id IN ?", intent.RoomIDs).
		Where("status IN ?", []int{constants.ReservationStatusConfirmed, constants.ReservationStatusOccupied}).
		Where("arrival_date < ? AND departure_date > ?", intent.DepartureDate, intent.ArrivalDate).
		Pluck("room_id", &conflicted).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không kiểm tra được lịch đặt", err)
	}
	if len(conflicted) > 0 {
		return nil, errors.NewAppError(errors.ErrCodeDateConflict,
			fmt.Sprintf("Phòng %d đã có khách đặt trong khoảng ngày này", conflicted[0]), nil)
	}

	// Khách quay lại dùng lại mã cũ, cập nhật tên và SĐT mới nhất
	var guest models.Guest
	err = tx.Where("cccd = ?", intent.CCCD).First(&guest).Error
	switch {
	case err == nil:
		guest.Name = intent.GuestName
		guest.Phone = intent.Phone
		if err := tx.Save(&guest).Error; err != nil {
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được khách hàng", err)
		}
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		guest = models.Guest{Name: intent.GuestName, CCCD: intent.CCCD, Phone: intent.Phone}
		if err := tx.Create(&guest).Error; err != nil {
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Không tạo được khách hàng", err)
		}
	default:
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được khách hàng", err)
	}

	result := &dto.BookingResult{
		GuestID:   guest.ID,
		GuestName: guest.Name,
		RoomIDs:   intent.RoomIDs,
	}
	for _, roomID := range intent.RoomIDs {
		reservation := models.Reservation{
			GuestID:       guest.ID,
			RoomID:        roomID,
			ArrivalDate:   intent.ArrivalDate,
			DepartureDate: intent.DepartureDate,
			Status:        constants.ReservationStatusConfirmed,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Không tạo được phiếu đặt phòng", err)
		}
		result.ReservationIDs = append(result.ReservationIDs, reservation.ID)

		// Chỉ phòng Trống mới chuyển Đã đặt. Phòng Đang ở / Đang dọn nhận
		// đặt trước cho khoảng ngày khác vẫn giữ nguyên trạng thái hiện tại,
		// ghi đè sẽ làm phòng và phiếu của khách đang ở lệch nhau.
		if statusByRoom[roomID] == constants.RoomStatusFree {
			if err := tx.Model(&models.Room{}).Where("room_id = ?", roomID).
				Update("status", constants.RoomStatusBooked).Error; err != nil {
				return nil, errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được trạng thái phòng", err)
			}
		}
	}

	return result, nil
}

// CheckIn nhận phòng theo CCCD: chỉ kích hoạt các phiếu Đã xác nhận có ngày
// đến đúng hôm nay, các phiếu ngày khác giữ nguyên và báo lại "chưa tới
// ngày". roomID khác 0 thì giới hạn theo phòng đó. Không phân biệt sai
// CCCD, sai phòng hay chưa đặt: một lý do gộp duy nhất.
func (s *StayService) CheckIn(cccd string, roomID uint, today time.Time) (*dto.CheckInResult, error) {
	// So ngày theo chuỗi YYYY-MM-DD, tránh lệch múi giờ giữa ngày lưu và đồng hồ máy
	todayStr := today.Format("2006-01-02")

	var reservations []models.Reservation
	q := s.db.Preload("Guest").
		Select("reservations.*").
		Joins("JOIN guests ON guests.id = reservations.guest_id").
		Where("guests.cccd = ?", cccd).
		Where("reservations.status = ?", constants.ReservationStatusConfirmed)
	if roomID != 0 {
		q = q.Where("reservations.room_id = ?", roomID)
	}
	if err := q.Find(&reservations).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được phiếu đặt phòng", err)
	}
	if len(reservations) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeNoReservation,
			fmt.Sprintf("Không tìm thấy phiếu đặt phòng nào cho CCCD: %s", cccd), nil)
	}

	var due []models.Reservation
	var notDue []models.Reservation
	for _, r := range reservations {
		if r.ArrivalDate.Format("2006-01-02") == todayStr {
			due = append(due, r)
		} else {
			notDue = append(notDue, r)
		}
	}
	if len(due) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeNotDueYet,
			fmt.Sprintf("Khách có lịch đặt nhưng chưa tới ngày nhận phòng. Ngày hẹn check-in: %s",
				reservations[0].ArrivalDate.Format("2006-01-02")), nil)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi hệ thống", tx.Error)
	}

	result := &dto.CheckInResult{GuestName: due[0].Guest.Name}
	for _, r := range due {
		if err := tx.Model(&models.Reservation{}).Where("id = ?", r.ID).
			Update("status", constants.ReservationStatusOccupied).Error; err != nil {
			tx.Rollback()
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được phiếu đặt phòng", err)
		}
		if err := tx.Model(&models.Room{}).Where("room_id = ?", r.RoomID).
			Update("status", constants.RoomStatusOccupied).Error; err != nil {
			tx.Rollback()
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được trạng thái phòng", err)
		}

		// Mỗi phiếu chỉ có một hóa đơn, check-in lại không mở thêm
		var count int64
		if err := tx.Model(&models.Invoice{}).Where("reservation_id = ?", r.ID).Count(&count).Error; err != nil {
			tx.Rollback()
			return nil, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được hóa đơn", err)
		}
		if count == 0 {
			invoice := models.Invoice{
				ReservationID: r.ID,
				Status:        constants.InvoiceStatusOpen,
			}
			if err := tx.Create(&invoice).Error; err != nil {
				tx.Rollback()
				return nil, errors.NewAppError(errors.ErrCodeDBError, "Không tạo được hóa đơn", err)
			}
		}

		result.Rooms = append(result.Rooms, r.RoomID)
	}
	result.Count = len(result.Rooms)
	for _, r := range notDue {
		result.NotDueYet = append(result.NotDueYet, r.RoomID)
		result.NotDueDates = append(result.NotDueDates, r.ArrivalDate.Format("2006-01-02"))
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi hệ thống", err)
	}

	s.logger.Info("Check-in %d phòng cho khách %s", result.Count, result.GuestName)
	return result, nil
}

// AddServiceUsage ghi một lần gọi dịch vụ cho phòng đang có khách.
// Cặp (phiếu, dịch vụ) đã có dòng thì cộng dồn số lượng thay vì thêm dòng
// mới. Trả về true nếu là cộng dồn.
func (s *StayService) AddServiceUsage(roomID, serviceID uint, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, errors.NewAppError(errors.ErrCodeValidation, "Số lượng phải lớn hơn 0", nil)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return false, errors.NewAppError(errors.ErrCodeDBError, "Lỗi hệ thống", tx.Error)
	}

	updated, err := s.addUsageInTx(tx, roomID, serviceID, quantity)
	if err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Commit().Error; err != nil {
		return false, errors.NewAppError(errors.ErrCodeDBError, "Lỗi hệ thống", err)
	}
	return updated, nil
}

func (s *StayService) addUsageInTx(tx *gorm.DB, roomID, serviceID uint, quantity int) (bool, error) {
	var reservation models.Reservation
	err := tx.Where("room_id = ? AND status = ?", roomID, constants.ReservationStatusOccupied).
		First(&reservation).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return false, errors.NewAppError(errors.ErrCodeRoomNotOccupied, "Phòng chưa có khách check-in", nil)
	}
	if err != nil {
		return false, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được phiếu đặt phòng", err)
	}

	var service models.Service
	if err := tx.First(&service, serviceID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return false, errors.NewAppError(errors.ErrCodeDBNotFound, "Mã dịch vụ không tồn tại", nil)
		}
		return false, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được dịch vụ", err)
	}

	var usage models.ServiceUsage
	err = tx.Where("reservation_id = ? AND service_id = ?", reservation.ID, serviceID).
		First(&usage).Error
	switch {
	case err == nil:
		usage.Quantity += quantity
		if err := tx.Save(&usage).Error; err != nil {
			return false, errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được dịch vụ", err)
		}
		return true, nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		usage = models.ServiceUsage{
			ReservationID: reservation.ID,
			ServiceID:     serviceID,
			Quantity:      quantity,
		}
		if err := tx.Create(&usage).Error; err != nil {
			return false, errors.NewAppError(errors.ErrCodeDBError, "Không ghi được dịch vụ", err)
		}
		return false, nil
	default:
		return false, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được dịch vụ đã dùng", err)
	}
}

// billRow hứng kết quả join hóa đơn đang mở của một phòng đang có khách
type billRow struct {
	InvoiceID     uint
	ReservationID uint
	CreatedAt     time.Time
	Price         float64
	GuestName     string
}

func (s *StayService) billInput(tx *gorm.DB, roomID uint, now time.Time) (BillInput, error) {
	var row billRow
	res := tx.Table("invoices").
		Select("invoices.id AS invoice_id, invoices.created_at, reservations.id AS reservation_id, room_types.price, guests.name AS guest_name").
		Joins("JOIN reservations ON reservations.id = invoices.reservation_id").
		Joins("JOIN rooms ON rooms.room_id = reservations.room_id").
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Joins("JOIN guests ON guests.id = reservations.guest_id").
		Where("reservations.room_id = ?", roomID).
		Where("rooms.status = ?", constants.RoomStatusOccupied).
		Where("invoices.status = ?", constants.InvoiceStatusOpen).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return BillInput{}, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được hóa đơn", res.Error)
	}
	if res.RowsAffected == 0 {
		return BillInput{}, errors.NewAppError(errors.ErrCodeNoOpenInvoice, "Không có thông tin hóa đơn cho phòng này", nil)
	}

	var lines []UsageLine
	err := tx.Table("service_usages").
		Select("services.name, service_usages.quantity, services.price").
		Joins("JOIN services ON services.id = service_usages.service_id").
		Where("service_usages.reservation_id = ?", row.ReservationID).
		Order("service_usages.id").
		Scan(&lines).Error
	if err != nil {
		return BillInput{}, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được dịch vụ đã dùng", err)
	}

	return BillInput{
		InvoiceID:     row.InvoiceID,
		ReservationID: row.ReservationID,
		GuestName:     row.GuestName,
		RoomID:        roomID,
		CheckIn:       row.CreatedAt,
		CheckOut:      now,
		RoomPrice:     row.Price,
		Services:      lines,
	}, nil
}

// ProvisionalBill tính hóa đơn tạm tính tại thời điểm now, không ghi gì
func (s *StayService) ProvisionalBill(roomID uint, now time.Time) (*models.BillDetail, error) {
	in, err := s.billInput(s.db, roomID, now)
	if err != nil {
		return nil, err
	}
	bill := CalculateBill(in)
	return &bill, nil
}

// Checkout chốt hóa đơn và trả phòng trong một transaction: hóa đơn sang
// Đã thanh toán với tổng tiền cộng phụ thu, phiếu sang Hoàn tất, phòng sang
// Đang dọn và xóa ghi chú.
func (s *StayService) Checkout(roomID uint, surcharge float64, now time.Time) (*models.BillDetail, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi hệ thống", tx.Error)
	}

	bill, err := s.checkoutInTx(tx, roomID, surcharge, now)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi hệ thống", err)
	}

	s.logger.Info("Checkout phòng %d, tổng tiền %.0f (phụ thu %.0f)", roomID, bill.GrandTotal+surcharge, surcharge)
	return bill, nil
}

func (s *StayService) checkoutInTx(tx *gorm.DB, roomID uint, surcharge float64, now time.Time) (*models.BillDetail, error) {
	in, err := s.billInput(tx, roomID, now)
	if err != nil {
		return nil, err
	}
	bill := CalculateBill(in)

	err = tx.Model(&models.Invoice{}).Where("id = ?", bill.InvoiceID).
		Updates(map[string]interface{}{
			"total":        bill.GrandTotal + surcharge,
			"surcharge":    surcharge,
			"status":       constants.InvoiceStatusPaid,
			"payment_date": now,
		}).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được hóa đơn", err)
	}

	err = tx.Model(&models.Reservation{}).Where("id = ?", bill.ReservationID).
		Update("status", constants.ReservationStatusCompleted).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được phiếu đặt phòng", err)
	}

	err = tx.Model(&models.Room{}).Where("room_id = ?", roomID).
		Updates(map[string]interface{}{
			"status": constants.RoomStatusCleaning,
			"note":   "",
		}).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được trạng thái phòng", err)
	}

	return &bill, nil
}

// SetRoomStatus đổi trạng thái phòng thủ công (dọn xong, bảo trì...).
// Chỉ cho đặt tay Trống / Đang dọn / Bảo trì: Đã đặt và Đang ở do vòng đời
// phiếu quản, đặt tay sẽ làm phòng và phiếu lệch nhau. Phòng đang có khách
// thì không đổi được, phải checkout trước.
func (s *StayService) SetRoomStatus(roomID uint, status int) error {
	if status != constants.RoomStatusFree && status != constants.RoomStatusCleaning && status != constants.RoomStatusMaintenance {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "Trạng thái không hợp lệ", nil)
	}

	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NewAppError(errors.ErrCodeDBNotFound, "Phòng không tồn tại", nil)
		}
		return errors.NewAppError(errors.ErrCodeDBError, "Không đọc được phòng", err)
	}

	if room.Status == status {
		return errors.NewAppError(errors.ErrCodeInvalidOperation, "Phòng đã ở trạng thái này", nil)
	}
	if room.Status == constants.RoomStatusOccupied {
		return errors.NewAppError(errors.ErrCodeInvalidOperation,
			"CẢNH BÁO: Phòng đang có khách. Phải Checkout trước", nil)
	}

	if err := s.db.Model(&models.Room{}).Where("room_id = ?", roomID).
		Update("status", status).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Không cập nhật được trạng thái phòng", err)
	}

	s.logger.Info("Phòng %d chuyển trạng thái %s -> %s", roomID,
		constants.RoomStatusLabels[room.Status], constants.RoomStatusLabels[status])
	return nil
}

// UpdateRoomNote lưu ghi chú tự do của lễ tân cho một phòng
func (s *StayService) UpdateRoomNote(roomID uint, note string) error {
	res := s.db.Model(&models.Room{}).Where("room_id = ?", roomID).Update("note", note)
	if res.Error != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Lỗi lưu ghi chú", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.NewAppError(errors.ErrCodeDBNotFound, "Phòng không tồn tại", nil)
	}
	return nil
}

// TodayArrivals liệt kê các phiếu Đã xác nhận có ngày đến hôm nay
func (s *StayService) TodayArrivals(today time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Preload("Guest").
		Where("status = ?", constants.ReservationStatusConfirmed).
		Where("arrival_date = ?", truncateToDate(today)).
		Find(&reservations).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Không đọc được danh sách khách đến", err)
	}
	return reservations, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
