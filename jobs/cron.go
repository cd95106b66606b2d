package jobs

import (
	"encoding/json"
	"log"
	"time"

	"hms/models"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// ArrivalLister liệt kê các phiếu đặt phòng tới ngày nhận hôm nay
type ArrivalLister interface {
	TodayArrivals(today time.Time) ([]models.Reservation, error)
}

var arrivalLister ArrivalLister

// SetArrivalLister thiết lập implementation cho ArrivalLister
func SetArrivalLister(lister ArrivalLister) {
	arrivalLister = lister
}

type arrivalDigest struct {
	Event   string   `json:"event"`
	Date    string   `json:"date"`
	Count   int      `json:"count"`
	RoomIDs []uint   `json:"roomIds"`
	Guests  []string `json:"guests"`
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, m *melody.Melody) error {
	// 7h sáng mỗi ngày: điểm danh khách đến hôm nay cho ca lễ tân
	_, err := c.AddFunc("0 7 * * *", func() {
		if arrivalLister == nil {
			log.Printf("Lỗi: ArrivalLister chưa được thiết lập")
			return
		}

		now := time.Now()
		arrivals, err := arrivalLister.TodayArrivals(now)
		if err != nil {
			log.Printf("Lỗi khi lấy danh sách khách đến hôm nay: %v", err)
			return
		}

		digest := arrivalDigest{
			Event: "arrivals_digest",
			Date:  now.Format("2006-01-02"),
			Count: len(arrivals),
		}
		for _, r := range arrivals {
			digest.RoomIDs = append(digest.RoomIDs, r.RoomID)
			digest.Guests = append(digest.Guests, r.Guest.Name)
		}
		log.Printf("Hôm nay có %d phòng chờ check-in", digest.Count)

		msg, err := json.Marshal(digest)
		if err != nil {
			log.Printf("Lỗi tạo bản tin khách đến: %v", err)
			return
		}
		if err := m.Broadcast(msg); err != nil {
			log.Printf("Lỗi broadcast bản tin khách đến: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
