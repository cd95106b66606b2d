package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBillRoundsUpToFullDay(t *testing.T) {
	checkIn := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkOut time.Time
		wantDays int
	}{
		{"dưới một ngày vẫn tính một ngày", checkIn.Add(3 * time.Hour), 1},
		{"đúng 24 giờ", checkIn.Add(24 * time.Hour), 1},
		{"lố một giây sang ngày mới", checkIn.Add(24*time.Hour + time.Second), 2},
		{"25 giờ", checkIn.Add(25 * time.Hour), 2},
		{"ba ngày tròn", checkIn.Add(72 * time.Hour), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := CalculateBill(BillInput{
				CheckIn:   checkIn,
				CheckOut:  tt.checkOut,
				RoomPrice: 150000,
			})
			assert.Equal(t, tt.wantDays, bill.DaysUsed)
			assert.Equal(t, float64(tt.wantDays)*150000, bill.RoomTotal)
		})
	}
}

func TestCalculateBillMinimumOneDay(t *testing.T) {
	checkIn := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	// Check-out trùng check-in vẫn thu một ngày
	bill := CalculateBill(BillInput{CheckIn: checkIn, CheckOut: checkIn, RoomPrice: 300000})
	assert.Equal(t, 1, bill.DaysUsed)
	assert.Equal(t, 300000.0, bill.RoomTotal)
}

func TestCalculateBillWithServices(t *testing.T) {
	checkIn := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	bill := CalculateBill(BillInput{
		GuestName: "Nguyễn Văn A",
		RoomID:    101,
		CheckIn:   checkIn,
		CheckOut:  checkIn.Add(25 * time.Hour),
		RoomPrice: 150000,
		Services: []UsageLine{
			{Name: "Coca Cola", Quantity: 2, Price: 15000},
		},
	})

	assert.Equal(t, 2, bill.DaysUsed)
	assert.Equal(t, 300000.0, bill.RoomTotal)
	assert.Len(t, bill.Services, 1)
	assert.Equal(t, 30000.0, bill.Services[0].Subtotal)
	assert.Equal(t, 30000.0, bill.ServiceTotal)
	assert.Equal(t, 330000.0, bill.GrandTotal)
}

func TestCalculateBillDeterministic(t *testing.T) {
	in := BillInput{
		CheckIn:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2025, 1, 2, 15, 30, 0, 0, time.UTC),
		RoomPrice: 500000,
		Services:  []UsageLine{{Name: "Giặt ủi", Quantity: 1, Price: 50000}},
	}

	first := CalculateBill(in)
	second := CalculateBill(in)
	assert.Equal(t, first, second)
}

func TestCalculateBillMonotonicInCheckout(t *testing.T) {
	checkIn := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	prev := 0.0
	for hours := 1; hours <= 96; hours += 7 {
		bill := CalculateBill(BillInput{
			CheckIn:   checkIn,
			CheckOut:  checkIn.Add(time.Duration(hours) * time.Hour),
			RoomPrice: 150000,
		})
		assert.GreaterOrEqual(t, bill.RoomTotal, prev, "tiền phòng không được giảm khi ở lâu hơn")
		prev = bill.RoomTotal
	}
}
