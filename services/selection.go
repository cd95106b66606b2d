package services

import (
	"sort"

	"hms/dto"
	"hms/models"
)

// SearchRoomID tìm nhị phân một số phòng trong danh sách đã sắp tăng dần.
// Caller chịu trách nhiệm về thứ tự; danh sách chưa sắp cho kết quả không
// xác định.
func SearchRoomID(sorted []uint, target uint) bool {
	low, high := 0, len(sorted)-1
	for low <= high {
		mid := (low + high) / 2
		switch {
		case sorted[mid] == target:
			return true
		case sorted[mid] < target:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return false
}

// FindClosestRooms chọn k phòng liền kề nhau nhất trong danh sách số phòng:
// cửa sổ k phần tử liên tiếp có hiệu (max - min) nhỏ nhất, cửa sổ gặp trước
// thắng khi hòa. Trả về nil nếu không đủ phòng. Không đụng vào slice gốc.
func FindClosestRooms(ids []uint, k int) []uint {
	n := len(ids)
	if k < 1 || k > n {
		return nil
	}

	sorted := make([]uint, n)
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var best []uint
	minDiff := ^uint(0)
	for i := 0; i+k <= n; i++ {
		diff := sorted[i+k-1] - sorted[i]
		if diff < minDiff {
			minDiff = diff
			best = sorted[i : i+k]
		}
		// Các số phòng liên tiếp sát nhau, không thể tốt hơn
		if diff == uint(k-1) {
			break
		}
	}

	out := make([]uint, k)
	copy(out, best)
	return out
}

// SuggestServiceCombos liệt kê các tổ hợp dịch vụ (mỗi dịch vụ tối đa một
// lần) có tổng giá không quá ngân sách, bằng backtracking trên danh sách đã
// sắp tăng dần theo giá. Danh sách của caller được copy trước khi sắp nên
// thứ tự bên ngoài giữ nguyên. Trả về tối đa 5 tổ hợp có tổng cao nhất.
func SuggestServiceCombos(services []models.Service, budget float64) []dto.ServiceCombo {
	items := make([]models.Service, len(services))
	copy(items, services)
	sort.Slice(items, func(i, j int) bool { return items[i].Price < items[j].Price })

	var results []dto.ServiceCombo
	var combo []string

	var backtrack func(start int, total float64)
	backtrack = func(start int, total float64) {
		if total > 0 {
			names := make([]string, len(combo))
			copy(names, combo)
			results = append(results, dto.ServiceCombo{Names: names, Total: total})
		}
		for i := start; i < len(items); i++ {
			// Đã sắp theo giá: phần tử sau chỉ đắt hơn, cắt luôn cả nhánh
			if total+items[i].Price > budget {
				break
			}
			combo = append(combo, items[i].Name)
			backtrack(i+1, total+items[i].Price)
			combo = combo[:len(combo)-1]
		}
	}
	backtrack(0, 0)

	sort.SliceStable(results, func(i, j int) bool { return results[i].Total > results[j].Total })
	if len(results) > 5 {
		results = results[:5]
	}
	return results
}
