package controllers

import (
	"sort"
	"strings"

	"hms/models"
	"hms/response"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/gin-gonic/gin"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"
)

type GuestController struct {
	DB *gorm.DB
}

func NewGuestController(db *gorm.DB) GuestController {
	return GuestController{DB: db}
}

// Hàm chuẩn hóa chuỗi: bỏ dấu tiếng Việt, về chữ thường
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Tạo đối tượng closestmatch cho danh sách tên đã chuẩn hóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/maxLen
}

type scoredGuest struct {
	guest models.Guest
	score float64
}

// SearchGuests tìm khách quay lại theo tên gần đúng (không phân biệt dấu)
// hoặc theo CCCD chính xác. Lễ tân gõ "nguyen van a" vẫn ra "Nguyễn Văn A".
func (gc GuestController) SearchGuests(c *gin.Context) {
	query := c.Query("name")
	cccd := c.Query("cccd")

	if cccd != "" {
		var guest models.Guest
		if err := gc.DB.Where("cccd = ?", cccd).First(&guest).Error; err != nil {
			response.NotFound(c)
			return
		}
		response.Success(c, []models.Guest{guest})
		return
	}

	if query == "" {
		response.BadRequest(c, "Chưa nhập tên hoặc CCCD cần tìm")
		return
	}

	var guests []models.Guest
	if err := gc.DB.Find(&guests).Error; err != nil {
		response.ServerError(c)
		return
	}

	normalizedQuery := normalizeInput(query)

	names := make([]string, 0, len(guests))
	for _, g := range guests {
		names = append(names, normalizeInput(g.Name))
	}
	matcher := createMatcher(names)
	best := matcher.Closest(normalizedQuery)

	scored := make([]scoredGuest, 0)
	for _, g := range guests {
		normalizedName := normalizeInput(g.Name)
		similarity := calculateSimilarity(normalizedQuery, normalizedName)
		if normalizedName == best {
			similarity += 0.2
		}
		if similarity > 0.5 || strings.Contains(normalizedName, normalizedQuery) {
			scored = append(scored, scoredGuest{guest: g, score: similarity})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > 10 {
		scored = scored[:10]
	}

	results := make([]models.Guest, 0, len(scored))
	for _, s := range scored {
		results = append(results, s.guest)
	}

	response.Success(c, results)
}
