package routes

import (
	"hms/constants"
	"hms/controllers"
	middlewares "hms/middleware"
	"hms/services"
	"hms/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody) *services.StayService {

	stayService := services.NewStayService(services.StayServiceOptions{
		DB:     db,
		Logger: logger.NewDefaultLogger(logger.InfoLevel),
	})

	authController := controllers.NewAuthController(db)
	roomController := controllers.NewRoomController(db, redisCli, stayService, m)
	bookingController := controllers.NewBookingController(redisCli, stayService, m)
	serviceController := controllers.NewServiceController(db, redisCli, stayService)
	billingController := controllers.NewBillingController(db, redisCli, stayService, m)
	guestController := controllers.NewGuestController(db)

	staffOnly := middlewares.AuthMiddleware(constants.RoleManager, constants.RoleReceptionist)
	managerOnly := middlewares.AuthMiddleware(constants.RoleManager)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", authController.Login)

	v1.GET("/rooms", roomController.GetRooms)
	v1.GET("/rooms/:id", roomController.GetRoomDetail)
	v1.GET("/availability", roomController.GetAvailability)
	v1.PUT("/roomStatus", staffOnly, roomController.ChangeRoomStatus)
	v1.PUT("/roomNote", staffOnly, roomController.UpdateRoomNote)

	v1.POST("/bookings", staffOnly, bookingController.CreateBooking)
	v1.POST("/checkin", staffOnly, bookingController.CheckIn)

	v1.GET("/services", serviceController.GetServices)
	v1.GET("/serviceCombos", serviceController.GetServiceCombos)
	v1.POST("/serviceUsage", staffOnly, serviceController.AddServiceUsage)

	v1.GET("/bill/:roomId", staffOnly, billingController.GetProvisionalBill)
	v1.POST("/checkout", staffOnly, billingController.Checkout)
	v1.GET("/invoices", managerOnly, billingController.GetInvoices)
	v1.GET("/invoices/:id", staffOnly, billingController.GetInvoiceDetail)

	v1.GET("/guests", staffOnly, guestController.SearchGuests)

	return stayService
}
