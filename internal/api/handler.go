package api

import (
	"net/http"
	"strconv"
	"time"

	"waterbilling/internal/service"
	"waterbilling/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	customers  *service.CustomerService
	readings   *service.ReadingService
	billing    *service.BillingService
	payments   *service.PaymentService
	complaints *service.ComplaintService
	users      *service.UserService
	stats      *service.StatsService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	customers *service.CustomerService,
	readings *service.ReadingService,
	billing *service.BillingService,
	payments *service.PaymentService,
	complaints *service.ComplaintService,
	users *service.UserService,
	stats *service.StatsService,
) *Handler {
	return &Handler{
		customers:  customers,
		readings:   readings,
		billing:    billing,
		payments:   payments,
		complaints: complaints,
		users:      users,
		stats:      stats,
	}
}

// deleteRequest is the shared delete body across entities
type deleteRequest struct {
	ID string `json:"id" binding:"required"`
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		customers := api.Group("/customers")
		{
			customers.GET("", h.listCustomers)
			customers.GET("/search", h.searchCustomers)
			customers.GET("/:id", h.getCustomer)
			customers.GET("/:id/summary", h.getCustomerSummary)
			customers.GET("/:id/bills", h.getCustomerBills)
			customers.GET("/:id/payments", h.getCustomerPayments)
			customers.GET("/:id/readings", h.getCustomerReadings)
			customers.POST("", h.createCustomer)
			customers.PUT("", h.updateCustomer)
			customers.DELETE("", h.deleteCustomer)
		}

		readings := api.Group("/meter_readings")
		{
			readings.GET("", h.listReadings)
			readings.GET("/:id", h.getReading)
			readings.POST("", h.createReading)
			readings.PUT("", h.updateReading)
			readings.DELETE("", h.deleteReading)
		}

		api.GET("/meters/:meter/latest_reading", h.getLatestReading)

		bills := api.Group("/bills")
		{
			bills.GET("", h.listBills)
			bills.GET("/:id", h.getBill)
			bills.POST("", h.createBill)
			bills.PUT("", h.updateBill)
			bills.DELETE("", h.deleteBill)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", h.listPayments)
			payments.GET("/:id", h.getPayment)
			payments.POST("", h.createPayment)
			payments.PUT("", h.updatePayment)
			payments.DELETE("", h.deletePayment)
		}

		complaints := api.Group("/complaints")
		{
			complaints.GET("", h.listComplaints)
			complaints.GET("/:id", h.getComplaint)
			complaints.POST("", h.createComplaint)
			complaints.PUT("", h.updateComplaint)
			complaints.DELETE("", h.deleteComplaint)
		}

		users := api.Group("/users")
		{
			users.GET("", h.listUsers)
			users.GET("/:id", h.getUser)
			users.POST("", h.createUser)
			users.PUT("", h.updateUser)
			users.DELETE("", h.deleteUser)
		}

		api.GET("/dashboard/summary", h.getDashboardSummary)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// getDashboardSummary serves the aggregate dashboard figures
func (h *Handler) getDashboardSummary(c *gin.Context) {
	summary, err := h.stats.GetDashboardSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message": "Unable to compute dashboard summary.",
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
