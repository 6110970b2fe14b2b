package endpoint

import (
	"fmt"
	"net/http"

	"github.com/ariebrainware/cosec-marketplace/middleware"
	"github.com/ariebrainware/cosec-marketplace/util"
	"github.com/gin-gonic/gin"
)

// RouterOptions configures the middleware wrapped around the routes.
type RouterOptions struct {
	AppName   string
	JWTSecret string
	Audit     *util.AuditLogger
	RateLimit middleware.RateLimitConfig
}

// RegisterRoutes mounts every route on r.
func RegisterRoutes(r *gin.Engine, h *Handler, opts RouterOptions) {
	auth := middleware.Authenticate(opts.JWTSecret, opts.Audit)
	optionalAuth := middleware.OptionalAuthenticate(opts.JWTSecret, opts.Audit)
	if opts.RateLimit.Audit == nil {
		opts.RateLimit.Audit = opts.Audit
	}
	limiter := middleware.RateLimiter(opts.RateLimit)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", opts.AppName),
		})
	})

	specialists := r.Group("/specialists")
	{
		specialists.GET("", h.ListSpecialists)
		specialists.GET("/:id", h.GetSpecialist)
		specialists.POST("", auth, h.CreateSpecialist)
		specialists.PUT("/:id", auth, h.UpdateSpecialist)
		specialists.DELETE("/:id", auth, h.DeleteSpecialist)
	}

	orders := r.Group("/orders")
	{
		orders.POST("", limiter, optionalAuth, h.CreateOrder)
		orders.GET("", auth, h.ListOrders)
		orders.PATCH("/:id", auth, h.UpdateOrderStatus)
	}

	user := r.Group("/user", auth)
	{
		user.POST("/companies", h.RegisterCompany)
		user.GET("/companies", h.ListCompanies)
		user.GET("/profile", h.GetProfile)
		user.PATCH("/profile", h.UpdateProfile)
	}

	r.POST("/messages", limiter, h.SubmitMessage)
	r.GET("/service-offerings", h.ListServiceOfferings)
	r.GET("/platform-fees", h.ListPlatformFees)

	admin := r.Group("/admin", auth, middleware.RequireAdmin(opts.Audit), middleware.AuditTrail(opts.Audit))
	{
		admin.GET("/orders", h.ListAllOrders)
		admin.PATCH("/specialists/:id/verification", h.SetSpecialistVerification)
		admin.PATCH("/companies/:id", h.SetRegistrationStatus)
		admin.GET("/messages", h.ListMessages)
		admin.PATCH("/messages/:id/read", h.MarkMessageRead)
		admin.DELETE("/messages/:id", h.DeleteMessage)
	}
}
