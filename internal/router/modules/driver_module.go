package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/swiftride/api/internal/interface/http"
	"github.com/swiftride/api/internal/interface/middleware"
	"github.com/swiftride/api/pkg/helpers"
)

// DriverModule wires driver-profile routes; all require authentication.
type DriverModule struct {
	Handler *handlers.DriverHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewDriverModule(h *handlers.DriverHandler, jwt *helpers.JWTManager, rdb *redis.Client) *DriverModule {
	return &DriverModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *DriverModule) Register(rg *gin.RouterGroup) {
	drivers := rg.Group("/drivers")
	drivers.Use(middleware.Auth(m.JWT))
	drivers.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		drivers.POST("", m.Handler.CreateProfile)
		drivers.GET("/profile", m.Handler.GetProfile)
		drivers.PATCH("/availability", m.Handler.UpdateAvailability)
		drivers.PATCH("/vehicle-types", m.Handler.UpdateVehicleTypes)
		drivers.GET("/available", m.Handler.ListAvailable)
	}
}
