package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/swiftride/api/internal/interface/http"
	"github.com/swiftride/api/internal/interface/middleware"
	"github.com/swiftride/api/pkg/helpers"
)

// RideModule wires ride lifecycle routes; all require authentication.
// /pending and /history are registered as static segments alongside the
// :rideId parameter routes.
type RideModule struct {
	Handler *handlers.RideHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewRideModule(h *handlers.RideHandler, jwt *helpers.JWTManager, rdb *redis.Client) *RideModule {
	return &RideModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *RideModule) Register(rg *gin.RouterGroup) {
	rides := rg.Group("/rides")
	rides.Use(middleware.Auth(m.JWT))
	rides.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		rides.POST("", m.Handler.CreateRide)
		rides.GET("/pending", m.Handler.GetPendingRides)
		rides.GET("/history", m.Handler.GetRideHistory)
		rides.GET("/:rideId", m.Handler.GetRide)
		rides.PATCH("/:rideId/status", m.Handler.UpdateStatus)
		rides.POST("/:rideId/rate", m.Handler.RateRide)
	}
}
