package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/swiftride/api/internal/application"
	pginfra "github.com/swiftride/api/internal/infrastructure/postgres"
	handlers "github.com/swiftride/api/internal/interface/http"
	"github.com/swiftride/api/internal/router/modules"
	"github.com/swiftride/api/pkg/helpers"
)

// Deps carries the process-wide infrastructure handles, constructed in main
// with explicit lifecycles and passed down rather than held as globals.
type Deps struct {
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	JWT       *helpers.JWTManager
	Publisher *helpers.RabbitPublisher
	Logger    *logrus.Logger
}

// InitModules wires repositories, services and handlers from the given
// dependencies and registers every feature module with the registry.
func InitModules(r *Registry, deps Deps) {
	users := pginfra.NewUserRepository(deps.Pool)
	drivers := pginfra.NewDriverRepository(deps.Pool)
	rides := pginfra.NewRideRepository(deps.Pool)

	userSvc := application.NewUserService(users, deps.JWT, deps.Logger)
	driverSvc := application.NewDriverService(drivers, users, deps.Logger)
	rideSvc := application.NewRideService(rides, drivers, deps.Publisher, deps.Logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, deps.Logger), deps.JWT, deps.Redis))
	r.Add(modules.NewDriverModule(handlers.NewDriverHandler(driverSvc, deps.Logger), deps.JWT, deps.Redis))
	r.Add(modules.NewRideModule(handlers.NewRideHandler(rideSvc, deps.Logger), deps.JWT, deps.Redis))
}
