package application

import (
	"context"
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/iota-uz/teamtrack/pkg/constants"
	"github.com/iota-uz/teamtrack/pkg/eventbus"
)

// Controller is a registerable group of HTTP routes.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a feature area (schema, services, controllers) into the app.
type Module interface {
	Register(app Application) error
	Name() string
}

// Application is the DI registry every module registers into and every
// controller resolves from.
type Application interface {
	DB() *pgxpool.Pool
	RDB() *redis.Client
	EventPublisher() eventbus.EventBus
	Migrations() MigrationManager
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	Service(service interface{}) interface{}
	RegisterControllers(controllers ...Controller)
	RegisterServices(services ...interface{})
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
}

// UseApp returns the application from the context created by the Provide
// middleware.
func UseApp(ctx context.Context) (Application, error) {
	app, ok := ctx.Value(constants.AppKey).(Application)
	if !ok {
		return nil, fmt.Errorf("application not found in context")
	}
	return app, nil
}

// ---- Application implementation ----

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	RDB      *redis.Client
	EventBus eventbus.EventBus
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:           opts.Pool,
		rdb:            opts.RDB,
		eventPublisher: opts.EventBus,
		controllers:    make(map[string]Controller),
		services:       make(map[reflect.Type]interface{}),
		migrations:     NewMigrationManager(opts.Pool),
	}
}

// application with a dynamically extendable service registry
type application struct {
	pool           *pgxpool.Pool
	rdb            *redis.Client
	eventPublisher eventbus.EventBus
	services       map[reflect.Type]interface{}
	controllers    map[string]Controller
	middleware     []mux.MiddlewareFunc
	migrations     MigrationManager
}

func (app *application) DB() *pgxpool.Pool {
	return app.pool
}

func (app *application) RDB() *redis.Client {
	return app.rdb
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Migrations() MigrationManager {
	return app.migrations
}

func (app *application) Controllers() []Controller {
	controllers := make([]Controller, 0, len(app.controllers))
	for _, c := range app.controllers {
		controllers = append(controllers, c)
	}
	return controllers
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

// RegisterServices registers a new service in the application by its type
func (app *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type
func (app *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}
