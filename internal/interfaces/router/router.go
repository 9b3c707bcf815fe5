package router

import (
	"context"
	"time"

	"estates-backend/internal/application/accounts"
	"estates-backend/internal/application/contact"
	"estates-backend/internal/application/emails"
	"estates-backend/internal/application/estates"
	authsvc "estates-backend/internal/auth"
	"estates-backend/internal/config"
	"estates-backend/internal/constants"
	"estates-backend/internal/health"
	"estates-backend/internal/infrastructure/database"
	"estates-backend/internal/infrastructure/estatesapi"
	accountshandler "estates-backend/internal/interfaces/handlers/accounts"
	adminhandler "estates-backend/internal/interfaces/handlers/admin"
	authhandler "estates-backend/internal/interfaces/handlers/auth"
	contacthandler "estates-backend/internal/interfaces/handlers/contact"
	estateshandler "estates-backend/internal/interfaces/handlers/estates"
	"estates-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Deps are the backends the app talks to. DB, Rdb and Mailer may be nil;
// the features depending on them answer 503 instead.
type Deps struct {
	DB     *gorm.DB
	Rdb    *redis.Client
	API    estatesapi.Client
	Mailer emails.Sender
}

// CreateApp connects the configured backends and builds the app.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	deps := Deps{
		API: &estatesapi.HTTPClient{BaseURL: cfg.EstatesAPIBaseURL},
	}
	if cfg.DatabaseURL != "" {
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		deps.DB = db
	}
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rdb, err := database.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		deps.Rdb = rdb
	}
	if cfg.SendinblueAPIKey != "" {
		deps.Mailer = &emails.BrevoClient{APIKey: cfg.SendinblueAPIKey, MailFrom: cfg.MailFrom}
	}
	if !deps.API.Configured() {
		log.Warn().Msg("ESTATES_API_BASE_URL not set, public catalog serves sample listings")
	}
	return New(cfg, deps), deps.DB, deps.Rdb, nil
}

// New registers middleware and routes on a fresh app.
func New(cfg *config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.IsProduction(),
		CookieDomain:      cfg.CookieDomain,
	}

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	if deps.Rdb != nil {
		app.Use(middleware.HealthMarker(deps.Rdb))
		app.Use(middleware.Session(deps.Rdb, sessionCfg))
	}

	api := deps.API
	if api == nil {
		api = &estatesapi.HTTPClient{}
	}

	hh := &health.Handlers{Rdb: deps.Rdb, API: api, HealthAdminKey: cfg.HealthAdminKey}
	if deps.DB != nil {
		hh.DB = &gormDBPinger{db: deps.DB}
	}
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/health/reset", hh.Reset)

	estatesService := &estates.Service{API: api, RemoteFilter: cfg.RemoteFilter, PageSize: cfg.PageSize}

	// Public catalog
	eh := &estateshandler.Handlers{Service: estatesService, WhatsAppNumber: cfg.WhatsAppNumber}
	estatesGroup := app.Group("/api/v1/estates")
	estatesGroup.Get("/", eh.List)
	estatesGroup.Get("/:id", eh.Get)
	estatesGroup.Get("/:id/whatsapp", eh.WhatsApp)

	ch := &contacthandler.Handlers{Service: &contact.Service{Mailer: deps.Mailer, To: cfg.ContactTo}}
	app.Post("/api/v1/contact", ch.Send)

	// Auth
	var userFinder authsvc.UserFinder
	if deps.DB != nil {
		userFinder = &authsvc.GormUserFinder{DB: deps.DB}
	}
	ah := &authhandler.Handlers{UserFinder: userFinder, Rdb: deps.Rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	// Back office
	adm := &adminhandler.Handlers{Service: estatesService}
	adminGroup := app.Group("/api/v1/admin/estates", middleware.RequireAuth())
	adminGroup.Get("/", middleware.AuthorizePermission(constants.ViewEstates), adm.List)
	adminGroup.Post("/", middleware.AuthorizePermission(constants.CreateEstate), adm.Create)
	adminGroup.Put("/:id", middleware.AuthorizePermission(constants.EditEstate), adm.Update)
	adminGroup.Delete("/:id", middleware.AuthorizePermission(constants.DeleteEstate), adm.Delete)

	acc := &accountshandler.Handlers{Service: &accounts.Service{DB: deps.DB, Rdb: deps.Rdb}}
	usersGroup := app.Group("/api/v1/admin/users", middleware.RequireAuth(), middleware.AuthorizePermission(constants.ManageUsers))
	usersGroup.Get("/", acc.List)
	usersGroup.Post("/", acc.Create)
	usersGroup.Patch("/:id/role", acc.UpdateRole)
	usersGroup.Delete("/:id", acc.Remove)

	return app
}
