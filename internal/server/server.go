package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/ticket-tracker/internal/config"
	"github.com/yukikurage/ticket-tracker/internal/constants"
	"github.com/yukikurage/ticket-tracker/internal/database"
	"github.com/yukikurage/ticket-tracker/internal/handlers"
	"github.com/yukikurage/ticket-tracker/internal/middleware"
	"github.com/yukikurage/ticket-tracker/internal/services"
	"github.com/yukikurage/ticket-tracker/internal/web"
)

// Dependencies is everything the HTTP layer needs. Advisor may be nil.
type Dependencies struct {
	Config        *config.Config
	Logger        *zap.Logger
	Bootstrapper  *database.Bootstrapper
	SessionStore  sessions.Store
	AuthService   *services.AuthService
	TicketService *services.TicketService
	Advisor       *services.TriageAdvisor
}

// NewSessionStore creates the session backend selected by SESSION_BACKEND.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store

	switch cfg.SessionBackend {
	case "", "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		s, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = s
	default:
		return nil, fmt.Errorf("unsupported SESSION_BACKEND %q", cfg.SessionBackend)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// New builds the gin engine with every route registered.
func New(deps Dependencies) (*gin.Engine, error) {
	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(templates)
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.Recovery(deps.Logger),
	)

	// Health check endpoint
	r.GET("/health", handlers.Health(deps.Bootstrapper))

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	ticketHandler := handlers.NewTicketHandler(deps.TicketService, deps.Advisor, deps.Logger)

	app := r.Group("/")
	app.Use(
		sessions.Sessions(constants.SessionCookieName, deps.SessionStore),
		middleware.EnsureSchema(deps.Bootstrapper),
		middleware.LoadIdentity(),
	)
	{
		app.GET("/", ticketHandler.List)
		app.GET("/api/tickets", ticketHandler.ListJSON)

		app.GET("/register", authHandler.RegisterForm)
		app.POST("/register", authHandler.Register)
		app.GET("/login", authHandler.LoginForm)
		app.POST("/login", authHandler.Login)
		app.GET("/logout", authHandler.Logout)

		app.GET("/add", middleware.RequireAuth(), ticketHandler.AddForm)
		app.POST("/add", middleware.RequireAuth(), ticketHandler.Create)

		admin := app.Group("/")
		admin.Use(middleware.RequireAdmin(), middleware.RequireTicketID())
		{
			admin.GET("/update/:id", ticketHandler.EditForm)
			admin.POST("/update/:id", ticketHandler.Update)
			admin.POST("/delete/:id", ticketHandler.Delete)
		}
	}

	return r, nil
}
