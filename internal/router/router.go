package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/auth"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/handler"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	User    *handler.UserHandler
	Channel *handler.ChannelHandler
	Video   *handler.VideoHandler
	Comment *handler.CommentHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
}

// Options carries the cross-cutting dependencies of the middleware stack.
type Options struct {
	CORSOrigins  string
	Tokens       *auth.TokenManager
	LoginLimiter *middleware.RateLimiter
	GlobalRPS    float64
	GlobalBurst  int
	Gatherer     prometheus.Gatherer
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, opts Options) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(opts.CORSOrigins))

	// Probes and metrics sit outside the global limiter.
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	if opts.Gatherer != nil {
		app.Get("/metrics", handler.MetricsHandler(opts.Gatherer))
	}

	api := app.Group("/api", middleware.NewGlobalLimiter(opts.GlobalRPS, opts.GlobalBurst))
	requireAuth := middleware.RequireAuth(opts.Tokens)

	login := func(c fiber.Ctx) error { return c.Next() }
	if opts.LoginLimiter != nil {
		login = opts.LoginLimiter.Handler()
	}

	// User routes
	api.Post("/users/register", login, h.User.Register)
	api.Post("/users/login", login, h.User.Login)
	api.Post("/users/logout", h.User.Logout)
	api.Get("/users/:id", h.User.GetProfile)

	// Channel routes
	api.Post("/channels", requireAuth, h.Channel.Create)
	api.Get("/channels", h.Channel.List)
	api.Get("/channels/:id", h.Channel.Get)
	api.Put("/channels/:id", requireAuth, h.Channel.Update)
	api.Delete("/channels/:id", requireAuth, h.Channel.Delete)

	// Video routes. Literal segments are registered before /videos/:id.
	api.Post("/videos", requireAuth, h.Video.Upload)
	api.Get("/videos", h.Video.List)
	api.Get("/videos/channel/:channelId", h.Video.ListByChannel)
	api.Get("/videos/user/:userId", h.Video.ListByOwner)
	api.Get("/videos/:id", h.Video.Get)
	api.Put("/videos/:id", requireAuth, h.Video.Update)
	api.Delete("/videos/:id", requireAuth, h.Video.Delete)
	api.Post("/videos/:id/like", requireAuth, h.Video.Like)
	api.Post("/videos/:id/dislike", requireAuth, h.Video.Dislike)

	// Comment routes
	api.Post("/comments", requireAuth, h.Comment.Add)
	api.Get("/comments/:videoId", h.Comment.ListByVideo)
	api.Put("/comments/:commentId", requireAuth, h.Comment.Update)
	api.Delete("/comments/:commentId", requireAuth, h.Comment.Delete)

	// Stats routes
	api.Get("/stats", h.Stats.GetStats)
}
