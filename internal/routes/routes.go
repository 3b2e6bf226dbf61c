// Package routes wires repositories, services and handlers together and
// mounts every API endpoint.
package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tunespace/tunespace-api/internal/config"
	"github.com/tunespace/tunespace-api/internal/features/admin"
	"github.com/tunespace/tunespace-api/internal/features/analytics"
	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/features/chat"
	"github.com/tunespace/tunespace-api/internal/features/creators"
	"github.com/tunespace/tunespace-api/internal/features/moderation"
	"github.com/tunespace/tunespace-api/internal/features/notifications"
	"github.com/tunespace/tunespace-api/internal/features/payments"
	"github.com/tunespace/tunespace-api/internal/features/posts"
	"github.com/tunespace/tunespace-api/internal/features/ratings"
	"github.com/tunespace/tunespace-api/internal/features/reports"
	"github.com/tunespace/tunespace-api/internal/pkg/audiomatch"
	"github.com/tunespace/tunespace-api/internal/pkg/mailer"
	"github.com/tunespace/tunespace-api/internal/pkg/paymongo"
	"github.com/tunespace/tunespace-api/internal/pkg/push"
	"github.com/tunespace/tunespace-api/internal/pkg/storage"
)

// Services exposes the service layer to the caller; the background jobs
// reuse the same instances the handlers do.
type Services struct {
	Auth     *auth.Service
	Posts    *posts.Service
	Payments *payments.Service
	Admin    *admin.Service
}

// Deps carries the external collaborators built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Store    *storage.Store
	Mail     mailer.Sender
	Push     push.Sender
	Detector audiomatch.Detector
	Gateway  *paymongo.Client
	Hub      *chat.Hub
}

// Setup mounts all endpoints under /api/v1 plus the websocket relay and the
// static uploads route, and returns the shared services.
func Setup(engine *gin.Engine, deps Deps) *Services {
	cfg := deps.Config

	userRepo := auth.NewRepository(deps.DB)
	authService := auth.NewService(userRepo, deps.Mail, cfg.JWTSecret,
		time.Duration(cfg.JWTExpire)*time.Hour)
	authMw := auth.NewMiddleware(userRepo, cfg.JWTSecret)

	notifService := notifications.NewService(
		notifications.NewRepository(deps.DB), userRepo, deps.Mail, deps.Push)

	modService := moderation.NewService(
		moderation.NewRepository(deps.DB), userRepo, notifService)

	postsService := posts.NewService(
		posts.NewRepository(deps.DB), userRepo, deps.Store, deps.Detector, modService)
	// Suspensions take the user's posts down; wired here because posts depend
	// on moderation for strike recording.
	modService.SetPostModerator(postsService)

	paymentsService := payments.NewService(
		payments.NewRepository(deps.DB), userRepo, deps.Gateway, notifService, deps.Mail)

	creatorsService := creators.NewService(creators.NewRepository(deps.DB), userRepo)
	ratingsService := ratings.NewService(ratings.NewRepository(deps.DB), userRepo, notifService)
	chatService := chat.NewService(chat.NewRepository(deps.DB), userRepo, notifService)
	reportsService := reports.NewService(
		reports.NewRepository(deps.DB), userRepo, postsService, notifService, deps.Store)

	analyticsService := analytics.NewService(analytics.NewRepository(deps.DB))
	adminService := admin.NewService(
		admin.NewRepository(deps.DB), paymentsService, analyticsService)

	api := engine.Group("/api/v1")

	auth.RegisterRoutes(api, auth.NewHandler(authService, deps.Store), authMw)
	creators.RegisterRoutes(api, creators.NewHandler(creatorsService, deps.Store), authMw)
	posts.RegisterRoutes(api, posts.NewHandler(postsService, deps.Store), authMw)
	payments.RegisterRoutes(api, payments.NewHandler(paymentsService), authMw)
	ratings.RegisterRoutes(api, ratings.NewHandler(ratingsService), authMw)
	chat.RegisterRoutes(api, engine, chat.NewHandler(chatService, deps.Hub, cfg.FrontendURL), authMw)
	notifications.RegisterRoutes(api, notifications.NewHandler(notifService), authMw)
	reports.RegisterRoutes(api, reports.NewHandler(reportsService, deps.Store), authMw)
	moderation.RegisterRoutes(api, moderation.NewHandler(modService), authMw)
	admin.RegisterRoutes(api, admin.NewHandler(adminService), authMw)

	analytics.RegisterRoutes(api, analytics.NewHandler(analyticsService), authMw)

	// Uploaded files are served straight off local disk.
	engine.Static("/uploads", deps.Store.BaseDir())

	return &Services{
		Auth:     authService,
		Posts:    postsService,
		Payments: paymentsService,
		Admin:    adminService,
	}
}
