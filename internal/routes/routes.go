package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/maeul-dev/maeul-backend/internal/config"
	"github.com/maeul-dev/maeul-backend/internal/handlers"
	"github.com/maeul-dev/maeul-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	postHandler *handlers.PostHandler,
	commentHandler *handlers.CommentHandler,
	engagementHandler *handlers.EngagementHandler,
	townHandler *handlers.TownHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/phone", authHandler.SetupVerification)
	auth.Post("/phone/verify", authHandler.VerifyCode)
	auth.Post("/register", authHandler.Register)
	auth.Post("/refresh", authHandler.Refresh)

	// Session endpoints need a valid token but not a loaded account: logout
	// should still work for a user mid-deletion.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Everything below requires a live account.
	protected := api.Group("", middleware.JWTProtected(cfg), middleware.LoadUser(db))

	protected.Delete("/auth/account", authHandler.DeleteAccount)

	// Users
	protected.Get("/users/me", userHandler.Me)
	protected.Get("/users", userHandler.List)
	protected.Get("/users/:id", userHandler.Get)
	protected.Put("/users/me/bio", userHandler.UpdateBio)
	protected.Put("/users/me/picture", userHandler.UpdatePicture)
	protected.Post("/users/:id/like", engagementHandler.LikeUser)
	protected.Delete("/users/:id/like", engagementHandler.UnlikeUser)

	// Posts
	protected.Post("/posts", postHandler.Create)
	protected.Get("/posts", postHandler.List)
	protected.Get("/posts/:id", postHandler.Get)
	protected.Put("/posts/:id", postHandler.Edit)
	protected.Delete("/posts/:id", postHandler.Delete)
	protected.Post("/posts/:id/like", engagementHandler.LikePost)
	protected.Delete("/posts/:id/like", engagementHandler.UnlikePost)

	// Comments, nested under their post
	protected.Post("/posts/:id/comments", commentHandler.Add)
	protected.Get("/posts/:id/comments", commentHandler.List)
	protected.Delete("/posts/:id/comments/:commentId", commentHandler.Delete)

	// Blocks
	protected.Post("/blocks/users", engagementHandler.BlockUser)
	protected.Delete("/blocks/users/:id", engagementHandler.UnblockUser)
	protected.Get("/blocks/users", engagementHandler.BlockedUsers)
	protected.Post("/blocks/posts", engagementHandler.BlockPost)
	protected.Delete("/blocks/posts/:id", engagementHandler.UnblockPost)
	protected.Post("/blocks/comments", engagementHandler.BlockComment)
	protected.Delete("/blocks/comments/:id", engagementHandler.UnblockComment)

	// Admin town management
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/towns", townHandler.Create)
	admin.Get("/towns", townHandler.List)
}
