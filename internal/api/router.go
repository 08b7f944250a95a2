package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/dreamblog/dreamblog-api/docs"
	"github.com/dreamblog/dreamblog-api/internal/api/handler"
	"github.com/dreamblog/dreamblog-api/internal/api/middleware"
	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
	"github.com/dreamblog/dreamblog-api/internal/core/service"
	"github.com/dreamblog/dreamblog-api/internal/infrastructure/config"
	mongorepo "github.com/dreamblog/dreamblog-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/dreamblog/dreamblog-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, recorder ports.ActivityRecorder, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dreamblog"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	followRepo := mongorepo.NewFollowRepository(db)
	dreamRepo := mongorepo.NewDreamRepository(db)
	commentRepo := mongorepo.NewCommentRepository(db)

	// --- Services ---
	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisinfra.NewLoginThrottle(rdb)
	userService := service.NewUserService(userRepo, codec, throttle, cfg.AdminSignupKey, log)
	followService := service.NewFollowService(followRepo, userRepo, recorder, log)
	dreamService := service.NewDreamService(dreamRepo, recorder, log)
	commentService := service.NewCommentService(commentRepo, dreamRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	followHandler := handler.NewFollowHandler(followService)
	dreamHandler := handler.NewDreamHandler(dreamService)
	commentHandler := handler.NewCommentHandler(commentService)

	// Every request passes through the identity gate. Requests the gate
	// cannot authenticate proceed anonymously; per-route guards decide
	// whether anonymous access is acceptable.
	e.Use(middleware.Identity(codec, userRepo, cfg.AuthExemptPrefix))

	// --- Auth routes (gate-exempt prefix) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Users ---
	users := e.Group("/api/users")
	users.GET("", userHandler.List, middleware.RequireRole(domain.RoleAdmin))
	users.GET("/me", userHandler.Me, middleware.RequireAuth())
	users.GET("/:username", userHandler.GetByUsername, middleware.RequireAuth())
	users.PUT("/:id", userHandler.Update, middleware.RequireAuth())
	users.DELETE("/:id", userHandler.Delete, middleware.RequireAuth())
	users.PUT("/activate/:username", userHandler.Activate, middleware.RequireRole(domain.RoleAdmin))

	// --- Follow graph ---
	follows := e.Group("/api/follows")
	follows.POST("", followHandler.Follow, middleware.RequireAuth())
	follows.DELETE("/:followedId", followHandler.Unfollow, middleware.RequireAuth())
	follows.GET("/following/:userId", followHandler.Following)
	follows.GET("/followers/:userId", followHandler.Followers)
	follows.GET("/is-following/:followerId/:followedId", followHandler.IsFollowing)
	follows.GET("/followers/count/:userId", followHandler.FollowerCount)
	follows.GET("/following/count/:userId", followHandler.FollowingCount)

	// --- Dreams & reactions ---
	dreams := e.Group("/api/dreams")
	dreams.POST("", dreamHandler.Create, middleware.RequireAuth())
	dreams.GET("", dreamHandler.List)
	dreams.GET("/:id", dreamHandler.Get)
	dreams.PUT("/:id", dreamHandler.Update, middleware.RequireAuth())
	dreams.DELETE("/:id", dreamHandler.Delete, middleware.RequireAuth())
	dreams.PUT("/:id/reaction", dreamHandler.React, middleware.RequireAuth())
	dreams.DELETE("/:id/reaction", dreamHandler.Unreact, middleware.RequireAuth())
	dreams.GET("/:id/reactions/count", dreamHandler.ReactionCount)

	// --- Comments ---
	dreams.POST("/:id/comments", commentHandler.Add, middleware.RequireAuth())
	dreams.GET("/:id/comments", commentHandler.ListByDream)
	e.DELETE("/api/comments/:id", commentHandler.Delete, middleware.RequireAuth())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
