package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/tunagu-ab/tunagatya-app/internal/auth"
	"github.com/tunagu-ab/tunagatya-app/internal/config"
	"github.com/tunagu-ab/tunagatya-app/internal/draw"
	"github.com/tunagu-ab/tunagatya-app/internal/gacha"
	"github.com/tunagu-ab/tunagatya-app/internal/item"
	"github.com/tunagu-ab/tunagatya-app/internal/notification"
	"github.com/tunagu-ab/tunagatya-app/internal/user"
	"github.com/tunagu-ab/tunagatya-app/internal/wallet"
)

type Server struct {
	router       *gin.Engine
	httpServer   *http.Server
	db           *sqlx.DB
	config       *config.Config
	notification *notification.Service
}

func New(db *sqlx.DB, cfg *config.Config, notificationService *notification.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, cfg.JWTSecret, notificationService)
	userHandler := user.NewHandler(userService)

	gachaRepo := gacha.NewRepository(db)
	gachaService := gacha.NewService(gachaRepo)
	gachaHandler := gacha.NewHandler(gachaService)

	drawRepo := draw.NewRepository(db)
	drawService := draw.NewService(drawRepo, draw.NewWeightedSelector(), notificationService)
	drawHandler := draw.NewHandler(drawService)

	itemHandler := item.NewHandler(item.NewRepository(db))
	walletHandler := wallet.NewHandler(wallet.NewRepository(db))

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	router.GET("/api/gachas", gachaHandler.ListGachas)
	router.GET("/api/gachas/:gachaID", gachaHandler.GetGacha)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.POST("/api/gacha/:gachaID/draw", RateLimitMiddleware(2, 5), drawHandler.Draw)
		protected.GET("/api/user-items", itemHandler.ListInventory)
		protected.POST("/api/user-items/:itemID/convert", RateLimitMiddleware(2, 5), itemHandler.Convert)
		protected.GET("/api/wallet", walletHandler.GetBalance)
		protected.GET("/api/wallet/transactions", walletHandler.ListTransactions)
		protected.POST("/api/charge", RateLimitMiddleware(2, 5), walletHandler.Charge)
	}

	adminMiddleware := auth.RequireRole("admin")
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/gachas", gachaHandler.CreateGacha)
		admin.POST("/items", gachaHandler.CreateItem)
		admin.POST("/gachas/:gachaID/items", gachaHandler.AddPoolEntry)
		admin.GET("/analytics/draws", gachaHandler.GetDrawAnalytics)
	}

	router.GET("/", Root)
	router.GET("/health", Health)
	router.GET("/test-db", TestDB(db))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router:       router,
		db:           db,
		config:       cfg,
		notification: notificationService,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
