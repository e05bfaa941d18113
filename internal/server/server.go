package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roadbook/internal/config"
	"roadbook/internal/handler"
	"roadbook/internal/middleware"
	"roadbook/internal/model"
	"roadbook/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Place{},
		&model.Roadbook{},
		&model.RoadbookStop{},
		&model.SharedRoadbook{},
		&model.FavoritePlace{},
		&model.FavoriteRoadbook{},
		&model.Follow{},
		&model.Tip{},
		&model.TipVote{},
		&model.PlaceRating{},
	); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	placeRepo := repository.NewPlaceRepository(db)
	roadbookRepo := repository.NewRoadbookRepository(db)
	shareRepo := repository.NewSharedRoadbookRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tipRepo := repository.NewTipRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	placeHandler := handler.NewPlaceHandler(placeRepo)
	roadbookHandler := handler.NewRoadbookHandler(roadbookRepo, placeRepo, cfg.ShareGrantsEnabled)
	stopHandler := handler.NewStopHandler(roadbookRepo, placeRepo)
	shareHandler := handler.NewShareHandler(roadbookRepo, userRepo, shareRepo)
	favoriteHandler := handler.NewFavoriteHandler(favoriteRepo, placeRepo, roadbookRepo, cfg.ShareGrantsEnabled)
	followHandler := handler.NewFollowHandler(followRepo, userRepo)
	tipHandler := handler.NewTipHandler(tipRepo, placeRepo)
	ratingHandler := handler.NewRatingHandler(ratingRepo, placeRepo)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		authorized.PUT("/users/me", userHandler.UpdateProfile)
		authorized.PUT("/users/me/password", userHandler.UpdatePassword)
		authorized.DELETE("/users/:id", userHandler.DeleteUser)

		// Place routes
		authorized.GET("/places", placeHandler.List)
		authorized.GET("/places/search", placeHandler.Search)
		authorized.GET("/places/:id", placeHandler.GetByID)
		authorized.POST("/places", placeHandler.Create)
		authorized.PUT("/places/:id", placeHandler.Update)
		authorized.DELETE("/places/:id", placeHandler.Delete)

		// Roadbook routes
		authorized.GET("/roadbooks", roadbookHandler.List)
		authorized.GET("/roadbooks/search", roadbookHandler.Search)
		authorized.GET("/roadbooks/:id", roadbookHandler.GetByID)
		authorized.POST("/roadbooks", roadbookHandler.Create)
		authorized.PUT("/roadbooks/:id", roadbookHandler.Update)
		authorized.DELETE("/roadbooks/:id", roadbookHandler.Delete)

		// Stop routes
		authorized.POST("/roadbooks/:id/stops", stopHandler.Create)
		authorized.PUT("/stops/:id", stopHandler.Update)
		authorized.DELETE("/stops/:id", stopHandler.Delete)

		// Roadbook sharing routes
		authorized.POST("/roadbooks/:id/share", shareHandler.Share)
		authorized.DELETE("/roadbooks/:id/share/:user_id", shareHandler.Revoke)
		authorized.GET("/roadbooks/:id/share", shareHandler.ListShares)
		authorized.GET("/shared-roadbooks", shareHandler.ListSharedWithMe)

		// Favorite routes
		authorized.POST("/places/:id/favorite", favoriteHandler.AddPlace)
		authorized.DELETE("/places/:id/favorite", favoriteHandler.RemovePlace)
		authorized.GET("/favorites/places", favoriteHandler.ListPlaces)
		authorized.POST("/roadbooks/:id/favorite", favoriteHandler.AddRoadbook)
		authorized.DELETE("/roadbooks/:id/favorite", favoriteHandler.RemoveRoadbook)
		authorized.GET("/favorites/roadbooks", favoriteHandler.ListRoadbooks)

		// Follow routes
		authorized.POST("/users/:id/follow", followHandler.Follow)
		authorized.DELETE("/users/:id/follow", followHandler.Unfollow)
		authorized.GET("/users/:id/followers", followHandler.Followers)
		authorized.GET("/users/:id/following", followHandler.Following)

		// Tip routes
		authorized.POST("/places/:id/tips", tipHandler.Create)
		authorized.GET("/places/:id/tips", tipHandler.ListForPlace)
		authorized.POST("/tips/:id/vote", tipHandler.Vote)
		authorized.DELETE("/tips/:id/vote", tipHandler.RemoveVote)

		// Rating routes
		authorized.POST("/places/:id/ratings", ratingHandler.Create)
		authorized.GET("/places/:id/ratings", ratingHandler.ListForPlace)
	}
	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
