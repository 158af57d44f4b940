package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cinematica/cinematica-api/internal/config"
	"github.com/cinematica/cinematica-api/internal/handlers"
	"github.com/cinematica/cinematica-api/internal/identity"
	"github.com/cinematica/cinematica-api/internal/middleware"
	"github.com/cinematica/cinematica-api/internal/repository/postgres"
	"github.com/cinematica/cinematica-api/internal/services"
	"github.com/cinematica/cinematica-api/internal/storage"
	"github.com/cinematica/cinematica-api/internal/tmdb"
	"github.com/cinematica/cinematica-api/pkg/cache"
	"github.com/cinematica/cinematica-api/pkg/logger"
	"github.com/cinematica/cinematica-api/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger()
	logger.Info("Starting Cinematica API server...")

	db, err := postgres.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	redisClient := cache.NewRedisClient(
		cfg.Redis.Addr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
		cfg.Redis.MinIdleConns,
	)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}

	eventsProducer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.EngagementEvents)
	defer eventsProducer.Close()

	idpClient, err := identity.NewClient(&cfg.AWS)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create identity provider client")
	}

	files, err := newFileStorage(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize file storage")
	}

	tmdbClient := tmdb.NewClient(&cfg.TMDB)

	authenticator, err := middleware.NewAuthenticator(ctx, cfg.AWS.JWKSEndpoint(), cfg.AWS.TokenIssuer())
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize token authenticator")
	}

	userRepo := postgres.NewUserRepository(db.DB)
	followRepo := postgres.NewFollowRepository(db.DB)
	postRepo := postgres.NewPostRepository(db.DB)
	replyRepo := postgres.NewReplyRepository(db.DB)
	likeRepo := postgres.NewLikeRepository(db.DB)
	movieRepo := postgres.NewMovieRepository(db.DB)

	serveLocation := cfg.Images.ServeLocation

	authService := services.NewAuthService(idpClient, userRepo, logger)
	postService := services.NewPostService(postRepo, replyRepo, likeRepo, followRepo, movieRepo, userRepo, files, eventsProducer, serveLocation, logger)
	replyService := services.NewReplyService(replyRepo, postRepo, likeRepo, userRepo, eventsProducer, serveLocation, logger)
	movieService := services.NewMovieService(movieRepo, tmdbClient, files, redisClient, cfg.Redis.SearchTTL, serveLocation, logger)
	userService := services.NewUserService(userRepo, followRepo, replyRepo, likeRepo, movieRepo, idpClient, files, eventsProducer, serveLocation, logger)

	authHandler := handlers.NewAuthHandler(authService)
	postHandler := handlers.NewPostHandler(postService, replyService)
	replyHandler := handlers.NewReplyHandler(replyService)
	userHandler := handlers.NewUserHandler(userService, postService)
	movieHandler := handlers.NewMovieHandler(movieService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	// Locally stored images are served straight off disk; with the S3 backend
	// the serve location points at the bucket instead.
	if cfg.Images.Backend == "local" {
		router.Static("/images", cfg.Images.BasePath)
	}

	handlers.SetupRoutes(router, authenticator, authHandler, postHandler, replyHandler, userHandler, movieHandler)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func newFileStorage(cfg *config.Config) (storage.FileStorage, error) {
	if cfg.Images.Backend == "s3" {
		return storage.NewS3Storage(cfg.AWS.Region, cfg.AWS.AccessKeyID, cfg.AWS.AccessSecretKey, cfg.AWS.S3Bucket)
	}
	return storage.NewLocalStorage(cfg.Images.BasePath)
}

func init() {
	dirs := []string{"logs", "uploads", "configs"}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("Failed to create directory %s: %v", dir, err)
		}
	}

	configPath := "configs/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfig(configPath); err != nil {
			log.Printf("Failed to create default config: %v", err)
		}
	}
}

func createDefaultConfig(path string) error {
	defaultConfig := `server:
  port: ":8080"
  mode: "debug"
  read_timeout: 30s
  write_timeout: 30s

database:
  host: "localhost"
  port: 5432
  user: "cinematica"
  password: "cinematica"
  dbname: "cinematica"
  sslmode: "disable"
  max_open_conns: 100
  max_idle_conns: 10

redis:
  host: "localhost"
  port: 6379
  password: ""
  db: 0
  pool_size: 10
  min_idle_conns: 5
  search_ttl: 10m

kafka:
  brokers:
    - "localhost:9092"
  topics:
    engagement_events: "engagement-events"

aws:
  region: "eu-central-1"
  access_key_id: ""
  access_secret_key: ""
  user_pool_id: ""
  app_client_id: ""
  s3_bucket: ""

tmdb:
  api_key: ""
  base_url: "https://api.themoviedb.org/3"
  image_url: "https://image.tmdb.org/t/p/w500"
  max_retries: 3

images:
  backend: "local"
  base_path: "uploads"
  serve_location: "http://localhost:8080/images/"
`
	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
