// Notebook backend API server.
//
// @title Notebook Backend API
// @version 1.0
// @description Personal note-taking REST API
// @BasePath /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/icloudnotebook/notebook-backend/docs"
	"github.com/icloudnotebook/notebook-backend/internal/config"
	"github.com/icloudnotebook/notebook-backend/internal/domain"
	"github.com/icloudnotebook/notebook-backend/internal/handler"
	"github.com/icloudnotebook/notebook-backend/internal/middleware"
	"github.com/icloudnotebook/notebook-backend/internal/repository"
	"github.com/icloudnotebook/notebook-backend/internal/routes"
	"github.com/icloudnotebook/notebook-backend/internal/service"
	"github.com/icloudnotebook/notebook-backend/pkg/jwt"
	"github.com/icloudnotebook/notebook-backend/pkg/logger"
)

func main() {
	loaded := config.LoadDotEnv()

	cfg, err := config.Load(config.Path())
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}

	logger.InitStructured(cfg.App.Env)
	log := logger.GetLogger()

	if len(loaded) > 0 {
		log.Info().Strs("files", loaded).Msg("loaded dotenv files")
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	authService := service.NewAuthService(userRepo, jwtManager)
	noteService := service.NewNoteService(noteRepo)

	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)

	routes.SetupAuth(router, authHandler, jwtManager)
	routes.SetupNotes(router, noteHandler, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Str("env", cfg.App.Env).Msg("starting API server")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Note{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}
